package coach_test

import (
	"reflect"
	"testing"

	"github.com/ftebtw/dsdc-sub000/internal/domain/coach"
)

// TestResolveTiers verifies the assigned-then-legacy fallback rule.
func TestResolveTiers(t *testing.T) {
	tests := []struct {
		name     string
		assigned []string
		legacy   string
		want     []string
	}{
		{"assignments win over legacy", []string{coach.TierSenior, coach.TierLead}, coach.TierJunior, []string{coach.TierSenior, coach.TierLead}},
		{"legacy when no assignments", nil, coach.TierJunior, []string{coach.TierJunior}},
		{"blank legacy is ignored", []string{}, "  ", []string{}},
		{"nothing set", nil, "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coach.ResolveTiers(tt.assigned, tt.legacy)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveTiers() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestGroupTiers verifies rows are grouped per coach in order.
func TestGroupTiers(t *testing.T) {
	got := coach.GroupTiers([]coach.TierAssignment{
		{CoachID: "a", Tier: coach.TierJunior},
		{CoachID: "b", Tier: coach.TierLead},
		{CoachID: "a", Tier: coach.TierSenior},
	})
	if !reflect.DeepEqual(got["a"], []string{coach.TierJunior, coach.TierSenior}) {
		t.Errorf("a = %v", got["a"])
	}
	if !reflect.DeepEqual(got["b"], []string{coach.TierLead}) {
		t.Errorf("b = %v", got["b"])
	}
}

// TestProfile_Validate tests validation of Profile.
func TestProfile_Validate(t *testing.T) {
	neg := -1.0
	rate := 32.5
	if err := (&coach.Profile{CoachID: "k", HourlyRate: &rate}).Validate(); err != nil {
		t.Errorf("valid profile error = %v", err)
	}
	if err := (&coach.Profile{}).Validate(); err != coach.ErrEmptyCoachID {
		t.Errorf("empty id error = %v", err)
	}
	if err := (&coach.Profile{CoachID: "k", HourlyRate: &neg}).Validate(); err != coach.ErrNegativeRate {
		t.Errorf("negative rate error = %v", err)
	}
}
