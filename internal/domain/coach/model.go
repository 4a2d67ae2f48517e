package coach

import (
	"errors"
	"strings"
)

// Tier constants used across the portal. Tiers group coaches for display
// and sub eligibility; they never change pay.
const (
	TierJunior = "junior"
	TierSenior = "senior"
	TierLead   = "lead"
)

// Domain errors
var (
	ErrEmptyCoachID    = errors.New("coach ID cannot be empty")
	ErrNegativeRate    = errors.New("hourly rate cannot be negative")
	ErrEmptyTier       = errors.New("tier cannot be empty")
	ErrTierCoachAbsent = errors.New("tier assignment needs a coach ID")
)

// Profile holds the payroll-relevant settings for a coach.
// HourlyRate is nil when no rate is configured, which is distinct from zero.
// LegacyTier predates tier assignments and is only read as a fallback.
type Profile struct {
	CoachID    string
	HourlyRate *float64
	IsTA       bool
	LegacyTier string
}

// TierAssignment links a coach to one tier.
type TierAssignment struct {
	CoachID string
	Tier    string
}

// Validate checks if the Profile has valid data.
// PRE: Profile struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.CoachID) == "" {
		return ErrEmptyCoachID
	}
	if p.HourlyRate != nil && *p.HourlyRate < 0 {
		return ErrNegativeRate
	}
	return nil
}

// Validate checks if the TierAssignment has valid data.
func (a *TierAssignment) Validate() error {
	if strings.TrimSpace(a.CoachID) == "" {
		return ErrTierCoachAbsent
	}
	if strings.TrimSpace(a.Tier) == "" {
		return ErrEmptyTier
	}
	return nil
}

// ResolveTiers returns a coach's effective tiers: the assigned tiers when any
// exist, otherwise the legacy tier alone when set, otherwise none.
// POST: never returns nil
func ResolveTiers(assigned []string, legacy string) []string {
	if len(assigned) > 0 {
		out := make([]string, len(assigned))
		copy(out, assigned)
		return out
	}
	if legacy = strings.TrimSpace(legacy); legacy != "" {
		return []string{legacy}
	}
	return []string{}
}

// GroupTiers collects assignment rows into tiers per coach, preserving row order.
func GroupTiers(rows []TierAssignment) map[string][]string {
	out := make(map[string][]string)
	for _, r := range rows {
		out[r.CoachID] = append(out[r.CoachID], r.Tier)
	}
	return out
}
