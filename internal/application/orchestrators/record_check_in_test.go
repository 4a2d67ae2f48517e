package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ftebtw/dsdc-sub000/internal/application/listutil"
	"github.com/ftebtw/dsdc-sub000/internal/domain/attendance"
	"github.com/ftebtw/dsdc-sub000/internal/domain/schedule"
)

// --- Mock stores ---

type mockCheckInClassStore struct {
	classes map[string]schedule.Class
	err     error
}

// FindByID returns the class with the given ID, if any.
func (m *mockCheckInClassStore) FindByID(_ context.Context, id string) (listutil.Optional[schedule.Class], error) {
	if m.err != nil {
		return listutil.None[schedule.Class](), m.err
	}
	c, ok := m.classes[id]
	if !ok {
		return listutil.None[schedule.Class](), nil
	}
	return listutil.Some(c), nil
}

type mockCheckInStore struct {
	saved   []attendance.CheckIn
	saveErr error
}

// Save appends the check-in.
func (m *mockCheckInStore) Save(_ context.Context, c attendance.CheckIn) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, c)
	return nil
}

// FindByCoachClassDate returns the first saved check-in for the meeting.
func (m *mockCheckInStore) FindByCoachClassDate(_ context.Context, coachID, classID, sessionDate string) (listutil.Optional[attendance.CheckIn], error) {
	for _, c := range m.saved {
		if c.CoachID == coachID && c.ClassID == classID && c.SessionDate == sessionDate {
			return listutil.Some(c), nil
		}
	}
	return listutil.None[attendance.CheckIn](), nil
}

// mondayClass meets Mondays 16:00-18:00 Vancouver time during the spring term.
var mondayClass = schedule.Class{
	ID: "k1", Name: "Novice Debate", CoachID: "c1", Day: schedule.Monday,
	StartTime: "16:00", EndTime: "18:00", Timezone: "America/Vancouver",
	TermStart: "2025-01-06", TermEnd: "2025-06-30",
}

func checkInDeps(store *mockCheckInStore, at time.Time) RecordCheckInDeps {
	return RecordCheckInDeps{
		ClassStore:   &mockCheckInClassStore{classes: map[string]schedule.Class{"k1": mondayClass}},
		CheckInStore: store,
		GenerateID:   func() string { return "ci-new" },
		Now:          func() time.Time { return at },
	}
}

// TestExecuteRecordCheckIn covers classification and every rejection path.
func TestExecuteRecordCheckIn(t *testing.T) {
	tests := []struct {
		name     string
		input    RecordCheckInInput
		at       time.Time
		wantErr  error
		wantDate string
		wantLate bool
	}{
		{
			name:     "on time, already Tuesday in UTC",
			input:    RecordCheckInInput{CoachID: "c1", ClassID: "k1"},
			at:       time.Date(2025, 3, 4, 0, 5, 0, 0, time.UTC), // Mon 16:05 PST
			wantDate: "2025-03-03",
		},
		{
			name:     "at the grace boundary is on time",
			input:    RecordCheckInInput{CoachID: "c1", ClassID: "k1"},
			at:       time.Date(2025, 3, 4, 0, 10, 0, 0, time.UTC),
			wantDate: "2025-03-03",
		},
		{
			name:     "after the grace period is late",
			input:    RecordCheckInInput{CoachID: "c1", ClassID: "k1"},
			at:       time.Date(2025, 3, 4, 0, 10, 1, 0, time.UTC),
			wantDate: "2025-03-03",
			wantLate: true,
		},
		{
			name:    "missing coach",
			input:   RecordCheckInInput{ClassID: "k1"},
			at:      time.Date(2025, 3, 4, 0, 5, 0, 0, time.UTC),
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown class",
			input:   RecordCheckInInput{CoachID: "c1", ClassID: "nope"},
			at:      time.Date(2025, 3, 4, 0, 5, 0, 0, time.UTC),
			wantErr: ErrClassNotFound,
		},
		{
			name:    "other coach",
			input:   RecordCheckInInput{CoachID: "c2", ClassID: "k1"},
			at:      time.Date(2025, 3, 4, 0, 5, 0, 0, time.UTC),
			wantErr: ErrCoachNotAssigned,
		},
		{
			name:    "wrong weekday",
			input:   RecordCheckInInput{CoachID: "c1", ClassID: "k1"},
			at:      time.Date(2025, 3, 5, 0, 5, 0, 0, time.UTC), // Tue 16:05 PST
			wantErr: ErrNotScheduledToday,
		},
		{
			name:    "after the term",
			input:   RecordCheckInInput{CoachID: "c1", ClassID: "k1"},
			at:      time.Date(2025, 7, 7, 23, 5, 0, 0, time.UTC), // Mon 16:05 PDT
			wantErr: ErrOutsideTerm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockCheckInStore{}
			got, err := ExecuteRecordCheckIn(context.Background(), tt.input, checkInDeps(store, tt.at))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if len(store.saved) != 0 {
					t.Errorf("saved %d check-ins on rejection", len(store.saved))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.CheckIn.SessionDate != tt.wantDate {
				t.Errorf("SessionDate = %s, want %s", got.CheckIn.SessionDate, tt.wantDate)
			}
			if got.Late != tt.wantLate {
				t.Errorf("Late = %v, want %v", got.Late, tt.wantLate)
			}
			if got.Existing {
				t.Error("first check-in reported as existing")
			}
			if len(store.saved) != 1 || store.saved[0].ID != "ci-new" {
				t.Errorf("saved = %+v", store.saved)
			}
		})
	}
}

// TestExecuteRecordCheckIn_Repeat verifies a second check-in for the same
// meeting returns the first and keeps its classification.
func TestExecuteRecordCheckIn_Repeat(t *testing.T) {
	store := &mockCheckInStore{}
	first := time.Date(2025, 3, 4, 0, 5, 0, 0, time.UTC)
	if _, err := ExecuteRecordCheckIn(context.Background(), RecordCheckInInput{CoachID: "c1", ClassID: "k1"}, checkInDeps(store, first)); err != nil {
		t.Fatalf("first check-in: %v", err)
	}

	again := first.Add(30 * time.Minute)
	got, err := ExecuteRecordCheckIn(context.Background(), RecordCheckInInput{CoachID: "c1", ClassID: "k1"}, checkInDeps(store, again))
	if err != nil {
		t.Fatalf("repeat check-in: %v", err)
	}
	if !got.Existing || got.Late {
		t.Errorf("repeat = %+v, want existing on-time check-in", got)
	}
	if !got.CheckIn.CheckedInAt.Equal(first) {
		t.Errorf("CheckedInAt = %v, want %v", got.CheckIn.CheckedInAt, first)
	}
	if len(store.saved) != 1 {
		t.Errorf("saved %d check-ins, want 1", len(store.saved))
	}
}

// TestExecuteRecordCheckIn_StoreErrors verifies store failures propagate.
func TestExecuteRecordCheckIn_StoreErrors(t *testing.T) {
	boom := errors.New("boom")
	at := time.Date(2025, 3, 4, 0, 5, 0, 0, time.UTC)

	deps := checkInDeps(&mockCheckInStore{}, at)
	deps.ClassStore = &mockCheckInClassStore{err: boom}
	if _, err := ExecuteRecordCheckIn(context.Background(), RecordCheckInInput{CoachID: "c1", ClassID: "k1"}, deps); !errors.Is(err, boom) {
		t.Errorf("class store error = %v, want boom", err)
	}

	deps = checkInDeps(&mockCheckInStore{saveErr: boom}, at)
	if _, err := ExecuteRecordCheckIn(context.Background(), RecordCheckInInput{CoachID: "c1", ClassID: "k1"}, deps); !errors.Is(err, boom) {
		t.Errorf("save error = %v, want boom", err)
	}
}
