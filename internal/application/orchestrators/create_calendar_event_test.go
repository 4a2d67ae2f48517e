package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ftebtw/dsdc-sub000/internal/domain/calendar"
)

type mockEventStore struct {
	saved []calendar.Event
	err   error
}

func (m *mockEventStore) Save(_ context.Context, e calendar.Event) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, e)
	return nil
}

func TestExecuteCreateCalendarEvent(t *testing.T) {
	at := time.Date(2025, 2, 1, 12, 0, 0, 0, time.FixedZone("PST", -8*3600))
	valid := CreateCalendarEventInput{Title: "  Spring Showcase ", Type: calendar.TypeEvent, StartDate: "2025-04-12", CreatedBy: "admin1"}

	tests := []struct {
		name    string
		mutate  func(*CreateCalendarEventInput)
		wantErr error
		check   func(*testing.T, calendar.Event)
	}{
		{
			name: "single day",
			check: func(t *testing.T, e calendar.Event) {
				if e.ID != "ev1" || e.Title != "Spring Showcase" || e.EndDate != "" {
					t.Errorf("event = %+v", e)
				}
				if !e.CreatedAt.Equal(at) || e.CreatedAt.Location() != time.UTC {
					t.Errorf("CreatedAt = %v, want %v in UTC", e.CreatedAt, at)
				}
			},
		},
		{
			name:   "same-day end collapses",
			mutate: func(in *CreateCalendarEventInput) { in.EndDate = in.StartDate },
			check: func(t *testing.T, e calendar.Event) {
				if e.EndDate != "" {
					t.Errorf("EndDate = %q, want empty", e.EndDate)
				}
			},
		},
		{
			name:   "multi-day closure",
			mutate: func(in *CreateCalendarEventInput) { in.Type = calendar.TypeClosure; in.EndDate = "2025-04-20" },
			check: func(t *testing.T, e calendar.Event) {
				if !e.IsMultiDay() {
					t.Errorf("event = %+v, want multi-day", e)
				}
			},
		},
		{name: "blank title", mutate: func(in *CreateCalendarEventInput) { in.Title = "   " }, wantErr: ErrInvalidInput},
		{name: "unknown type", mutate: func(in *CreateCalendarEventInput) { in.Type = "party" }, wantErr: ErrInvalidInput},
		{name: "bad date", mutate: func(in *CreateCalendarEventInput) { in.StartDate = "2025-13-01" }, wantErr: ErrInvalidInput},
		{name: "end before start", mutate: func(in *CreateCalendarEventInput) { in.EndDate = "2025-04-01" }, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			if tt.mutate != nil {
				tt.mutate(&input)
			}
			store := &mockEventStore{}
			got, err := ExecuteCreateCalendarEvent(context.Background(), input, CreateCalendarEventDeps{
				EventStore: store,
				GenerateID: func() string { return "ev1" },
				Now:        func() time.Time { return at },
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if len(store.saved) != 0 {
					t.Error("event saved despite error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(store.saved) != 1 {
				t.Fatalf("saved %d events, want 1", len(store.saved))
			}
			tt.check(t, got)
		})
	}
}

func TestExecuteCreateCalendarEvent_StoreError(t *testing.T) {
	_, err := ExecuteCreateCalendarEvent(context.Background(),
		CreateCalendarEventInput{Title: "Regionals", Type: calendar.TypeTournament, StartDate: "2025-05-03"},
		CreateCalendarEventDeps{EventStore: &mockEventStore{err: errBoom}})
	if !errors.Is(err, errBoom) {
		t.Errorf("err = %v, want boom", err)
	}
}
