package projections

import (
	"context"
	"errors"
	"testing"

	attendanceStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/attendance"
	"github.com/ftebtw/dsdc-sub000/internal/domain/attendance"
	"github.com/ftebtw/dsdc-sub000/internal/domain/privatesession"
)

// TestQueryGetPayrollTotalHours verifies hours are re-derived from classes and sessions.
func TestQueryGetPayrollTotalHours(t *testing.T) {
	f := newPayrollFixture()
	got, err := QueryGetPayrollTotalHours(context.Background(), march2025, GetPayrollTotalHoursDeps{
		CheckInStore:        f.checkIns,
		PrivateSessionStore: f.sessions,
		ClassStore:          f.classes,
	})
	if err != nil {
		t.Fatalf("QueryGetPayrollTotalHours: %v", err)
	}
	// ci1, ci2, orphan-coach on k1 (3 x 1.5), ci3 on k3 (1.5), both private
	// sessions (2 x 1); the check-in on a missing class adds nothing.
	if got != 8 {
		t.Errorf("total hours = %v, want 8", got)
	}
	if f.checkIns.filter.CoachIDs != nil {
		t.Errorf("coach filter = %v, want nil", f.checkIns.filter.CoachIDs)
	}
	if f.coaches.tierCalls != 0 || f.people.calls != 0 {
		t.Error("total hours must not consult coach or profile stores")
	}
}

// TestQueryGetPayrollTotalHours_Error verifies store failures propagate.
func TestQueryGetPayrollTotalHours_Error(t *testing.T) {
	f := newPayrollFixture()
	f.checkIns.err = errors.New("timeout")
	_, err := QueryGetPayrollTotalHours(context.Background(), march2025, GetPayrollTotalHoursDeps{
		CheckInStore:        f.checkIns,
		PrivateSessionStore: f.sessions,
		ClassStore:          f.classes,
	})
	if !errors.Is(err, f.checkIns.err) {
		t.Errorf("err = %v, want wrapped timeout", err)
	}
}

// TestQueryGetPayrollTotalHours_IgnoresUncompleted verifies a session the store
// returns in a non-completed state is not counted.
func TestQueryGetPayrollTotalHours_IgnoresUncompleted(t *testing.T) {
	f := newPayrollFixture()
	f.sessions.rows = append(f.sessions.rows, privatesession.Session{
		ID: "p-cancelled", CoachID: "c1", StudentID: "s1", RequestedDate: "2025-03-07",
		StartTime: "10:00", EndTime: "12:00", Status: privatesession.StatusCancelled,
	})
	got, err := QueryGetPayrollTotalHours(context.Background(), march2025, GetPayrollTotalHoursDeps{
		CheckInStore:        f.checkIns,
		PrivateSessionStore: f.sessions,
		ClassStore:          f.classes,
	})
	if err != nil {
		t.Fatalf("QueryGetPayrollTotalHours: %v", err)
	}
	if got != 8 {
		t.Errorf("total hours = %v, want 8", got)
	}
}

type gatedCheckInStore struct {
	PayrollCheckInStore
	gate *rendezvous
}

func (g gatedCheckInStore) ListByDateRange(ctx context.Context, filter attendanceStore.RangeFilter) ([]attendance.CheckIn, error) {
	if err := g.gate.arrive(); err != nil {
		return nil, err
	}
	return g.PayrollCheckInStore.ListByDateRange(ctx, filter)
}

type gatedPrivateSessionStore struct {
	PayrollPrivateSessionStore
	gate *rendezvous
}

func (g gatedPrivateSessionStore) ListCompletedByDateRange(ctx context.Context, start, end string, coachIDs []string) ([]privatesession.Session, error) {
	if err := g.gate.arrive(); err != nil {
		return nil, err
	}
	return g.PayrollPrivateSessionStore.ListCompletedByDateRange(ctx, start, end, coachIDs)
}

// TestQueryGetPayrollTotalHours_LoadsConcurrently verifies check-ins and
// private sessions are fetched in parallel.
func TestQueryGetPayrollTotalHours_LoadsConcurrently(t *testing.T) {
	f := newPayrollFixture()
	gate := newRendezvous(2)
	got, err := QueryGetPayrollTotalHours(context.Background(), march2025, GetPayrollTotalHoursDeps{
		CheckInStore:        gatedCheckInStore{f.checkIns, gate},
		PrivateSessionStore: gatedPrivateSessionStore{f.sessions, gate},
		ClassStore:          f.classes,
	})
	if err != nil {
		t.Fatalf("QueryGetPayrollTotalHours: %v", err)
	}
	if got != 8 {
		t.Errorf("total hours = %v, want 8", got)
	}
}
