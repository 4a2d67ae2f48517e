package privatesession

import (
	"context"
	"testing"
	"time"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/storage/storagetest"
	domain "github.com/ftebtw/dsdc-sub000/internal/domain/privatesession"
)

func ptr[T any](v T) *T { return &v }

// TestSQLStore_ListCompletedByDateRange verifies status, range and coach filtering.
func TestSQLStore_ListCompletedByDateRange(t *testing.T) {
	s := NewSQLStore(storagetest.Open(t))
	ctx := context.Background()
	done := time.Date(2025, 3, 5, 2, 0, 0, 0, time.UTC)
	sessions := []domain.Session{
		{ID: "p1", CoachID: "c1", StudentID: "s1", RequestedDate: "2025-03-04", StartTime: "17:00", EndTime: "18:00", Timezone: "America/Vancouver", Status: domain.StatusCompleted, Price: ptr(80.0), CompletedAt: &done},
		{ID: "p2", CoachID: "c1", StudentID: "s2", RequestedDate: "2025-03-10", StartTime: "17:00", EndTime: "18:30", Timezone: "America/Vancouver", Status: domain.StatusConfirmed},
		{ID: "p3", CoachID: "c2", StudentID: "s1", RequestedDate: "2025-03-31", StartTime: "09:00", EndTime: "10:00", Timezone: "Asia/Shanghai", Status: domain.StatusCompleted},
		{ID: "p4", CoachID: "c2", StudentID: "s3", RequestedDate: "2025-04-01", StartTime: "09:00", EndTime: "10:00", Status: domain.StatusCompleted},
	}
	for _, v := range sessions {
		if err := s.Save(ctx, v); err != nil {
			t.Fatalf("Save(%s): %v", v.ID, err)
		}
	}

	got, err := s.ListCompletedByDateRange(ctx, "2025-03-01", "2025-03-31", nil)
	if err != nil {
		t.Fatalf("ListCompletedByDateRange: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p3" {
		t.Fatalf("got %+v, want p1 and p3", got)
	}
	if got[0].Price == nil || *got[0].Price != 80 {
		t.Errorf("p1 price = %v, want 80", got[0].Price)
	}
	if got[0].CompletedAt == nil || !got[0].CompletedAt.Equal(done) {
		t.Errorf("p1 completed_at = %v, want %v", got[0].CompletedAt, done)
	}
	if got[1].Price != nil || got[1].CompletedAt != nil {
		t.Errorf("p3 should carry no price or completion stamp: %+v", got[1])
	}

	byCoach, err := s.ListCompletedByDateRange(ctx, "2025-01-01", "2025-12-31", []string{"c2"})
	if err != nil {
		t.Fatalf("ListCompletedByDateRange(c2): %v", err)
	}
	if len(byCoach) != 2 {
		t.Errorf("coach c2 rows = %d, want 2", len(byCoach))
	}

	none, err := s.ListCompletedByDateRange(ctx, "2025-01-01", "2025-12-31", []string{})
	if err != nil || len(none) != 0 {
		t.Errorf("empty coach filter = %v, %v", none, err)
	}
}
