package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/storage/storagetest"
	domain "github.com/ftebtw/dsdc-sub000/internal/domain/calendar"
)

// TestSQLStore_ListByDateRange verifies single- and multi-day overlap.
func TestSQLStore_ListByDateRange(t *testing.T) {
	s := NewSQLStore(storagetest.Open(t))
	ctx := context.Background()
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, e := range []domain.Event{
		{ID: "e1", Title: "Provincial Tournament", Type: domain.TypeTournament, StartDate: "2025-02-27", EndDate: "2025-03-02", CreatedAt: created},
		{ID: "e2", Title: "Showcase", Type: domain.TypeEvent, StartDate: "2025-03-15", CreatedAt: created},
		{ID: "e3", Title: "Spring Break", Type: domain.TypeClosure, StartDate: "2025-03-17", EndDate: "2025-03-28", CreatedAt: created},
		{ID: "e4", Title: "Old Event", Type: domain.TypeEvent, StartDate: "2025-02-01", CreatedAt: created},
	} {
		if err := s.Save(ctx, e); err != nil {
			t.Fatalf("Save(%s): %v", e.ID, err)
		}
	}

	tests := []struct {
		name     string
		from, to string
		want     []string
	}{
		{"multi-day spanning window start", "2025-03-01", "2025-03-07", []string{"e1"}},
		{"single-day inside", "2025-03-10", "2025-03-16", []string{"e2"}},
		{"closure overlapping end", "2025-03-15", "2025-03-17", []string{"e2", "e3"}},
		{"nothing", "2025-04-01", "2025-04-30", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListByDateRange(ctx, tt.from, tt.to)
			if err != nil {
				t.Fatalf("ListByDateRange: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d events, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("event %d = %s, want %s", i, got[i].ID, tt.want[i])
				}
				if !got[i].CreatedAt.Equal(created) {
					t.Errorf("created_at = %v, want %v", got[i].CreatedAt, created)
				}
			}
		})
	}

	if err := s.Delete(ctx, "e2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := s.ListByDateRange(ctx, "2025-03-15", "2025-03-15"); len(got) != 0 {
		t.Errorf("after delete got %d events, want 0", len(got))
	}
}
