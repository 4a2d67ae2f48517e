package term

import (
	"context"
	"testing"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/storage/storagetest"
	domain "github.com/ftebtw/dsdc-sub000/internal/domain/term"
)

// TestSQLStore_ListOverlapping verifies inclusive overlap on both edges.
func TestSQLStore_ListOverlapping(t *testing.T) {
	s := NewSQLStore(storagetest.Open(t))
	ctx := context.Background()
	for _, tm := range []domain.Term{
		{ID: "t2", Name: "Spring 2025", StartDate: "2025-04-07", EndDate: "2025-06-20"},
		{ID: "t1", Name: "Winter 2025", StartDate: "2025-01-06", EndDate: "2025-03-28"},
	} {
		if err := s.Save(ctx, tm); err != nil {
			t.Fatalf("Save(%s): %v", tm.ID, err)
		}
	}

	all, err := s.List(ctx)
	if err != nil || len(all) != 2 || all[0].ID != "t1" {
		t.Fatalf("List() = %+v, %v", all, err)
	}

	tests := []struct {
		from, to string
		want     []string
	}{
		{"2025-03-24", "2025-03-30", []string{"t1"}},
		{"2025-03-28", "2025-04-07", []string{"t1", "t2"}},
		{"2025-03-29", "2025-04-06", nil},
	}
	for _, tt := range tests {
		got, err := s.ListOverlapping(ctx, tt.from, tt.to)
		if err != nil {
			t.Fatalf("ListOverlapping: %v", err)
		}
		if len(got) != len(tt.want) {
			t.Errorf("ListOverlapping(%s, %s) = %d terms, want %d", tt.from, tt.to, len(got), len(tt.want))
			continue
		}
		for i := range got {
			if got[i].ID != tt.want[i] {
				t.Errorf("ListOverlapping(%s, %s)[%d] = %s, want %s", tt.from, tt.to, i, got[i].ID, tt.want[i])
			}
		}
	}
}
