package attendance

import (
	"context"

	"github.com/ftebtw/dsdc-sub000/internal/application/listutil"
	domain "github.com/ftebtw/dsdc-sub000/internal/domain/attendance"
)

// Store persists coach check-ins.
type Store interface {
	Save(ctx context.Context, value domain.CheckIn) error
	FindByCoachClassDate(ctx context.Context, coachID, classID, sessionDate string) (listutil.Optional[domain.CheckIn], error)
	ListByDateRange(ctx context.Context, filter RangeFilter) ([]domain.CheckIn, error)
}

// RangeFilter selects check-ins by inclusive session date. A nil CoachIDs
// matches every coach; an empty non-nil slice matches none.
type RangeFilter struct {
	Start    string
	End      string
	CoachIDs []string
}
