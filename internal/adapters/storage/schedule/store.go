package schedule

import (
	"context"

	"github.com/ftebtw/dsdc-sub000/internal/application/listutil"
	domain "github.com/ftebtw/dsdc-sub000/internal/domain/schedule"
)

// Store persists recurring class definitions.
type Store interface {
	FindByID(ctx context.Context, id string) (listutil.Optional[domain.Class], error)
	Save(ctx context.Context, value domain.Class) error
	List(ctx context.Context, filter ListFilter) ([]domain.Class, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Class, error)
}

// ListFilter narrows List. Empty fields match everything.
type ListFilter struct {
	ClassType string
	CoachID   string
}
