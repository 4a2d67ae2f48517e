package calendar

import (
	"context"

	domain "github.com/ftebtw/dsdc-sub000/internal/domain/calendar"
)

// Store persists club calendar events.
type Store interface {
	Save(ctx context.Context, e domain.Event) error
	ListByDateRange(ctx context.Context, from, to string) ([]domain.Event, error)
	Delete(ctx context.Context, id string) error
}
