package privatesession

import (
	"context"

	domain "github.com/ftebtw/dsdc-sub000/internal/domain/privatesession"
)

// Store persists private coaching sessions.
type Store interface {
	Save(ctx context.Context, value domain.Session) error
	ListCompletedByDateRange(ctx context.Context, start, end string, coachIDs []string) ([]domain.Session, error)
}
