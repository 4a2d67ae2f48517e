package profile

import (
	"context"

	domain "github.com/ftebtw/dsdc-sub000/internal/domain/profile"
)

// Store persists user profiles used for name resolution.
type Store interface {
	Save(ctx context.Context, value domain.Profile) error
	ListByIDs(ctx context.Context, ids []string) ([]domain.Profile, error)
}
