package term

import (
	"context"

	domain "github.com/ftebtw/dsdc-sub000/internal/domain/term"
)

// Store persists Term state.
type Store interface {
	Save(ctx context.Context, value domain.Term) error
	List(ctx context.Context) ([]domain.Term, error)
	ListOverlapping(ctx context.Context, from, to string) ([]domain.Term, error)
}
