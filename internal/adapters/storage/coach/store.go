package coach

import (
	"context"

	domain "github.com/ftebtw/dsdc-sub000/internal/domain/coach"
)

// Store persists coach payroll profiles and tier assignments.
type Store interface {
	SaveProfile(ctx context.Context, value domain.Profile) error
	ListProfiles(ctx context.Context, coachID string) ([]domain.Profile, error)
	SaveTierAssignment(ctx context.Context, value domain.TierAssignment) error
	ListTierAssignments(ctx context.Context, coachIDs []string) ([]domain.TierAssignment, error)
}
