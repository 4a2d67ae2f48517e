package coach

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/storage"
	domain "github.com/ftebtw/dsdc-sub000/internal/domain/coach"
)

// SQLStore implements Store on any database/sql connection.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new coach store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// SaveProfile persists a coach profile (insert or update).
// PRE: entity has been validated
func (s *SQLStore) SaveProfile(ctx context.Context, p domain.Profile) error {
	var rate any
	if p.HourlyRate != nil {
		rate = *p.HourlyRate
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO coach_profile (coach_id, hourly_rate, is_ta, legacy_tier) VALUES (?, ?, ?, ?) "+
			"ON CONFLICT(coach_id) DO UPDATE SET hourly_rate=excluded.hourly_rate, is_ta=excluded.is_ta, legacy_tier=excluded.legacy_tier",
		p.CoachID, rate, p.IsTA, p.LegacyTier,
	)
	if err != nil {
		return fmt.Errorf("failed to save coach profile: %w", err)
	}
	return nil
}

// ListProfiles returns every coach profile, or only coachID's when set.
// POST: rows are ordered by coach ID
func (s *SQLStore) ListProfiles(ctx context.Context, coachID string) ([]domain.Profile, error) {
	query := "SELECT coach_id, hourly_rate, is_ta, legacy_tier FROM coach_profile"
	var args []any
	if coachID != "" {
		query += " WHERE coach_id = ?"
		args = append(args, coachID)
	}
	rows, err := s.db.QueryContext(ctx, query+" ORDER BY coach_id", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query coach profiles: %w", err)
	}
	defer rows.Close()

	var results []domain.Profile
	for rows.Next() {
		var p domain.Profile
		var rate sql.NullFloat64
		if err := rows.Scan(&p.CoachID, &rate, &p.IsTA, &p.LegacyTier); err != nil {
			return nil, fmt.Errorf("failed to scan coach profile: %w", err)
		}
		if rate.Valid {
			r := rate.Float64
			p.HourlyRate = &r
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// SaveTierAssignment records that a coach holds a tier.
// PRE: entity has been validated
// POST: assigning the same tier twice is a no-op
func (s *SQLStore) SaveTierAssignment(ctx context.Context, a domain.TierAssignment) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO coach_tier_assignment (coach_id, tier) VALUES (?, ?) ON CONFLICT(coach_id, tier) DO NOTHING",
		a.CoachID, a.Tier,
	)
	if err != nil {
		return fmt.Errorf("failed to save tier assignment: %w", err)
	}
	return nil
}

// ListTierAssignments returns tier rows for the given coaches.
// Databases that predate the assignment table return no rows instead of an
// error; coaches then fall back to their legacy tier.
// POST: an empty coachIDs returns no rows without querying
func (s *SQLStore) ListTierAssignments(ctx context.Context, coachIDs []string) ([]domain.TierAssignment, error) {
	if len(coachIDs) == 0 {
		return nil, nil
	}
	query := "SELECT coach_id, tier FROM coach_tier_assignment WHERE coach_id IN (" + storage.Placeholders(len(coachIDs)) + ") ORDER BY coach_id, tier"
	rows, err := s.db.QueryContext(ctx, query, storage.Args(coachIDs)...)
	if err != nil {
		if storage.IsUndefinedTable(err) {
			slog.Warn("tier_table_missing", "error", err)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query tier assignments: %w", err)
	}
	defer rows.Close()

	var results []domain.TierAssignment
	for rows.Next() {
		var a domain.TierAssignment
		if err := rows.Scan(&a.CoachID, &a.Tier); err != nil {
			return nil, fmt.Errorf("failed to scan tier assignment: %w", err)
		}
		results = append(results, a)
	}
	return results, rows.Err()
}
