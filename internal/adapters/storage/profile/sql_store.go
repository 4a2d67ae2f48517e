package profile

import (
	"context"
	"fmt"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/storage"
	domain "github.com/ftebtw/dsdc-sub000/internal/domain/profile"
)

// SQLStore implements Store on any database/sql connection.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new profile store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// Save persists a profile (insert or update).
// PRE: entity has been validated
func (s *SQLStore) Save(ctx context.Context, p domain.Profile) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO profile (id, display_name, email, role, timezone) VALUES (?, ?, ?, ?, ?) "+
			"ON CONFLICT(id) DO UPDATE SET display_name=excluded.display_name, email=excluded.email, role=excluded.role, timezone=excluded.timezone",
		p.ID, p.DisplayName, p.Email, p.Role, p.Timezone,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// ListByIDs returns the profiles among ids that exist.
// POST: an empty ids slice returns no rows without querying
func (s *SQLStore) ListByIDs(ctx context.Context, ids []string) ([]domain.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, display_name, email, role, timezone FROM profile WHERE id IN ("+storage.Placeholders(len(ids))+") ORDER BY id",
		storage.Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var results []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.Email, &p.Role, &p.Timezone); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}
