package term

import (
	"context"
	"fmt"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/storage"
	domain "github.com/ftebtw/dsdc-sub000/internal/domain/term"
)

// SQLStore implements Store on any database/sql connection.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new term store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// Save persists a Term (insert or update).
// PRE: entity has been validated
func (s *SQLStore) Save(ctx context.Context, t domain.Term) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO term (id, name, start_date, end_date) VALUES (?, ?, ?, ?) "+
			"ON CONFLICT(id) DO UPDATE SET name=excluded.name, start_date=excluded.start_date, end_date=excluded.end_date",
		t.ID, t.Name, t.StartDate, t.EndDate,
	)
	if err != nil {
		return fmt.Errorf("failed to save term: %w", err)
	}
	return nil
}

// List returns all terms ordered by start date.
func (s *SQLStore) List(ctx context.Context) ([]domain.Term, error) {
	return s.query(ctx, "SELECT id, name, start_date, end_date FROM term ORDER BY start_date")
}

// ListOverlapping returns terms sharing at least one day with [from, to].
func (s *SQLStore) ListOverlapping(ctx context.Context, from, to string) ([]domain.Term, error) {
	return s.query(ctx, "SELECT id, name, start_date, end_date FROM term WHERE start_date <= ? AND end_date >= ? ORDER BY start_date", to, from)
}

func (s *SQLStore) query(ctx context.Context, query string, args ...any) ([]domain.Term, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query terms: %w", err)
	}
	defer rows.Close()

	var results []domain.Term
	for rows.Next() {
		var t domain.Term
		if err := rows.Scan(&t.ID, &t.Name, &t.StartDate, &t.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan term: %w", err)
		}
		results = append(results, t)
	}
	return results, rows.Err()
}
