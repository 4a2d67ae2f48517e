package schedule

import (
	"context"
	"fmt"
	"strings"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/storage"
	"github.com/ftebtw/dsdc-sub000/internal/application/listutil"
	domain "github.com/ftebtw/dsdc-sub000/internal/domain/schedule"
)

const classColumns = "id, name, class_type, coach_id, day, start_time, end_time, timezone, term_start, term_end"

// SQLStore implements Store on any database/sql connection.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new class store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// FindByID looks a class up by ID.
// PRE: id is non-empty
// POST: returns an empty Optional when no row matches
func (s *SQLStore) FindByID(ctx context.Context, id string) (listutil.Optional[domain.Class], error) {
	rows, err := s.queryClasses(ctx, "SELECT "+classColumns+" FROM class WHERE id = ?", id)
	if err != nil {
		return listutil.None[domain.Class](), err
	}
	return listutil.FromRows(rows), nil
}

// Save persists a class (insert or update).
// PRE: entity has been validated
func (s *SQLStore) Save(ctx context.Context, c domain.Class) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO class ("+classColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) "+
			"ON CONFLICT(id) DO UPDATE SET name=excluded.name, class_type=excluded.class_type, coach_id=excluded.coach_id, "+
			"day=excluded.day, start_time=excluded.start_time, end_time=excluded.end_time, timezone=excluded.timezone, "+
			"term_start=excluded.term_start, term_end=excluded.term_end",
		c.ID, c.Name, c.ClassType, c.CoachID, c.Day, c.StartTime, c.EndTime, c.Timezone, c.TermStart, c.TermEnd,
	)
	if err != nil {
		return fmt.Errorf("failed to save class: %w", err)
	}
	return nil
}

// List returns classes matching the filter ordered by day and start time.
func (s *SQLStore) List(ctx context.Context, filter ListFilter) ([]domain.Class, error) {
	var where []string
	var args []any
	if filter.ClassType != "" {
		where = append(where, "class_type = ?")
		args = append(args, filter.ClassType)
	}
	if filter.CoachID != "" {
		where = append(where, "coach_id = ?")
		args = append(args, filter.CoachID)
	}
	query := "SELECT " + classColumns + " FROM class"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	return s.queryClasses(ctx, query+" ORDER BY day, start_time, id", args...)
}

// ListByIDs returns the classes among ids that exist.
// POST: an empty ids slice returns no rows without querying
func (s *SQLStore) ListByIDs(ctx context.Context, ids []string) ([]domain.Class, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := "SELECT " + classColumns + " FROM class WHERE id IN (" + storage.Placeholders(len(ids)) + ")"
	return s.queryClasses(ctx, query, storage.Args(ids)...)
}

func (s *SQLStore) queryClasses(ctx context.Context, query string, args ...any) ([]domain.Class, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query classes: %w", err)
	}
	defer rows.Close()

	var results []domain.Class
	for rows.Next() {
		var c domain.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.ClassType, &c.CoachID, &c.Day, &c.StartTime, &c.EndTime, &c.Timezone, &c.TermStart, &c.TermEnd); err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}
