package privatesession

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/storage"
	domain "github.com/ftebtw/dsdc-sub000/internal/domain/privatesession"
)

const sessionColumns = "id, coach_id, student_id, requested_date, start_time, end_time, timezone, status, price, completed_at"

// SQLStore implements Store on any database/sql connection.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new private session store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// Save persists a session (insert or update).
// PRE: entity has been validated
func (s *SQLStore) Save(ctx context.Context, v domain.Session) error {
	var price, completedAt any
	if v.Price != nil {
		price = *v.Price
	}
	if v.CompletedAt != nil {
		completedAt = storage.FormatInstant(*v.CompletedAt)
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO private_session ("+sessionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?) "+
			"ON CONFLICT(id) DO UPDATE SET coach_id=excluded.coach_id, student_id=excluded.student_id, "+
			"requested_date=excluded.requested_date, start_time=excluded.start_time, end_time=excluded.end_time, "+
			"timezone=excluded.timezone, status=excluded.status, price=excluded.price, completed_at=excluded.completed_at",
		v.ID, v.CoachID, v.StudentID, v.RequestedDate, v.StartTime, v.EndTime, v.Timezone, v.Status, price, completedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save private session: %w", err)
	}
	return nil
}

// ListCompletedByDateRange returns completed sessions whose requested date
// lies in [start, end]. A nil coachIDs matches every coach; an empty
// non-nil slice matches none.
// POST: rows are ordered by requested date then start time
func (s *SQLStore) ListCompletedByDateRange(ctx context.Context, start, end string, coachIDs []string) ([]domain.Session, error) {
	query := "SELECT " + sessionColumns + " FROM private_session WHERE status = ? AND requested_date >= ? AND requested_date <= ?"
	args := []any{domain.StatusCompleted, start, end}
	if coachIDs != nil {
		if len(coachIDs) == 0 {
			return nil, nil
		}
		query += " AND coach_id IN (" + storage.Placeholders(len(coachIDs)) + ")"
		args = append(args, storage.Args(coachIDs)...)
	}
	rows, err := s.db.QueryContext(ctx, query+" ORDER BY requested_date, start_time", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query private sessions: %w", err)
	}
	defer rows.Close()

	var results []domain.Session
	for rows.Next() {
		var v domain.Session
		var price sql.NullFloat64
		var completedAt sql.NullString
		if err := rows.Scan(&v.ID, &v.CoachID, &v.StudentID, &v.RequestedDate, &v.StartTime, &v.EndTime, &v.Timezone, &v.Status, &price, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan private session: %w", err)
		}
		if price.Valid {
			p := price.Float64
			v.Price = &p
		}
		if completedAt.Valid && completedAt.String != "" {
			at, err := storage.ParseInstant(completedAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse completed_at for %s: %w", v.ID, err)
			}
			v.CompletedAt = &at
		}
		results = append(results, v)
	}
	return results, rows.Err()
}
