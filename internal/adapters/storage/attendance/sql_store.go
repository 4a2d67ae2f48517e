package attendance

import (
	"context"
	"fmt"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/storage"
	"github.com/ftebtw/dsdc-sub000/internal/application/listutil"
	domain "github.com/ftebtw/dsdc-sub000/internal/domain/attendance"
)

const checkInColumns = "id, coach_id, class_id, session_date, checked_in_at"

// SQLStore implements Store on any database/sql connection.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new check-in store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// Save inserts a check-in. Check-ins are immutable once written; callers
// that want one row per class meeting check FindByCoachClassDate first.
// PRE: entity has been validated
func (s *SQLStore) Save(ctx context.Context, c domain.CheckIn) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO check_in ("+checkInColumns+") VALUES (?, ?, ?, ?, ?)",
		c.ID, c.CoachID, c.ClassID, c.SessionDate, storage.FormatInstant(c.CheckedInAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save check-in: %w", err)
	}
	return nil
}

// FindByCoachClassDate returns the check-in for one class meeting, if any.
func (s *SQLStore) FindByCoachClassDate(ctx context.Context, coachID, classID, sessionDate string) (listutil.Optional[domain.CheckIn], error) {
	rows, err := s.query(ctx,
		"SELECT "+checkInColumns+" FROM check_in WHERE coach_id = ? AND class_id = ? AND session_date = ?",
		coachID, classID, sessionDate)
	if err != nil {
		return listutil.None[domain.CheckIn](), err
	}
	return listutil.FromRows(rows), nil
}

// ListByDateRange returns check-ins with Start <= session_date <= End.
// PRE: Start and End are YYYY-MM-DD
// POST: rows are ordered by session date then check-in time
func (s *SQLStore) ListByDateRange(ctx context.Context, filter RangeFilter) ([]domain.CheckIn, error) {
	query := "SELECT " + checkInColumns + " FROM check_in WHERE session_date >= ? AND session_date <= ?"
	args := []any{filter.Start, filter.End}
	if filter.CoachIDs != nil {
		if len(filter.CoachIDs) == 0 {
			return nil, nil
		}
		query += " AND coach_id IN (" + storage.Placeholders(len(filter.CoachIDs)) + ")"
		args = append(args, storage.Args(filter.CoachIDs)...)
	}
	return s.query(ctx, query+" ORDER BY session_date, checked_in_at", args...)
}

func (s *SQLStore) query(ctx context.Context, query string, args ...any) ([]domain.CheckIn, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query check-ins: %w", err)
	}
	defer rows.Close()

	var results []domain.CheckIn
	for rows.Next() {
		var c domain.CheckIn
		var checkedIn string
		if err := rows.Scan(&c.ID, &c.CoachID, &c.ClassID, &c.SessionDate, &checkedIn); err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		if c.CheckedInAt, err = storage.ParseInstant(checkedIn); err != nil {
			return nil, fmt.Errorf("failed to parse checked_in_at for %s: %w", c.ID, err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}
