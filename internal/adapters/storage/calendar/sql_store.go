package calendar

import (
	"context"
	"fmt"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/storage"
	domain "github.com/ftebtw/dsdc-sub000/internal/domain/calendar"
)

const eventColumns = "id, title, type, description, location, start_date, end_date, created_by, created_at"

// SQLStore implements Store on any database/sql connection.
type SQLStore struct {
	db storage.SQLDB
}

// NewSQLStore creates a new calendar event store.
func NewSQLStore(db storage.SQLDB) *SQLStore {
	return &SQLStore{db: db}
}

// Save persists an event (insert or update).
// PRE: e has been validated
func (s *SQLStore) Save(ctx context.Context, e domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO calendar_event ("+eventColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) "+
			"ON CONFLICT(id) DO UPDATE SET title=excluded.title, type=excluded.type, description=excluded.description, "+
			"location=excluded.location, start_date=excluded.start_date, end_date=excluded.end_date",
		e.ID, e.Title, e.Type, e.Description, e.Location, e.StartDate, e.EndDate, e.CreatedBy, storage.FormatInstant(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save calendar event: %w", err)
	}
	return nil
}

// ListByDateRange returns events with any day inside [from, to].
// Single-day events store an empty end date.
// POST: rows are ordered by start date then title
func (s *SQLStore) ListByDateRange(ctx context.Context, from, to string) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+eventColumns+" FROM calendar_event WHERE start_date <= ? AND "+
			"(end_date >= ? OR (end_date = '' AND start_date >= ?)) ORDER BY start_date, title",
		to, from, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar events: %w", err)
	}
	defer rows.Close()

	var results []domain.Event
	for rows.Next() {
		var e domain.Event
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Title, &e.Type, &e.Description, &e.Location, &e.StartDate, &e.EndDate, &e.CreatedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan calendar event: %w", err)
		}
		if e.CreatedAt, err = storage.ParseInstant(createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at for %s: %w", e.ID, err)
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

// Delete removes an event.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM calendar_event WHERE id = ?", id)
	return err
}
