package storage

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUndefinedTable is the SQLSTATE Postgres raises for a missing relation.
const pgUndefinedTable = "42P01"

// IsUndefinedTable reports whether err means the queried table does not exist.
func IsUndefinedTable(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}
	return strings.Contains(err.Error(), "no such table")
}

// FormatInstant renders an instant for a TEXT column.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseInstant reads an instant written by FormatInstant.
func ParseInstant(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
