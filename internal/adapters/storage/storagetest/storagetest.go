// Package storagetest opens schema-initialized databases for store tests.
package storagetest

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/storage"
)

// Open returns an in-memory SQLite database with the full schema applied.
// The database is closed when the test ends.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// :memory: is per connection
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(context.Background(), db, storage.DialectSQLite); err != nil {
		t.Fatalf("init test db: %v", err)
	}
	return db
}
