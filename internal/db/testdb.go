package db

import (
	"database/sql"
	"path/filepath"
	"testing"
)

// NewTestDB returns an in-memory database with the schema applied, closed
// when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openForTest(t, ":memory:")
}

// NewTestFileDB is like NewTestDB but backed by a file in t.TempDir, for
// tests that reopen the same database.
func NewTestFileDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "najdeno.sqlite3")
	return openForTest(t, path), path
}

func openForTest(t *testing.T, path string) *sql.DB {
	t.Helper()

	db, err := OpenWithSchema(path)
	if err != nil {
		t.Fatalf("opening test database %s: %v", path, err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}
