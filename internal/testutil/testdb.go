package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sayanitariq-techno/Tariq/internal/db"
)

// NewTestDB opens a migrated in-memory schedule database that is closed
// when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, db.MemoryPath)
}

// NewTestDBFile opens a migrated database file under t.TempDir and returns
// its path so a test can reopen it.
func NewTestDBFile(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tariq.db")
	return openTestDB(t, path), path
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("open test database %s: %v", path, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}

// CountRows returns the number of rows in one of the schedule tables.
func CountRows(t *testing.T, conn db.DBTX, table string) int {
	t.Helper()
	switch table {
	case "packages", "activities", "hold_events":
	default:
		t.Fatalf("CountRows: unknown table %q", table)
	}
	var n int
	if err := conn.QueryRowContext(t.Context(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
