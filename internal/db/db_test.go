package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tariq.db")

	conn, err := OpenDB(path)
	require.NoError(t, err)
	_, err = conn.Exec(seedPackage)
	require.NoError(t, err)

	var mode string
	require.NoError(t, conn.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
	var fk, busy int
	require.NoError(t, conn.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	require.NoError(t, conn.QueryRow(`PRAGMA busy_timeout`).Scan(&busy))
	assert.Equal(t, 1, fk)
	assert.Equal(t, 5000, busy)
	assert.Equal(t, 1, conn.Stats().MaxOpenConnections)
	require.NoError(t, conn.Close())

	reopened, err := OpenDB(path)
	require.NoError(t, err)
	defer reopened.Close()
	var n int
	require.NoError(t, reopened.QueryRow(`SELECT COUNT(*) FROM packages`).Scan(&n))
	assert.Equal(t, 1, n, "migrations re-run without touching data")
}
