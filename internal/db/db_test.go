package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTesting(t *testing.T) {
	database, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, database.Close()) })

	assert.NoError(t, database.Ping())

	var tableName string
	err = database.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&tableName)
	require.NoError(t, err)
	assert.Equal(t, "kv", tableName)
}

func TestOpenAppliesMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "taptote.db")

	database, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, database.Close()) })

	_, err = database.Exec(`INSERT INTO kv (key, value) VALUES ('tote:x', '{}')`)
	assert.NoError(t, err)
}

func TestOpenIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "taptote.db")

	database, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	// A second open against the same file finds the schema already applied.
	database, err = Open(dbPath)
	require.NoError(t, err)
	assert.NoError(t, database.Close())
}
