package history

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inzamam-khan123/tbres/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateHistory_NoneBackend(t *testing.T) {
	err := MigrateHistory(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateHistory_SQLite(t *testing.T) {
	// Create a temporary database file for testing
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_migration.db")

	// Run migration to latest version
	err := MigrateHistory(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)

	// Verify migration was successful by checking the database file exists
	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	// Run migration again (should be a no-op)
	err = MigrateHistory(schema.SQLiteBackend, dbPath, -1)
	assert.NoError(t, err)

	// Run migration to a specific version (version 1)
	err = MigrateHistory(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err)

	// Rollback to version 0
	err = MigrateHistory(schema.SQLiteBackend, dbPath, 0)
	assert.NoError(t, err)

	// Migrate back up to version 2
	err = MigrateHistory(schema.SQLiteBackend, dbPath, 2)
	assert.NoError(t, err)
}

func TestMigrateHistory_SQLiteInMemory(t *testing.T) {
	// Test with in-memory database
	err := MigrateHistory(schema.SQLiteBackend, ":memory:", -1)
	require.NoError(t, err)
}

func TestClearHistory(t *testing.T) {
	t.Run("sqlite removes file", func(t *testing.T) {
		tmpDir := t.TempDir()
		dbPath := filepath.Join(tmpDir, "history.db")
		require.NoError(t, os.WriteFile(dbPath, []byte("stub"), 0o600))

		require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
		_, err := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("sqlite missing file is fine", func(t *testing.T) {
		tmpDir := t.TempDir()
		assert.NoError(t, ClearHistory(schema.SQLiteBackend, filepath.Join(tmpDir, "missing.db"), ""))
	})

	t.Run("sqlite empty path errors", func(t *testing.T) {
		assert.Error(t, ClearHistory(schema.SQLiteBackend, "", ""))
	})

	t.Run("none is a no-op", func(t *testing.T) {
		assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
	})
}
