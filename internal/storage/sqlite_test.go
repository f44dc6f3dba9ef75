package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// createTestStorage opens a migrated store on a temp-dir database.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)

	// A second run over an up-to-date database applies nothing and ends at
	// the expected version.
	require.NoError(t, store.Migrate(context.Background()))

	var version int
	err := store.db.QueryRow("PRAGMA user_version").Scan(&version)
	require.NoError(t, err)
	require.Equal(t, ExpectedSchemaVersion, version)
}

func TestNewSQLiteStorageRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage("  ")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrEmptyString)
}

func TestNewSQLiteStorageCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
