package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "plearn.db")

		db, err := InitDB(path)
		require.NoError(t, err)
		defer func() { require.NoError(t, db.Close()) }()

		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='tasks'").Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, "tasks", name)
	})

	t.Run("Success - Reopen is a no-op migration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plearn.db")

		db, err := InitDB(path)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db, err = InitDB(path)
		require.NoError(t, err)
		require.NoError(t, db.Close())
	})
}
