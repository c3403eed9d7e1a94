package settingsstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/breedy/internal/database"
	"github.com/mrlokans/breedy/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "settings.db")
	db, err := database.NewDatabaseWithOptions(dbPath, database.Options{LogLevel: logger.Silent})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}
	return db, cleanup
}

func TestNew(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	store := New(db)

	assert.NotNil(t, store)
	assert.NotNil(t, store.repo)
}

func TestReadInt(t *testing.T) {
	ctx := context.Background()

	t.Run("returns default when key is missing", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		store := New(db)

		v, err := store.ReadInt(ctx, entities.PreferenceKeyLastPage, -1)
		require.NoError(t, err)
		assert.Equal(t, -1, v)
	})

	t.Run("returns written value", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		store := New(db)

		require.NoError(t, store.WriteInt(ctx, entities.PreferenceKeyLastPage, 4))

		v, err := store.ReadInt(ctx, entities.PreferenceKeyLastPage, -1)
		require.NoError(t, err)
		assert.Equal(t, 4, v)
	})

	t.Run("returns default when stored value does not parse", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		store := New(db)

		require.NoError(t, store.WriteString(ctx, entities.PreferenceKeyLastPage, "four"))

		v, err := store.ReadInt(ctx, entities.PreferenceKeyLastPage, -1)
		require.NoError(t, err)
		assert.Equal(t, -1, v)
	})

	t.Run("last write wins", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		store := New(db)

		require.NoError(t, store.WriteInt(ctx, "k", 1))
		require.NoError(t, store.WriteInt(ctx, "k", 2))

		v, err := store.ReadInt(ctx, "k", 0)
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})
}

func TestReadBool(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	store := New(db)
	ctx := context.Background()

	v, err := store.ReadBool(ctx, "flag", true)
	require.NoError(t, err)
	assert.True(t, v)

	require.NoError(t, store.WriteBool(ctx, "flag", false))
	v, err = store.ReadBool(ctx, "flag", true)
	require.NoError(t, err)
	assert.False(t, v)

	require.NoError(t, store.WriteString(ctx, "flag", "maybe"))
	v, err = store.ReadBool(ctx, "flag", true)
	require.NoError(t, err)
	assert.True(t, v)
}

func TestDelete(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	store := New(db)
	ctx := context.Background()

	require.NoError(t, store.WriteInt(ctx, entities.PreferenceKeyLastPage, 7))
	require.NoError(t, store.Delete(ctx, entities.PreferenceKeyLastPage))

	v, err := store.ReadInt(ctx, entities.PreferenceKeyLastPage, -1)
	require.NoError(t, err)
	assert.Equal(t, -1, v)

	// Deleting again is a no-op
	assert.NoError(t, store.Delete(ctx, entities.PreferenceKeyLastPage))
}

func TestReadInt_ClosedDatabase(t *testing.T) {
	db, cleanup := setupTestDB(t)
	store := New(db)
	cleanup()

	v, err := store.ReadInt(context.Background(), entities.PreferenceKeyLastPage, -1)
	assert.Error(t, err)
	assert.Equal(t, -1, v)
}
