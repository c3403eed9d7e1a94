package settingsstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/breedy/internal/config"
	"github.com/mrlokans/breedy/internal/entities"
)

func TestBreedSyncEnabled(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	store := New(db)
	ctx := context.Background()

	// Default should be false
	assert.False(t, store.GetBreedSyncEnabled(ctx))
	assert.Equal(t, "default", store.GetBreedSyncEnabledSource(ctx))

	// Set via database
	require.NoError(t, store.SetBreedSyncEnabled(ctx, true))

	assert.True(t, store.GetBreedSyncEnabled(ctx))
	assert.Equal(t, "database", store.GetBreedSyncEnabledSource(ctx))

	// Clear and verify fallback
	require.NoError(t, store.Delete(ctx, entities.PreferenceKeyBreedSyncEnabled))

	assert.False(t, store.GetBreedSyncEnabled(ctx))
	assert.Equal(t, "default", store.GetBreedSyncEnabledSource(ctx))
}

func TestBreedSyncEnabledWithEnv(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	store := New(db)
	ctx := context.Background()

	t.Setenv("BREED_SYNC_ENABLED", "true")

	// Should read from env
	assert.True(t, store.GetBreedSyncEnabled(ctx))
	assert.Equal(t, "environment", store.GetBreedSyncEnabledSource(ctx))

	// Database should override env
	require.NoError(t, store.SetBreedSyncEnabled(ctx, false))

	assert.False(t, store.GetBreedSyncEnabled(ctx))
	assert.Equal(t, "database", store.GetBreedSyncEnabledSource(ctx))
}

func TestBreedSyncSchedule(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	store := New(db)
	ctx := context.Background()

	assert.Equal(t, DefaultBreedSyncSchedule, store.GetBreedSyncSchedule(ctx))
	assert.Equal(t, "default", store.GetBreedSyncScheduleSource(ctx))

	t.Setenv("BREED_SYNC_SCHEDULE", "0 * * * *")
	assert.Equal(t, "0 * * * *", store.GetBreedSyncSchedule(ctx))
	assert.Equal(t, "environment", store.GetBreedSyncScheduleSource(ctx))

	require.NoError(t, store.SetBreedSyncSchedule(ctx, "*/30 * * * *"))
	assert.Equal(t, "*/30 * * * *", store.GetBreedSyncSchedule(ctx))

	// Invalid schedules are rejected and leave the stored value alone
	assert.Error(t, store.SetBreedSyncSchedule(ctx, "not a cron"))
	assert.Equal(t, "*/30 * * * *", store.GetBreedSyncSchedule(ctx))

	info := store.GetBreedSyncConfigInfo(ctx)
	assert.Equal(t, "database", info.ScheduleSource)
	assert.Equal(t, "Every 30 minutes", info.ScheduleDescription)

	require.NoError(t, store.ClearBreedSyncSettings(ctx))
	assert.Equal(t, "0 * * * *", store.GetBreedSyncSchedule(ctx))
}

func TestBreedSyncStatus(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	store := New(db)
	ctx := context.Background()

	// Empty initially
	status := store.GetBreedSyncStatus(ctx)
	assert.Nil(t, status.LastSyncAt)
	assert.Empty(t, status.Status)

	before := time.Now().UTC().Add(-time.Second)
	require.NoError(t, store.SetBreedSyncStatus(ctx, BreedSyncStatusSuccess, "upserted 3, deleted 1", 4))

	status = store.GetBreedSyncStatus(ctx)
	require.NotNil(t, status.LastSyncAt)
	assert.True(t, status.LastSyncAt.After(before))
	assert.Equal(t, BreedSyncStatusSuccess, status.Status)
	assert.Equal(t, "upserted 3, deleted 1", status.Message)
	assert.Equal(t, 4, status.Changed)
}

func TestNewBreedSyncConfigFromEnv(t *testing.T) {
	cfg := NewBreedSyncConfigFromEnv(config.BreedSync{Enabled: true})
	assert.True(t, cfg.Enabled)
	assert.Equal(t, DefaultBreedSyncSchedule, cfg.Schedule)
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 */6 * * *"))
	assert.Error(t, ValidateCronSchedule("every six hours"))

	next, err := GetNextRunTime("0 * * * *")
	require.NoError(t, err)
	assert.True(t, next.After(time.Now()))

	assert.Equal(t, "Custom schedule: 5 4 * * *", GetCronDescription("5 4 * * *"))
}
