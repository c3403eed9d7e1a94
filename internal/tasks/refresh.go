package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/breedy/internal/breeds"
	"github.com/mrlokans/breedy/internal/browse"
	"github.com/mrlokans/breedy/internal/settingsstore"
)

// BreedRefresher reconciles the stored breeds with the catalog.
type BreedRefresher interface {
	Refresh(ctx context.Context) (breeds.SyncResult, error)
}

// SyncStatusRecorder keeps the outcome of the last refresh.
type SyncStatusRecorder interface {
	SetBreedSyncStatus(ctx context.Context, status, message string, changed int) error
}

// RefreshBreedsTask reconciles the stored breeds with the catalog.
type RefreshBreedsTask struct {
	Trigger string `json:"trigger"` // "schedule", "api", "cli"
}

// Config returns the queue configuration for refresh tasks.
func (t RefreshBreedsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "refresh_breeds",
		MaxAttempts: 1,
		Timeout:     10 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RunRefresh refreshes and records the outcome. status may be nil.
func RunRefresh(ctx context.Context, refresher BreedRefresher, status SyncStatusRecorder) (breeds.SyncResult, error) {
	if refresher == nil {
		return breeds.SyncResult{}, fmt.Errorf("breed refresher not configured")
	}

	record := func(state, message string, changed int) {
		if status == nil {
			return
		}
		if err := status.SetBreedSyncStatus(ctx, state, message, changed); err != nil {
			log.Printf("[TASK] Failed to record refresh status: %v", err)
		}
	}

	startTime := time.Now()
	result, err := refresher.Refresh(ctx)
	if errors.Is(err, browse.ErrBusy) {
		log.Printf("[TASK] Refresh skipped: a refresh is already running")
		return result, nil
	}

	changed := result.Upserted + result.Deleted
	if err != nil {
		msg := fmt.Sprintf("Refresh failed after %d changes (%d failed): %v", changed, result.Failed, err)
		record(settingsstore.BreedSyncStatusFailed, msg, changed)
		return result, fmt.Errorf("refresh breeds: %w", err)
	}

	msg := fmt.Sprintf("Fetched %d, upserted %d, deleted %d in %v",
		result.Fetched, result.Upserted, result.Deleted, time.Since(startTime).Round(time.Millisecond))
	record(settingsstore.BreedSyncStatusSuccess, msg, changed)
	log.Printf("[TASK] %s", msg)
	return result, nil
}

// RefreshBreedsProcessor creates a processor function for RefreshBreedsTask.
func RefreshBreedsProcessor(refresher BreedRefresher, status SyncStatusRecorder) backlite.QueueProcessor[RefreshBreedsTask] {
	return func(ctx context.Context, task RefreshBreedsTask) error {
		log.Printf("[TASK] Refresh requested by %s", task.Trigger)
		_, err := RunRefresh(ctx, refresher, status)
		return err
	}
}

// NewRefreshBreedsQueue creates a backlite queue for refresh tasks.
func NewRefreshBreedsQueue(refresher BreedRefresher, status SyncStatusRecorder) backlite.Queue {
	return backlite.NewQueue(RefreshBreedsProcessor(refresher, status))
}
