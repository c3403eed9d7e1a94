package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/breedy/internal/settingsstore"
	"github.com/mrlokans/breedy/internal/tasks"
)

// SyncSettings provides the effective refresh configuration and records
// refresh outcomes.
type SyncSettings interface {
	GetBreedSyncConfig(ctx context.Context) settingsstore.BreedSyncConfig
	tasks.SyncStatusRecorder
}

// TaskEnqueuer hands a refresh over to the task queue.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
}

// BreedSyncScheduler refreshes the local breeds on a cron schedule
type BreedSyncScheduler struct {
	settings  SyncSettings
	refresher tasks.BreedRefresher
	enqueuer  TaskEnqueuer

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isSyncing  bool
	cancelFunc context.CancelFunc
}

// NewBreedSyncScheduler creates a new scheduler instance. When enqueuer is
// nil the refresh runs inside the scheduler.
func NewBreedSyncScheduler(settings SyncSettings, refresher tasks.BreedRefresher, enqueuer TaskEnqueuer) *BreedSyncScheduler {
	return &BreedSyncScheduler{
		settings:  settings,
		refresher: refresher,
		enqueuer:  enqueuer,
		cron:      cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if the periodic refresh is enabled
func (s *BreedSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	config := s.settings.GetBreedSyncConfig(ctx)

	if !config.Enabled {
		log.Printf("[SCHEDULER] Breed sync: disabled")
		return nil
	}

	if err := settingsstore.ValidateCronSchedule(config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(config.Schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule breed sync job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := settingsstore.GetNextRunTime(config.Schedule)
	log.Printf("[SCHEDULER] Breed sync: started with schedule '%s' (%s). Next run: %v",
		config.Schedule,
		settingsstore.GetCronDescription(config.Schedule),
		nextRun)

	// Monitor for context cancellation
	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *BreedSyncScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	entryID := s.entryID
	cancel := s.cancelFunc
	s.cancelFunc = nil
	s.mu.Unlock()

	// Stop accepting new jobs and wait for running jobs to complete.
	// A running job takes s.mu, so this must not hold it.
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(entryID)

	if cancel != nil {
		cancel()
	}

	log.Printf("[SCHEDULER] Breed sync: stopped")
}

// Reschedule updates the schedule (call after settings change)
func (s *BreedSyncScheduler) Reschedule(ctx context.Context) error {
	s.mu.RLock()
	wasRunning := s.isRunning
	s.mu.RUnlock()

	if wasRunning {
		s.Stop()
	}

	return s.Start(ctx)
}

// RunNow triggers an immediate refresh
func (s *BreedSyncScheduler) RunNow() {
	go s.runSync()
}

// IsRunning returns whether the scheduler is active
func (s *BreedSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// IsSyncing returns whether a refresh is currently in progress
func (s *BreedSyncScheduler) IsSyncing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isSyncing
}

// GetNextRunTime returns when the next refresh will occur
func (s *BreedSyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runSync performs or enqueues one refresh
func (s *BreedSyncScheduler) runSync() {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		log.Printf("[SCHEDULER] Breed sync: skipped (already syncing)")
		return
	}
	s.isSyncing = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isSyncing = false
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if s.enqueuer != nil {
		if _, err := s.enqueuer.Enqueue(ctx, tasks.RefreshBreedsTask{Trigger: "schedule"}); err != nil {
			log.Printf("[SCHEDULER] Breed sync: failed to enqueue refresh: %v", err)
			_ = s.settings.SetBreedSyncStatus(ctx, settingsstore.BreedSyncStatusFailed, err.Error(), 0)
		}
		return
	}

	log.Printf("[SCHEDULER] Breed sync: starting refresh")
	if _, err := tasks.RunRefresh(ctx, s.refresher, s.settings); err != nil {
		log.Printf("[SCHEDULER] Breed sync: %v", err)
	}
}
