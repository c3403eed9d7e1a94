package settingsstore

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/breedy/internal/config"
	"github.com/mrlokans/breedy/internal/entities"
)

// DefaultBreedSyncSchedule refreshes the local catalog every 6 hours.
const DefaultBreedSyncSchedule = "0 */6 * * *"

// Sync status values
const (
	BreedSyncStatusSuccess = "success"
	BreedSyncStatusFailed  = "failed"
	BreedSyncStatusRunning = "running"
)

// BreedSyncConfig represents the effective configuration for the periodic refresh
type BreedSyncConfig struct {
	Enabled  bool   `json:"enabled"`
	Schedule string `json:"schedule"`
}

// BreedSyncConfigInfo includes source information for each field
type BreedSyncConfigInfo struct {
	Enabled       bool   `json:"enabled"`
	EnabledSource string `json:"enabled_source"` // "database", "environment", "default"

	Schedule            string `json:"schedule"`
	ScheduleSource      string `json:"schedule_source"`
	ScheduleDescription string `json:"schedule_description"`
}

// BreedSyncStatus represents the outcome of the last refresh
type BreedSyncStatus struct {
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
	Status     string     `json:"status,omitempty"`  // "success", "failed", "running", ""
	Message    string     `json:"message,omitempty"` // Error message or stats summary
	Changed    int        `json:"changed,omitempty"` // Records upserted or deleted by the last refresh
}

// GetBreedSyncEnabled returns whether the periodic refresh is enabled (database > env > default)
func (s *SettingsStore) GetBreedSyncEnabled(ctx context.Context) bool {
	// Try database first
	raw, err := s.ReadString(ctx, entities.PreferenceKeyBreedSyncEnabled, "")
	if err == nil && raw != "" {
		return raw == "true" || raw == "1"
	}

	// Try environment variable
	if envVal := os.Getenv("BREED_SYNC_ENABLED"); envVal != "" {
		return envVal == "true" || envVal == "1"
	}

	// Default: disabled
	return false
}

// GetBreedSyncEnabledSource returns the source of the enabled setting
func (s *SettingsStore) GetBreedSyncEnabledSource(ctx context.Context) string {
	return s.source(ctx, entities.PreferenceKeyBreedSyncEnabled, "BREED_SYNC_ENABLED")
}

// SetBreedSyncEnabled saves the enabled setting to database
func (s *SettingsStore) SetBreedSyncEnabled(ctx context.Context, enabled bool) error {
	return s.WriteBool(ctx, entities.PreferenceKeyBreedSyncEnabled, enabled)
}

// GetBreedSyncSchedule returns the cron schedule (database > env > default)
func (s *SettingsStore) GetBreedSyncSchedule(ctx context.Context) string {
	raw, err := s.ReadString(ctx, entities.PreferenceKeyBreedSyncSchedule, "")
	if err == nil && raw != "" {
		return raw
	}
	if envVal := os.Getenv("BREED_SYNC_SCHEDULE"); envVal != "" {
		return envVal
	}
	return DefaultBreedSyncSchedule
}

// GetBreedSyncScheduleSource returns the source of the schedule setting
func (s *SettingsStore) GetBreedSyncScheduleSource(ctx context.Context) string {
	return s.source(ctx, entities.PreferenceKeyBreedSyncSchedule, "BREED_SYNC_SCHEDULE")
}

// SetBreedSyncSchedule validates and saves the schedule to database
func (s *SettingsStore) SetBreedSyncSchedule(ctx context.Context, schedule string) error {
	if err := ValidateCronSchedule(schedule); err != nil {
		return err
	}
	return s.WriteString(ctx, entities.PreferenceKeyBreedSyncSchedule, schedule)
}

// GetBreedSyncConfig returns the effective configuration
func (s *SettingsStore) GetBreedSyncConfig(ctx context.Context) BreedSyncConfig {
	return BreedSyncConfig{
		Enabled:  s.GetBreedSyncEnabled(ctx),
		Schedule: s.GetBreedSyncSchedule(ctx),
	}
}

// GetBreedSyncConfigInfo returns the configuration with source information
func (s *SettingsStore) GetBreedSyncConfigInfo(ctx context.Context) BreedSyncConfigInfo {
	schedule := s.GetBreedSyncSchedule(ctx)
	return BreedSyncConfigInfo{
		Enabled:             s.GetBreedSyncEnabled(ctx),
		EnabledSource:       s.GetBreedSyncEnabledSource(ctx),
		Schedule:            schedule,
		ScheduleSource:      s.GetBreedSyncScheduleSource(ctx),
		ScheduleDescription: GetCronDescription(schedule),
	}
}

// GetBreedSyncStatus returns the last refresh status
func (s *SettingsStore) GetBreedSyncStatus(ctx context.Context) BreedSyncStatus {
	status := BreedSyncStatus{}

	if raw, err := s.ReadString(ctx, entities.PreferenceKeyBreedSyncLastAt, ""); err == nil && raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			status.LastSyncAt = &ts
		}
	}
	status.Status, _ = s.ReadString(ctx, entities.PreferenceKeyBreedSyncLastStatus, "")
	status.Message, _ = s.ReadString(ctx, entities.PreferenceKeyBreedSyncLastMessage, "")
	status.Changed, _ = s.ReadInt(ctx, entities.PreferenceKeyBreedSyncLastCount, 0)

	return status
}

// SetBreedSyncStatus records the outcome of a refresh
func (s *SettingsStore) SetBreedSyncStatus(ctx context.Context, status, message string, changed int) error {
	now := time.Now().UTC().Format(time.RFC3339)

	if err := s.WriteString(ctx, entities.PreferenceKeyBreedSyncLastAt, now); err != nil {
		return err
	}
	if err := s.WriteString(ctx, entities.PreferenceKeyBreedSyncLastStatus, status); err != nil {
		return err
	}
	if err := s.WriteString(ctx, entities.PreferenceKeyBreedSyncLastMessage, message); err != nil {
		return err
	}
	return s.WriteInt(ctx, entities.PreferenceKeyBreedSyncLastCount, changed)
}

// ClearBreedSyncSettings clears all database overrides, reverting to env/default
func (s *SettingsStore) ClearBreedSyncSettings(ctx context.Context) error {
	keys := []string{
		entities.PreferenceKeyBreedSyncEnabled,
		entities.PreferenceKeyBreedSyncSchedule,
	}
	for _, key := range keys {
		if err := s.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (s *SettingsStore) source(ctx context.Context, key, env string) string {
	raw, err := s.ReadString(ctx, key, "")
	if err == nil && raw != "" {
		return "database"
	}
	if os.Getenv(env) != "" {
		return "environment"
	}
	return "default"
}

// NewBreedSyncConfigFromEnv creates settings from environment config (for use when database not yet ready)
func NewBreedSyncConfigFromEnv(cfg config.BreedSync) BreedSyncConfig {
	schedule := cfg.Schedule
	if schedule == "" {
		schedule = DefaultBreedSyncSchedule
	}
	return BreedSyncConfig{
		Enabled:  cfg.Enabled,
		Schedule: schedule,
	}
}

// ValidateCronSchedule validates a cron schedule string
func ValidateCronSchedule(schedule string) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	_, err := parser.Parse(schedule)
	return err
}

// GetCronDescription returns a human-readable description of a cron schedule
func GetCronDescription(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "*/30 * * * *":
		return "Every 30 minutes"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}

// GetNextRunTime calculates when the next refresh will run based on the schedule
func GetNextRunTime(schedule string) (*time.Time, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}

