package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Catalog
		BreedSync
		Tasks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Catalog struct {
		Host        string        // Scheme and host of the catalog API
		Version     string        // Path prefix, e.g. "v1"
		APIKey      string        // Sent as x-api-key; optional
		Timeout     time.Duration // Per-request HTTP timeout
		MinInterval time.Duration // Minimum spacing between requests (0 = unlimited)
	}
	BreedSync struct {
		Enabled  bool
		Schedule string // Cron format: "0 */6 * * *" = every 6 hours
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Catalog API defaults
	v.SetDefault("catalog_api_host", DefaultCatalogHost)
	v.SetDefault("catalog_api_version", DefaultCatalogVersion)
	v.SetDefault("catalog_api_key", "")
	v.SetDefault("catalog_timeout", "10s")
	v.SetDefault("catalog_min_interval", "0s")

	// Periodic refresh defaults
	v.SetDefault("breed_sync_enabled", false)
	v.SetDefault("breed_sync_schedule", "0 */6 * * *") // Every 6 hours

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Catalog: Catalog{
			Host:        v.GetString("CATALOG_API_HOST"),
			Version:     v.GetString("CATALOG_API_VERSION"),
			APIKey:      v.GetString("CATALOG_API_KEY"),
			Timeout:     v.GetDuration("CATALOG_TIMEOUT"),
			MinInterval: v.GetDuration("CATALOG_MIN_INTERVAL"),
		},
		BreedSync: BreedSync{
			Enabled:  v.GetBool("BREED_SYNC_ENABLED"),
			Schedule: v.GetString("BREED_SYNC_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
	}
}
