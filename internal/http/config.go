package http

import (
	"github.com/mrlokans/breedy/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	List      ListService
	Search    SearchService
	Details   DetailsService
	Favorites FavoritesReader
	Database  *database.Database

	// Counters for the health check (optional)
	BreedCounter     Counter
	FavouriteCounter Counter

	// Task queue client (optional). When set, refreshes requested over
	// the API are enqueued instead of run inline.
	TaskQueue TaskQueue

	// Periodic refresh settings (optional)
	SyncSettings  SyncSettingsStore
	SyncScheduler SyncScheduler

	// Application info
	Version string
}
