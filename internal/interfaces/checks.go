package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/breedy/internal/breeds"
	"github.com/mrlokans/breedy/internal/browse"
	"github.com/mrlokans/breedy/internal/catalog"
	breedsdb "github.com/mrlokans/breedy/internal/database/breeds"
	favouritesdb "github.com/mrlokans/breedy/internal/database/favourites"
	"github.com/mrlokans/breedy/internal/favourites"
	"github.com/mrlokans/breedy/internal/http"
	"github.com/mrlokans/breedy/internal/scheduler"
	"github.com/mrlokans/breedy/internal/settingsstore"
	"github.com/mrlokans/breedy/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// BreedStore implementations
var _ breeds.BreedStore = (*breedsdb.Repository)(nil)

// MarkerStore implementations
var _ favourites.MarkerStore = (*favouritesdb.Repository)(nil)

// Preferences implementations
var _ breeds.Preferences = (*settingsstore.SettingsStore)(nil)

// Health counters
var _ http.Counter = (*breedsdb.Repository)(nil)
var _ http.Counter = (*favouritesdb.Repository)(nil)

// =============================================================================
// External Services
// =============================================================================

// CatalogService implementations
var _ breeds.CatalogService = (*catalog.Client)(nil)

// =============================================================================
// Views
// =============================================================================

var _ browse.BreedSource = (*breeds.Repository)(nil)
var _ browse.FavoriteSource = (*favourites.Ledger)(nil)

var _ http.ListService = (*browse.List)(nil)
var _ http.SearchService = (*browse.Search)(nil)
var _ http.DetailsService = (*browse.Details)(nil)
var _ http.FavoritesReader = (*favourites.Ledger)(nil)
var _ http.FavoriteSetter = (*browse.List)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.BreedFetcher = (*browse.List)(nil)
var _ tasks.BreedRefresher = (*browse.List)(nil)
var _ tasks.SyncStatusRecorder = (*settingsstore.SettingsStore)(nil)

var _ scheduler.TaskEnqueuer = (*tasks.Client)(nil)
var _ scheduler.SyncSettings = (*settingsstore.SettingsStore)(nil)

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ http.SyncSettingsStore = (*settingsstore.SettingsStore)(nil)
var _ http.SyncScheduler = (*scheduler.BreedSyncScheduler)(nil)
