// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help code agents understand
// extension points and how to implement new functionality.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BreedStore: Stored breeds with live queries (internal/breeds/interfaces.go)
//   - MarkerStore: Favorite markers (internal/favourites/ledger.go)
//   - Preferences: Integer key/value settings, e.g. the pagination cursor (internal/breeds/interfaces.go)
//
// ## External Service Interfaces
//
//   - CatalogService: The remote breed catalog (internal/breeds/interfaces.go)
//
// ## View Interfaces
//
//   - BreedSource, FavoriteSource: What the list, search and details views
//     need from the breed engine and the ledger (internal/browse/browse.go)
//   - ListService, SearchService, DetailsService: What the HTTP controllers
//     need from the views (internal/http/breeds.go)
//
// ## Background Work Interfaces
//
//   - BreedFetcher, BreedRefresher: Task processors (internal/tasks/)
//   - TaskEnqueuer: Scheduler hand-off to the task queue (internal/scheduler/breed_sync.go)
//
// # Adding a New Catalog Source
//
// To read breeds from a different remote catalog:
//
//  1. Implement CatalogService in its own package
//
//     type MirrorClient struct {
//         baseURL    string
//         httpClient *http.Client
//     }
//
//     func (c *MirrorClient) ListBreeds(ctx context.Context, limit, page int) ([]entities.Breed, error)
//     func (c *MirrorClient) SearchBreeds(ctx context.Context, q string) ([]entities.Breed, error)
//
//  2. Wrap transport failures so that errors.Is(err, catalog.ErrNetwork)
//     holds; search falls back to stored breeds only for those.
//
//  3. Pass it to breeds.NewRepository in entrypoint/app.go
//
// # Adding a New Background Task
//
//  1. Define the task type and its queue config in internal/tasks/
//
//     type PruneFavouritesTask struct{}
//
//     func (t PruneFavouritesTask) Config() backlite.QueueConfig
//
//  2. Register the queue in entrypoint.go
//
//  3. Expose it in the task type list in internal/http/tasks.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
