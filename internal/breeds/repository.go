// Package breeds is the breed cache and sync engine. It pages the remote
// catalog into the local store, reconciles the store against the catalog,
// and serves live views of the stored breeds while keeping an in-memory
// id lookup warm.
//
// # Usage
//
//	repo := breeds.NewRepository(catalogClient, breedStore, prefs)
//	feed := repo.ObserveBreeds(ctx)
//	err := repo.FetchMoreBreeds(ctx)
package breeds

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"

	"github.com/sourcegraph/conc/iter"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"

	"github.com/mrlokans/breedy/internal/entities"
	"github.com/mrlokans/breedy/internal/watch"
)

const (
	// PageSize is the number of breeds requested per catalog page.
	PageSize = 10

	// FirstPage is the cursor value before any page has been fetched.
	FirstPage = -1

	maxWriters = 4
)

// SyncResult summarizes a refresh.
type SyncResult struct {
	Fetched  int `json:"fetched"`
	Upserted int `json:"upserted"`
	Deleted  int `json:"deleted"`
	Failed   int `json:"failed"`
}

// Repository is the breed sync engine.
type Repository struct {
	catalog CatalogService
	store   BreedStore
	prefs   Preferences
	cache   *Cache
}

func NewRepository(catalog CatalogService, store BreedStore, prefs Preferences) *Repository {
	return &Repository{
		catalog: catalog,
		store:   store,
		prefs:   prefs,
		cache:   NewCache(),
	}
}

// ObserveBreeds returns a live view of every stored breed. Each delivered
// breed also overwrites its cache slot. The feed ends when ctx is cancelled
// or the store fails.
func (r *Repository) ObserveBreeds(ctx context.Context) *watch.Feed[[]entities.Breed] {
	rows := r.store.Watch(ctx)
	return watch.Map(ctx, rows, func(rows []entities.BreedEntity) []entities.Breed {
		out := toBreeds(rows)
		r.cache.PutAll(out)
		return out
	})
}

// Save stores breed, replacing any stored breed with the same id.
func (r *Repository) Save(ctx context.Context, breed entities.Breed) error {
	if err := r.store.Upsert(ctx, breed); err != nil {
		return &StoreError{Op: "save breed " + breed.ID, Err: err}
	}
	return nil
}

// Promote stores breed unless a breed with the same id is already stored,
// and reports whether it was written. A stored breed keeps its values and
// its first-seen time.
func (r *Repository) Promote(ctx context.Context, breed entities.Breed) (bool, error) {
	row, err := r.store.SelectByID(ctx, breed.ID)
	if err != nil {
		return false, &StoreError{Op: "look up breed " + breed.ID, Err: err}
	}
	if row != nil {
		return false, nil
	}
	if err := r.Save(ctx, breed); err != nil {
		return false, err
	}
	r.cache.Put(breed)
	log.Printf("[BREEDS] Stored %s on promotion", breed.ID)
	return true, nil
}

// Cursor returns the last fetched catalog page, or FirstPage.
func (r *Repository) Cursor(ctx context.Context) (int, error) {
	page, err := r.prefs.ReadInt(ctx, entities.PreferenceKeyLastPage, FirstPage)
	if err != nil {
		return FirstPage, &StoreError{Op: "read cursor", Err: err}
	}
	return page, nil
}

// ResetCursor forgets pagination progress; the next fetch starts at page 0.
func (r *Repository) ResetCursor(ctx context.Context) error {
	if err := r.prefs.Delete(ctx, entities.PreferenceKeyLastPage); err != nil {
		return &StoreError{Op: "reset cursor", Err: err}
	}
	log.Printf("[BREEDS] Pagination cursor reset")
	return nil
}

// FetchMoreBreeds stores the catalog page after the cursor and advances the
// cursor by one. An empty page is taken as the end of the catalog and
// leaves the cursor where it is.
//
// The cursor advances once every upsert has finished, even if some failed;
// their errors are joined into the returned error. Callers must not run
// two fetches at once.
func (r *Repository) FetchMoreBreeds(ctx context.Context) error {
	cursor, err := r.Cursor(ctx)
	if err != nil {
		return err
	}
	next := cursor + 1

	records, err := r.catalog.ListBreeds(ctx, PageSize, next)
	if err != nil {
		return fmt.Errorf("fetch page %d: %w", next, err)
	}
	if len(records) == 0 {
		log.Printf("[BREEDS] Page %d is empty, cursor stays at %d", next, cursor)
		return nil
	}

	stored, upsertErr := r.upsertAll(ctx, records)

	if err := r.prefs.WriteInt(ctx, entities.PreferenceKeyLastPage, next); err != nil {
		return errors.Join(upsertErr, &StoreError{Op: "write cursor", Err: err})
	}

	log.Printf("[BREEDS] Fetched page %d (%d/%d breeds stored)", next, stored, len(records))
	return upsertErr
}

// SearchByName searches the remote catalog. Results are cached but not
// stored. Transport failures match catalog.ErrNetwork.
func (r *Repository) SearchByName(ctx context.Context, name string) ([]entities.Breed, error) {
	results, err := r.catalog.SearchBreeds(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", name, err)
	}
	r.cache.PutAll(results)
	return results, nil
}

// SearchByNameLocally returns stored breeds whose name contains name.
func (r *Repository) SearchByNameLocally(ctx context.Context, name string) ([]entities.Breed, error) {
	rows, err := r.store.SelectByNameLike(ctx, name)
	if err != nil {
		return nil, &StoreError{Op: "search stored breeds", Err: err}
	}
	return toBreeds(rows), nil
}

// GetBreed looks id up in the cache only.
func (r *Repository) GetBreed(id string) (entities.Breed, bool) {
	return r.cache.Get(id)
}

// RefreshLocalBreeds re-fetches every page up to the cursor, reconciles the
// result against the cached breeds and applies the difference. Page fetches
// are all-or-nothing; writes are independent and every outcome is counted.
func (r *Repository) RefreshLocalBreeds(ctx context.Context) (SyncResult, error) {
	var result SyncResult

	cursor, err := r.Cursor(ctx)
	if err != nil {
		return result, err
	}

	network, err := r.fetchPages(ctx, cursor)
	if err != nil {
		return result, err
	}
	result.Fetched = len(network)

	known := r.cache.Snapshot()
	upsert, remove := Reconcile(known, keepCreatedAt(known, network))

	var upserted, deleted, failed atomic.Int64
	p := pool.New().WithMaxGoroutines(maxWriters).WithErrors().WithContext(ctx)
	for _, b := range upsert {
		p.Go(func(ctx context.Context) error {
			if err := r.store.Upsert(ctx, b); err != nil {
				failed.Add(1)
				return &StoreError{Op: "upsert breed " + b.ID, Err: err}
			}
			upserted.Add(1)
			return nil
		})
	}
	for _, b := range remove {
		p.Go(func(ctx context.Context) error {
			if err := r.store.Delete(ctx, b.ID); err != nil {
				failed.Add(1)
				return &StoreError{Op: "delete breed " + b.ID, Err: err}
			}
			r.cache.Remove(b.ID)
			deleted.Add(1)
			return nil
		})
	}
	err = p.Wait()

	result.Upserted = int(upserted.Load())
	result.Deleted = int(deleted.Load())
	result.Failed = int(failed.Load())

	log.Printf("[BREEDS] Refresh: fetched %d, upserted %d, deleted %d, failed %d",
		result.Fetched, result.Upserted, result.Deleted, result.Failed)
	return result, err
}

// fetchPages fetches pages last..0 concurrently. Page order in the result is
// not significant.
func (r *Repository) fetchPages(ctx context.Context, last int) ([]entities.Breed, error) {
	if last < 0 {
		return nil, nil
	}

	pages := make([][]entities.Breed, last+1)
	g, gctx := errgroup.WithContext(ctx)
	for page := last; page >= 0; page-- {
		g.Go(func() error {
			records, err := r.catalog.ListBreeds(gctx, PageSize, page)
			if err != nil {
				return fmt.Errorf("fetch page %d: %w", page, err)
			}
			pages[page] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []entities.Breed
	for _, records := range pages {
		out = append(out, records...)
	}
	return out, nil
}

func (r *Repository) upsertAll(ctx context.Context, records []entities.Breed) (int, error) {
	var stored atomic.Int64
	p := pool.New().WithMaxGoroutines(maxWriters).WithErrors().WithContext(ctx)
	for _, b := range records {
		p.Go(func(ctx context.Context) error {
			if err := r.store.Upsert(ctx, b); err != nil {
				return &StoreError{Op: "upsert breed " + b.ID, Err: err}
			}
			stored.Add(1)
			return nil
		})
	}
	err := p.Wait()
	return int(stored.Load()), err
}

// keepCreatedAt gives network records the CreatedAt of the known record
// with the same id, so only content changes count as updates.
func keepCreatedAt(known, network []entities.Breed) []entities.Breed {
	createdAt := make(map[string]int64, len(known))
	for _, b := range known {
		createdAt[b.ID] = b.CreatedAt
	}
	out := make([]entities.Breed, len(network))
	for i, b := range network {
		if ts, ok := createdAt[b.ID]; ok {
			b.CreatedAt = ts
		}
		out[i] = b
	}
	return out
}

func toBreeds(rows []entities.BreedEntity) []entities.Breed {
	return iter.Map(rows, func(row *entities.BreedEntity) entities.Breed {
		return row.ToBreed()
	})
}
