// Package favourites is the favorites ledger: timestamped markers for the
// breeds a user likes, and live views over them.
package favourites

import (
	"context"
	"log"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/mrlokans/breedy/internal/breeds"
	"github.com/mrlokans/breedy/internal/entities"
	"github.com/mrlokans/breedy/internal/watch"
)

// MarkerStore persists favorite markers.
type MarkerStore interface {
	Upsert(ctx context.Context, id string, createdAt int64) error
	Delete(ctx context.Context, id string) error
	Watch(ctx context.Context) *watch.Feed[[]entities.BreedEntity]
	WatchByID(ctx context.Context, id string) *watch.Feed[*entities.FavoriteBreedEntity]
}

type Ledger struct {
	store MarkerStore
	now   func() time.Time
}

func NewLedger(store MarkerStore) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// ObserveFavorites returns a live view of the stored breeds that are marked
// favorite, oldest marker first. Markers for breeds that are not stored are
// left out.
func (l *Ledger) ObserveFavorites(ctx context.Context) *watch.Feed[[]entities.Breed] {
	return watch.Map(ctx, l.store.Watch(ctx), func(rows []entities.BreedEntity) []entities.Breed {
		return iter.Map(rows, func(row *entities.BreedEntity) entities.Breed {
			return row.ToBreed()
		})
	})
}

// SetAsFavorite marks id as favorite now, replacing an existing marker.
// Store failures match breeds.ErrStore.
func (l *Ledger) SetAsFavorite(ctx context.Context, id string) error {
	if err := l.store.Upsert(ctx, id, l.now().UnixMilli()); err != nil {
		return &breeds.StoreError{Op: "set favourite " + id, Err: err}
	}
	log.Printf("[FAVOURITES] Marked %s", id)
	return nil
}

// UnsetAsFavorite removes the marker for id, if any.
func (l *Ledger) UnsetAsFavorite(ctx context.Context, id string) error {
	if err := l.store.Delete(ctx, id); err != nil {
		return &breeds.StoreError{Op: "unset favourite " + id, Err: err}
	}
	log.Printf("[FAVOURITES] Unmarked %s", id)
	return nil
}

// IsFavorite returns a live view of whether id is marked. Only changes are
// delivered after the first value.
func (l *Ledger) IsFavorite(ctx context.Context, id string) *watch.Feed[bool] {
	present := watch.Map(ctx, l.store.WatchByID(ctx, id), func(m *entities.FavoriteBreedEntity) bool {
		return m != nil
	})
	return watch.Distinct(ctx, present, func(a, b bool) bool { return a == b })
}
