// Package browse holds the state behind the breed list, search and details
// views: loading and error flags, favorite flags merged into breeds, and
// guards against running the same job twice.
package browse

import (
	"context"
	"errors"
	"log"

	"github.com/mrlokans/breedy/internal/breeds"
	"github.com/mrlokans/breedy/internal/entities"
	"github.com/mrlokans/breedy/internal/watch"
)

// ErrBusy is returned when a fetch or refresh is already running.
var ErrBusy = errors.New("operation already in progress")

// ErrInvalidPages is returned for a page count outside 1..MaxFetchPages.
var ErrInvalidPages = errors.New("invalid page count")

// BreedSource is the breed sync engine as seen by the views.
type BreedSource interface {
	ObserveBreeds(ctx context.Context) *watch.Feed[[]entities.Breed]
	FetchMoreBreeds(ctx context.Context) error
	RefreshLocalBreeds(ctx context.Context) (breeds.SyncResult, error)
	SearchByName(ctx context.Context, name string) ([]entities.Breed, error)
	SearchByNameLocally(ctx context.Context, name string) ([]entities.Breed, error)
	GetBreed(id string) (entities.Breed, bool)
	Promote(ctx context.Context, breed entities.Breed) (bool, error)
	Cursor(ctx context.Context) (int, error)
}

// FavoriteSource is the favorites ledger as seen by the views.
type FavoriteSource interface {
	ObserveFavorites(ctx context.Context) *watch.Feed[[]entities.Breed]
	SetAsFavorite(ctx context.Context, id string) error
	UnsetAsFavorite(ctx context.Context, id string) error
	IsFavorite(ctx context.Context, id string) *watch.Feed[bool]
}

// BreedItem is a breed with its favorite flag.
type BreedItem struct {
	entities.Breed
	Favorite bool `json:"favorite"`
}

// setFavorite marks or unmarks id, promoting the cached breed if any.
func setFavorite(ctx context.Context, src BreedSource, favs FavoriteSource, id string, favorite bool) error {
	breed, known := src.GetBreed(id)
	return markFavorite(ctx, src, favs, id, favorite, breed, known)
}

// markFavorite marks or unmarks id. When marking a known breed that is not
// stored yet, the breed is stored first so it shows up in the favorites list.
func markFavorite(ctx context.Context, src BreedSource, favs FavoriteSource, id string, favorite bool, breed entities.Breed, known bool) error {
	if !favorite {
		return favs.UnsetAsFavorite(ctx, id)
	}
	if known {
		if _, err := src.Promote(ctx, breed); err != nil {
			return err
		}
	} else {
		log.Printf("[BROWSE] Favoriting %s which is not cached", id)
	}
	return favs.SetAsFavorite(ctx, id)
}

// isFavoriteNow reads the current favorite status of id once.
func isFavoriteNow(ctx context.Context, favs FavoriteSource, id string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	return watch.First(ctx, favs.IsFavorite(ctx, id))
}
