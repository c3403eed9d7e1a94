package browse

import (
	"context"

	"github.com/mrlokans/breedy/internal/entities"
	"github.com/mrlokans/breedy/internal/watch"
)

// DetailsState is a single breed with its favorite status.
type DetailsState struct {
	Breed    entities.Breed `json:"breed"`
	Favorite bool           `json:"favorite"`
}

type Details struct {
	breeds BreedSource
	favs   FavoriteSource
}

func NewDetails(src BreedSource, favs FavoriteSource) *Details {
	return &Details{breeds: src, favs: favs}
}

// Get returns the cached breed with its favorite status. The second result
// is false when the breed has not been seen yet.
func (d *Details) Get(ctx context.Context, id string) (DetailsState, bool, error) {
	breed, ok := d.breeds.GetBreed(id)
	if !ok {
		return DetailsState{}, false, nil
	}
	fav, err := isFavoriteNow(ctx, d.favs, id)
	if err != nil {
		return DetailsState{}, true, err
	}
	return DetailsState{Breed: breed, Favorite: fav}, true, nil
}

// Watch follows the favorite status of a cached breed. It returns false if
// the breed has not been seen yet.
func (d *Details) Watch(ctx context.Context, id string) (*watch.Feed[DetailsState], bool) {
	breed, ok := d.breeds.GetBreed(id)
	if !ok {
		return nil, false
	}
	return watch.Map(ctx, d.favs.IsFavorite(ctx, id), func(fav bool) DetailsState {
		return DetailsState{Breed: breed, Favorite: fav}
	}), true
}

// SetFavorite marks or unmarks id.
func (d *Details) SetFavorite(ctx context.Context, id string, favorite bool) error {
	return setFavorite(ctx, d.breeds, d.favs, id, favorite)
}
