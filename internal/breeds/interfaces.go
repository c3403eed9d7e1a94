package breeds

import (
	"context"

	"github.com/mrlokans/breedy/internal/entities"
	"github.com/mrlokans/breedy/internal/watch"
)

// CatalogService is the remote catalog the engine pages through and searches.
type CatalogService interface {
	ListBreeds(ctx context.Context, limit, page int) ([]entities.Breed, error)
	SearchBreeds(ctx context.Context, q string) ([]entities.Breed, error)
}

// BreedStore is the local system of record for breeds.
type BreedStore interface {
	Upsert(ctx context.Context, breed entities.Breed) error
	Delete(ctx context.Context, id string) error
	Watch(ctx context.Context) *watch.Feed[[]entities.BreedEntity]
	SelectByNameLike(ctx context.Context, name string) ([]entities.BreedEntity, error)
	SelectByID(ctx context.Context, id string) (*entities.BreedEntity, error)
}

// Preferences persists the pagination cursor.
type Preferences interface {
	ReadInt(ctx context.Context, key string, def int) (int, error)
	WriteInt(ctx context.Context, key string, value int) error
	Delete(ctx context.Context, key string) error
}
