package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/breedy/internal/entities"
	"github.com/mrlokans/breedy/internal/watch"
)

// FavoritesReader follows the favorite breeds.
type FavoritesReader interface {
	ObserveFavorites(ctx context.Context) *watch.Feed[[]entities.Breed]
}

// FavoriteSetter marks and unmarks breeds.
type FavoriteSetter interface {
	SetFavorite(ctx context.Context, id string, favorite bool) error
}

type FavouritesController struct {
	reader FavoritesReader
	setter FavoriteSetter
}

func NewFavouritesController(reader FavoritesReader, setter FavoriteSetter) *FavouritesController {
	return &FavouritesController{reader: reader, setter: setter}
}

// AddFavourite marks a breed as favourite.
// POST /api/breeds/:id/favourite
func (fc *FavouritesController) AddFavourite(c *gin.Context) {
	fc.setFavourite(c, true)
}

// RemoveFavourite removes a breed from favourites.
// DELETE /api/breeds/:id/favourite
func (fc *FavouritesController) RemoveFavourite(c *gin.Context) {
	fc.setFavourite(c, false)
}

func (fc *FavouritesController) setFavourite(c *gin.Context, favourite bool) {
	id, ok := parseBreedID(c, "id")
	if !ok {
		return
	}

	if err := fc.setter.SetFavorite(c.Request.Context(), id, favourite); err != nil {
		if favourite {
			respondInternalError(c, err, "add favourite")
		} else {
			respondInternalError(c, err, "remove favourite")
		}
		return
	}

	message := "favourite removed"
	if favourite {
		message = "favourite added"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "id": id, "favorite": favourite})
}

// ListFavourites returns the stored favourite breeds, oldest first.
// GET /api/favourites
func (fc *FavouritesController) ListFavourites(c *gin.Context) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	favourites, err := watch.First(ctx, fc.reader.ObserveFavorites(ctx))
	if err != nil {
		respondInternalError(c, err, "list favourites")
		return
	}
	if favourites == nil {
		favourites = []entities.Breed{}
	}

	c.JSON(http.StatusOK, gin.H{
		"favourites": favourites,
		"total":      len(favourites),
	})
}
