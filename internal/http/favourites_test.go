package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/breedy/internal/entities"
)

func setupFavouritesRouter(list *fakeList, favs *fakeFavorites) *gin.Engine {
	return NewRouter(RouterConfig{List: list, Search: &fakeSearch{}, Details: &fakeDetails{}, Favorites: favs})
}

func TestFavouritesController_AddAndRemove(t *testing.T) {
	list := newFakeList()
	router := setupFavouritesRouter(list, &fakeFavorites{})

	w := doRequest(router, "POST", "/api/breeds/abys/favourite")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "favourite added")
	assert.True(t, list.favorites["abys"])

	w = doRequest(router, "DELETE", "/api/breeds/abys/favourite")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "favourite removed")
	assert.False(t, list.favorites["abys"])
}

func TestFavouritesController_StoreFailure(t *testing.T) {
	list := newFakeList()
	list.setErr = errors.New("disk full")
	router := setupFavouritesRouter(list, &fakeFavorites{})

	w := doRequest(router, "POST", "/api/breeds/abys/favourite")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk full")
}

func TestFavouritesController_ListFavourites(t *testing.T) {
	t.Run("returns favourites in order", func(t *testing.T) {
		favs := &fakeFavorites{breeds: []entities.Breed{
			{ID: "sibe", Name: "Siberian"},
			{ID: "abys", Name: "Abyssinian"},
		}}
		router := setupFavouritesRouter(newFakeList(), favs)

		w := doRequest(router, "GET", "/api/favourites")
		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Favourites []entities.Breed `json:"favourites"`
			Total      int              `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 2, response.Total)
		require.Len(t, response.Favourites, 2)
		assert.Equal(t, "sibe", response.Favourites[0].ID)
		assert.Equal(t, "abys", response.Favourites[1].ID)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		router := setupFavouritesRouter(newFakeList(), &fakeFavorites{})

		w := doRequest(router, "GET", "/api/favourites")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"favourites":[]`)
	})
}
