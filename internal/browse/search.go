package browse

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/iter"

	"github.com/mrlokans/breedy/internal/catalog"
	"github.com/mrlokans/breedy/internal/entities"
)

// Where search results came from.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

// SearchState is the outcome of one search.
type SearchState struct {
	Query        string      `json:"query"`
	Breeds       []BreedItem `json:"breeds"`
	Source       string      `json:"source,omitempty"`
	Error        bool        `json:"error"`
	ErrorMessage string      `json:"error_message,omitempty"`
}

// Search runs breed searches and remembers the last results, so a result
// can be favorited even after it left the cache.
type Search struct {
	breeds BreedSource
	favs   FavoriteSource

	mu      sync.Mutex
	results map[string]entities.Breed
}

func NewSearch(src BreedSource, favs FavoriteSource) *Search {
	return &Search{breeds: src, favs: favs, results: make(map[string]entities.Breed)}
}

// Search asks the remote catalog first. When the catalog cannot be reached
// the stored breeds are searched instead; if that finds nothing too, the
// network failure is reported in the state. Other failures are returned.
func (s *Search) Search(ctx context.Context, query string) (SearchState, error) {
	query = strings.TrimSpace(query)
	state := SearchState{Query: query, Breeds: []BreedItem{}}
	if query == "" {
		return state, nil
	}

	results, err := s.breeds.SearchByName(ctx, query)
	switch {
	case err == nil:
		state.Source = SourceRemote
	case errors.Is(err, catalog.ErrNetwork):
		log.Printf("[BROWSE] Remote search for %q failed, searching stored breeds: %v", query, err)
		local, localErr := s.breeds.SearchByNameLocally(ctx, query)
		if localErr != nil {
			return state, localErr
		}
		if len(local) == 0 {
			state.Error = true
			state.ErrorMessage = err.Error()
			return state, nil
		}
		results = local
		state.Source = SourceLocal
	default:
		return state, err
	}

	s.remember(results)
	state.Breeds = s.withFavorites(ctx, results)
	return state, nil
}

// SetFavorite marks or unmarks a search result. Marking stores the breed
// unless it is stored already. Breeds not in the last results are looked up
// in the cache.
func (s *Search) SetFavorite(ctx context.Context, id string, favorite bool) error {
	breed, known := s.result(id)
	if !known {
		breed, known = s.breeds.GetBreed(id)
	}
	return markFavorite(ctx, s.breeds, s.favs, id, favorite, breed, known)
}

func (s *Search) remember(results []entities.Breed) {
	last := make(map[string]entities.Breed, len(results))
	for _, b := range results {
		last[b.ID] = b
	}
	s.mu.Lock()
	s.results = last
	s.mu.Unlock()
}

func (s *Search) result(id string) (entities.Breed, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.results[id]
	return b, ok
}

func (s *Search) withFavorites(ctx context.Context, results []entities.Breed) []BreedItem {
	return iter.Map(results, func(b *entities.Breed) BreedItem {
		fav, err := isFavoriteNow(ctx, s.favs, b.ID)
		if err != nil {
			log.Printf("[BROWSE] Favorite status of %s unavailable: %v", b.ID, err)
		}
		return BreedItem{Breed: *b, Favorite: fav}
	})
}
