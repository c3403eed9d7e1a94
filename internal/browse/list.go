package browse

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/mrlokans/breedy/internal/breeds"
	"github.com/mrlokans/breedy/internal/entities"
	"github.com/mrlokans/breedy/internal/watch"
)

const listTopic = "list"

// MaxFetchPages bounds a single multi-page fetch.
const MaxFetchPages = 20

// ListState is a snapshot of the breed list.
type ListState struct {
	Breeds        []BreedItem `json:"breeds"`
	Loading       bool        `json:"loading"`
	Error         bool        `json:"error"`
	ErrorMessage  string      `json:"error_message,omitempty"`
	FavoritesOnly bool        `json:"favorites_only"`
}

func (s ListState) equal(o ListState) bool {
	return s.Loading == o.Loading &&
		s.Error == o.Error &&
		s.ErrorMessage == o.ErrorMessage &&
		s.FavoritesOnly == o.FavoritesOnly &&
		slices.Equal(s.Breeds, o.Breeds)
}

// List follows the stored breeds and favorites and keeps the list state.
// An empty breed set triggers a fetch of the next page.
type List struct {
	breeds  BreedSource
	favs    FavoriteSource
	changes *watch.Notifier

	fetching   atomic.Bool
	refreshing atomic.Bool

	mu        sync.Mutex
	received  bool
	all       []entities.Breed
	favorites map[string]bool
	errMsg    string
}

func NewList(src BreedSource, favs FavoriteSource) *List {
	return &List{
		breeds:    src,
		favs:      favs,
		changes:   watch.NewNotifier(),
		favorites: make(map[string]bool),
	}
}

// Start subscribes to the stored breeds and favorites until ctx is
// cancelled. Once the first breeds arrive, a refresh runs in the background.
func (l *List) Start(ctx context.Context) {
	go l.followBreeds(ctx, l.breeds.ObserveBreeds(ctx))
	go l.followFavorites(ctx, l.favs.ObserveFavorites(ctx))
}

func (l *List) followBreeds(ctx context.Context, feed *watch.Feed[[]entities.Breed]) {
	first := true
	for all := range feed.C() {
		l.mu.Lock()
		l.received = true
		l.all = all
		l.mu.Unlock()
		l.changes.Notify(listTopic)

		switch {
		case len(all) == 0:
			go l.background(ctx, "fetch", func() error { return l.FetchMore(ctx) })
		case first:
			go l.background(ctx, "refresh", func() error {
				_, err := l.Refresh(ctx)
				return err
			})
		}
		first = false
	}
	if err := feed.Err(); err != nil {
		log.Printf("[BROWSE] Breed feed ended: %v", err)
		l.setError(err)
	}
}

func (l *List) followFavorites(ctx context.Context, feed *watch.Feed[[]entities.Breed]) {
	for favs := range feed.C() {
		set := make(map[string]bool, len(favs))
		for _, b := range favs {
			set[b.ID] = true
		}
		l.mu.Lock()
		l.favorites = set
		l.mu.Unlock()
		l.changes.Notify(listTopic)
	}
	if err := feed.Err(); err != nil {
		log.Printf("[BROWSE] Favorites feed ended: %v", err)
		l.setError(err)
	}
}

func (l *List) background(ctx context.Context, name string, job func() error) {
	if err := job(); err != nil && !errors.Is(err, ErrBusy) && ctx.Err() == nil {
		log.Printf("[BROWSE] Background %s failed: %v", name, err)
	}
}

// State returns the current list, optionally only favorites.
func (l *List) State(favoritesOnly bool) ListState {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]BreedItem, 0, len(l.all))
	for _, b := range l.all {
		fav := l.favorites[b.ID]
		if favoritesOnly && !fav {
			continue
		}
		items = append(items, BreedItem{Breed: b, Favorite: fav})
	}

	return ListState{
		Breeds:        items,
		Loading:       !l.received || l.fetching.Load(),
		Error:         l.errMsg != "",
		ErrorMessage:  l.errMsg,
		FavoritesOnly: favoritesOnly,
	}
}

// Watch returns a live view of State. Unchanged states are not repeated.
func (l *List) Watch(ctx context.Context, favoritesOnly bool) *watch.Feed[ListState] {
	load := func(context.Context) (ListState, error) {
		return l.State(favoritesOnly), nil
	}
	return watch.Query(ctx, l.changes, load, ListState.equal, listTopic)
}

// FetchMore stores the next catalog page. It returns ErrBusy if a fetch is
// already running.
func (l *List) FetchMore(ctx context.Context) error {
	_, err := l.FetchPages(ctx, 1)
	return err
}

// FetchPages stores up to pages catalog pages after the cursor, one at a
// time, and returns how many were stored. It stops early at the end of the
// catalog, where a page comes back empty and the cursor stays put.
func (l *List) FetchPages(ctx context.Context, pages int) (int, error) {
	if pages < 1 || pages > MaxFetchPages {
		return 0, fmt.Errorf("%w: %d, want 1 to %d", ErrInvalidPages, pages, MaxFetchPages)
	}
	if !l.fetching.CompareAndSwap(false, true) {
		return 0, ErrBusy
	}
	l.changes.Notify(listTopic)

	fetched, err := l.fetchPages(ctx, pages)

	l.fetching.Store(false)
	l.setError(err)
	l.changes.Notify(listTopic)
	return fetched, err
}

func (l *List) fetchPages(ctx context.Context, pages int) (int, error) {
	for i := 0; i < pages; i++ {
		before, err := l.breeds.Cursor(ctx)
		if err != nil {
			return i, err
		}
		if err := l.breeds.FetchMoreBreeds(ctx); err != nil {
			return i, err
		}
		after, err := l.breeds.Cursor(ctx)
		if err != nil {
			return i, err
		}
		if after == before {
			log.Printf("[BROWSE] End of catalog reached after %d page(s)", i)
			return i, nil
		}
	}
	return pages, nil
}

// Refresh reconciles the stored breeds with the catalog. It returns ErrBusy
// if a refresh is already running.
func (l *List) Refresh(ctx context.Context) (breeds.SyncResult, error) {
	if !l.refreshing.CompareAndSwap(false, true) {
		return breeds.SyncResult{}, ErrBusy
	}
	defer l.refreshing.Store(false)

	result, err := l.breeds.RefreshLocalBreeds(ctx)
	l.setError(err)
	return result, err
}

// SetFavorite marks or unmarks id.
func (l *List) SetFavorite(ctx context.Context, id string, favorite bool) error {
	err := setFavorite(ctx, l.breeds, l.favs, id, favorite)
	l.setError(err)
	return err
}

// ClearError dismisses the current error.
func (l *List) ClearError() {
	l.setError(nil)
}

func (l *List) setError(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	l.mu.Lock()
	changed := l.errMsg != msg
	l.errMsg = msg
	l.mu.Unlock()
	if changed {
		l.changes.Notify(listTopic)
	}
}
