package http

import (
	"context"
	"sync"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/breedy/internal/breeds"
	"github.com/mrlokans/breedy/internal/browse"
	"github.com/mrlokans/breedy/internal/entities"
	"github.com/mrlokans/breedy/internal/watch"
)

type fakeList struct {
	mu         sync.Mutex
	state      browse.ListState
	changes    *watch.Notifier
	fetchErr   error
	fetches    int
	pages      []int
	available  int
	result     breeds.SyncResult
	refreshErr error
	refreshes  int
	favorites  map[string]bool
	setErr     error
	cleared    bool
}

func newFakeList(items ...browse.BreedItem) *fakeList {
	return &fakeList{
		state:     browse.ListState{Breeds: items},
		changes:   watch.NewNotifier(),
		favorites: make(map[string]bool),
		available: 1,
	}
}

func (l *fakeList) State(favoritesOnly bool) browse.ListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	state := l.state
	state.FavoritesOnly = favoritesOnly
	if favoritesOnly {
		state.Breeds = nil
		for _, item := range l.state.Breeds {
			if item.Favorite {
				state.Breeds = append(state.Breeds, item)
			}
		}
	}
	return state
}

func (l *fakeList) setState(state browse.ListState) {
	l.mu.Lock()
	l.state = state
	l.mu.Unlock()
	l.changes.Notify("list")
}

func (l *fakeList) Watch(ctx context.Context, favoritesOnly bool) *watch.Feed[browse.ListState] {
	load := func(context.Context) (browse.ListState, error) {
		return l.State(favoritesOnly), nil
	}
	equal := func(a, b browse.ListState) bool { return false }
	return watch.Query(ctx, l.changes, load, equal, "list")
}

// FetchPages stores at most available pages.
func (l *fakeList) FetchPages(ctx context.Context, pages int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fetches++
	l.pages = append(l.pages, pages)
	if l.fetchErr != nil {
		return 0, l.fetchErr
	}
	return min(pages, l.available), nil
}

func (l *fakeList) Refresh(ctx context.Context) (breeds.SyncResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refreshes++
	return l.result, l.refreshErr
}

func (l *fakeList) SetFavorite(ctx context.Context, id string, favorite bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.setErr != nil {
		return l.setErr
	}
	l.favorites[id] = favorite
	return nil
}

func (l *fakeList) ClearError() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cleared = true
	l.state.Error = false
	l.state.ErrorMessage = ""
}

type fakeSearch struct {
	state browse.SearchState
	err   error
	query string
}

func (s *fakeSearch) Search(ctx context.Context, query string) (browse.SearchState, error) {
	s.query = query
	return s.state, s.err
}

type fakeDetails struct {
	breeds    map[string]entities.Breed
	favorites map[string]bool
	err       error
}

func (d *fakeDetails) Get(ctx context.Context, id string) (browse.DetailsState, bool, error) {
	breed, ok := d.breeds[id]
	if !ok {
		return browse.DetailsState{}, false, nil
	}
	if d.err != nil {
		return browse.DetailsState{}, true, d.err
	}
	return browse.DetailsState{Breed: breed, Favorite: d.favorites[id]}, true, nil
}

// Watch emits the current state once.
func (d *fakeDetails) Watch(ctx context.Context, id string) (*watch.Feed[browse.DetailsState], bool) {
	breed, ok := d.breeds[id]
	if !ok {
		return nil, false
	}
	load := func(context.Context) (browse.DetailsState, error) {
		return browse.DetailsState{Breed: breed, Favorite: d.favorites[id]}, nil
	}
	equal := func(a, b browse.DetailsState) bool { return false }
	return watch.Query(ctx, watch.NewNotifier(), load, equal, "details"), true
}

type fakeQueue struct {
	mu       sync.Mutex
	enqueued []backlite.Task
	err      error
	statuses map[string]backlite.TaskStatus
}

func (q *fakeQueue) Enqueue(ctx context.Context, task backlite.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return "", q.err
	}
	q.enqueued = append(q.enqueued, task)
	return "task-1", nil
}

func (q *fakeQueue) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	if status, ok := q.statuses[taskID]; ok {
		return status, nil
	}
	return backlite.TaskStatusNotFound, nil
}

type fakeFavorites struct {
	breeds []entities.Breed
}

func (f *fakeFavorites) ObserveFavorites(ctx context.Context) *watch.Feed[[]entities.Breed] {
	load := func(context.Context) ([]entities.Breed, error) { return f.breeds, nil }
	return watch.Query(ctx, watch.NewNotifier(), load, func(a, b []entities.Breed) bool { return false }, "favorite_breeds")
}
