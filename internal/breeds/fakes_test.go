package breeds

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/mrlokans/breedy/internal/catalog"
	"github.com/mrlokans/breedy/internal/entities"
	"github.com/mrlokans/breedy/internal/watch"
)

var errDiskFull = errors.New("disk full")

type fakeCatalog struct {
	mu            sync.Mutex
	pages         map[int][]entities.Breed
	failPages     map[int]bool
	searchResults []entities.Breed
	searchErr     error
	listCalls     []int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		pages:     make(map[int][]entities.Breed),
		failPages: make(map[int]bool),
	}
}

func (f *fakeCatalog) ListBreeds(ctx context.Context, limit, page int) ([]entities.Breed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, page)
	if f.failPages[page] {
		return nil, &catalog.NetworkError{Op: "list breeds", Err: errors.New("connection refused")}
	}
	records := f.pages[page]
	if len(records) > limit {
		records = records[:limit]
	}
	return slices.Clone(records), nil
}

func (f *fakeCatalog) SearchBreeds(ctx context.Context, q string) ([]entities.Breed, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return slices.Clone(f.searchResults), nil
}

func (f *fakeCatalog) calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := slices.Clone(f.listCalls)
	sort.Ints(out)
	return out
}

// fakeStore is an in-memory BreedStore that signals its own notifier.
type fakeStore struct {
	mu          sync.Mutex
	rows        map[string]entities.BreedEntity
	failUpserts map[string]bool
	failDeletes map[string]bool
	failSelects bool
	upserts     int
	deletes     int
	changes     *watch.Notifier
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rows:        make(map[string]entities.BreedEntity),
		failUpserts: make(map[string]bool),
		failDeletes: make(map[string]bool),
		changes:     watch.NewNotifier(),
	}
}

func (s *fakeStore) Upsert(ctx context.Context, b entities.Breed) error {
	s.mu.Lock()
	if s.failUpserts[b.ID] {
		s.mu.Unlock()
		return errDiskFull
	}
	s.rows[b.ID] = entities.NewBreedEntity(b)
	s.upserts++
	s.mu.Unlock()
	s.changes.Notify("breeds")
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.failDeletes[id] {
		s.mu.Unlock()
		return errDiskFull
	}
	delete(s.rows, id)
	s.deletes++
	s.mu.Unlock()
	s.changes.Notify("breeds")
	return nil
}

func (s *fakeStore) selectAll(ctx context.Context) ([]entities.BreedEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entities.BreedEntity, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeStore) Watch(ctx context.Context) *watch.Feed[[]entities.BreedEntity] {
	return watch.Query(ctx, s.changes, s.selectAll, slices.Equal[[]entities.BreedEntity], "breeds")
}

func (s *fakeStore) SelectByNameLike(ctx context.Context, name string) ([]entities.BreedEntity, error) {
	rows, _ := s.selectAll(ctx)
	var out []entities.BreedEntity
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Name), strings.ToLower(name)) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *fakeStore) SelectByID(ctx context.Context, id string) (*entities.BreedEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSelects {
		return nil, errDiskFull
	}
	row, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *fakeStore) has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[id]
	return ok
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

type fakePrefs struct {
	mu      sync.Mutex
	values  map[string]int
	readErr error
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{values: make(map[string]int)}
}

func (p *fakePrefs) ReadInt(ctx context.Context, key string, def int) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.readErr != nil {
		return def, p.readErr
	}
	v, ok := p.values[key]
	if !ok {
		return def, nil
	}
	return v, nil
}

func (p *fakePrefs) WriteInt(ctx context.Context, key string, value int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
	return nil
}

func (p *fakePrefs) Delete(ctx context.Context, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.values, key)
	return nil
}

func page(prefix string, n int) []entities.Breed {
	out := make([]entities.Breed, n)
	for i := range out {
		id := prefix + string(rune('a'+i))
		out[i] = entities.Breed{ID: id, Name: "Breed " + id, CreatedAt: 1}
	}
	return out
}
