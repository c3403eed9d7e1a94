package breeds

import (
	"sync"

	"github.com/mrlokans/breedy/internal/entities"
)

// Cache is the in-memory id to breed lookup. The lock is held only for the
// map access itself.
type Cache struct {
	mu     sync.Mutex
	breeds map[string]entities.Breed
}

func NewCache() *Cache {
	return &Cache{breeds: make(map[string]entities.Breed)}
}

func (c *Cache) Get(id string) (entities.Breed, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.breeds[id]
	return b, ok
}

// Put overwrites the slot for breed.ID.
func (c *Cache) Put(breed entities.Breed) {
	c.mu.Lock()
	c.breeds[breed.ID] = breed
	c.mu.Unlock()
}

func (c *Cache) PutAll(breeds []entities.Breed) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, b := range breeds {
		c.breeds[b.ID] = b
	}
}

func (c *Cache) Remove(id string) {
	c.mu.Lock()
	delete(c.breeds, id)
	c.mu.Unlock()
}

// Snapshot returns a copy of the cached breeds in no particular order.
func (c *Cache) Snapshot() []entities.Breed {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entities.Breed, 0, len(c.breeds))
	for _, b := range c.breeds {
		out = append(out, b)
	}
	return out
}
