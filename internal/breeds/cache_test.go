package breeds

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/breedy/internal/entities"
)

func TestCache_PutOverwrites(t *testing.T) {
	c := NewCache()

	_, ok := c.Get("abys")
	assert.False(t, ok)

	c.Put(breed("abys", "Abyssinian"))
	c.Put(breed("abys", "Abyssinian Cat"))

	got, ok := c.Get("abys")
	require.True(t, ok)
	assert.Equal(t, "Abyssinian Cat", got.Name)
	assert.Equal(t, 1, len(c.Snapshot()))
}

func TestCache_SnapshotIsACopy(t *testing.T) {
	c := NewCache()
	c.PutAll([]entities.Breed{breed("1", "A"), breed("2", "B")})

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	snap[0].Name = "changed"

	for _, id := range []string{"1", "2"} {
		got, ok := c.Get(id)
		require.True(t, ok)
		assert.NotEqual(t, "changed", got.Name)
	}
}

func TestCache_Remove(t *testing.T) {
	c := NewCache()
	c.Put(breed("1", "A"))
	c.Remove("1")
	c.Remove("missing")

	_, ok := c.Get("1")
	assert.False(t, ok)
	assert.Zero(t, len(c.Snapshot()))
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := NewCache()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := fmt.Sprintf("id-%d", i)
			c.Put(breed(id, "name"))
			_, _ = c.Get(id)
			_ = c.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, len(c.Snapshot()))
}
