// internal/domain/cart/cache_test.go
package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widget(qty int) Entry {
	return Entry{ProductID: "p1", Title: "Widget", UnitPrice: 9.99, Quantity: qty}
}

func TestLocalCacheUpsert(t *testing.T) {
	t.Run("insert then merge accumulates quantity", func(t *testing.T) {
		c := NewLocalCache()

		got := c.Upsert(widget(1))
		assert.Equal(t, 1, got.Quantity)

		got = c.Upsert(widget(2))
		assert.Equal(t, 3, got.Quantity)

		snap := c.Snapshot()
		require.Len(t, snap, 1)
		assert.Equal(t, 3, snap[0].Quantity)
	})

	t.Run("merge keeps originally stored fields", func(t *testing.T) {
		c := NewLocalCache()
		c.Upsert(Entry{ProductID: "p1", Title: "Widget", UnitPrice: 9.99, ImageRef: "a.png", Quantity: 1})

		got := c.Upsert(Entry{ProductID: "p1", Title: "Renamed", UnitPrice: 1.00, ImageRef: "b.png", Quantity: 1})

		assert.Equal(t, "Widget", got.Title)
		assert.Equal(t, 9.99, got.UnitPrice)
		assert.Equal(t, "a.png", got.ImageRef)
		assert.Equal(t, 2, got.Quantity)
	})

	t.Run("replace policy overwrites quantity", func(t *testing.T) {
		c := NewLocalCacheWithPolicy(MergeReplace)
		c.Upsert(widget(3))
		got := c.Upsert(widget(1))

		assert.Equal(t, 1, got.Quantity)
	})

	t.Run("distinct products get distinct entries in insertion order", func(t *testing.T) {
		c := NewLocalCache()
		c.Upsert(Entry{ProductID: "b", Title: "B", Quantity: 1})
		c.Upsert(Entry{ProductID: "a", Title: "A", Quantity: 1})

		snap := c.Snapshot()
		require.Len(t, snap, 2)
		assert.Equal(t, "b", snap[0].ProductID)
		assert.Equal(t, "a", snap[1].ProductID)
	})
}

func TestLocalCacheSnapshot(t *testing.T) {
	t.Run("repeated snapshot without mutation is identical", func(t *testing.T) {
		c := NewLocalCache()
		c.Upsert(widget(2))

		first := c.Snapshot()
		second := c.Snapshot()
		assert.Equal(t, first, second)
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		c := NewLocalCache()
		c.Upsert(widget(1))

		snap := c.Snapshot()
		snap[0].Quantity = 99

		assert.Equal(t, 1, c.Snapshot()[0].Quantity)
	})

	t.Run("empty cache snapshots to an empty slice", func(t *testing.T) {
		c := NewLocalCache()
		assert.Empty(t, c.Snapshot())
	})
}

func TestLocalCacheClear(t *testing.T) {
	c := NewLocalCache()
	c.Upsert(widget(1))
	c.Upsert(Entry{ProductID: "p2", Title: "Gadget", Quantity: 1})
	require.Equal(t, 2, c.Len())

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Snapshot())
}

func TestLocalCacheConcurrentUpsert(t *testing.T) {
	// Concurrent adds for the same productId must not lose an increment.
	c := NewLocalCache()

	const workers = 32
	const addsPerWorker = 25

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < addsPerWorker; j++ {
				c.Upsert(widget(1))
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, workers*addsPerWorker, snap[0].Quantity)
}
