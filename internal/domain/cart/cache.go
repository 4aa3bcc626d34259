// internal/domain/cart/cache.go
package cart

import "sync"

// MergePolicy decides what Upsert does when the productId already exists.
type MergePolicy int

const (
	// MergeAccumulate increments the stored quantity by the incoming one
	// (typical cart semantics; the default).
	MergeAccumulate MergePolicy = iota

	// MergeReplace overwrites the stored quantity with the incoming one.
	MergeReplace
)

// LocalCache is the client-owned in-memory mirror of one user's cart.
//
// It is only ever written by Upsert on a confirmed remote success, or by
// Clear on logout/reset. Reads go through Snapshot. All methods are safe
// for concurrent use; Upsert is an atomic read-modify-write so concurrent
// adds for the same productId never lose an increment.
type LocalCache struct {
	mu sync.Mutex

	// entries: productId -> stored entry
	entries map[string]Entry

	// order keeps insertion order for a stable Snapshot.
	order []string

	policy MergePolicy
}

// NewLocalCache creates an empty cache with the accumulate policy.
func NewLocalCache() *LocalCache {
	return NewLocalCacheWithPolicy(MergeAccumulate)
}

func NewLocalCacheWithPolicy(policy MergePolicy) *LocalCache {
	return &LocalCache{
		entries: map[string]Entry{},
		order:   []string{},
		policy:  policy,
	}
}

// Upsert inserts the entry, or merges it into the existing one with the same
// ProductID. On merge, every field except Quantity keeps the originally
// stored value (price/title are assumed stable per product).
// Returns the resulting stored entry (post-merge).
func (c *LocalCache) Upsert(e Entry) Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.entries[e.ProductID]
	if !ok {
		c.entries[e.ProductID] = e
		c.order = append(c.order, e.ProductID)
		return e
	}

	switch c.policy {
	case MergeReplace:
		existing.Quantity = e.Quantity
	default:
		existing.Quantity += e.Quantity
	}
	c.entries[e.ProductID] = existing
	return existing
}

// Snapshot returns the current contents in insertion order.
// The returned slice is a copy; mutating it does not affect the cache.
func (c *LocalCache) Snapshot() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, 0, len(c.order))
	for _, pid := range c.order {
		if e, ok := c.entries[pid]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of distinct products currently cached.
func (c *LocalCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear empties the cache. Invoked externally on logout / cache reset.
func (c *LocalCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]Entry{}
	c.order = []string{}
}
