// internal/application/usecase/cart_mutation_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "tokoonline/internal/domain/cart"
	iddom "tokoonline/internal/domain/identity"
)

// fixedGate resolves the same identity on every call.
type fixedGate struct {
	id iddom.Identity
}

func (g fixedGate) ResolveIdentity(context.Context) iddom.Identity { return g.id }

// spyStore counts remote writes and fails on demand.
type spyStore struct {
	calls atomic.Int64
	err   error

	mu     sync.Mutex
	writes []string // userIDs seen
}

func (s *spyStore) AddItem(_ context.Context, userID string, _ cartdom.ItemDraft) error {
	s.calls.Add(1)
	s.mu.Lock()
	s.writes = append(s.writes, userID)
	s.mu.Unlock()
	return s.err
}

func newCore(id iddom.Identity, store *spyStore) (*CartMutationUsecase, *cartdom.LocalCache) {
	cache := cartdom.NewLocalCache()
	return NewCartMutationUsecase(fixedGate{id: id}, store, cache), cache
}

func widgetDraft() cartdom.ItemDraft {
	return cartdom.ItemDraft{ProductID: "p1", Title: "Widget", UnitPrice: 9.99, Quantity: 1}
}

func TestAddToCart_Success(t *testing.T) {
	// Scenario A: authenticated, remote accepts.
	store := &spyStore{}
	core, cache := newCore(iddom.Authenticated("u1"), store)

	out := core.AddToCart(context.Background(), widgetDraft())

	require.True(t, out.IsSuccess())
	entry, ok := out.Entry()
	require.True(t, ok)
	assert.Equal(t, "p1", entry.ProductID)
	assert.Equal(t, 1, entry.Quantity)

	snap := cache.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].Quantity)
	assert.EqualValues(t, 1, store.calls.Load())
	assert.Equal(t, []string{"u1"}, store.writes)
}

func TestAddToCart_RepeatedAddAccumulates(t *testing.T) {
	// Scenario B: same draft twice -> one entry, quantity 2.
	store := &spyStore{}
	core, cache := newCore(iddom.Authenticated("u1"), store)

	first := core.AddToCart(context.Background(), widgetDraft())
	require.True(t, first.IsSuccess())

	second := core.AddToCart(context.Background(), widgetDraft())
	require.True(t, second.IsSuccess())

	entry, _ := second.Entry()
	assert.Equal(t, 2, entry.Quantity)

	snap := cache.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, 2, snap[0].Quantity)

	// Each invocation is an independent remote write (no client-side dedupe).
	assert.EqualValues(t, 2, store.calls.Load())
}

func TestAddToCart_Anonymous(t *testing.T) {
	// Scenario C: anonymous -> Unauthenticated, no remote call, no cache write.
	store := &spyStore{}
	core, cache := newCore(iddom.Anonymous(), store)

	out := core.AddToCart(context.Background(), widgetDraft())

	assert.True(t, out.IsUnauthenticated())
	assert.Equal(t, cartdom.ShowUnauthenticatedWarning, out.Notification())
	assert.Empty(t, cache.Snapshot())
	assert.EqualValues(t, 0, store.calls.Load(), "remote collaborator must never be invoked")
}

func TestAddToCart_RemoteFailure(t *testing.T) {
	// Scenario D: remote rejects -> RemoteFailure, cache untouched.
	store := &spyStore{err: errors.New("status=500")}
	core, cache := newCore(iddom.Authenticated("u1"), store)

	before := cache.Snapshot()
	out := core.AddToCart(context.Background(), widgetDraft())

	assert.True(t, out.IsRemoteFailure())
	assert.Equal(t, cartdom.ShowGenericFailure, out.Notification())
	assert.Equal(t, before, cache.Snapshot(), "cache must be byte-for-byte identical after a failure")
}

func TestAddToCart_RetrySafeAfterFailure(t *testing.T) {
	store := &spyStore{err: errors.New("timeout")}
	core, cache := newCore(iddom.Authenticated("u1"), store)

	out := core.AddToCart(context.Background(), widgetDraft())
	require.True(t, out.IsRemoteFailure())

	// Same operation again after the transport recovers.
	store.err = nil
	out = core.AddToCart(context.Background(), widgetDraft())

	require.True(t, out.IsSuccess())
	snap := cache.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].Quantity)
}

func TestAddToCart_InvalidDraft(t *testing.T) {
	store := &spyStore{}
	core, cache := newCore(iddom.Authenticated("u1"), store)

	out := core.AddToCart(context.Background(), cartdom.ItemDraft{Title: "no product id", Quantity: 1})

	assert.True(t, out.IsInvalidDraft())
	assert.Equal(t, cartdom.ShowGenericFailure, out.Notification())
	assert.Empty(t, cache.Snapshot())
	assert.EqualValues(t, 0, store.calls.Load())
}

func TestAddToCart_ConcurrentSameProduct(t *testing.T) {
	// Two (and more) concurrent adds for the same product, all accepted
	// remotely, must end with the summed quantity: no lost update.
	store := &spyStore{}
	core, cache := newCore(iddom.Authenticated("u1"), store)

	const concurrent = 16

	var wg sync.WaitGroup
	wg.Add(concurrent)
	for i := 0; i < concurrent; i++ {
		go func() {
			defer wg.Done()
			out := core.AddToCart(context.Background(), widgetDraft())
			assert.True(t, out.IsSuccess())
		}()
	}
	wg.Wait()

	snap := cache.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, concurrent, snap[0].Quantity)
	assert.EqualValues(t, concurrent, store.calls.Load())
}

func TestAddToCart_DistinctProducts(t *testing.T) {
	store := &spyStore{}
	core, cache := newCore(iddom.Authenticated("u1"), store)

	drafts := []cartdom.ItemDraft{
		{ProductID: "p1", Title: "Widget", UnitPrice: 9.99, Quantity: 1},
		{ProductID: "p2", Title: "Gadget", UnitPrice: 4.50, Quantity: 1},
		{ProductID: "p1", Title: "Widget", UnitPrice: 9.99, Quantity: 1},
	}
	for _, d := range drafts {
		out := core.AddToCart(context.Background(), d)
		require.True(t, out.IsSuccess())
	}

	snap := cache.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "p1", snap[0].ProductID)
	assert.Equal(t, 2, snap[0].Quantity)
	assert.Equal(t, "p2", snap[1].ProductID)
	assert.Equal(t, 1, snap[1].Quantity)
}
