// internal/application/usecase/cart_mutation_usecase.go
package usecase

import (
	"context"
	"log"

	cartdom "tokoonline/internal/domain/cart"
	iddom "tokoonline/internal/domain/identity"
)

// CartMutationUsecase is the add-to-cart mutation core.
//
// Collaborators are constructor-injected (never reached through ambient
// globals) so the core stays testable in isolation:
// - gate:  resolves the acting identity (Authenticated / Anonymous)
// - store: the remote cart write (authoritative)
// - cache: the local mirror, written only after the remote confirms
type CartMutationUsecase struct {
	gate  iddom.Gate
	store cartdom.Store
	cache *cartdom.LocalCache
}

func NewCartMutationUsecase(gate iddom.Gate, store cartdom.Store, cache *cartdom.LocalCache) *CartMutationUsecase {
	return &CartMutationUsecase{
		gate:  gate,
		store: store,
		cache: cache,
	}
}

// AddToCart performs one add-to-cart mutation for draft.
//
// Ordering is load-bearing:
//  1. identity first: an anonymous actor never reaches the backend and
//     never mutates local state
//  2. remote write second (write-through, authoritative)
//  3. local cache last, only after the remote confirmed the write
//
// Every failure mode comes back as an Outcome value; nothing is raised past
// this boundary. Safe to call again after a RemoteFailure (no retry here;
// retry policy belongs to the transport).
func (uc *CartMutationUsecase) AddToCart(ctx context.Context, draft cartdom.ItemDraft) cartdom.Outcome {
	if uc == nil || uc.gate == nil || uc.store == nil || uc.cache == nil {
		log.Printf("[cart_mutation] ERROR: usecase not configured (gate=%t store=%t cache=%t)",
			uc != nil && uc.gate != nil, uc != nil && uc.store != nil, uc != nil && uc.cache != nil)
		return cartdom.RemoteFailureOutcome("cart mutation core is not configured")
	}

	// Defensive guard: a malformed draft is a presentation-layer bug.
	// Log loudly, reject as a value, never crash.
	if err := draft.Validate(); err != nil {
		log.Printf("[cart_mutation] ERROR: invalid draft from caller productId=%q title=%q qty=%d price=%v: %v",
			draft.ProductID, draft.Title, draft.Quantity, draft.UnitPrice, err)
		return cartdom.InvalidDraftOutcome(err.Error())
	}

	id := uc.gate.ResolveIdentity(ctx)
	if !id.IsAuthenticated() {
		// No remote call, no cache mutation.
		return cartdom.UnauthenticatedOutcome()
	}

	if err := uc.store.AddItem(ctx, id.UserID(), draft); err != nil {
		// Reason is kept for logs; presentation only gets the generic signal.
		log.Printf("[cart_mutation] remote write failed userId=%s productId=%s: %v",
			id.UserID(), draft.ProductID, err)
		return cartdom.RemoteFailureOutcome(err.Error())
	}

	entry := uc.cache.Upsert(cartdom.EntryFromDraft(draft))
	return cartdom.SuccessOutcome(entry)
}

// Snapshot exposes the local mirror for display.
func (uc *CartMutationUsecase) Snapshot() []cartdom.Entry {
	if uc == nil || uc.cache == nil {
		return []cartdom.Entry{}
	}
	return uc.cache.Snapshot()
}
