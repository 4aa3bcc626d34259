// internal/domain/cart/store_port.go
package cart

import "context"

// Store is the outbound port for the remote cart write.
//
// Required contract (all implementations):
// - AddItem is an upsert keyed by (userID, draft.ProductID).
// - A repeated add for the same key accumulates quantity server-side;
//   it never appends a duplicate line item.
// - A nil return means the backend accepted the write. Any non-nil error
//   (transport failure, rejection, timeout) is "not accepted"; the caller
//   does not branch on error detail beyond logging it.
//
// Implementations:
// - adapters/out/http:      REST client against an external cart API
// - adapters/out/firestore: Firestore-backed store
// - adapters/out/db:        PostgreSQL-backed store
type Store interface {
	AddItem(ctx context.Context, userID string, draft ItemDraft) error
}
