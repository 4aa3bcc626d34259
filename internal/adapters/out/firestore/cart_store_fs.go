// internal/adapters/out/firestore/cart_store_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "tokoonline/internal/domain/cart"
)

// DefaultCartTTL is the inactivity window after which a cart doc becomes
// eligible for auto deletion (configure Firestore TTL on "expiresAt").
const DefaultCartTTL = 7 * 24 * time.Hour

// CartStoreFS implements cart.Store using Firestore.
//
// Collection design:
// - collection: carts
// - docId: userId (docId is the source of truth)
// - fields: items (map productId -> item), createdAt, updatedAt, expiresAt
//
// The upsert-by-(userId, productId) accumulation contract is enforced with a
// transaction: read-modify-write on the doc, so concurrent adds for the same
// product never lose an increment.
type CartStoreFS struct {
	Client *firestore.Client
}

func NewCartStoreFS(client *firestore.Client) *CartStoreFS {
	return &CartStoreFS{Client: client}
}

func (s *CartStoreFS) col() *firestore.CollectionRef {
	return s.Client.Collection("carts")
}

// AddItem implements cart.Store.
func (s *CartStoreFS) AddItem(ctx context.Context, userID string, draft cartdom.ItemDraft) error {
	if s == nil || s.Client == nil {
		return errors.New("cart_store_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("cart_store_fs: userID is empty")
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	pid := strings.TrimSpace(draft.ProductID)
	ref := s.col().Doc(uid)

	return s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now().UTC()

		doc := cartDoc{Items: map[string]cartItemDoc{}}

		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			if derr := snap.DataTo(&doc); derr != nil {
				return derr
			}
			if doc.Items == nil {
				doc.Items = map[string]cartItemDoc{}
			}
		case status.Code(err) == codes.NotFound:
			doc.CreatedAt = now
		default:
			return err
		}

		if doc.CreatedAt.IsZero() {
			doc.CreatedAt = now
		}

		if it, ok := doc.Items[pid]; ok {
			it.Qty += draft.Quantity
			doc.Items[pid] = it
		} else {
			doc.Items[pid] = cartItemDoc{
				ProductID: pid,
				Title:     strings.TrimSpace(draft.Title),
				Price:     draft.UnitPrice,
				Image:     strings.TrimSpace(draft.ImageRef),
				Qty:       draft.Quantity,
			}
		}

		doc.UpdatedAt = now
		doc.ExpiresAt = now.Add(DefaultCartTTL)

		return tx.Set(ref, doc)
	})
}

// -----------------------------------------
// Firestore DTO
// -----------------------------------------
// The domain structs are not used as Firestore DTOs directly; the doc shape
// stays free to evolve without touching the domain.

type cartDoc struct {
	Items map[string]cartItemDoc `firestore:"items"`

	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
	ExpiresAt time.Time `firestore:"expiresAt"`
}

type cartItemDoc struct {
	ProductID string  `firestore:"productId"`
	Title     string  `firestore:"title"`
	Price     float64 `firestore:"price"`
	Image     string  `firestore:"image"`
	Qty       int     `firestore:"qty"`
}
