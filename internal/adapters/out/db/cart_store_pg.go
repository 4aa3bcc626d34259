// internal/adapters/out/db/cart_store_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	cartdom "tokoonline/internal/domain/cart"
)

// CartStorePG implements cart.Store on PostgreSQL (lib/pq driver).
//
// Table:
//
//	CREATE TABLE cart_items (
//	  user_id    TEXT NOT NULL,
//	  product_id TEXT NOT NULL,
//	  title      TEXT NOT NULL,
//	  unit_price NUMERIC(12,2) NOT NULL,
//	  image_ref  TEXT,
//	  quantity   INTEGER NOT NULL CHECK (quantity > 0),
//	  created_at TIMESTAMPTZ NOT NULL,
//	  updated_at TIMESTAMPTZ NOT NULL,
//	  PRIMARY KEY (user_id, product_id)
//	);
//
// The ON CONFLICT clause is what makes the write an upsert-by-(userId,
// productId) with quantity accumulation, matching the contract the local
// cache assumes. Title/price/image keep their first stored values.
type CartStorePG struct {
	db *sql.DB
}

func NewCartStorePG(db *sql.DB) *CartStorePG {
	return &CartStorePG{db: db}
}

// AddItem implements cart.Store.
func (s *CartStorePG) AddItem(ctx context.Context, userID string, draft cartdom.ItemDraft) error {
	if s == nil || s.db == nil {
		return errors.New("cart_store_pg: db is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("cart_store_pg: userID is empty")
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	const q = `
INSERT INTO cart_items (user_id, product_id, title, unit_price, image_ref, quantity, created_at, updated_at)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $7)
ON CONFLICT (user_id, product_id) DO UPDATE
SET quantity   = cart_items.quantity + EXCLUDED.quantity,
    updated_at = EXCLUDED.updated_at
`
	_, err := s.db.ExecContext(ctx, q,
		uid,
		strings.TrimSpace(draft.ProductID),
		strings.TrimSpace(draft.Title),
		draft.UnitPrice,
		strings.TrimSpace(draft.ImageRef),
		draft.Quantity,
		now,
	)
	return err
}
