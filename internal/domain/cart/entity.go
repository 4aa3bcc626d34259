// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
)

var (
	ErrInvalidDraft = errors.New("cart: invalid draft")
)

// ItemDraft is the transient add-request payload.
// It is constructed per user action and discarded after the call;
// it is never stored as-is.
type ItemDraft struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	ImageRef  string  `json:"imageRef,omitempty"`
	Quantity  int     `json:"quantity"`
}

// NewItemDraft builds a normalized draft.
// quantity <= 0 falls back to 1 (the storefront always requests exactly 1 per click).
func NewItemDraft(productID, title string, unitPrice float64, imageRef string, quantity int) (ItemDraft, error) {
	if quantity <= 0 {
		quantity = 1
	}
	d := ItemDraft{
		ProductID: strings.TrimSpace(productID),
		Title:     strings.TrimSpace(title),
		UnitPrice: unitPrice,
		ImageRef:  strings.TrimSpace(imageRef),
		Quantity:  quantity,
	}
	if err := d.Validate(); err != nil {
		return ItemDraft{}, err
	}
	return d, nil
}

// Validate checks the preconditions the presentation layer is supposed to
// guarantee. A violation here indicates a caller bug, not a runtime condition.
func (d ItemDraft) Validate() error {
	if strings.TrimSpace(d.ProductID) == "" {
		return ErrInvalidDraft
	}
	if strings.TrimSpace(d.Title) == "" {
		return ErrInvalidDraft
	}
	if d.UnitPrice < 0 {
		return ErrInvalidDraft
	}
	if d.Quantity < 1 {
		return ErrInvalidDraft
	}
	return nil
}

// Entry is "one line item" in the local cart cache.
// Uniqueness is defined by ProductID (at most one entry per product).
type Entry struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	ImageRef  string  `json:"imageRef,omitempty"`
	Quantity  int     `json:"quantity"`
}

// EntryFromDraft converts a validated draft into a cache entry.
func EntryFromDraft(d ItemDraft) Entry {
	return Entry{
		ProductID: strings.TrimSpace(d.ProductID),
		Title:     strings.TrimSpace(d.Title),
		UnitPrice: d.UnitPrice,
		ImageRef:  strings.TrimSpace(d.ImageRef),
		Quantity:  d.Quantity,
	}
}
