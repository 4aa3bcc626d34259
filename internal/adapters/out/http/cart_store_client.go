// internal/adapters/out/http/cart_store_client.go
package httpout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	cartdom "tokoonline/internal/domain/cart"
)

// CartStoreClient implements cart.Store against an external cart API.
//
// The backend is required to treat POST /api/cart as an upsert keyed by
// (userId, product.id) with quantity accumulation; the local cache assumes
// that semantics. Each write carries an Idempotency-Key so an upstream that
// honors it can also dedupe transport-level replays.
type CartStoreClient struct {
	baseURL string
	client  *http.Client
}

type cartWriteProduct struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Image    *string `json:"image"`
	Quantity int     `json:"quantity"`
}

type cartWritePayload struct {
	UserID  string           `json:"userId"`
	Product cartWriteProduct `json:"product"`
}

// baseURL example:
// - Cloud Run: https://xxxxx.asia-northeast1.run.app
// - local: http://localhost:3000
func NewCartStoreClient(baseURL string) *CartStoreClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	return &CartStoreClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// AddItem implements cart.Store.
// Any non-2xx status or transport error is "not accepted".
func (c *CartStoreClient) AddItem(ctx context.Context, userID string, draft cartdom.ItemDraft) error {
	if c == nil {
		return fmt.Errorf("cart store client is nil")
	}
	if c.baseURL == "" {
		return fmt.Errorf("cart store client baseURL is empty")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return fmt.Errorf("cart store client: userID is empty")
	}

	var image *string
	if img := strings.TrimSpace(draft.ImageRef); img != "" {
		image = &img
	}

	payload := cartWritePayload{
		UserID: uid,
		Product: cartWriteProduct{
			ID:       strings.TrimSpace(draft.ProductID),
			Title:    strings.TrimSpace(draft.Title),
			Price:    draft.UnitPrice,
			Image:    image,
			Quantity: draft.Quantity,
		},
	}

	b, _ := json.Marshal(payload)

	url := c.baseURL + "/api/cart"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	// Acceptance is a boolean signal; detailed codes stay the transport's concern.
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	return fmt.Errorf("cart write failed status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
}
