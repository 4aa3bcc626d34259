// internal/adapters/in/http/handler/cart_handler.go
package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"tokoonline/internal/adapters/in/http/middleware"
	session "tokoonline/internal/application/session"
	cartdom "tokoonline/internal/domain/cart"
)

// CartHandler serves the storefront cart endpoints.
// Intended mounts (router side):
// - POST   /cart/items  : add-to-cart mutation
// - GET    /cart        : local cache snapshot (optimistic display)
// - DELETE /cart        : end session (logout clears the local mirror)
type CartHandler struct {
	Sessions *session.Manager
}

func NewCartHandler(sessions *session.Manager) http.Handler {
	return &CartHandler{Sessions: sessions}
}

// addItemRequest mirrors what the product card sends per click.
// quantity is optional and defaults to 1.
type addItemRequest struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// mutationResponse carries the three-valued notification signal.
// entry is present only on success; failure detail never leaves the server.
type mutationResponse struct {
	Signal cartdom.Notification `json:"signal"`
	Entry  *cartdom.Entry       `json:"entry,omitempty"`
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Sessions == nil {
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	// Tolerate router-side StripPrefix variations.
	path := strings.TrimRight(r.URL.Path, "/")
	if path == "" {
		path = "/"
	}

	switch {
	case r.Method == http.MethodPost && (strings.HasSuffix(path, "/cart/items") || path == "/items"):
		h.handleAddItem(w, r)
	case r.Method == http.MethodGet && (strings.HasSuffix(path, "/cart") || path == "/"):
		h.handleSnapshot(w, r)
	case r.Method == http.MethodDelete && (strings.HasSuffix(path, "/cart") || path == "/"):
		h.handleEndSession(w, r)
	default:
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}
	draft := cartdom.ItemDraft{
		ProductID: strings.TrimSpace(req.ProductID),
		Title:     strings.TrimSpace(req.Title),
		UnitPrice: req.Price,
		ImageRef:  strings.TrimSpace(req.Image),
		Quantity:  qty,
	}

	uid, _ := middleware.CurrentUserUID(r)
	sess := h.Sessions.SessionFor(uid)

	outcome := sess.Core.AddToCart(r.Context(), draft)

	resp := mutationResponse{Signal: outcome.Notification()}
	status := http.StatusOK
	switch {
	case outcome.IsSuccess():
		if e, ok := outcome.Entry(); ok {
			resp.Entry = &e
		}
	case outcome.IsUnauthenticated():
		status = http.StatusUnauthorized
	case outcome.IsInvalidDraft():
		status = http.StatusBadRequest
	default:
		status = http.StatusBadGateway
	}

	log.Printf("[cart_handler] add productId=%q uid=%q signal=%s status=%d",
		draft.ProductID, uid, resp.Signal, status)
	writeJSON(w, status, resp)
}

func (h *CartHandler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		// Anonymous users have no cart mirror.
		writeJSON(w, http.StatusOK, map[string]any{"items": []cartdom.Entry{}})
		return
	}

	sess := h.Sessions.SessionFor(uid)
	writeJSON(w, http.StatusOK, map[string]any{"items": sess.Core.Snapshot()})
}

func (h *CartHandler) handleEndSession(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.CurrentUserUID(r)
	if ok {
		h.Sessions.EndSession(uid)
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}
