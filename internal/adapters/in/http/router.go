// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"tokoonline/internal/adapters/in/http/middleware"
)

// RouterDeps collects handlers and middleware injected from the container.
type RouterDeps struct {
	CartHandler http.Handler
	Auth        *middleware.SessionMiddleware

	// AllowedOrigin is the storefront origin for CORS ("" = dev wildcard).
	AllowedOrigin string
}

// NewRouter mounts the storefront endpoints.
// The session middleware runs on every cart route; it only annotates the
// request with identity, it never rejects (the core owns that decision).
// Chain order: Recover outermost, then CORS, then auth, then the handler,
// so a panic response still carries the CORS headers the browser needs.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	cart := deps.CartHandler
	if deps.Auth != nil {
		cart = deps.Auth.Handler(cart)
	}
	mux.Handle("/cart", cart)
	mux.Handle("/cart/", cart)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return middleware.Recover(middleware.CORS(deps.AllowedOrigin)(mux))
}
