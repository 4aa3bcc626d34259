// internal/adapters/in/http/middleware/session_auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"

	iddom "tokoonline/internal/domain/identity"
)

// FirebaseAuthClient is an alias so wiring code can take
// *middleware.FirebaseAuthClient without importing firebase directly.
type FirebaseAuthClient = fbauth.Client

// context keys use a private type to avoid collisions (SA1029).
type ctxKey struct{ name string }

var ctxKeyUID = ctxKey{name: "uid"}

// WithUserUID stores the verified uid in ctx. Exposed for tests and for
// alternative gates; production code goes through SessionMiddleware.
func WithUserUID(ctx context.Context, uid string) context.Context {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeyUID, uid)
}

// SessionMiddleware verifies a Firebase ID token when one is presented and
// stores the uid in the request context.
//
// It is deliberately lenient: a missing or invalid token does NOT terminate
// the request with 401. Absence of identity is Anonymous, and the mutation
// core decides what an anonymous actor may do. Terminating here would turn
// "show a login prompt" into a transport error.
type SessionMiddleware struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.FirebaseAuth == nil {
			// No verifier configured: every request is anonymous.
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			log.Printf("[session_auth] token rejected: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserUID(r.Context(), uid)))
	})
}

// CurrentUserUID returns the verified uid for the request, if any.
func CurrentUserUID(r *http.Request) (string, bool) {
	return uidFromContext(r.Context())
}

func uidFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(ctxKeyUID)
	u, ok := v.(string)
	if !ok || strings.TrimSpace(u) == "" {
		return "", false
	}
	return strings.TrimSpace(u), true
}

// ContextSessionGate implements identity.Gate by reading the uid that
// SessionMiddleware stored in the context.
type ContextSessionGate struct{}

func (ContextSessionGate) ResolveIdentity(ctx context.Context) iddom.Identity {
	uid, ok := uidFromContext(ctx)
	if !ok {
		return iddom.Anonymous()
	}
	return iddom.Authenticated(uid)
}
