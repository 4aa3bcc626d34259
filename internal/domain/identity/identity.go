// internal/domain/identity/identity.go
package identity

import (
	"context"
	"strings"
)

// Identity is the resolved actor for an operation: either a concrete user
// or anonymous. The zero value is Anonymous.
type Identity struct {
	userID string
}

// Authenticated builds an identity for userID.
// An empty (or whitespace) userID collapses to Anonymous; a gate must never
// hand out an "authenticated" identity without a uid.
func Authenticated(userID string) Identity {
	return Identity{userID: strings.TrimSpace(userID)}
}

// Anonymous is the absent-identity value. Absence is not a failure.
func Anonymous() Identity {
	return Identity{}
}

func (id Identity) IsAuthenticated() bool { return id.userID != "" }

// UserID returns the opaque user identifier ("" when anonymous).
func (id Identity) UserID() string { return id.userID }

// Gate resolves the current actor's identity for an operation.
//
// Contract (consumed by the mutation core):
// - side-effect-free from the caller's perspective
// - callable repeatedly; the gate may cache internally
// - no error return: absence of identity is Anonymous, never a failure
type Gate interface {
	ResolveIdentity(ctx context.Context) Identity
}
