// internal/application/session/manager.go
package session

import (
	"strings"
	"sync"

	usecase "tokoonline/internal/application/usecase"
	cartdom "tokoonline/internal/domain/cart"
	iddom "tokoonline/internal/domain/identity"
)

// Session is one user's slice of client-side state: the local cart cache
// plus a mutation core bound to it.
type Session struct {
	Cache *cartdom.LocalCache
	Core  *usecase.CartMutationUsecase
}

// Manager hands out session-scoped cart state.
//
// The gate and the remote store are shared across sessions; the local cache
// is strictly per user (no cross-user shared mutable state). Sessions are
// created lazily on first use and dropped on EndSession (logout).
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	gate   iddom.Gate
	store  cartdom.Store
	policy cartdom.MergePolicy

	// anonymous serves unauthenticated requests. Its cache stays empty:
	// the core returns Unauthenticated before touching any state.
	anonymous *Session
}

func NewManager(gate iddom.Gate, store cartdom.Store, policy cartdom.MergePolicy) *Manager {
	m := &Manager{
		sessions: map[string]*Session{},
		gate:     gate,
		store:    store,
		policy:   policy,
	}
	m.anonymous = m.newSession()
	return m
}

func (m *Manager) newSession() *Session {
	cache := cartdom.NewLocalCacheWithPolicy(m.policy)
	return &Session{
		Cache: cache,
		Core:  usecase.NewCartMutationUsecase(m.gate, m.store, cache),
	}
}

// SessionFor returns the session for userID, creating it if absent.
// An empty userID yields the shared anonymous session.
func (m *Manager) SessionFor(userID string) *Session {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return m.anonymous
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[uid]; ok {
		return s
	}
	s := m.newSession()
	m.sessions[uid] = s
	return s
}

// EndSession clears the user's cache and forgets the session (logout hook).
func (m *Manager) EndSession(userID string) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return
	}

	m.mu.Lock()
	s, ok := m.sessions[uid]
	delete(m.sessions, uid)
	m.mu.Unlock()

	if ok {
		s.Cache.Clear()
	}
}
