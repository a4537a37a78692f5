package cart

import (
	"log"
	"sync"
	"time"

	"cwarett/globals"
)

// cartIdleTTL is how long a session's cart may sit untouched before its
// in-memory copy is released. The persisted mirror restores it on the
// next access, so eviction never loses state.
const cartIdleTTL = 30 * time.Minute

type cartEntry struct {
	cart     *Cart
	lastSeen time.Time
}

// Manager owns every live cart, one per storefront session. Carts are
// created lazily, seeded from the persisted mirror on first access, and
// evicted again once idle.
type Manager struct {
	mu    sync.Mutex
	carts map[string]*cartEntry
	store Store
	ttl   time.Duration
}

func NewManager(store Store) *Manager {
	return newManager(store, cartIdleTTL)
}

func newManager(store Store, ttl time.Duration) *Manager {
	return &Manager{
		carts: make(map[string]*cartEntry),
		store: store,
		ttl:   ttl,
	}
}

// Get returns the session's cart, creating and restoring it if needed.
func (m *Manager) Get(sessionID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.carts[sessionID]; ok {
		e.lastSeen = time.Now()
		return e.cart
	}

	c := New(sessionID, m.store)
	if m.store != nil {
		snap, err := m.store.Load(globals.Ctx, sessionID)
		if err != nil {
			log.Println("cart: mirror load failed for session", sessionID, ":", err)
		}
		c.restore(snap)
	}
	m.carts[sessionID] = &cartEntry{cart: c, lastSeen: time.Now()}
	go m.reap(sessionID)
	return c
}

// reap drops the session's cart once it has been idle for the full TTL.
// One reaper runs per live cart and exits with it.
func (m *Manager) reap(sessionID string) {
	for {
		time.Sleep(m.ttl)

		m.mu.Lock()
		e, ok := m.carts[sessionID]
		if !ok {
			m.mu.Unlock()
			return
		}
		if time.Since(e.lastSeen) >= m.ttl {
			delete(m.carts, sessionID)
			m.mu.Unlock()
			return
		}
		m.mu.Unlock()
	}
}

// Drop releases the in-memory cart for a session. The persisted mirror is
// left alone.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
}
