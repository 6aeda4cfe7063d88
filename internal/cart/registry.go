package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maps session IDs to carts, creating a cart on first use. Carts
// live for the process lifetime unless explicitly dropped.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Cart)}
}

// NewSession mints a fresh session ID with an empty cart.
func (r *Registry) NewSession() string {
	id := uuid.New().String()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[id] = &Cart{}
	return id
}

// Get returns the cart for the session, creating it if needed. An unknown or
// empty session ID gets a fresh ID, returned alongside the cart.
func (r *Registry) Get(sessionID string) (*Cart, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sessionID != "" {
		if c, ok := r.carts[sessionID]; ok {
			return c, sessionID
		}
	}
	id := uuid.New().String()
	c := &Cart{}
	r.carts[id] = c
	return c, id
}

// Drop discards the session's cart.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
}
