package gateway

import (
	"sync"

	"github.com/google/uuid"
)

// Registry owns the set of live connections. Connections are created on
// accept, promoted on a successful handshake and destroyed on close; nothing
// here is ever persisted. All access goes through the RWMutex so concurrent
// register/unregister/iterate are race free.
type Registry struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[uuid.UUID]*Client)}
}

// Register adds a fresh, unauthenticated connection.
func (r *Registry) Register(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client.id] = client
}

// MarkAuthenticated promotes the connection after a successful handshake.
func (r *Registry) MarkAuthenticated(client *Client, userID string) {
	client.markAuthenticated(userID)
}

// Unregister removes the connection. Calling it for a connection that was
// already removed is a no-op.
func (r *Registry) Unregister(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, client.id)
}

// ForEach invokes fn on a point-in-time snapshot of the live connections.
// Connections registered after the snapshot is taken are not visited;
// connections removed mid-iteration are still visited, harmlessly, since
// their send side fails fast once closed.
func (r *Registry) ForEach(fn func(*Client)) {
	r.mu.RLock()
	snapshot := make([]*Client, 0, len(r.clients))
	for _, client := range r.clients {
		snapshot = append(snapshot, client)
	}
	r.mu.RUnlock()

	for _, client := range snapshot {
		fn(client)
	}
}

// Count reports live and authenticated connection totals, for the debug
// server's stats page.
func (r *Registry) Count() (total, authenticated int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, client := range r.clients {
		total++
		if client.Authenticated() {
			authenticated++
		}
	}
	return total, authenticated
}
