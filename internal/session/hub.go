package session

import (
	"sync"

	"github.com/Jaideep0802/CodePair/internal/models"
)

// Hub is the connection directory: id -> client. It gives the registry's
// deliveries and the signaling relay an exact unicast address space.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub { return &Hub{clients: make(map[string]*Client)} }

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
}

func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

func (h *Hub) Get(id string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[id]
	return c, ok
}

// Send delivers one envelope to the named connection only. A missing or
// dead target drops the message (fire and forget).
func (h *Hub) Send(id string, env models.Envelope) bool {
	c, ok := h.Get(id)
	if !ok {
		return false
	}
	return c.Send(env)
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
