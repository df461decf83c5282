package session

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Jaideep0802/CodePair/internal/models"
)

// Client is one connected participant. The id is the only identity the
// rest of the server ever sees; rooms hold ids, never clients.
type Client struct {
	ID   string
	Conn *websocket.Conn
	mu   sync.Mutex
	hook func(models.Envelope)
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{ID: uuid.NewString(), Conn: conn}
}

// SetSendHook replaces the default WebSocket sender (used in tests).
func (c *Client) SetSendHook(fn func(models.Envelope)) {
	c.mu.Lock()
	c.hook = fn
	c.mu.Unlock()
}

// Send writes one envelope to the client, best effort. The return value
// reports whether the write happened; callers must not treat false as
// fatal.
func (c *Client) Send(env models.Envelope) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hook != nil {
		c.hook(env)
		return true
	}
	if c.Conn == nil {
		return false
	}
	return c.Conn.WriteJSON(env) == nil
}
