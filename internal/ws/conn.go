package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Conn is the subset of a websocket connection the hub needs. Tests register
// fakes; production code registers *client wrappers.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// client wraps a gorilla connection with a write lock so concurrent
// broadcasts cannot interleave frames on the same socket.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn}
}

func (c *client) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *client) Close() error {
	return c.conn.Close()
}
