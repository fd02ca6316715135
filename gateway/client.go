package gateway

import (
	apperrors "chat-gateway/errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client wraps one live websocket connection. Outbound frames go through a
// buffered channel drained by a single writer goroutine, so Send never blocks
// a broadcast on a slow peer. A single user may hold several Clients, one per
// device; they are never shared.
type Client struct {
	id   uuid.UUID
	ws   *websocket.Conn
	send chan []byte
	log  *slog.Logger

	mu            sync.RWMutex
	authenticated bool
	userID        string

	closeOnce sync.Once
	closed    chan struct{}
}

func NewClient(ws *websocket.Conn, sendBufferSize int, log *slog.Logger) *Client {
	return &Client{
		id:     uuid.New(),
		ws:     ws,
		send:   make(chan []byte, sendBufferSize),
		log:    log,
		closed: make(chan struct{}),
	}
}

func (c *Client) ID() uuid.UUID { return c.id }

func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authenticated
}

// UserID returns the authenticated identity, or "" before the handshake.
func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

func (c *Client) markAuthenticated(userID string) {
	c.mu.Lock()
	c.authenticated = true
	c.userID = userID
	c.mu.Unlock()
}

// Send queues payload for the writer goroutine. It fails fast with
// ErrClientBufferFull or ErrClientClosed instead of blocking the caller.
func (c *Client) Send(payload []byte) error {
	select {
	case <-c.closed:
		return apperrors.ErrClientClosed
	default:
	}
	select {
	case c.send <- payload:
		return nil
	default:
		return apperrors.ErrClientBufferFull
	}
}

// writePump is the single writer for the connection. A transport error stops
// the pump and leaves close detection to the read side.
func (c *Client) writePump(writeTimeout time.Duration) {
	for {
		select {
		case <-c.closed:
			return
		case payload := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.log.Debug("Write failed, stopping writer", "connection", c.id, "err", err)
				return
			}
		}
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		_ = c.ws.Close()
	})
}
