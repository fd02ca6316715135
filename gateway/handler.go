package gateway

import (
	"chat-gateway/auth"
	"chat-gateway/domain"
	"chat-gateway/repositories"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
)

var validate = validator.New()

// TypingNotifier is the slice of the event service the read loop needs.
type TypingNotifier interface {
	NotifyTyping(conversationID, userID string, typing bool) error
}

// Handler upgrades HTTP requests to websocket connections and runs each
// connection's read loop. Frames from one connection are processed strictly
// in arrival order; different connections run concurrently and never block
// each other.
type Handler struct {
	registry       *Registry
	verifier       auth.ITokenVerifier
	presence       repositories.IPresenceStore
	typing         TypingNotifier
	log            *slog.Logger
	upgrader       websocket.Upgrader
	sendBufferSize int
	writeTimeout   time.Duration
}

func NewHandler(
	log *slog.Logger,
	registry *Registry,
	verifier auth.ITokenVerifier,
	presence repositories.IPresenceStore,
	typing TypingNotifier,
	sendBufferSize int,
	writeTimeout time.Duration,
) *Handler {
	return &Handler{
		registry: registry,
		verifier: verifier,
		presence: presence,
		typing:   typing,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin checking belongs to the reverse proxy in front of us.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		sendBufferSize: sendBufferSize,
		writeTimeout:   writeTimeout,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("Upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	client := NewClient(ws, h.sendBufferSize, h.log)
	h.registry.Register(client)
	go client.writePump(h.writeTimeout)

	h.log.Debug("Connection opened", "connection", client.ID(), "remote", r.RemoteAddr)
	h.readLoop(client)
}

func (h *Handler) readLoop(client *Client) {
	defer h.teardown(client)

	for {
		_, raw, err := client.ws.ReadMessage()
		if err != nil {
			return
		}

		var frame domain.Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			// Malformed frames are discarded; the connection stays open.
			h.log.Debug("Discarding malformed frame", "connection", client.ID(), "err", err)
			continue
		}

		switch frame.Type {
		case domain.FrameAuth:
			h.handleAuth(client, frame)
		case domain.FrameTyping:
			h.handleTyping(client, frame, true)
		case domain.FrameNoTyping:
			h.handleTyping(client, frame, false)
		default:
			h.log.Debug("Ignoring unknown frame type", "connection", client.ID(), "frameType", frame.Type)
		}
	}
}

// handleAuth verifies the bearer token and promotes the connection. A failed
// verification is silent: no error frame goes back and the connection stays
// open, unauthenticated.
func (h *Handler) handleAuth(client *Client, frame domain.Frame) {
	userID, err := h.verifier.Verify(frame.Token, auth.KindAccess)
	if err != nil {
		h.log.Debug("Auth failed", "connection", client.ID(), "err", err)
		return
	}

	h.registry.MarkAuthenticated(client, userID)
	if err := h.presence.Add(userID); err != nil {
		// Presence is advisory, not a source of truth for delivery; the
		// connection stays authenticated.
		h.log.Error("Presence add failed", "user", userID, "err", err)
	}
	h.log.Info("Connection authenticated", "connection", client.ID(), "user", userID)
}

func (h *Handler) handleTyping(client *Client, frame domain.Frame, typing bool) {
	if !client.Authenticated() {
		return
	}

	var payload domain.TypingPayload
	if err := json.Unmarshal(frame.Data, &payload); err != nil {
		h.log.Debug("Discarding malformed typing payload", "connection", client.ID(), "err", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		h.log.Debug("Discarding invalid typing payload", "connection", client.ID(), "err", err)
		return
	}

	if err := h.typing.NotifyTyping(payload.ConversationID, payload.UserID, typing); err != nil {
		// The triggering frame's effect is abandoned; the connection stays open.
		h.log.Error("Typing broadcast failed",
			"conversation", payload.ConversationID, "user", payload.UserID, "err", err)
	}
}

// teardown runs before the connection's resources are released: unregister,
// close, then unconditional presence removal for the authenticated identity.
// The unconditional removal means a user with two live connections goes
// offline when either one closes; that is the documented behavior.
func (h *Handler) teardown(client *Client) {
	h.registry.Unregister(client)
	client.close()

	if userID := client.UserID(); userID != "" {
		if err := h.presence.Remove(userID); err != nil {
			h.log.Error("Presence remove failed", "user", userID, "err", err)
		}
	}
	h.log.Debug("Connection closed", "connection", client.ID())
}
