package gateway_test

import (
	"chat-gateway/auth"
	"chat-gateway/domain"
	"chat-gateway/gateway"
	"chat-gateway/repositories"
	"chat-gateway/services"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

type testGateway struct {
	server    *httptest.Server
	presence  repositories.PresenceStore
	directory repositories.DirectoryRepository
	sessions  services.SessionService
	events    *services.EventService
}

func newTestGateway(t *testing.T) *testGateway {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := repositories.NewTokenRepository(db)
	presence := repositories.NewPresenceStore(db, log)
	directory := repositories.NewDirectoryRepository(db)
	registry := gateway.NewRegistry()
	broadcaster := gateway.NewBroadcaster(registry, log)
	events := services.NewEventService(broadcaster, directory, log)
	handler := gateway.NewHandler(log, registry, auth.NewVerifier(tokens), presence, events,
		16, time.Second)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return &testGateway{
		server:    server,
		presence:  presence,
		directory: directory,
		sessions:  services.NewSessionService(tokens, time.Hour, 24*time.Hour),
		events:    events,
	}
}

func (g *testGateway) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(g.server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func (g *testGateway) sendAuth(t *testing.T, conn *websocket.Conn, userID string) {
	t.Helper()
	token, err := g.sessions.IssueAccess(userID)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(domain.Frame{Type: domain.FrameAuth, Token: token}))
}

// authenticate sends a fresh AUTH frame and waits for the presence entry,
// which the handler writes after promoting the connection.
func (g *testGateway) authenticate(t *testing.T, conn *websocket.Conn, userID string) {
	t.Helper()
	g.sendAuth(t, conn, userID)
	g.waitOnline(t, userID, true)
}

func (g *testGateway) waitOnline(t *testing.T, userID string, want bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		online, err := g.presence.IsOnline(userID)
		return err == nil && online == want
	}, 2*time.Second, 10*time.Millisecond)
}

func (g *testGateway) seedConversation(t *testing.T, id string, participants ...string) {
	t.Helper()
	require.NoError(t, g.directory.SaveConversation(domain.Conversation{
		ID:           id,
		Name:         "test conversation",
		IsGroup:      len(participants) > 2,
		Participants: participants,
	}))
	for _, userID := range participants {
		require.NoError(t, g.directory.SaveProfile(domain.Profile{
			ID:          userID,
			Username:    userID,
			DisplayName: strings.ToUpper(userID[:1]) + userID[1:],
		}))
	}
}

func sendTyping(t *testing.T, conn *websocket.Conn, frameType, conversationID, userID string) {
	t.Helper()
	data, err := json.Marshal(domain.TypingPayload{ConversationID: conversationID, UserID: userID})
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(domain.Frame{Type: frameType, Data: data}))
}

func readEvent(t *testing.T, conn *websocket.Conn, timeout time.Duration) (string, json.RawMessage, error) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(timeout)))
	var event struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	err := conn.ReadJSON(&event)
	return event.Type, event.Data, err
}

func expectSilence(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	_, _, err := readEvent(t, conn, 200*time.Millisecond)
	require.Error(t, err, "expected no event on this connection")
}

func TestAuthHandshakeTracksPresence(t *testing.T) {
	req := require.New(t)
	g := newTestGateway(t)

	online, err := g.presence.IsOnline("alice")
	req.NoError(err)
	req.False(online)

	conn := g.dial(t)
	g.authenticate(t, conn, "alice")

	req.NoError(conn.Close())
	g.waitOnline(t, "alice", false)
}

func TestAuthFailureIsSilent(t *testing.T) {
	g := newTestGateway(t)

	conn := g.dial(t)
	require.NoError(t, conn.WriteJSON(domain.Frame{Type: domain.FrameAuth, Token: "bogus"}))

	// No error frame comes back and the user never shows up online.
	expectSilence(t, conn)
	online, err := g.presence.IsOnline("alice")
	require.NoError(t, err)
	require.False(t, online)

	// The connection survives the failed handshake and can retry.
	require.NoError(t, conn.SetReadDeadline(time.Time{}))
	g.authenticate(t, conn, "alice")
}

// A user with two live connections goes offline as soon as either one closes.
// That is the documented single-entry presence model, not a regression.
func TestPresenceRemovalOnAnyClose(t *testing.T) {
	g := newTestGateway(t)
	g.seedConversation(t, "conv-1", "bob", "watcher")

	watcher := g.dial(t)
	g.authenticate(t, watcher, "watcher")

	phone := g.dial(t)
	g.authenticate(t, phone, "bob")

	laptop := g.dial(t)
	g.sendAuth(t, laptop, "bob")
	// Presence is already set by the phone; round-trip a typing frame to know
	// the laptop's AUTH was processed (frames are handled in arrival order).
	sendTyping(t, laptop, domain.FrameTyping, "conv-1", "bob")
	eventType, _, err := readEvent(t, watcher, 2*time.Second)
	require.NoError(t, err)
	require.Equal(t, domain.EventTyping, eventType)

	require.NoError(t, phone.Close())
	g.waitOnline(t, "bob", false)

	// The laptop connection is still open and still receives fan-out.
	sendTyping(t, laptop, domain.FrameTyping, "conv-1", "bob")
	eventType, _, err = readEvent(t, watcher, 2*time.Second)
	require.NoError(t, err)
	require.Equal(t, domain.EventTyping, eventType)
}

func TestTypingFanout(t *testing.T) {
	req := require.New(t)
	g := newTestGateway(t)
	g.seedConversation(t, "conv-1", "alice", "bob", "dana")

	alice := g.dial(t)
	g.authenticate(t, alice, "alice")
	bob := g.dial(t)
	g.authenticate(t, bob, "bob")
	dana := g.dial(t)
	g.authenticate(t, dana, "dana")
	eve := g.dial(t)
	g.authenticate(t, eve, "eve") // authenticated, not a participant

	sendTyping(t, alice, domain.FrameTyping, "conv-1", "alice")

	for _, conn := range []*websocket.Conn{bob, dana} {
		eventType, data, err := readEvent(t, conn, 2*time.Second)
		req.NoError(err)
		req.Equal(domain.EventTyping, eventType)

		var payload domain.TypingData
		req.NoError(json.Unmarshal(data, &payload))
		req.Equal("conv-1", payload.ConversationID)
		req.Equal("alice", payload.TypingUser.ID)
	}

	expectSilence(t, alice)
	expectSilence(t, eve)

	sendTyping(t, alice, domain.FrameNoTyping, "conv-1", "alice")
	eventType, _, err := readEvent(t, bob, 2*time.Second)
	req.NoError(err)
	req.Equal(domain.EventNoTyping, eventType)
}

func TestMalformedFrameKeepsConnectionOpen(t *testing.T) {
	g := newTestGateway(t)
	g.seedConversation(t, "conv-1", "alice", "bob")

	alice := g.dial(t)
	g.authenticate(t, alice, "alice")
	bob := g.dial(t)
	g.authenticate(t, bob, "bob")

	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte("{{{ not json at all")))

	// The sender stays online and functional, and nobody else is affected.
	online, err := g.presence.IsOnline("alice")
	require.NoError(t, err)
	require.True(t, online)

	sendTyping(t, alice, domain.FrameTyping, "conv-1", "alice")
	eventType, _, err := readEvent(t, bob, 2*time.Second)
	require.NoError(t, err)
	require.Equal(t, domain.EventTyping, eventType)
}

func TestTypingIgnoredBeforeAuth(t *testing.T) {
	g := newTestGateway(t)
	g.seedConversation(t, "conv-1", "alice", "bob")

	bob := g.dial(t)
	g.authenticate(t, bob, "bob")

	anonymous := g.dial(t)
	sendTyping(t, anonymous, domain.FrameTyping, "conv-1", "alice")

	expectSilence(t, bob)
}

func TestMessageAndGroupFanout(t *testing.T) {
	req := require.New(t)
	g := newTestGateway(t)
	g.seedConversation(t, "group-1", "alice", "bob", "dana")

	alice := g.dial(t)
	g.authenticate(t, alice, "alice")
	bob := g.dial(t)
	g.authenticate(t, bob, "bob")

	// REST handlers push through the injected event service after a commit.
	message := map[string]any{"id": "msg-1", "content": "hello"}
	req.NoError(g.events.NotifyMessage("group-1", "alice", message))

	eventType, data, err := readEvent(t, bob, 2*time.Second)
	req.NoError(err)
	req.Equal(domain.EventMessage, eventType)

	var payload struct {
		Message        map[string]any `json:"message"`
		ConversationID string         `json:"conversationId"`
	}
	req.NoError(json.Unmarshal(data, &payload))
	req.Equal("group-1", payload.ConversationID)
	req.Equal("hello", payload.Message["content"])

	// Group-joined system messages go to everyone, sender included. Since
	// per-connection delivery is in order, the system message arriving as
	// alice's FIRST event also proves she never got her own message back.
	req.NoError(g.events.NotifyGroupJoined("group-1", map[string]any{"system": true}))
	eventType, data, err = readEvent(t, alice, 2*time.Second)
	req.NoError(err)
	req.Equal(domain.EventMessage, eventType)

	var system struct {
		Message map[string]any `json:"message"`
	}
	req.NoError(json.Unmarshal(data, &system))
	req.Equal(true, system.Message["system"])
}
