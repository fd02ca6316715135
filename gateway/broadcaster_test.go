package gateway

import (
	"chat-gateway/domain"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func drain(c *Client) [][]byte {
	var payloads [][]byte
	for {
		select {
		case payload := <-c.send:
			payloads = append(payloads, payload)
		default:
			return payloads
		}
	}
}

func TestBroadcast_FiltersByPredicateAndAuth(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	broadcaster := NewBroadcaster(registry, slog.Default())

	alice := newTestClient(t)
	bob := newTestClient(t)
	dana := newTestClient(t)
	eve := newTestClient(t)      // not a participant
	stranger := newTestClient(t) // never authenticated

	for _, client := range []*Client{alice, bob, dana, eve, stranger} {
		registry.Register(client)
	}
	registry.MarkAuthenticated(alice, "alice")
	registry.MarkAuthenticated(bob, "bob")
	registry.MarkAuthenticated(dana, "dana")
	registry.MarkAuthenticated(eve, "eve")

	participants := []string{"alice", "bob", "dana"}
	broadcaster.Broadcast(
		ToParticipantsExcept(participants, "alice"),
		domain.Event{Type: domain.EventTyping, Data: domain.TypingData{ConversationID: "conv-1"}},
	)

	req.Empty(drain(alice), "sender must not receive their own event")
	req.Empty(drain(eve), "non-participants must not receive the event")
	req.Empty(drain(stranger), "unauthenticated connections must not receive anything")

	for _, client := range []*Client{bob, dana} {
		payloads := drain(client)
		req.Len(payloads, 1)

		var event struct {
			Type string `json:"type"`
		}
		req.NoError(json.Unmarshal(payloads[0], &event))
		req.Equal(domain.EventTyping, event.Type)
	}
}

func TestBroadcast_ToUser(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	broadcaster := NewBroadcaster(registry, slog.Default())

	// Two devices for bob, one for alice.
	bobPhone := newTestClient(t)
	bobLaptop := newTestClient(t)
	alice := newTestClient(t)
	for _, client := range []*Client{bobPhone, bobLaptop, alice} {
		registry.Register(client)
	}
	registry.MarkAuthenticated(bobPhone, "bob")
	registry.MarkAuthenticated(bobLaptop, "bob")
	registry.MarkAuthenticated(alice, "alice")

	broadcaster.Broadcast(ToUser("bob"), domain.Event{Type: domain.EventNotification})

	req.Len(drain(bobPhone), 1)
	req.Len(drain(bobLaptop), 1)
	req.Empty(drain(alice))
}

func TestBroadcast_SlowPeerDoesNotAbortDelivery(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	broadcaster := NewBroadcaster(registry, slog.Default())

	// Zero-capacity buffer with no reader: every send fails fast.
	slow := NewClient(nil, 0, slog.Default())
	healthy := newTestClient(t)
	registry.Register(slow)
	registry.Register(healthy)
	registry.MarkAuthenticated(slow, "slow")
	registry.MarkAuthenticated(healthy, "healthy")

	broadcaster.Broadcast(
		ToParticipants([]string{"slow", "healthy"}),
		domain.Event{Type: domain.EventMessage},
	)

	req.Len(drain(healthy), 1, "a failed send must not abort delivery to the rest")
}

func TestBroadcast_PerConnectionOrdering(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	broadcaster := NewBroadcaster(registry, slog.Default())

	bob := NewClient(nil, 8, slog.Default())
	registry.Register(bob)
	registry.MarkAuthenticated(bob, "bob")

	for _, eventType := range []string{domain.EventTyping, domain.EventMessage, domain.EventNoTyping} {
		broadcaster.Broadcast(ToUser("bob"), domain.Event{Type: eventType})
	}

	payloads := drain(bob)
	req.Len(payloads, 3)
	for i, expected := range []string{domain.EventTyping, domain.EventMessage, domain.EventNoTyping} {
		var event struct {
			Type string `json:"type"`
		}
		req.NoError(json.Unmarshal(payloads[i], &event))
		req.Equal(expected, event.Type)
	}
}
