//go:generate go run go.uber.org/mock/mockgen -source=broadcaster.go -destination=../mocks/mock_broadcaster.go -package=mocks
package gateway

import (
	"chat-gateway/domain"
	"encoding/json"
	"log/slog"
)

// Predicate selects the connections an event is delivered to. It is checked
// on top of the authentication gate, never instead of it.
type Predicate func(*Client) bool

type IBroadcaster interface {
	Broadcast(predicate Predicate, event domain.Event)
}

// Broadcaster fans one event out to every matching, currently-open,
// authenticated connection. The payload is serialized once. Delivery is
// at-most-once and unacknowledged: a failed send is logged and skipped,
// never retried, and never aborts delivery to the remaining connections.
type Broadcaster struct {
	registry *Registry
	log      *slog.Logger
}

func NewBroadcaster(registry *Registry, log *slog.Logger) *Broadcaster {
	return &Broadcaster{registry: registry, log: log}
}

func (b *Broadcaster) Broadcast(predicate Predicate, event domain.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		b.log.Error("Dropping event, marshal failed", "type", event.Type, "err", err)
		return
	}

	b.registry.ForEach(func(client *Client) {
		if !client.Authenticated() || !predicate(client) {
			return
		}
		if err := client.Send(payload); err != nil {
			b.log.Warn("Send failed, skipping connection",
				"connection", client.ID(),
				"user", client.UserID(),
				"type", event.Type,
				"err", err)
		}
	})
}

// ToUser matches every connection of a single recipient.
func ToUser(userID string) Predicate {
	return func(c *Client) bool {
		return c.UserID() == userID
	}
}

// ToParticipants matches every connection belonging to the participant set.
func ToParticipants(participants []string) Predicate {
	set := participantSet(participants)
	return func(c *Client) bool {
		_, ok := set[c.UserID()]
		return ok
	}
}

// ToParticipantsExcept matches the participant set minus the acting user,
// so a sender never receives their own event back.
func ToParticipantsExcept(participants []string, exceptID string) Predicate {
	set := participantSet(participants)
	delete(set, exceptID)
	return func(c *Client) bool {
		_, ok := set[c.UserID()]
		return ok
	}
}

func participantSet(participants []string) map[string]struct{} {
	set := make(map[string]struct{}, len(participants))
	for _, participant := range participants {
		set[participant] = struct{}{}
	}
	return set
}
