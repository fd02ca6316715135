package domain

import "time"

// Notification kinds mirror the social actions the REST layer commits.
const (
	NotificationFriendRequest  = "friend-request"
	NotificationFriendAccepted = "friend-accepted"
	NotificationGroupInvite    = "group-invite"
	NotificationGroupJoined    = "group-joined"
)

// Notification is the enriched projection pushed to the recipient. The
// persisted record only holds ids; From, To and Group are resolved display
// projections attached before broadcast.
type Notification struct {
	ID        string        `json:"id"`
	Kind      string        `json:"kind"`
	From      Profile       `json:"from"`
	To        Profile       `json:"to"`
	Group     *Conversation `json:"group,omitempty"`
	Read      bool          `json:"read"`
	CreatedAt time.Time     `json:"createdAt"`
}
