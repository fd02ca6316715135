package domain

// Outbound event types, pushed by the gateway to clients.
const (
	EventTyping       = "typing"
	EventNoTyping     = "no-typing"
	EventMessage      = "message"
	EventNotification = "notification"
)

// Event is a transient outbound structure. It is produced once, serialized
// once, fanned out to the matching live connections and never stored or
// retried.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// TypingData is the payload of typing and no-typing events.
type TypingData struct {
	ConversationID string  `json:"conversationId"`
	TypingUser     Profile `json:"typingUser"`
}

// MessageData is the payload of message events. Message is whatever record
// the REST layer committed; the gateway forwards it untouched.
type MessageData struct {
	Message        any    `json:"message"`
	ConversationID string `json:"conversationId"`
}

// NotificationData is the payload of notification events.
type NotificationData struct {
	Notification Notification `json:"notification"`
}
