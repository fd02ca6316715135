package domain

import "encoding/json"

// Inbound frame types, sent by clients over the websocket.
const (
	FrameAuth     = "AUTH"
	FrameTyping   = "TYPING"
	FrameNoTyping = "NO_TYPING"
)

// Frame is the envelope of every client-sent control message.
// Token is only set on AUTH frames; Data carries the type-specific payload.
type Frame struct {
	Type  string          `json:"type"`
	Token string          `json:"token,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// TypingPayload is the data of TYPING and NO_TYPING frames.
type TypingPayload struct {
	ConversationID string `json:"conversationId" validate:"required"`
	UserID         string `json:"userId" validate:"required"`
}
