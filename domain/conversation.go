package domain

// Conversation is the read-only projection the gateway uses as a broadcast
// filter. Membership is owned by the REST layer; the gateway never mutates it.
type Conversation struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	IsGroup      bool     `json:"isGroup"`
	Participants []string `json:"participants"`
}
