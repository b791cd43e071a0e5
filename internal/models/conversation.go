package models

import (
	"slices"
	"time"
)

// Message is a single direct message inside a conversation.
type Message struct {
	ID        string    `json:"id" yaml:"id"`
	SenderID  string    `json:"senderId" yaml:"senderId"`
	Text      string    `json:"text" yaml:"text"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Conversation is a direct-message thread between exactly two users.
type Conversation struct {
	ID           string    `json:"id" yaml:"id"`
	Participants []string  `json:"participants" yaml:"participants"`
	Messages     []Message `json:"messages" yaml:"messages"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// HasParticipant reports whether userID takes part in the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	return slices.Contains(c.Participants, userID)
}

// Between reports whether the conversation is between a and b, in either order.
func (c *Conversation) Between(a, b string) bool {
	return c.HasParticipant(a) && c.HasParticipant(b)
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID string) (string, bool) {
	for _, p := range c.Participants {
		if p != userID {
			return p, true
		}
	}
	return "", false
}

// Clone returns a deep copy of c.
func (c Conversation) Clone() Conversation {
	c.Participants = slices.Clone(c.Participants)
	c.Messages = slices.Clone(c.Messages)
	return c
}
