package models

import "time"

// NotificationType identifies what triggered a notification.
type NotificationType string

const (
	NotificationConnectionRequest  NotificationType = "connection_request"
	NotificationConnectionAccepted NotificationType = "connection_accepted"
	NotificationIdeaComment        NotificationType = "idea_comment"
	NotificationNewMessage         NotificationType = "new_message"
)

// Valid reports whether t is one of the known notification types.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationConnectionRequest, NotificationConnectionAccepted, NotificationIdeaComment, NotificationNewMessage:
		return true
	}
	return false
}

// Notification is an inbox entry for a single recipient. The optional
// correlation fields point at the record that triggered it.
type Notification struct {
	ID             string           `json:"id" yaml:"id"`
	UserID         string           `json:"userId" yaml:"userId"`
	Type           NotificationType `json:"type" yaml:"type"`
	Title          string           `json:"title" yaml:"title"`
	Message        string           `json:"message" yaml:"message"`
	FromUserID     string           `json:"fromUserId,omitempty" yaml:"fromUserId,omitempty"`
	IdeaID         string           `json:"ideaId,omitempty" yaml:"ideaId,omitempty"`
	ConversationID string           `json:"conversationId,omitempty" yaml:"conversationId,omitempty"`
	Read           bool             `json:"read" yaml:"read"`
	CreatedAt      time.Time        `json:"createdAt" yaml:"createdAt"`
}
