package store

import (
	"context"
	"fmt"

	"startupconnect/internal/models"
	"startupconnect/internal/observability"
	"startupconnect/internal/validation"
)

var conversationLog = observability.NewStoreLogger(collConversations)

// StartConversation returns the conversation between the session user and
// participantID, creating it if none exists. Lookup ignores participant order.
func (s *Store) StartConversation(ctx context.Context, participantID string) (models.Conversation, error) {
	var conv models.Conversation
	created := false
	err := s.mutate(ctx, "start_conversation", func(t *tx) error {
		si, err := t.requireSession()
		if err != nil {
			return err
		}
		me := t.users[si].ID
		if participantID == me {
			return models.NewValidationError("You cannot start a conversation with yourself")
		}
		if t.userIndex(participantID) < 0 {
			return models.NewNotFoundError("User", participantID)
		}

		for _, c := range t.conversations {
			if c.Between(me, participantID) {
				conv = c.Clone()
				return nil
			}
		}

		c := models.Conversation{
			ID:           t.newID(),
			Participants: []string{me, participantID},
			Messages:     []models.Message{},
			CreatedAt:    t.now,
			UpdatedAt:    t.now,
		}
		t.conversations = append(t.conversations, c)
		conv = c.Clone()
		created = true
		t.emit(EventConversationStarted, c.ID, me, participantID)
		return nil
	})
	if err == nil && created {
		conversationLog.LogCreate(ctx, map[string]any{"conversation_id": conv.ID})
	}
	return conv, err
}

// SendMessage appends a message from the session user, who must be a
// participant, and notifies the other participant.
func (s *Store) SendMessage(ctx context.Context, conversationID, text string) (models.Message, error) {
	var msg models.Message
	err := s.mutate(ctx, "send_message", func(t *tx) error {
		si, err := t.requireSession()
		if err != nil {
			return err
		}
		ci := t.conversationIndex(conversationID)
		if ci < 0 {
			return models.NewNotFoundError("Conversation", conversationID)
		}
		me := t.users[si]
		c := &t.conversations[ci]
		if !c.HasParticipant(me.ID) {
			return models.NewForbiddenError("Not a participant in this conversation")
		}
		if err := validation.ValidateText("message", text); err != nil {
			return models.NewValidationError(err.Error())
		}

		msg = models.Message{
			ID:        t.newID(),
			SenderID:  me.ID,
			Text:      text,
			CreatedAt: t.now,
		}
		c.Messages = append(c.Messages, msg)
		c.UpdatedAt = t.now
		t.emit(EventMessageSent, c.ID, c.Participants...)

		if recipient, ok := c.OtherParticipant(me.ID); ok {
			t.notify(models.Notification{
				UserID:         recipient,
				Type:           models.NotificationNewMessage,
				Title:          "New Message",
				Message:        fmt.Sprintf("%s sent you a message", me.Name),
				ConversationID: c.ID,
			})
		}
		return nil
	})
	return msg, err
}
