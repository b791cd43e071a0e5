package server

import (
	"context"
	"log"
	"time"

	"startupconnect/internal/featureflags"
	"startupconnect/internal/notifications"
	"startupconnect/internal/store"
)

const publishTimeout = 2 * time.Second

// subjectPayload is the frame payload for events without a notification.
type subjectPayload struct {
	SubjectID string `json:"subjectId,omitempty"`
}

// handleStoreEvent forwards a committed store event to connected sockets.
// Created notifications go through Redis when fan-out is enabled for the
// recipient, so every API instance sharing the Redis can deliver them.
func (s *Server) handleStoreEvent(e store.Event) {
	var payload any = subjectPayload{SubjectID: e.SubjectID}
	if e.Notification != nil {
		payload = e.Notification
	}
	message, err := notifications.Encode(string(e.Type), payload)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", e.Type, err)
		return
	}

	if len(e.UserIDs) == 0 {
		s.hub.BroadcastAll(message)
		return
	}
	for _, userID := range e.UserIDs {
		if e.Type == store.EventNotificationCreated && s.fanoutEnabled(userID) {
			err := s.publishUserEvent(userID, message)
			if err == nil {
				continue
			}
			log.Printf("failed to publish %s event to user %s: %v", e.Type, userID, err)
		}
		s.hub.Broadcast(userID, message)
	}
}

func (s *Server) fanoutEnabled(userID string) bool {
	return s.notifier.Enabled() && s.featureFlags.Enabled(featureflags.NotificationFanout, userID)
}

func (s *Server) publishUserEvent(userID string, message []byte) error {
	ctx, cancel := context.WithTimeout(s.shutdownCtx, publishTimeout)
	defer cancel()
	return s.notifier.PublishUser(ctx, userID, string(message))
}
