package store

import (
	"context"
	"fmt"
	"slices"

	"startupconnect/internal/models"
	"startupconnect/internal/observability"
)

var requestLog = observability.NewStoreLogger(collRequests)

// SendConnectionRequest creates a pending request from the session user to
// toUserID and notifies the recipient.
//
// With strict connections on, requests to oneself, to an unknown user, to an
// existing connection, or duplicating a pending request in either direction
// are rejected.
func (s *Store) SendConnectionRequest(ctx context.Context, toUserID string) (models.ConnectionRequest, error) {
	var req models.ConnectionRequest
	err := s.mutate(ctx, "send_connection_request", func(t *tx) error {
		si, err := t.requireSession()
		if err != nil {
			return err
		}
		me := t.users[si]

		if s.opts.strictConnections {
			if toUserID == me.ID {
				return models.NewValidationError("You cannot connect with yourself")
			}
			if t.userIndex(toUserID) < 0 {
				return models.NewNotFoundError("User", toUserID)
			}
			if me.IsConnectedTo(toUserID) {
				return models.NewConflictError("You are already connected")
			}
			for _, r := range t.requests {
				if r.Involves(me.ID, toUserID) {
					return models.NewConflictError("A connection request is already pending")
				}
			}
		}

		req = models.ConnectionRequest{
			ID:         t.newID(),
			FromUserID: me.ID,
			ToUserID:   toUserID,
			Status:     models.ConnectionStatusPending,
			CreatedAt:  t.now,
		}
		t.requests = append(t.requests, req)
		t.emit(EventConnectionRequested, req.ID, me.ID, toUserID)

		t.notify(models.Notification{
			UserID:     toUserID,
			Type:       models.NotificationConnectionRequest,
			Title:      "New Connection Request",
			Message:    fmt.Sprintf("%s wants to connect with you", me.Name),
			FromUserID: me.ID,
		})
		return nil
	})
	if err == nil {
		requestLog.LogCreate(ctx, map[string]any{"request_id": req.ID, "from": req.FromUserID, "to": req.ToUserID})
	}
	return req, err
}

// AcceptConnectionRequest removes the request, connects both users without
// duplicating an existing connection, and notifies the requester.
// Only the recipient may accept.
func (s *Store) AcceptConnectionRequest(ctx context.Context, requestID string) error {
	err := s.mutate(ctx, "accept_connection_request", func(t *tx) error {
		si, err := t.requireSession()
		if err != nil {
			return err
		}
		ri := t.requestIndex(requestID)
		if ri < 0 {
			return models.NewNotFoundError("Connection request", requestID)
		}
		req := t.requests[ri]
		me := t.users[si]
		if req.ToUserID != me.ID {
			return models.NewForbiddenError("Only the recipient can accept a connection request")
		}

		t.requests = slices.Delete(t.requests, ri, ri+1)
		t.connect(req.FromUserID, req.ToUserID)
		t.connect(req.ToUserID, req.FromUserID)
		t.emit(EventConnectionAccepted, req.ID, req.FromUserID, req.ToUserID)

		t.notify(models.Notification{
			UserID:     req.FromUserID,
			Type:       models.NotificationConnectionAccepted,
			Title:      "Connection Accepted",
			Message:    fmt.Sprintf("%s accepted your connection request", me.Name),
			FromUserID: me.ID,
		})
		return nil
	})
	if err == nil {
		requestLog.LogDelete(ctx, map[string]any{"request_id": requestID, "outcome": "accepted"})
	}
	return err
}

// DeclineConnectionRequest removes the request without a notification.
// Either party may decline; for the sender this cancels the request.
func (s *Store) DeclineConnectionRequest(ctx context.Context, requestID string) error {
	err := s.mutate(ctx, "decline_connection_request", func(t *tx) error {
		si, err := t.requireSession()
		if err != nil {
			return err
		}
		ri := t.requestIndex(requestID)
		if ri < 0 {
			return models.NewNotFoundError("Connection request", requestID)
		}
		req := t.requests[ri]
		me := t.users[si].ID
		if req.ToUserID != me && req.FromUserID != me {
			return models.NewForbiddenError("Not a party to this connection request")
		}

		t.requests = slices.Delete(t.requests, ri, ri+1)
		t.emit(EventConnectionDeclined, req.ID, req.FromUserID, req.ToUserID)
		return nil
	})
	if err == nil {
		requestLog.LogDelete(ctx, map[string]any{"request_id": requestID, "outcome": "declined"})
	}
	return err
}

// connect adds other to userID's connections unless already present.
// A missing user is skipped.
func (t *tx) connect(userID, other string) {
	i := t.userIndex(userID)
	if i < 0 || t.users[i].IsConnectedTo(other) {
		return
	}
	t.users[i].Connections = append(t.users[i].Connections, other)
}
