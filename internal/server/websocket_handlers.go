package server

import (
	"context"
	"encoding/json"
	"log"

	"startupconnect/internal/featureflags"
	"startupconnect/internal/models"
	"startupconnect/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// connectedPayload is the first frame sent on a new socket.
type connectedPayload struct {
	UserID      string `json:"userId"`
	UnreadCount int    `json:"unreadCount"`
}

// requireLiveEvents gates the event stream behind the live_events flag and
// rejects plain HTTP requests. Must be placed after SessionRequired.
func (s *Server) requireLiveEvents(c *fiber.Ctx) error {
	if !s.featureFlags.Enabled(featureflags.LiveEvents, sessionUserID(c)) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Live events are disabled"))
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

// WebsocketHandler handles GET /api/ws
// Streams store events affecting the session user until the peer goes away.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("userID").(string)
		if userID == "" {
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
			_ = conn.Close()
			return
		}
		defer s.hub.UnregisterClient(client)
		client.OnFrame = s.handleClientFrame

		hello, err := notifications.Encode("connected", connectedPayload{
			UserID:      userID,
			UnreadCount: s.store.UnreadNotificationCount(),
		})
		if err != nil {
			log.Printf("failed to marshal connected frame: %v", err)
		} else {
			client.TrySend(hello)
		}

		go client.WritePump()
		client.ReadPump()
	})
}

type markReadPayload struct {
	ID string `json:"id"`
}

// handleClientFrame serves inbound socket frames. mark_read marks one of the
// socket user's notifications read; the change comes back as a
// notifications_read event.
func (s *Server) handleClientFrame(c *notifications.Client, typ string, payload json.RawMessage) {
	switch typ {
	case "mark_read":
		var p markReadPayload
		if err := json.Unmarshal(payload, &p); err != nil || p.ID == "" {
			c.SendError("mark_read requires a notification id")
			return
		}
		// The store session may have moved to another user since the upgrade.
		if s.store.SessionUserID() != c.UserID {
			c.SendError(models.MsgNotLoggedIn)
			return
		}
		ctx, cancel := context.WithTimeout(s.shutdownCtx, publishTimeout)
		defer cancel()
		if err := s.store.MarkNotificationRead(ctx, p.ID); err != nil {
			c.SendError(err.Error())
		}
	default:
		c.SendError("unknown frame type " + typ)
	}
}
