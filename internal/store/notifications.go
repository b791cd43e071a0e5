package store

import (
	"context"

	"startupconnect/internal/models"
	"startupconnect/internal/validation"
)

// AddNotification stores a notification for data.UserID, stamping its ID,
// read flag and creation time.
func (s *Store) AddNotification(ctx context.Context, data models.Notification) (models.Notification, error) {
	var n models.Notification
	err := s.mutate(ctx, "add_notification", func(t *tx) error {
		if err := validation.ValidateNotification(data); err != nil {
			return models.NewValidationError(err.Error())
		}
		n = t.notify(data)
		return nil
	})
	return n, err
}

// MarkNotificationRead marks one of the session user's notifications read.
// Notifications addressed to other users are reported as not found.
func (s *Store) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return s.mutate(ctx, "mark_notification_read", func(t *tx) error {
		si, err := t.requireSession()
		if err != nil {
			return err
		}
		i := t.notificationIndex(notificationID)
		if i < 0 || t.notifications[i].UserID != t.users[si].ID {
			return models.NewNotFoundError("Notification", notificationID)
		}
		if !t.notifications[i].Read {
			t.notifications[i].Read = true
			t.emit(EventNotificationsRead, notificationID, t.users[si].ID)
		}
		return nil
	})
}

// MarkAllNotificationsRead marks every unread notification of the session
// user read and returns how many changed.
func (s *Store) MarkAllNotificationsRead(ctx context.Context) (int, error) {
	changed := 0
	err := s.mutate(ctx, "mark_all_notifications_read", func(t *tx) error {
		si, err := t.requireSession()
		if err != nil {
			return err
		}
		me := t.users[si].ID
		for i := range t.notifications {
			if t.notifications[i].UserID == me && !t.notifications[i].Read {
				t.notifications[i].Read = true
				changed++
			}
		}
		if changed > 0 {
			t.emit(EventNotificationsRead, "", me)
		}
		return nil
	})
	return changed, err
}
