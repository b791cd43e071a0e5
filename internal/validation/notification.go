package validation

import (
	"fmt"
	"strings"

	"startupconnect/internal/models"
)

// ValidateNotification checks a notification has a recipient, a known type and a title.
func ValidateNotification(n models.Notification) error {
	if n.UserID == "" {
		return fmt.Errorf("notification recipient is required")
	}
	if !n.Type.Valid() {
		return fmt.Errorf("unknown notification type %q", n.Type)
	}
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("notification title is required")
	}
	return nil
}
