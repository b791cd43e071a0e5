// Package middleware provides session gating, rate limiting, tracing and
// request logging for the HTTP surface.
package middleware

import (
	"context"

	"startupconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SessionSource resolves the signed-in user. The store satisfies it.
type SessionSource interface {
	CurrentUser() (models.User, bool)
}

// CurrentUserLocal is the Fiber locals key holding the session user.
const CurrentUserLocal = "currentUser"

// SessionRequired rejects requests with 401 when nobody is signed in.
// Otherwise it stores the user under CurrentUserLocal and the ID under
// "userID", and adds the ID to the request context for logging.
func SessionRequired(src SessionSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := src.CurrentUser()
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError(models.MsgNotLoggedIn))
		}

		c.Locals("userID", user.ID)
		c.Locals(CurrentUserLocal, user)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, user.ID))
		return c.Next()
	}
}

// PublicOnly rejects requests with 409 when someone is already signed in,
// mirroring the UI redirecting signed-in users away from login and sign-up.
func PublicOnly(src SessionSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := src.CurrentUser(); ok {
			return models.RespondWithError(c, fiber.StatusConflict,
				models.NewConflictError("Already logged in"))
		}
		return c.Next()
	}
}

// SessionUser returns the user SessionRequired stored for this request.
func SessionUser(c *fiber.Ctx) (models.User, bool) {
	u, ok := c.Locals(CurrentUserLocal).(models.User)
	return u, ok
}
