package server

import (
	"startupconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// userResponse is a user as sent to clients. The shadowing Password field
// is always empty, so the stored password is omitted.
type userResponse struct {
	models.User
	Password string `json:"password,omitempty"`
}

func newUserResponse(u models.User) userResponse {
	return userResponse{User: u}
}

func newUserResponses(users []models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	return out
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Start the local session by email and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body server.LoginRequest true "Login credentials"
// @Success 200 {object} server.userResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, err := s.store.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newUserResponse(user))
}

// Register handles POST /api/auth/register
// @Summary Register a member
// @Description Create a founder or VC profile and log in as it.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.User true "Profile"
// @Success 201 {object} server.userResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var profile models.User
	if err := parseBody(c, &profile); err != nil {
		return nil
	}

	user, err := s.store.Register(c.UserContext(), profile)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newUserResponse(user))
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.store.Logout(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// GetSession handles GET /api/auth/session
// @Summary Current session
// @Tags auth
// @Produce json
// @Success 200 {object} object{authenticated=boolean,user=server.userResponse,unreadCount=integer}
// @Router /auth/session [get]
func (s *Server) GetSession(c *fiber.Ctx) error {
	user, ok := s.store.CurrentUser()
	if !ok {
		return c.JSON(fiber.Map{"authenticated": false, "user": nil})
	}
	return c.JSON(fiber.Map{
		"authenticated": true,
		"user":          newUserResponse(user),
		"unreadCount":   s.store.UnreadNotificationCount(),
	})
}
