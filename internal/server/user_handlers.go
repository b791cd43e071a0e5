package server

import (
	"startupconnect/internal/models"
	"startupconnect/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/users
// Optional query: role (founder|vc), q (free text), excludeSelf.
// @Summary List members
// @Tags users
// @Produce json
// @Param role query string false "founder or vc"
// @Param q query string false "Free text search"
// @Param excludeSelf query boolean false "Omit the session user"
// @Success 200 {array} server.userResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /users [get]
func (s *Server) GetUsers(c *fiber.Ctx) error {
	role := models.Role(c.Query("role"))
	if role != "" && !role.Valid() {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("role must be founder or vc"))
	}

	users := s.store.SearchUsers(store.UserFilter{
		Role:           role,
		Query:          c.Query("q"),
		ExcludeSession: c.QueryBool("excludeSelf"),
	})
	return c.JSON(newUserResponses(users))
}

// GetUser handles GET /api/users/:id
// @Summary Get a member
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} server.userResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseParam(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.store.UserByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newUserResponse(user))
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update my profile
// @Description Shallow update of the session user. Connections and ID cannot be changed.
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.UserPatch true "Fields to change"
// @Success 200 {object} server.userResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var patch models.UserPatch
	if err := parseBody(c, &patch); err != nil {
		return nil
	}

	user, err := s.store.UpdateUser(c.UserContext(), sessionUserID(c), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newUserResponse(user))
}
