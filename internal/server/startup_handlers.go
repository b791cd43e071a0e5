package server

import (
	"startupconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateStartupRequest is a startup listing plus the creator's team role.
type CreateStartupRequest struct {
	models.Startup
	FounderRole string `json:"founderRole"`
}

// GetStartups handles GET /api/startups
// @Summary List startups
// @Tags startups
// @Produce json
// @Success 200 {array} models.Startup
// @Failure 401 {object} models.ErrorResponse
// @Router /startups [get]
func (s *Server) GetStartups(c *fiber.Ctx) error {
	return c.JSON(s.store.Startups())
}

// GetStartup handles GET /api/startups/:id
// @Summary Get a startup
// @Tags startups
// @Produce json
// @Param id path string true "Startup ID"
// @Success 200 {object} models.Startup
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /startups/{id} [get]
func (s *Server) GetStartup(c *fiber.Ctx) error {
	id, err := parseParam(c, "id")
	if err != nil {
		return nil
	}

	startup, err := s.store.StartupByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(startup)
}

// CreateStartup handles POST /api/startups
// @Summary Create a startup
// @Description The session user is added as founder and first team member.
// @Tags startups
// @Accept json
// @Produce json
// @Param request body server.CreateStartupRequest true "Startup listing"
// @Success 201 {object} models.Startup
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /startups [post]
func (s *Server) CreateStartup(c *fiber.Ctx) error {
	var req CreateStartupRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	startup, err := s.store.CreateStartup(c.UserContext(), req.Startup, req.FounderRole)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(startup)
}

// UpdateStartup handles PUT /api/startups/:id
// @Summary Update a startup
// @Tags startups
// @Accept json
// @Produce json
// @Param id path string true "Startup ID"
// @Param request body models.StartupPatch true "Fields to change"
// @Success 200 {object} models.Startup
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /startups/{id} [put]
func (s *Server) UpdateStartup(c *fiber.Ctx) error {
	id, err := parseParam(c, "id")
	if err != nil {
		return nil
	}
	var patch models.StartupPatch
	if err := parseBody(c, &patch); err != nil {
		return nil
	}

	startup, err := s.store.UpdateStartup(c.UserContext(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(startup)
}

// ExpressInterest handles POST /api/startups/:id/interest
// @Summary Express investor interest
// @Tags startups
// @Produce json
// @Param id path string true "Startup ID"
// @Success 200 {object} models.Startup
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /startups/{id}/interest [post]
func (s *Server) ExpressInterest(c *fiber.Ctx) error {
	id, err := parseParam(c, "id")
	if err != nil {
		return nil
	}

	startup, err := s.store.ExpressInterest(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(startup)
}
