package server

import (
	"startupconnect/internal/models"
	"startupconnect/internal/store"

	"github.com/gofiber/fiber/v2"
)

// CommentRequest is the body of POST /api/ideas/:id/comments
type CommentRequest struct {
	Text string `json:"text"`
}

// GetIdeas handles GET /api/ideas
// Optional query: q, category, stage, sort (trending|newest|discussed).
// @Summary List ideas
// @Tags ideas
// @Produce json
// @Param q query string false "Free text search"
// @Param category query string false "Category"
// @Param stage query string false "Stage"
// @Param sort query string false "trending, newest or discussed"
// @Success 200 {array} models.Idea
// @Failure 401 {object} models.ErrorResponse
// @Router /ideas [get]
func (s *Server) GetIdeas(c *fiber.Ctx) error {
	return c.JSON(s.store.ListIdeas(store.IdeaFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Stage:    c.Query("stage"),
		Sort:     c.Query("sort"),
	}))
}

// GetIdea handles GET /api/ideas/:id
// @Summary Get an idea
// @Tags ideas
// @Produce json
// @Param id path string true "Idea ID"
// @Success 200 {object} models.Idea
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /ideas/{id} [get]
func (s *Server) GetIdea(c *fiber.Ctx) error {
	id, err := parseParam(c, "id")
	if err != nil {
		return nil
	}

	idea, err := s.store.IdeaByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(idea)
}

// CreateIdea handles POST /api/ideas
// @Summary Post an idea
// @Tags ideas
// @Accept json
// @Produce json
// @Param request body models.Idea true "Idea"
// @Success 201 {object} models.Idea
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /ideas [post]
func (s *Server) CreateIdea(c *fiber.Ctx) error {
	var data models.Idea
	if err := parseBody(c, &data); err != nil {
		return nil
	}

	idea, err := s.store.CreateIdea(c.UserContext(), data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(idea)
}

// UpvoteIdea handles POST /api/ideas/:id/upvote
// A second upvote by the same user removes it.
// @Summary Toggle an upvote
// @Tags ideas
// @Produce json
// @Param id path string true "Idea ID"
// @Success 200 {object} models.Idea
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /ideas/{id}/upvote [post]
func (s *Server) UpvoteIdea(c *fiber.Ctx) error {
	id, err := parseParam(c, "id")
	if err != nil {
		return nil
	}

	idea, err := s.store.UpvoteIdea(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(idea)
}

// AddComment handles POST /api/ideas/:id/comments
// @Summary Comment on an idea
// @Tags ideas
// @Accept json
// @Produce json
// @Param id path string true "Idea ID"
// @Param request body server.CommentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /ideas/{id}/comments [post]
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, err := parseParam(c, "id")
	if err != nil {
		return nil
	}
	var req CommentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	comment, err := s.store.AddComment(c.UserContext(), id, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
