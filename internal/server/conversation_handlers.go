package server

import (
	"startupconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// StartConversationRequest is the body of POST /api/conversations
type StartConversationRequest struct {
	ParticipantID string `json:"participantId"`
}

// SendMessageRequest is the body of POST /api/conversations/:id/messages
type SendMessageRequest struct {
	Text string `json:"text"`
}

// GetConversations handles GET /api/conversations
// @Summary My conversations
// @Tags conversations
// @Produce json
// @Success 200 {array} models.Conversation
// @Failure 401 {object} models.ErrorResponse
// @Router /conversations [get]
func (s *Server) GetConversations(c *fiber.Ctx) error {
	return c.JSON(s.store.SessionConversations())
}

// GetConversation handles GET /api/conversations/:id
// Only participants may read a conversation.
// @Summary Get a conversation
// @Tags conversations
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} models.Conversation
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /conversations/{id} [get]
func (s *Server) GetConversation(c *fiber.Ctx) error {
	id, err := parseParam(c, "id")
	if err != nil {
		return nil
	}

	conv, err := s.store.ConversationByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if !conv.HasParticipant(sessionUserID(c)) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Not a participant in this conversation"))
	}
	return c.JSON(conv)
}

// StartConversation handles POST /api/conversations
// Returns the existing conversation when one already exists with the participant.
// @Summary Start or reuse a conversation
// @Tags conversations
// @Accept json
// @Produce json
// @Param request body server.StartConversationRequest true "Other participant"
// @Success 200 {object} models.Conversation
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /conversations [post]
func (s *Server) StartConversation(c *fiber.Ctx) error {
	var req StartConversationRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	conv, err := s.store.StartConversation(c.UserContext(), req.ParticipantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(conv)
}

// SendMessage handles POST /api/conversations/:id/messages
// @Summary Send a message
// @Tags conversations
// @Accept json
// @Produce json
// @Param id path string true "Conversation ID"
// @Param request body server.SendMessageRequest true "Message"
// @Success 201 {object} models.Message
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /conversations/{id}/messages [post]
func (s *Server) SendMessage(c *fiber.Ctx) error {
	id, err := parseParam(c, "id")
	if err != nil {
		return nil
	}
	var req SendMessageRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	msg, err := s.store.SendMessage(c.UserContext(), id, req.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}
