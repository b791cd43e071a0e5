package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetPendingRequests handles GET /api/connections/requests
// @Summary Incoming connection requests
// @Tags connections
// @Produce json
// @Success 200 {array} models.ConnectionRequest
// @Failure 401 {object} models.ErrorResponse
// @Router /connections/requests [get]
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	return c.JSON(s.store.PendingConnectionRequests())
}

// GetSentRequests handles GET /api/connections/requests/sent
// @Summary Outgoing connection requests
// @Tags connections
// @Produce json
// @Success 200 {array} models.ConnectionRequest
// @Failure 401 {object} models.ErrorResponse
// @Router /connections/requests/sent [get]
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	return c.JSON(s.store.SentConnectionRequests())
}

// SendConnectionRequest handles POST /api/connections/requests/:userId
// @Summary Request a connection
// @Tags connections
// @Produce json
// @Param userId path string true "Target user ID"
// @Success 201 {object} models.ConnectionRequest
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /connections/requests/{userId} [post]
func (s *Server) SendConnectionRequest(c *fiber.Ctx) error {
	toUserID, err := parseParam(c, "userId")
	if err != nil {
		return nil
	}

	req, err := s.store.SendConnectionRequest(c.UserContext(), toUserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// AcceptConnectionRequest handles POST /api/connections/requests/:requestId/accept
// @Summary Accept a connection request
// @Description Only the recipient may accept. Both users become connected.
// @Tags connections
// @Produce json
// @Param requestId path string true "Request ID"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /connections/requests/{requestId}/accept [post]
func (s *Server) AcceptConnectionRequest(c *fiber.Ctx) error {
	requestID, err := parseParam(c, "requestId")
	if err != nil {
		return nil
	}

	if err := s.store.AcceptConnectionRequest(c.UserContext(), requestID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Connection request accepted"})
}

// DeclineConnectionRequest handles POST /api/connections/requests/:requestId/decline
// @Summary Decline a connection request
// @Tags connections
// @Produce json
// @Param requestId path string true "Request ID"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /connections/requests/{requestId}/decline [post]
func (s *Server) DeclineConnectionRequest(c *fiber.Ctx) error {
	requestID, err := parseParam(c, "requestId")
	if err != nil {
		return nil
	}

	if err := s.store.DeclineConnectionRequest(c.UserContext(), requestID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Connection request declined"})
}
