package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/muro-api/internal/response"
	"github.com/gravadigital/muro-api/internal/validation"
	"github.com/gravadigital/muro-api/internal/wall"
)

type ModerationHandler struct {
	moderator *wall.Moderator
}

func NewModerationHandler(moderator *wall.Moderator) *ModerationHandler {
	return &ModerationHandler{moderator: moderator}
}

type ModerationRequest struct {
	EventID string `json:"eventId" binding:"required"`
}

// ApproveMessage handles POST /api/messages/{message_id}/approve
func (h *ModerationHandler) ApproveMessage(c *gin.Context) {
	messageID := c.Param("message_id")
	if messageID == "" {
		response.BadRequestError(c, "message_id is required")
		return
	}

	var req ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload")
		return
	}
	if err := validation.ValidateUUID(req.EventID, "eventId"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	if err := h.moderator.Approve(messageID, req.EventID); err != nil {
		response.InternalServerError(c, "Failed to broadcast approval")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "Message approved", gin.H{
		"messageId": messageID,
	})
}

// RejectMessage handles POST /api/messages/{message_id}/reject
func (h *ModerationHandler) RejectMessage(c *gin.Context) {
	messageID := c.Param("message_id")
	if messageID == "" {
		response.BadRequestError(c, "message_id is required")
		return
	}

	var req ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload")
		return
	}
	if err := validation.ValidateUUID(req.EventID, "eventId"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	if err := h.moderator.Reject(messageID, req.EventID); err != nil {
		response.InternalServerError(c, "Failed to broadcast rejection")
		return
	}

	response.SuccessResponse(c, http.StatusOK, "Message rejected", gin.H{
		"messageId": messageID,
	})
}
