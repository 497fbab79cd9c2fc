package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/muro-api/internal/relay"
	"github.com/gravadigital/muro-api/internal/response"
	"github.com/gravadigital/muro-api/internal/upload"
	"github.com/gravadigital/muro-api/internal/validation"
	"github.com/gravadigital/muro-api/internal/wall"
)

type MessageHandler struct {
	moderator *wall.Moderator
	ledger    *wall.Ledger
	uploader  upload.Uploader
}

func NewMessageHandler(moderator *wall.Moderator, ledger *wall.Ledger, uploader upload.Uploader) *MessageHandler {
	return &MessageHandler{
		moderator: moderator,
		ledger:    ledger,
		uploader:  uploader,
	}
}

type SubmitMessageRequest struct {
	EventID    string `json:"eventId" binding:"required"`
	GuestName  string `json:"guestName" binding:"required"`
	GuestPhone string `json:"guestPhone" binding:"required"`
	Message    string `json:"message" binding:"required"`
	// ImageData is an optional base64 data URL captured on the guest's phone
	ImageData string `json:"imageData"`
}

// SubmitMessage handles POST /api/messages. Image first (a hosting failure
// must abort before the relay), then the moderated submit.
func (h *MessageHandler) SubmitMessage(c *gin.Context) {
	var req SubmitMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload")
		return
	}

	if err := validation.ValidateUUID(req.EventID, "eventId"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	var validator validation.MessageValidation
	if err := validator.ValidateBody(req.Message); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	imageURL := ""
	if req.ImageData != "" {
		url, err := h.uploader.UploadBase64(c.Request.Context(), req.ImageData)
		if err != nil {
			response.InternalServerError(c, "Failed to upload image")
			return
		}
		imageURL = url
	}

	m, err := h.moderator.Submit(req.EventID, req.GuestName, req.GuestPhone, req.Message, imageURL)
	if err != nil {
		if errors.Is(err, relay.ErrPayloadTooLarge) {
			response.PayloadTooLargeError(c, "Imagen demasiado grande. Máximo 200KB.")
			return
		}
		var subErr *wall.SubmissionError
		if errors.As(err, &subErr) {
			response.InternalServerError(c, subErr.Error())
			return
		}
		response.InternalServerError(c, "Failed to submit message")
		return
	}

	c.JSON(http.StatusCreated, m)
}

// GetEventMessages handles GET /api/events/{event_id}/messages — the admin's
// snapshot of this process's ledger for one event.
func (h *MessageHandler) GetEventMessages(c *gin.Context) {
	eventID := c.Param("event_id")
	if err := validation.ValidateUUID(eventID, "event_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	view := h.ledger.Snapshot(eventID)
	c.JSON(http.StatusOK, gin.H{
		"messages": view,
		"count":    len(view),
	})
}
