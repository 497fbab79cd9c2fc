package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gravadigital/muro-api/internal/domain/guest"
	"github.com/gravadigital/muro-api/internal/response"
	"github.com/gravadigital/muro-api/internal/storage/postgres"
	"github.com/gravadigital/muro-api/internal/validation"
)

type GuestHandler struct {
	guestRepo postgres.GuestRepository
	eventRepo postgres.EventRepository
	validator validation.GuestValidation
}

func NewGuestHandler(guestRepo postgres.GuestRepository, eventRepo postgres.EventRepository) *GuestHandler {
	return &GuestHandler{
		guestRepo: guestRepo,
		eventRepo: eventRepo,
	}
}

type RegisterGuestRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// RegisterGuest handles POST /api/events/{event_id}/guests
func (h *GuestHandler) RegisterGuest(c *gin.Context) {
	eventID := c.Param("event_id")
	if err := validation.ValidateUUID(eventID, "event_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	var req RegisterGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload")
		return
	}

	if err := h.validator.ValidateGuestName(req.Name); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if err := h.validator.ValidateGuestPhone(req.Phone); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	if _, err := h.eventRepo.GetByID(eventID); err != nil {
		if errors.Is(err, postgres.ErrEventNotFound) {
			response.NotFoundError(c, "Event not found")
			return
		}
		response.InternalServerError(c, "Failed to retrieve event")
		return
	}

	newGuest := guest.NewGuest(uuid.MustParse(eventID), req.Name, req.Phone)
	if err := h.guestRepo.Create(newGuest); err != nil {
		if errors.Is(err, postgres.ErrGuestAlreadyRegistered) {
			response.ConflictError(c, "Guest is already registered for this event")
			return
		}
		response.InternalServerError(c, "Failed to register guest")
		return
	}

	c.JSON(http.StatusCreated, newGuest)
}

// GetGuestByPhone handles GET /api/events/{event_id}/guests/{phone} — the
// returning-guest session lookup.
func (h *GuestHandler) GetGuestByPhone(c *gin.Context) {
	eventID := c.Param("event_id")
	phone := c.Param("phone")

	if err := validation.ValidateUUID(eventID, "event_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	g, err := h.guestRepo.GetByPhone(eventID, phone)
	if err != nil {
		if errors.Is(err, postgres.ErrGuestNotFound) {
			response.NotFoundError(c, "Guest not found")
			return
		}
		response.InternalServerError(c, "Failed to retrieve guest")
		return
	}

	c.JSON(http.StatusOK, g)
}
