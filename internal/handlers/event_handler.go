package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/muro-api/internal/domain/event"
	"github.com/gravadigital/muro-api/internal/response"
	"github.com/gravadigital/muro-api/internal/storage/postgres"
	"github.com/gravadigital/muro-api/internal/transport"
	"github.com/gravadigital/muro-api/internal/validation"
	"github.com/gravadigital/muro-api/internal/wall"
)

type EventHandler struct {
	eventRepo postgres.EventRepository
	relay     wall.Trigger
	validator validation.EventValidation
}

func NewEventHandler(eventRepo postgres.EventRepository, relay wall.Trigger) *EventHandler {
	return &EventHandler{
		eventRepo: eventRepo,
		relay:     relay,
	}
}

type CreateEventRequest struct {
	Name            string `json:"name" binding:"required"`
	DisplayName     string `json:"displayName"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	BackgroundImage string `json:"backgroundImage"`
	Logo            string `json:"logo"`
	LogoPosition    string `json:"logoPosition"`
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload")
		return
	}

	if err := h.validator.ValidateEventName(req.Name); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	newEvent := event.NewEvent(req.Name, req.DisplayName)
	if req.BackgroundColor != "" {
		newEvent.BackgroundColor = req.BackgroundColor
	}
	if req.TextColor != "" {
		newEvent.TextColor = req.TextColor
	}
	newEvent.BackgroundImage = req.BackgroundImage
	newEvent.Logo = req.Logo
	newEvent.LogoPosition = req.LogoPosition

	if err := h.eventRepo.Create(newEvent); err != nil {
		response.InternalServerError(c, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, newEvent)
}

// GetAllEvents handles GET /api/events
func (h *EventHandler) GetAllEvents(c *gin.Context) {
	events, err := h.eventRepo.GetAll()
	if err != nil {
		response.InternalServerError(c, "Failed to retrieve events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// GetEventByCode handles GET /api/events/code/{code} — the QR landing lookup
func (h *EventHandler) GetEventByCode(c *gin.Context) {
	code := c.Param("code")
	if err := h.validator.ValidateEventCode(code); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	e, err := h.eventRepo.GetByCode(code)
	if err != nil {
		if errors.Is(err, postgres.ErrEventNotFound) {
			response.NotFoundError(c, "Event not found")
			return
		}
		response.InternalServerError(c, "Failed to retrieve event")
		return
	}

	c.JSON(http.StatusOK, e)
}

// UpdateEffectsRequest mirrors the effects config wire format
type UpdateEffectsRequest struct {
	Shake            bool `json:"shake"`
	NeonLights       bool `json:"neonLights"`
	RippleWaves      bool `json:"rippleWaves"`
	SparkleParticles bool `json:"sparkleParticles"`
}

// UpdateEffects handles PATCH /api/events/{event_id}/effects. Persists the
// config and broadcasts it so every viewer's dispatcher reacts without a
// reload.
func (h *EventHandler) UpdateEffects(c *gin.Context) {
	eventID := c.Param("event_id")
	if err := validation.ValidateUUID(eventID, "event_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	var req UpdateEffectsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload")
		return
	}

	fx := event.Effects{
		Shake:            req.Shake,
		NeonLights:       req.NeonLights,
		RippleWaves:      req.RippleWaves,
		SparkleParticles: req.SparkleParticles,
	}
	if err := fx.Validate(); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	if err := h.eventRepo.UpdateEffects(eventID, fx); err != nil {
		if errors.Is(err, postgres.ErrEventNotFound) {
			response.NotFoundError(c, "Event not found")
			return
		}
		response.InternalServerError(c, "Failed to update effects")
		return
	}

	if err := h.relay.Trigger(transport.ChannelName(eventID), transport.EventEffectsUpdated, fx); err != nil {
		// Persisted but not broadcast; viewers pick it up on next load.
		response.SuccessResponse(c, http.StatusOK, "Effects updated, broadcast failed", fx)
		return
	}

	response.SuccessResponse(c, http.StatusOK, "Effects updated", fx)
}
