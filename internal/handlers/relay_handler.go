package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/muro-api/internal/relay"
	"github.com/gravadigital/muro-api/internal/response"
)

type RelayHandler struct {
	relay *relay.Relay
}

func NewRelayHandler(r *relay.Relay) *RelayHandler {
	return &RelayHandler{relay: r}
}

// TriggerRequest is the relay's wire contract: {channel, event, data}
type TriggerRequest struct {
	Channel string          `json:"channel" binding:"required"`
	Event   string          `json:"event" binding:"required"`
	Data    json.RawMessage `json:"data" binding:"required"`
}

// Trigger handles POST /api/relay. Republishes the event verbatim to every
// channel subscriber; 400 for an oversized image payload, 500 for any other
// propagation failure.
func (h *RelayHandler) Trigger(c *gin.Context) {
	var req TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequestError(c, "Invalid request payload")
		return
	}

	if err := h.relay.Trigger(req.Channel, req.Event, req.Data); err != nil {
		if errors.Is(err, relay.ErrPayloadTooLarge) {
			response.PayloadTooLargeError(c, "Imagen demasiado grande. Máximo 200KB.")
			return
		}
		response.InternalServerError(c, "Failed to propagate event")
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Success: true,
		Message: "Mensaje enviado correctamente",
	})
}
