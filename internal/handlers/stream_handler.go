package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gravadigital/muro-api/internal/domain/event"
	"github.com/gravadigital/muro-api/internal/domain/message"
	"github.com/gravadigital/muro-api/internal/logger"
	"github.com/gravadigital/muro-api/internal/response"
	"github.com/gravadigital/muro-api/internal/storage/postgres"
	"github.com/gravadigital/muro-api/internal/transport"
	"github.com/gravadigital/muro-api/internal/validation"
	"github.com/gravadigital/muro-api/internal/wall"
)

// StreamHandler serves the SSE viewer feed. Each connection is one viewer: a
// wall subscription folds relay events into the process ledger and the full
// filtered view is pushed after every change. Displays additionally get
// effect-spawn frames.
type StreamHandler struct {
	conn      transport.Connection
	ledger    *wall.Ledger
	eventRepo postgres.EventRepository
}

func NewStreamHandler(conn transport.Connection, ledger *wall.Ledger, eventRepo postgres.EventRepository) *StreamHandler {
	return &StreamHandler{
		conn:      conn,
		ledger:    ledger,
		eventRepo: eventRepo,
	}
}

// Stream handles GET /api/events/{event_id}/stream?role=guest|admin|display
func (h *StreamHandler) Stream(c *gin.Context) {
	eventID := c.Param("event_id")
	if err := validation.ValidateUUID(eventID, "event_id"); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}

	e, err := h.eventRepo.GetByID(eventID)
	if err != nil {
		if errors.Is(err, postgres.ErrEventNotFound) {
			response.NotFoundError(c, "Event not found")
			return
		}
		response.InternalServerError(c, "Failed to retrieve event")
		return
	}

	isDisplay := c.Query("role") == "display"
	log := logger.Handler("stream").With("event_id", eventID, "display", isDisplay)

	// Latest-view channel: a stale snapshot is dropped in favor of the next
	// full one, never the other way around.
	views := make(chan []message.Message, 1)
	pushView := func(view []message.Message) {
		for {
			select {
			case views <- view:
				return
			default:
				select {
				case <-views:
				default:
				}
			}
		}
	}

	fxUpdates := make(chan event.Effects, 1)
	sub := wall.Subscribe(h.conn, h.ledger, eventID, pushView)
	defer sub.Close()

	var dispatcher *wall.Dispatcher
	fx := e.Effects
	if isDisplay {
		dispatcher = wall.NewDispatcher(nil)
		// Prime the handled set: messages approved before this viewer
		// connected never fire effects.
		dispatcher.Observe(h.ledger.Snapshot(eventID), fx)
		sub.OnEffects(func(updated event.Effects) {
			select {
			case fxUpdates <- updated:
			default:
			}
		})
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	c.SSEvent("messages", h.ledger.Snapshot(eventID))
	c.Writer.Flush()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			log.Debug("Viewer disconnected")
			return

		case view := <-views:
			c.SSEvent("messages", view)
			if dispatcher != nil {
				for _, inst := range dispatcher.Observe(view, fx) {
					c.SSEvent("effect", inst)
				}
			}
			c.Writer.Flush()

		case updated := <-fxUpdates:
			fx = updated
			c.SSEvent("effects", fx)
			c.Writer.Flush()

		case <-ticker.C:
			if dispatcher != nil {
				// Expiry tick; keeps the active set bounded.
				dispatcher.Active()
			}
			c.SSEvent("ping", time.Now().Unix())
			c.Writer.Flush()
		}
	}
}
