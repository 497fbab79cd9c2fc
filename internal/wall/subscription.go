package wall

import (
	"encoding/json"
	"sync"

	"github.com/gravadigital/muro-api/internal/domain/event"
	"github.com/gravadigital/muro-api/internal/domain/message"
	"github.com/gravadigital/muro-api/internal/logger"
	"github.com/gravadigital/muro-api/internal/transport"
)

// ViewFunc receives the full filtered ledger view after every fold
type ViewFunc func(view []message.Message)

// EffectsFunc receives the event's effects config when the admin changes it
type EffectsFunc func(fx event.Effects)

// Subscription is one viewer's live attachment to an event's wall. It binds
// the channel's message events, folds each into the process ledger and
// re-delivers the filtered view. Close detaches everything; no callbacks run
// after that.
type Subscription struct {
	eventID string
	ledger  *Ledger
	channel transport.Channel

	mu     sync.Mutex
	closed bool
}

// Subscribe attaches a viewer to an event's channel. The callback fires
// immediately with whatever the ledger already holds for the event, which on
// a freshly started process is empty: there is no replay of past events.
func Subscribe(conn transport.Connection, ledger *Ledger, eventID string, onView ViewFunc) *Subscription {
	s := &Subscription{
		eventID: eventID,
		ledger:  ledger,
		channel: conn.Subscribe(transport.ChannelName(eventID)),
	}

	log := logger.Wall().With("event_id", eventID)

	s.channel.Bind(transport.EventNewMessage, func(data json.RawMessage) {
		var m message.Message
		if err := json.Unmarshal(data, &m); err != nil {
			log.Warn("Dropping malformed new-message payload", "error", err)
			return
		}
		if m.EventID != eventID {
			return
		}
		ledger.Fold(FoldEvent{Kind: FoldNewMessage, Message: &m})
		s.emit(onView)
	})

	s.channel.Bind(transport.EventMessageApproved, func(data json.RawMessage) {
		var p ApprovalPayload
		if err := json.Unmarshal(data, &p); err != nil {
			log.Warn("Dropping malformed approval payload", "error", err)
			return
		}
		ledger.Fold(FoldEvent{Kind: FoldApproved, MessageID: p.MessageID, ApprovedAt: p.ApprovedAt})
		s.emit(onView)
	})

	s.channel.Bind(transport.EventMessageRejected, func(data json.RawMessage) {
		var p RejectionPayload
		if err := json.Unmarshal(data, &p); err != nil {
			log.Warn("Dropping malformed rejection payload", "error", err)
			return
		}
		ledger.Fold(FoldEvent{Kind: FoldRejected, MessageID: p.MessageID})
		s.emit(onView)
	})

	s.emit(onView)
	return s
}

// OnEffects additionally delivers admin effect-config changes to this viewer
func (s *Subscription) OnEffects(onEffects EffectsFunc) {
	s.channel.Bind(transport.EventEffectsUpdated, func(data json.RawMessage) {
		var fx event.Effects
		if err := json.Unmarshal(data, &fx); err != nil {
			logger.Wall().Warn("Dropping malformed effects payload", "event_id", s.eventID, "error", err)
			return
		}
		s.mu.Lock()
		closed := s.closed
		s.mu.Unlock()
		if !closed {
			onEffects(fx)
		}
	})
}

// Close detaches all handlers and leaves the channel. In-flight relay calls
// are not cancelled; their ledger entries simply stop being rendered.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.channel.Close()
}

func (s *Subscription) emit(onView ViewFunc) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}
	onView(s.ledger.Snapshot(s.eventID))
}
