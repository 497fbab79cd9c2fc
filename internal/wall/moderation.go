package wall

import (
	"time"

	"github.com/gravadigital/muro-api/internal/domain/message"
	"github.com/gravadigital/muro-api/internal/logger"
	"github.com/gravadigital/muro-api/internal/transport"
	"github.com/gravadigital/muro-api/internal/validation"
)

// Trigger is the slice of the relay the moderator needs. Satisfied by
// *relay.Relay and by any transport.Broadcaster.
type Trigger interface {
	Trigger(channel, event string, data any) error
}

// Moderator owns the three mutations of the wall: submit, approve, reject.
// Every mutation becomes visible to other processes only through the relay;
// the local ledger update is the moderator's own fold of the same intent.
type Moderator struct {
	ledger    *Ledger
	relay     Trigger
	validator validation.MessageValidation
}

// NewModerator wires a moderator to its process ledger and relay
func NewModerator(ledger *Ledger, relay Trigger) *Moderator {
	return &Moderator{
		ledger: ledger,
		relay:  relay,
	}
}

// Submit builds a pending message and broadcasts it. The local append only
// happens once the relay accepts, so a relay failure never leaves a
// submitter-only phantom message.
func (s *Moderator) Submit(eventID, guestName, guestPhone, body, imageURL string) (*message.Message, error) {
	if err := s.validator.ValidateBody(body); err != nil {
		return nil, &SubmissionError{Err: err}
	}

	m := message.New(eventID, guestName, guestPhone, body, imageURL)
	if err := m.Validate(); err != nil {
		return nil, &SubmissionError{Err: err}
	}

	if err := s.relay.Trigger(transport.ChannelName(eventID), transport.EventNewMessage, m); err != nil {
		return nil, &SubmissionError{Err: err}
	}

	// The relay fan-out may already have folded it back through our own
	// subscription; Append dedups either way.
	s.ledger.Append(m)

	logger.Wall().Debug("Message submitted", "message_id", m.ID, "event_id", eventID, "has_image", imageURL != "")
	return m, nil
}

// Approve flips the local copy to approved and broadcasts the transition.
// An id unknown to this ledger is still broadcast: moderation intent is
// transport-authoritative, the admin process may simply have started after
// the submit.
func (s *Moderator) Approve(messageID, eventID string) error {
	now := time.Now()
	if !s.ledger.Approve(messageID, now) {
		logger.Wall().Debug("Approval for message not in local ledger", "message_id", messageID, "event_id", eventID)
	}

	payload := ApprovalPayload{MessageID: messageID, ApprovedAt: now}
	return s.relay.Trigger(transport.ChannelName(eventID), transport.EventMessageApproved, payload)
}

// Reject flips the local copy to rejected and broadcasts the transition.
// Same no-op tolerance as Approve.
func (s *Moderator) Reject(messageID, eventID string) error {
	if !s.ledger.Reject(messageID) {
		logger.Wall().Debug("Rejection for message not in local ledger", "message_id", messageID, "event_id", eventID)
	}

	payload := RejectionPayload{MessageID: messageID}
	return s.relay.Trigger(transport.ChannelName(eventID), transport.EventMessageRejected, payload)
}
