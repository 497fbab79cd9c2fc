package message

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// Message is one guest-submitted item on the wall. It is a wire type: the
// JSON field names are the channel payload contract shared with every
// connected viewer, and the entity is never persisted.
type Message struct {
	ID         string     `json:"id"`
	EventID    string     `json:"eventId"`
	GuestName  string     `json:"guestName"`
	GuestPhone string     `json:"guestPhone"`
	Message    string     `json:"message"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	Image      string     `json:"image,omitempty"`
}

// New creates a pending message with a fresh submission-time ID
func New(eventID, guestName, guestPhone, body, imageURL string) *Message {
	return &Message{
		ID:         NewID(),
		EventID:    eventID,
		GuestName:  guestName,
		GuestPhone: guestPhone,
		Message:    body,
		Status:     StatusPending,
		CreatedAt:  time.Now(),
		Image:      imageURL,
	}
}

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID generates a message ID: timestamp plus a 9 character random suffix.
// IDs must be unique within an event's channel so the ledger can dedup
// duplicate deliveries.
func NewID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return "msg_" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "_" + string(suffix)
}

// Terminal reports whether the message has reached a final moderation state
func (m *Message) Terminal() bool {
	return m.Status == StatusApproved || m.Status == StatusRejected
}

// Validate checks if the message data is valid
func (m *Message) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("id is required")
	}
	if m.EventID == "" {
		return fmt.Errorf("eventId is required")
	}
	if m.GuestName == "" {
		return fmt.Errorf("guestName is required")
	}
	if m.Message == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}

// Clone returns a copy so ledger snapshots cannot be mutated by callers
func (m *Message) Clone() Message {
	out := *m
	if m.ApprovedAt != nil {
		at := *m.ApprovedAt
		out.ApprovedAt = &at
	}
	return out
}
