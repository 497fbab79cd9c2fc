package wall

import (
	"sync"
	"time"

	"github.com/gravadigital/muro-api/internal/domain/message"
)

// Ledger is the process-wide store of message state while the process is
// alive. There is no database behind it: every process folds the same relay
// events into its own ledger, and the transport is what keeps the copies
// converging. Created empty at startup, never torn down.
type Ledger struct {
	mu       sync.RWMutex
	messages []*message.Message
	index    map[string]*message.Message
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		index: make(map[string]*message.Message),
	}
}

// Append adds a message in arrival order. Returns false if the id is already
// present; duplicate relay deliveries are expected and harmless.
func (l *Ledger) Append(m *message.Message) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.index[m.ID]; exists {
		return false
	}
	stored := m.Clone()
	l.messages = append(l.messages, &stored)
	l.index[stored.ID] = &stored
	return true
}

// Approve transitions a pending message to approved and stamps ApprovedAt.
// Returns false without touching state if the id is unknown or the message
// already reached a terminal status: moderation is one-way.
func (l *Ledger) Approve(id string, at time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, exists := l.index[id]
	if !exists || m.Terminal() {
		return false
	}
	m.Status = message.StatusApproved
	m.ApprovedAt = &at
	return true
}

// Reject transitions a pending message to rejected. Same no-op rules as
// Approve.
func (l *Ledger) Reject(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	m, exists := l.index[id]
	if !exists || m.Terminal() {
		return false
	}
	m.Status = message.StatusRejected
	return true
}

// Snapshot returns copies of the messages for one event, in arrival order
func (l *Ledger) Snapshot(eventID string) []message.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	view := make([]message.Message, 0)
	for _, m := range l.messages {
		if m.EventID == eventID {
			view = append(view, m.Clone())
		}
	}
	return view
}

// Len returns the total number of messages across all events
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}
