package wall

import (
	"time"

	"github.com/gravadigital/muro-api/internal/domain/message"
)

// FoldKind identifies which transport event a FoldEvent carries
type FoldKind byte

const (
	FoldNewMessage FoldKind = iota
	FoldApproved
	FoldRejected
)

// FoldEvent is one decoded transport event to be applied to a ledger. The
// transport layer's only job is to hand these to Fold in arrival order.
type FoldEvent struct {
	Kind       FoldKind
	Message    *message.Message // FoldNewMessage only
	MessageID  string           // FoldApproved / FoldRejected
	ApprovedAt time.Time        // FoldApproved only
}

// ApprovalPayload is the wire payload of a message-approved event
type ApprovalPayload struct {
	MessageID  string    `json:"messageId"`
	ApprovedAt time.Time `json:"approvedAt"`
}

// RejectionPayload is the wire payload of a message-rejected event
type RejectionPayload struct {
	MessageID string `json:"messageId"`
}

// Fold applies one event to the ledger. Folding is idempotent: duplicates
// and transitions for already-terminal or unknown messages are no-ops.
func (l *Ledger) Fold(ev FoldEvent) {
	switch ev.Kind {
	case FoldNewMessage:
		if ev.Message != nil {
			l.Append(ev.Message)
		}
	case FoldApproved:
		l.Approve(ev.MessageID, ev.ApprovedAt)
	case FoldRejected:
		l.Reject(ev.MessageID)
	}
}
