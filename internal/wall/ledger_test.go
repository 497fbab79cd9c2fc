package wall

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/muro-api/internal/domain/message"
)

func TestLedgerAppendDeduplicates(t *testing.T) {
	ledger := NewLedger()

	m := message.New("event-1", "Ana", "+5491112345678", "Hola!", "")
	assert.True(t, ledger.Append(m), "first append should succeed")
	assert.False(t, ledger.Append(m), "duplicate append should be a no-op")
	assert.Equal(t, 1, ledger.Len())
}

func TestLedgerFoldIsIdempotent(t *testing.T) {
	ledger := NewLedger()

	m := message.New("event-1", "Ana", "+5491112345678", "Hola!", "")
	ev := FoldEvent{Kind: FoldNewMessage, Message: m}

	ledger.Fold(ev)
	once := ledger.Snapshot("event-1")

	ledger.Fold(ev)
	twice := ledger.Snapshot("event-1")

	assert.Equal(t, once, twice, "folding the same event twice must not change the view")
	assert.Len(t, twice, 1)
}

func TestLedgerStatusIsMonotonic(t *testing.T) {
	ledger := NewLedger()

	m := message.New("event-1", "Ana", "+5491112345678", "Hola!", "")
	ledger.Append(m)

	approvedAt := time.Now()
	assert.True(t, ledger.Approve(m.ID, approvedAt))

	// No transition leaves a terminal state.
	assert.False(t, ledger.Reject(m.ID))
	assert.False(t, ledger.Approve(m.ID, approvedAt.Add(time.Hour)))

	view := ledger.Snapshot("event-1")
	require.Len(t, view, 1)
	assert.Equal(t, message.StatusApproved, view[0].Status)
	require.NotNil(t, view[0].ApprovedAt)
	assert.WithinDuration(t, approvedAt, *view[0].ApprovedAt, time.Second)
}

func TestLedgerRejectIsMonotonic(t *testing.T) {
	ledger := NewLedger()

	m := message.New("event-1", "Ana", "+5491112345678", "Hola!", "")
	ledger.Append(m)

	assert.True(t, ledger.Reject(m.ID))
	assert.False(t, ledger.Approve(m.ID, time.Now()))

	view := ledger.Snapshot("event-1")
	require.Len(t, view, 1)
	assert.Equal(t, message.StatusRejected, view[0].Status)
	assert.Nil(t, view[0].ApprovedAt)
}

func TestLedgerTransitionOnUnknownIDIsNoOp(t *testing.T) {
	ledger := NewLedger()

	assert.False(t, ledger.Approve("msg_missing", time.Now()))
	assert.False(t, ledger.Reject("msg_missing"))
	assert.Equal(t, 0, ledger.Len())
}

func TestLedgerSnapshotFiltersByEvent(t *testing.T) {
	ledger := NewLedger()

	a1 := message.New("event-a", "Ana", "111", "uno", "")
	b1 := message.New("event-b", "Beto", "222", "dos", "")
	a2 := message.New("event-a", "Carla", "333", "tres", "")
	for _, m := range []*message.Message{a1, b1, a2} {
		ledger.Append(m)
	}

	view := ledger.Snapshot("event-a")
	require.Len(t, view, 2)
	assert.Equal(t, a1.ID, view[0].ID, "arrival order is preserved")
	assert.Equal(t, a2.ID, view[1].ID)
	for _, m := range view {
		assert.Equal(t, "event-a", m.EventID)
	}

	assert.Len(t, ledger.Snapshot("event-b"), 1)
	assert.Empty(t, ledger.Snapshot("event-c"))
}

func TestLedgerSnapshotReturnsCopies(t *testing.T) {
	ledger := NewLedger()

	m := message.New("event-1", "Ana", "111", "Hola!", "")
	ledger.Append(m)

	view := ledger.Snapshot("event-1")
	view[0].Status = message.StatusRejected
	view[0].Message = "mutated"

	fresh := ledger.Snapshot("event-1")
	assert.Equal(t, message.StatusPending, fresh[0].Status)
	assert.Equal(t, "Hola!", fresh[0].Message)
}
