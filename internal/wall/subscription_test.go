package wall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/muro-api/internal/domain/event"
	"github.com/gravadigital/muro-api/internal/domain/message"
	"github.com/gravadigital/muro-api/internal/transport"
)

// Each viewer gets its own ledger, as every process owns an independent one;
// the shared broker plays the role of the hosted cluster.

func TestSubscribeDeliversInitialSnapshot(t *testing.T) {
	broker := transport.NewBroker()
	ledger := NewLedger()
	ledger.Append(message.New("event-1", "Ana", "111", "ya estaba", ""))

	var views [][]message.Message
	sub := Subscribe(broker, ledger, "event-1", func(view []message.Message) {
		views = append(views, view)
	})
	defer sub.Close()

	require.Len(t, views, 1, "callback fires immediately on subscribe")
	assert.Len(t, views[0], 1)
}

func TestSubmitReachesOtherViewers(t *testing.T) {
	broker := transport.NewBroker()

	adminLedger := NewLedger()
	var adminView []message.Message
	adminSub := Subscribe(broker, adminLedger, "event-1", func(view []message.Message) {
		adminView = view
	})
	defer adminSub.Close()

	guestLedger := NewLedger()
	mod := NewModerator(guestLedger, broker)

	m, err := mod.Submit("event-1", "Ana", "+5491112345678", "Hi", "")
	require.NoError(t, err)

	require.Len(t, adminView, 1, "admin folds the relayed submit")
	assert.Equal(t, m.ID, adminView[0].ID)
	assert.Equal(t, message.StatusPending, adminView[0].Status)
}

func TestApprovalPropagatesToDisplay(t *testing.T) {
	broker := transport.NewBroker()

	displayLedger := NewLedger()
	var displayView []message.Message
	displaySub := Subscribe(broker, displayLedger, "event-1", func(view []message.Message) {
		displayView = view
	})
	defer displaySub.Close()

	adminLedger := NewLedger()
	mod := NewModerator(adminLedger, broker)

	m, err := mod.Submit("event-1", "Ana", "111", "Hi", "")
	require.NoError(t, err)
	require.NoError(t, mod.Approve(m.ID, "event-1"))

	require.Len(t, displayView, 1)
	assert.Equal(t, message.StatusApproved, displayView[0].Status)
	require.NotNil(t, displayView[0].ApprovedAt, "approvedAt rides the wire payload")
}

func TestDuplicateDeliveryKeepsOneEntry(t *testing.T) {
	broker := transport.NewBroker()

	ledger := NewLedger()
	var view []message.Message
	sub := Subscribe(broker, ledger, "event-1", func(v []message.Message) {
		view = v
	})
	defer sub.Close()

	m := message.New("event-1", "Ana", "111", "Hi", "")
	channel := transport.ChannelName("event-1")
	require.NoError(t, broker.Trigger(channel, transport.EventNewMessage, m))
	require.NoError(t, broker.Trigger(channel, transport.EventNewMessage, m))

	assert.Len(t, view, 1, "duplicate relay delivery dedups by id")
}

func TestMessagesForOtherEventsAreIgnored(t *testing.T) {
	broker := transport.NewBroker()

	ledger := NewLedger()
	var view []message.Message
	sub := Subscribe(broker, ledger, "event-a", func(v []message.Message) {
		view = v
	})
	defer sub.Close()

	// Even if something publishes a foreign message on our channel, the
	// eventId check drops it.
	foreign := message.New("event-b", "Beto", "222", "otro", "")
	require.NoError(t, broker.Trigger(transport.ChannelName("event-a"), transport.EventNewMessage, foreign))

	assert.Empty(t, view)
}

func TestCloseStopsCallbacks(t *testing.T) {
	broker := transport.NewBroker()

	ledger := NewLedger()
	calls := 0
	sub := Subscribe(broker, ledger, "event-1", func(v []message.Message) {
		calls++
	})
	require.Equal(t, 1, calls, "initial snapshot")

	sub.Close()

	m := message.New("event-1", "Ana", "111", "tarde", "")
	require.NoError(t, broker.Trigger(transport.ChannelName("event-1"), transport.EventNewMessage, m))

	assert.Equal(t, 1, calls, "no callbacks after unbind")
}

func TestOnEffectsDeliversConfigChanges(t *testing.T) {
	broker := transport.NewBroker()

	ledger := NewLedger()
	sub := Subscribe(broker, ledger, "event-1", func(v []message.Message) {})
	defer sub.Close()

	var got event.Effects
	sub.OnEffects(func(fx event.Effects) {
		got = fx
	})

	fx := event.Effects{Shake: true, SparkleParticles: true}
	require.NoError(t, broker.Trigger(transport.ChannelName("event-1"), transport.EventEffectsUpdated, fx))

	assert.Equal(t, fx, got)
}
