package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerDeliversInFIFOOrder(t *testing.T) {
	broker := NewBroker()
	ch := broker.Subscribe("event-1")
	defer ch.Close()

	var got []string
	ch.Bind("client-new-message", func(data json.RawMessage) {
		var s string
		require.NoError(t, json.Unmarshal(data, &s))
		got = append(got, s)
	})

	for _, payload := range []string{"uno", "dos", "tres"} {
		require.NoError(t, broker.Trigger("event-1", "client-new-message", payload))
	}

	assert.Equal(t, []string{"uno", "dos", "tres"}, got)
}

func TestBrokerIsolatesChannels(t *testing.T) {
	broker := NewBroker()

	chA := broker.Subscribe("event-a")
	defer chA.Close()
	chB := broker.Subscribe("event-b")
	defer chB.Close()

	countA, countB := 0, 0
	chA.Bind("client-new-message", func(json.RawMessage) { countA++ })
	chB.Bind("client-new-message", func(json.RawMessage) { countB++ })

	require.NoError(t, broker.Trigger("event-a", "client-new-message", "hola"))

	assert.Equal(t, 1, countA)
	assert.Equal(t, 0, countB)
}

func TestBrokerFansOutToAllSubscribers(t *testing.T) {
	broker := NewBroker()

	counts := make([]int, 3)
	for i := range counts {
		i := i
		ch := broker.Subscribe("event-1")
		defer ch.Close()
		ch.Bind("client-message-approved", func(json.RawMessage) { counts[i]++ })
	}

	require.NoError(t, broker.Trigger("event-1", "client-message-approved", "ok"))

	for i, n := range counts {
		assert.Equal(t, 1, n, "subscriber %d", i)
	}
}

func TestChannelUnbindStopsOneEvent(t *testing.T) {
	broker := NewBroker()
	ch := broker.Subscribe("event-1")
	defer ch.Close()

	newCount, approvedCount := 0, 0
	ch.Bind("client-new-message", func(json.RawMessage) { newCount++ })
	ch.Bind("client-message-approved", func(json.RawMessage) { approvedCount++ })

	ch.Unbind("client-new-message")

	require.NoError(t, broker.Trigger("event-1", "client-new-message", "x"))
	require.NoError(t, broker.Trigger("event-1", "client-message-approved", "x"))

	assert.Equal(t, 0, newCount)
	assert.Equal(t, 1, approvedCount)
}

func TestChannelCloseStopsDelivery(t *testing.T) {
	broker := NewBroker()
	ch := broker.Subscribe("event-1")

	count := 0
	ch.Bind("client-new-message", func(json.RawMessage) { count++ })

	ch.Close()
	require.NoError(t, broker.Trigger("event-1", "client-new-message", "x"))
	assert.Equal(t, 0, count)

	// Binding after close is a no-op too.
	ch.Bind("client-new-message", func(json.RawMessage) { count++ })
	require.NoError(t, broker.Trigger("event-1", "client-new-message", "x"))
	assert.Equal(t, 0, count)
}

func TestTriggerWithoutSubscribersSucceeds(t *testing.T) {
	broker := NewBroker()
	assert.NoError(t, broker.Trigger("event-empty", "client-new-message", "nadie"))
}
