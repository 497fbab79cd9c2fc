package relay

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/muro-api/internal/transport"
)

type recordingBroadcaster struct {
	calls []recordedCall
	err   error
}

type recordedCall struct {
	channel string
	event   string
	data    any
}

func (b *recordingBroadcaster) Trigger(channel, event string, data any) error {
	if b.err != nil {
		return b.err
	}
	b.calls = append(b.calls, recordedCall{channel: channel, event: event, data: data})
	return nil
}

func TestRelayRepublishesVerbatim(t *testing.T) {
	rec := &recordingBroadcaster{}
	r := New(rec)

	payload := map[string]any{"id": "msg_1", "message": "hola"}
	require.NoError(t, r.Trigger("event-1", "client-new-message", payload))

	require.Len(t, rec.calls, 1)
	assert.Equal(t, "event-1", rec.calls[0].channel)
	assert.Equal(t, "client-new-message", rec.calls[0].event)

	raw, ok := rec.calls[0].data.(json.RawMessage)
	require.True(t, ok)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "hola", decoded["message"])
}

func TestRelayRejectsOversizedImage(t *testing.T) {
	rec := &recordingBroadcaster{}
	r := New(rec)

	payload := map[string]string{
		"id":    "msg_1",
		"image": strings.Repeat("a", 250000),
	}

	err := r.Trigger("event-1", "client-new-message", payload)
	require.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Empty(t, rec.calls, "oversized payloads never reach any backend")
}

func TestRelayAcceptsImageAtLimit(t *testing.T) {
	rec := &recordingBroadcaster{}
	r := New(rec)

	payload := map[string]string{
		"image": strings.Repeat("a", MaxImageChars),
	}
	require.NoError(t, r.Trigger("event-1", "client-new-message", payload))
	assert.Len(t, rec.calls, 1)
}

func TestRelayGuardsOnlyObjectPayloads(t *testing.T) {
	rec := &recordingBroadcaster{}
	r := New(rec)

	require.NoError(t, r.Trigger("event-1", "client-message-rejected", "just a string"))
	assert.Len(t, rec.calls, 1)
}

func TestRelayFansOutToAllBackends(t *testing.T) {
	first := &recordingBroadcaster{}
	second := &recordingBroadcaster{}
	r := New(first, second)

	require.NoError(t, r.Trigger("event-1", "client-message-approved", map[string]string{"messageId": "msg_1"}))
	assert.Len(t, first.calls, 1)
	assert.Len(t, second.calls, 1)
}

func TestRelayPropagatesBackendFailure(t *testing.T) {
	failing := &recordingBroadcaster{err: errors.New("cluster down")}
	after := &recordingBroadcaster{}
	r := New(failing, after)

	err := r.Trigger("event-1", "client-new-message", map[string]string{"id": "msg_1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPayloadTooLarge)
	assert.Empty(t, after.calls, "a failing backend aborts the fan-out")
}

var _ transport.Broadcaster = (*recordingBroadcaster)(nil)
