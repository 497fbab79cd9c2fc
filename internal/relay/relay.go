// Package relay implements the server-mediated trigger: the only path by
// which a mutation in one process becomes visible in another. It republishes
// an event name and payload verbatim to every configured transport backend
// after a size guard on inline images.
package relay

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gravadigital/muro-api/internal/logger"
	"github.com/gravadigital/muro-api/internal/transport"
)

// MaxImageChars is the hard cap on the encoded length of a payload's image
// field. Oversized images must never reach the cluster; guests upload to the
// image host first and send the URL instead.
const MaxImageChars = 200000

// ErrPayloadTooLarge is returned when a payload's image field exceeds
// MaxImageChars.
var ErrPayloadTooLarge = errors.New("image payload exceeds relay limit")

// Relay fans a trigger out to every backend: the hosted cluster for browser
// viewers, NOTIFY for sibling instances, the in-process broker for local
// subscribers.
type Relay struct {
	broadcasters []transport.Broadcaster
}

// New creates a relay over the given backends
func New(broadcasters ...transport.Broadcaster) *Relay {
	return &Relay{broadcasters: broadcasters}
}

// Trigger validates the payload and republishes it on the channel. The first
// failing backend aborts the call; there are no retries.
func (r *Relay) Trigger(channel, event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event, err)
	}

	if err := checkImageSize(raw); err != nil {
		logger.Relay().Warn("Rejected oversized payload", "channel", channel, "event", event)
		return err
	}

	for _, b := range r.broadcasters {
		if err := b.Trigger(channel, event, json.RawMessage(raw)); err != nil {
			return fmt.Errorf("trigger %s on %s: %w", event, channel, err)
		}
	}

	logger.Relay().Debug("Triggered", "channel", channel, "event", event, "bytes", len(raw))
	return nil
}

func checkImageSize(raw []byte) error {
	var probe struct {
		Image string `json:"image"`
	}
	// Non-object payloads have no image field to guard.
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil
	}
	if len(probe.Image) > MaxImageChars {
		return fmt.Errorf("%w: %d characters, limit %d", ErrPayloadTooLarge, len(probe.Image), MaxImageChars)
	}
	return nil
}
