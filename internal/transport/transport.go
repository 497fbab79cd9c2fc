// Package transport wraps publish/subscribe delivery of wall events. A
// Connection hands out per-viewer channels; a Broadcaster pushes an event to
// every subscriber of a channel. The relay is the only writer: viewers never
// trigger directly, which is why every event name carries the client- prefix
// of the hosted cluster's client-event convention.
package transport

import "encoding/json"

// Event names carried on an event channel. These are the wire contract
// shared with browser viewers, do not rename.
const (
	EventNewMessage      = "client-new-message"
	EventMessageApproved = "client-message-approved"
	EventMessageRejected = "client-message-rejected"
	EventEffectsUpdated  = "client-effects-updated"
)

// ChannelName returns the pub/sub channel for one event's wall
func ChannelName(eventID string) string {
	return "event-" + eventID
}

// Handler receives the raw payload of one delivered event
type Handler func(data json.RawMessage)

// Connection hands out subscriptions to named channels
type Connection interface {
	Subscribe(channel string) Channel
}

// Channel is one viewer's subscription to a named channel. Close detaches
// every bound handler; no deliveries happen after Close returns.
type Channel interface {
	Name() string
	Bind(event string, h Handler)
	Unbind(event string)
	Close()
}

// Broadcaster publishes an event to all subscribers of a channel
type Broadcaster interface {
	Trigger(channel, event string, data any) error
}
