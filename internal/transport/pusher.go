package transport

import (
	"fmt"

	"github.com/pusher/pusher-http-go/v5"

	"github.com/gravadigital/muro-api/internal/config"
	"github.com/gravadigital/muro-api/internal/logger"
)

// PusherBroadcaster triggers events on the hosted Pusher cluster that the
// browser viewers are connected to. It is trigger-only: browser tabs
// subscribe with the Pusher JS client, never through this process.
type PusherBroadcaster struct {
	client pusher.Client
}

// NewPusherBroadcaster creates a broadcaster from the configured credentials
func NewPusherBroadcaster(cfg *config.Config) *PusherBroadcaster {
	return &PusherBroadcaster{
		client: pusher.Client{
			AppID:   cfg.Pusher.AppID,
			Key:     cfg.Pusher.Key,
			Secret:  cfg.Pusher.Secret,
			Cluster: cfg.Pusher.Cluster,
			Secure:  true,
		},
	}
}

// Trigger publishes the event to every cluster subscriber of the channel
func (b *PusherBroadcaster) Trigger(channel, event string, data any) error {
	if err := b.client.Trigger(channel, event, data); err != nil {
		logger.Transport("pusher").Error("Trigger failed", "channel", channel, "event", event, "error", err)
		return fmt.Errorf("pusher trigger %s on %s: %w", event, channel, err)
	}
	return nil
}
