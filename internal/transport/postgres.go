package transport

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/gravadigital/muro-api/internal/logger"
)

// PGBroker bridges wall events between server instances over Postgres
// LISTEN/NOTIFY, so a relay trigger on one instance reaches SSE viewers
// attached to another. Payloads ride the notification body, which Postgres
// caps at about 8000 bytes; inline images are kept out of this path by the
// relay's size guard plus the minio upload flow (messages carry URLs).
type PGBroker struct {
	db       *sql.DB
	listener *pq.Listener
	local    *Broker

	mu       sync.Mutex
	listened map[string]bool
	closed   chan struct{}
}

type pgEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// NewPGBroker connects a broker to the database identified by dsn
func NewPGBroker(dsn string) (*PGBroker, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres for notify: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres for notify: %w", err)
	}

	log := logger.Transport("postgres")
	listener := pq.NewListener(dsn, 2*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Warn("Listener event", "type", ev, "error", err)
		}
	})

	b := &PGBroker{
		db:       db,
		listener: listener,
		local:    NewBroker(),
		listened: make(map[string]bool),
		closed:   make(chan struct{}),
	}
	go b.loop()

	return b, nil
}

// Subscribe attaches to the named channel, starting a LISTEN on first use
func (b *PGBroker) Subscribe(channel string) Channel {
	b.mu.Lock()
	if !b.listened[channel] {
		if err := b.listener.Listen(channel); err != nil {
			logger.Transport("postgres").Error("LISTEN failed", "channel", channel, "error", err)
		} else {
			b.listened[channel] = true
		}
	}
	b.mu.Unlock()

	return b.local.Subscribe(channel)
}

// Trigger publishes via NOTIFY; our own listener folds it back to local
// subscribers along with every other instance's.
func (b *PGBroker) Trigger(channel, event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event, err)
	}
	payload, err := json.Marshal(pgEnvelope{Event: event, Data: raw})
	if err != nil {
		return fmt.Errorf("marshal notify envelope: %w", err)
	}

	if _, err := b.db.Exec("SELECT pg_notify($1, $2)", channel, string(payload)); err != nil {
		return fmt.Errorf("pg_notify on %s: %w", channel, err)
	}
	return nil
}

// Close stops the listener and releases the connection
func (b *PGBroker) Close() error {
	close(b.closed)
	if err := b.listener.Close(); err != nil {
		return err
	}
	return b.db.Close()
}

func (b *PGBroker) loop() {
	log := logger.Transport("postgres")
	for {
		select {
		case <-b.closed:
			return
		case n := <-b.listener.Notify:
			if n == nil {
				// nil marks a reconnect; past events are gone, which matches
				// the no-replay contract.
				continue
			}
			var env pgEnvelope
			if err := json.Unmarshal([]byte(n.Extra), &env); err != nil {
				log.Warn("Dropping malformed notification", "channel", n.Channel, "error", err)
				continue
			}
			if err := b.local.Trigger(n.Channel, env.Event, env.Data); err != nil {
				log.Warn("Local dispatch failed", "channel", n.Channel, "event", env.Event, "error", err)
			}
		}
	}
}
