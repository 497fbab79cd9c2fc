package transport

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Broker is an in-process pub/sub backend. It fans an event out to every
// channel subscription of the same process, delivering synchronously so each
// channel observes triggers in FIFO order.
type Broker struct {
	mu      sync.RWMutex
	deliver sync.Mutex
	subs    map[string][]*brokerChannel
}

// NewBroker creates an empty in-process broker
func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string][]*brokerChannel),
	}
}

// Subscribe creates a new subscription to the named channel
func (b *Broker) Subscribe(channel string) Channel {
	ch := &brokerChannel{
		broker:   b,
		name:     channel,
		handlers: make(map[string][]Handler),
	}

	b.mu.Lock()
	b.subs[channel] = append(b.subs[channel], ch)
	b.mu.Unlock()

	return ch
}

// Trigger publishes an event to every subscription of the channel
func (b *Broker) Trigger(channel, event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event, err)
	}

	b.mu.RLock()
	targets := make([]*brokerChannel, len(b.subs[channel]))
	copy(targets, b.subs[channel])
	b.mu.RUnlock()

	// One trigger at a time so subscribers see relay order.
	b.deliver.Lock()
	defer b.deliver.Unlock()

	for _, ch := range targets {
		ch.dispatch(event, raw)
	}
	return nil
}

func (b *Broker) remove(target *brokerChannel) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[target.name]
	for i, ch := range subs {
		if ch == target {
			b.subs[target.name] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[target.name]) == 0 {
		delete(b.subs, target.name)
	}
}

type brokerChannel struct {
	broker *Broker
	name   string

	mu       sync.RWMutex
	handlers map[string][]Handler
	closed   bool
}

func (c *brokerChannel) Name() string {
	return c.name
}

func (c *brokerChannel) Bind(event string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.handlers[event] = append(c.handlers[event], h)
}

func (c *brokerChannel) Unbind(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, event)
}

func (c *brokerChannel) Close() {
	c.mu.Lock()
	c.closed = true
	c.handlers = make(map[string][]Handler)
	c.mu.Unlock()

	c.broker.remove(c)
}

func (c *brokerChannel) dispatch(event string, data json.RawMessage) {
	c.mu.RLock()
	handlers := make([]Handler, len(c.handlers[event]))
	copy(handlers, c.handlers[event])
	c.mu.RUnlock()

	for _, h := range handlers {
		h(data)
	}
}
