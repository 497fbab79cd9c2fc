// Package memory provides in-memory storage backends used by tests and by
// single-process deployments that do not need Postgres.
package memory

import (
	"sort"
	"sync"

	"github.com/gravadigital/muro-api/internal/domain/event"
	"github.com/gravadigital/muro-api/internal/storage/postgres"
)

// EventRepository keeps events in a mutex-guarded map
type EventRepository struct {
	mu     sync.Mutex
	events map[string]*event.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{
		events: make(map[string]*event.Event),
	}
}

func (r *EventRepository) Create(e *event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *e
	r.events[e.ID.String()] = &stored
	return nil
}

func (r *EventRepository) GetByID(id string) (*event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, exists := r.events[id]
	if !exists {
		return nil, postgres.ErrEventNotFound
	}
	out := *e
	return &out, nil
}

func (r *EventRepository) GetByCode(code string) (*event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.Code == code {
			out := *e
			return &out, nil
		}
	}
	return nil, postgres.ErrEventNotFound
}

func (r *EventRepository) GetAll() ([]*event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]*event.Event, 0, len(r.events))
	for _, e := range r.events {
		out := *e
		events = append(events, &out)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (r *EventRepository) UpdateEffects(eventID string, fx event.Effects) error {
	if err := fx.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, exists := r.events[eventID]
	if !exists {
		return postgres.ErrEventNotFound
	}
	e.Effects = fx
	return nil
}
