package postgres

import (
	"errors"

	"github.com/gravadigital/muro-api/internal/domain/event"
	"github.com/gravadigital/muro-api/internal/domain/guest"
)

// Sentinel errors shared by every storage backend
var (
	ErrEventNotFound          = errors.New("event not found")
	ErrGuestNotFound          = errors.New("guest not found")
	ErrGuestAlreadyRegistered = errors.New("guest already registered for this event")
)

// EventRepository define los métodos para interactuar con los eventos en la DB.
type EventRepository interface {
	Create(event *event.Event) error
	GetByID(id string) (*event.Event, error)
	GetByCode(code string) (*event.Event, error)
	GetAll() ([]*event.Event, error)
	UpdateEffects(eventID string, fx event.Effects) error
}

// GuestRepository define los métodos para interactuar con los invitados en la DB.
type GuestRepository interface {
	Create(guest *guest.Guest) error
	GetByPhone(eventID, phone string) (*guest.Guest, error)
	GetByEventID(eventID string) ([]*guest.Guest, error)
}
