package memory

import (
	"sync"

	"github.com/gravadigital/muro-api/internal/domain/guest"
	"github.com/gravadigital/muro-api/internal/storage/postgres"
)

// GuestRepository keeps guest registrations in memory
type GuestRepository struct {
	mu     sync.Mutex
	guests []*guest.Guest
}

func NewGuestRepository() *GuestRepository {
	return &GuestRepository{}
}

func (r *GuestRepository) Create(g *guest.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.guests {
		if existing.EventID == g.EventID && existing.Phone == g.Phone {
			return postgres.ErrGuestAlreadyRegistered
		}
	}
	stored := *g
	r.guests = append(r.guests, &stored)
	return nil
}

func (r *GuestRepository) GetByPhone(eventID, phone string) (*guest.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.guests {
		if g.EventID.String() == eventID && g.Phone == phone {
			out := *g
			return &out, nil
		}
	}
	return nil, postgres.ErrGuestNotFound
}

func (r *GuestRepository) GetByEventID(eventID string) ([]*guest.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var guests []*guest.Guest
	for _, g := range r.guests {
		if g.EventID.String() == eventID {
			out := *g
			guests = append(guests, &out)
		}
	}
	return guests, nil
}
