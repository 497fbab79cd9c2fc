package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gravadigital/muro-api/internal/domain/guest"
)

// GormGuestRepository persists guest registrations with GORM
type GormGuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) *GormGuestRepository {
	return &GormGuestRepository{db: db}
}

func (r *GormGuestRepository) Create(g *guest.Guest) error {
	if err := r.db.Create(g).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrGuestAlreadyRegistered
		}
		return fmt.Errorf("create guest: %w", err)
	}
	return nil
}

func (r *GormGuestRepository) GetByPhone(eventID, phone string) (*guest.Guest, error) {
	var g guest.Guest
	if err := r.db.First(&g, "event_id = ? AND phone = ?", eventID, phone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, fmt.Errorf("get guest by phone: %w", err)
	}
	return &g, nil
}

func (r *GormGuestRepository) GetByEventID(eventID string) ([]*guest.Guest, error) {
	var guests []*guest.Guest
	if err := r.db.Where("event_id = ?", eventID).Order("registered_at ASC").Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}
