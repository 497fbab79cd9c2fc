package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gravadigital/muro-api/internal/domain/event"
)

// GormEventRepository persists events with GORM
type GormEventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Create(e *event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := r.db.Create(e).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *GormEventRepository) GetByID(id string) (*event.Event, error) {
	var e event.Event
	if err := r.db.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return &e, nil
}

func (r *GormEventRepository) GetByCode(code string) (*event.Event, error) {
	var e event.Event
	if err := r.db.First(&e, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by code: %w", err)
	}
	return &e, nil
}

func (r *GormEventRepository) GetAll() ([]*event.Event, error) {
	var events []*event.Event
	if err := r.db.Order("created_at DESC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (r *GormEventRepository) UpdateEffects(eventID string, fx event.Effects) error {
	if err := fx.Validate(); err != nil {
		return err
	}

	result := r.db.Model(&event.Event{}).Where("id = ?", eventID).Updates(map[string]any{
		"effect_shake":             fx.Shake,
		"effect_neon_lights":       fx.NeonLights,
		"effect_ripple_waves":      fx.RippleWaves,
		"effect_sparkle_particles": fx.SparkleParticles,
	})
	if result.Error != nil {
		return fmt.Errorf("update effects: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}
