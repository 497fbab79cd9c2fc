package guest

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Guest is a registered attendee of one event, identified by phone number
type Guest struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	EventID      uuid.UUID `json:"eventId" gorm:"type:uuid;not null;uniqueIndex:idx_guests_event_phone"`
	Name         string    `json:"name" gorm:"not null"`
	Phone        string    `json:"phone" gorm:"not null;uniqueIndex:idx_guests_event_phone"`
	RegisteredAt time.Time `json:"registeredAt" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by GORM
func (Guest) TableName() string {
	return "guests"
}

// BeforeCreate sets a UUID before creating the record
func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// NewGuest registers a guest for an event
func NewGuest(eventID uuid.UUID, name, phone string) *Guest {
	return &Guest{
		ID:           uuid.New(),
		EventID:      eventID,
		Name:         name,
		Phone:        phone,
		RegisteredAt: time.Now(),
	}
}
