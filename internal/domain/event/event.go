package event

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event represents one occasion with a live message wall. Guests reach it by
// scanning a QR that carries the join code.
type Event struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name            string    `json:"name" gorm:"not null"`
	DisplayName     string    `json:"displayName" gorm:"not null"`
	Code            string    `json:"code" gorm:"uniqueIndex;not null"`
	BackgroundColor string    `json:"backgroundColor"`
	TextColor       string    `json:"textColor"`
	BackgroundImage string    `json:"backgroundImage"`
	Logo            string    `json:"logo"`
	LogoPosition    string    `json:"logoPosition"`
	Effects         Effects   `json:"effects" gorm:"embedded;embeddedPrefix:effect_"`
	CreatedAt       time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Event) TableName() string {
	return "events"
}

// BeforeCreate sets a UUID before creating the record
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// NewEvent creates a new event with a generated join code
func NewEvent(name, displayName string) *Event {
	if displayName == "" {
		displayName = name
	}
	return &Event{
		ID:              uuid.New(),
		Name:            name,
		DisplayName:     displayName,
		Code:            NewCode(),
		BackgroundColor: "#1f2937",
		TextColor:       "#ffffff",
		CreatedAt:       time.Now(),
	}
}

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewCode generates a short join code suitable for a QR URL
func NewCode() string {
	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteByte(codeAlphabet[rand.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// ChannelName returns the transport channel for this event
func (e *Event) ChannelName() string {
	return "event-" + e.ID.String()
}

// UpdateEffects replaces the effects configuration if it is valid
func (e *Event) UpdateEffects(fx Effects) error {
	if err := fx.Validate(); err != nil {
		return err
	}
	e.Effects = fx
	return nil
}

// Validate checks if the event data is valid
func (e *Event) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("name is required")
	}
	if e.Code == "" {
		return fmt.Errorf("code is required")
	}
	return e.Effects.Validate()
}
