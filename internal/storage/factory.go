package storage

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/gravadigital/muro-api/internal/storage/memory"
	"github.com/gravadigital/muro-api/internal/storage/postgres"
)

// StorageType represents the type of storage backend
type StorageType string

const (
	// StorageTypePostgres represents PostgreSQL storage
	StorageTypePostgres StorageType = "postgres"
	// StorageTypeMemory represents in-memory storage
	StorageTypeMemory StorageType = "memory"
)

// Container bundles the repositories of one backend
type Container struct {
	Events postgres.EventRepository
	Guests postgres.GuestRepository
}

// NewPostgresContainer creates repositories backed by the given connection
func NewPostgresContainer(db *gorm.DB) *Container {
	return &Container{
		Events: postgres.NewEventRepository(db),
		Guests: postgres.NewGuestRepository(db),
	}
}

// NewMemoryContainer creates in-memory repositories
func NewMemoryContainer() *Container {
	return &Container{
		Events: memory.NewEventRepository(),
		Guests: memory.NewGuestRepository(),
	}
}

// ValidateStorageType validates if a storage type is supported
func ValidateStorageType(storageType string) (StorageType, error) {
	st := StorageType(storageType)
	switch st {
	case StorageTypePostgres, StorageTypeMemory:
		return st, nil
	default:
		return "", fmt.Errorf("unsupported storage type: %s. Supported types: [%s %s]", storageType, StorageTypePostgres, StorageTypeMemory)
	}
}
