//go:build integration
// +build integration

package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/muro-api/internal/config"
	"github.com/gravadigital/muro-api/internal/domain/event"
	"github.com/gravadigital/muro-api/internal/storage/postgres"
)

// Integration tests that require a real PostgreSQL database
// Run with: go test -tags=integration

func testConfig() *config.Config {
	cfg := config.Load()
	if testDB := os.Getenv("TEST_DB_NAME"); testDB != "" {
		cfg.DB.Name = testDB
	}
	return cfg
}

func TestDatabaseConnection(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	assert.NoError(t, err, "Should be able to connect to test database")

	if err == nil {
		sqlDB, err := db.DB()
		assert.NoError(t, err)

		err = sqlDB.Ping()
		assert.NoError(t, err, "Should be able to ping the database")

		sqlDB.Close()
	}
}

func TestDatabaseMigration(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	assert.NoError(t, err, "Should be able to connect to test database")

	if err == nil {
		err = postgres.AutoMigrate(db)
		assert.NoError(t, err, "Should be able to run migrations")

		sqlDB, _ := db.DB()
		sqlDB.Close()
	}
}

func TestEventRoundTrip(t *testing.T) {
	db, err := postgres.Connect(testConfig())
	require.NoError(t, err)
	require.NoError(t, postgres.AutoMigrate(db))
	defer func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}()

	repo := postgres.NewEventRepository(db)

	e := event.NewEvent("Evento de integración", "")
	require.NoError(t, repo.Create(e))
	defer db.Delete(e)

	stored, err := repo.GetByCode(e.Code)
	require.NoError(t, err)
	assert.Equal(t, e.ID, stored.ID)

	fx := event.Effects{Shake: true, NeonLights: true}
	require.NoError(t, repo.UpdateEffects(e.ID.String(), fx))

	stored, err = repo.GetByID(e.ID.String())
	require.NoError(t, err)
	assert.Equal(t, fx, stored.Effects)
}
