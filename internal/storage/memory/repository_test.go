package memory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/muro-api/internal/domain/event"
	"github.com/gravadigital/muro-api/internal/domain/guest"
	"github.com/gravadigital/muro-api/internal/storage/postgres"
)

func TestEventRepositoryCreateAndLookup(t *testing.T) {
	repo := NewEventRepository()

	e := event.NewEvent("Boda Ana y Beto", "Ana & Beto")
	require.NoError(t, repo.Create(e))

	byID, err := repo.GetByID(e.ID.String())
	require.NoError(t, err)
	assert.Equal(t, e.Name, byID.Name)

	byCode, err := repo.GetByCode(e.Code)
	require.NoError(t, err)
	assert.Equal(t, e.ID, byCode.ID)

	_, err = repo.GetByID(uuid.NewString())
	assert.ErrorIs(t, err, postgres.ErrEventNotFound)

	_, err = repo.GetByCode("ZZZZZZ")
	assert.ErrorIs(t, err, postgres.ErrEventNotFound)
}

func TestEventRepositoryUpdateEffects(t *testing.T) {
	repo := NewEventRepository()

	e := event.NewEvent("Quince de Sofi", "")
	require.NoError(t, repo.Create(e))

	fx := event.Effects{Shake: true, NeonLights: true}
	require.NoError(t, repo.UpdateEffects(e.ID.String(), fx))

	stored, err := repo.GetByID(e.ID.String())
	require.NoError(t, err)
	assert.Equal(t, fx, stored.Effects)

	err = repo.UpdateEffects(e.ID.String(), event.Effects{Shake: true, NeonLights: true, RippleWaves: true})
	assert.Error(t, err, "the two-effect limit holds at the repository too")

	err = repo.UpdateEffects(uuid.NewString(), fx)
	assert.ErrorIs(t, err, postgres.ErrEventNotFound)
}

func TestEventRepositoryReturnsCopies(t *testing.T) {
	repo := NewEventRepository()

	e := event.NewEvent("Boda", "")
	require.NoError(t, repo.Create(e))

	first, err := repo.GetByID(e.ID.String())
	require.NoError(t, err)
	first.Name = "mutated"

	second, err := repo.GetByID(e.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Boda", second.Name)
}

func TestGuestRepositoryRejectsDuplicatePhone(t *testing.T) {
	repo := NewGuestRepository()
	eventID := uuid.New()

	require.NoError(t, repo.Create(guest.NewGuest(eventID, "Ana", "+5491112345678")))

	err := repo.Create(guest.NewGuest(eventID, "Ana otra vez", "+5491112345678"))
	assert.ErrorIs(t, err, postgres.ErrGuestAlreadyRegistered)

	// Same phone on a different event is fine.
	assert.NoError(t, repo.Create(guest.NewGuest(uuid.New(), "Ana", "+5491112345678")))
}

func TestGuestRepositoryLookups(t *testing.T) {
	repo := NewGuestRepository()
	eventID := uuid.New()

	require.NoError(t, repo.Create(guest.NewGuest(eventID, "Ana", "111")))
	require.NoError(t, repo.Create(guest.NewGuest(eventID, "Beto", "222")))
	require.NoError(t, repo.Create(guest.NewGuest(uuid.New(), "Carla", "333")))

	g, err := repo.GetByPhone(eventID.String(), "222")
	require.NoError(t, err)
	assert.Equal(t, "Beto", g.Name)

	_, err = repo.GetByPhone(eventID.String(), "999")
	assert.ErrorIs(t, err, postgres.ErrGuestNotFound)

	guests, err := repo.GetByEventID(eventID.String())
	require.NoError(t, err)
	assert.Len(t, guests, 2)
}
