// internal/service/pet_sight_test.go
package service

import (
	"context"
	"testing"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sightFixture struct {
	svc    *PetSightService
	pets   *memory.PetRepository
	sights *memory.PetSightRepository
}

func newSightFixture() *sightFixture {
	pets := memory.NewPetRepository()
	sights := memory.NewPetSightRepository()
	return &sightFixture{
		svc:    NewPetSightService(sights, pets),
		pets:   pets,
		sights: sights,
	}
}

func (fx *sightFixture) seedPet(t *testing.T, lost bool) *model.Pet {
	t.Helper()
	pet := &model.Pet{
		AnimalBase: model.AnimalBase{
			Name:           "Milo",
			Species:        model.SpeciesCat,
			OwnerProfileID: uuid.New(),
		},
		Lost: lost,
	}
	require.NoError(t, fx.pets.Create(nil, pet))
	return pet
}

func TestRegisterSightingRequiresLostPet(t *testing.T) {
	fx := newSightFixture()
	scope := newScope(t, nil)
	pet := fx.seedPet(t, false)

	_, err := fx.svc.Register(context.Background(), scope, pet.ID, nil, SightInput{Lat: -34.6, Lon: -58.4})
	assert.ErrorIs(t, err, domain.ErrPetNotLost)
}

func TestRegisterSightingValidatesCoordinates(t *testing.T) {
	fx := newSightFixture()
	scope := newScope(t, nil)
	pet := fx.seedPet(t, true)

	_, err := fx.svc.Register(context.Background(), scope, pet.ID, nil, SightInput{Lat: 120, Lon: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.svc.Register(context.Background(), scope, pet.ID, nil, SightInput{Lat: 10, Lon: 181})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterSightingAcceptsZeroCoordinates(t *testing.T) {
	fx := newSightFixture()
	scope := newScope(t, nil)
	pet := fx.seedPet(t, true)

	// The equator and the prime meridian are valid places to see a pet.
	sight, err := fx.svc.Register(context.Background(), scope, pet.ID, nil, SightInput{Lat: 0, Lon: 45})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sight.Lat)

	sight, err = fx.svc.Register(context.Background(), scope, pet.ID, nil, SightInput{Lat: 51.48, Lon: 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sight.Lon)
}

func TestFirstSightingDoesNotNotify(t *testing.T) {
	fx := newSightFixture()
	pet := fx.seedPet(t, true)
	ctx := context.Background()

	// First report: nothing on record yet, so no notification.
	bus, rec := recordingBus()
	scope := newScope(t, bus)
	first, err := fx.svc.Register(ctx, scope, pet.ID, nil, SightInput{Lat: -34.6, Lon: -58.4})
	require.NoError(t, err)
	require.NoError(t, scope.Commit())
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Empty(t, rec.all())

	// Second report finds a prior sighting and notifies.
	reporter := uuid.New()
	scope = newScope(t, bus)
	second, err := fx.svc.Register(ctx, scope, pet.ID, &reporter, SightInput{Lat: -34.61, Lon: -58.41})
	require.NoError(t, err)
	require.NoError(t, scope.Commit())

	events := waitForEvents(t, rec, 1)
	require.Len(t, events, 1)
	reported, ok := events[0].(domain.PetSightingReported)
	require.True(t, ok)
	assert.Equal(t, second.ID, reported.SightID)
	assert.Equal(t, pet.ID, reported.PetID)
	assert.Equal(t, -34.61, reported.Lat)

	require.NotNil(t, second.ReporterAccountID)
	assert.Equal(t, reporter, *second.ReporterAccountID)
}

func TestListByPetChecksPetExists(t *testing.T) {
	fx := newSightFixture()
	scope := newScope(t, nil)

	_, err := fx.svc.ListByPet(context.Background(), scope, uuid.New(), 10, 0)
	assert.ErrorIs(t, err, domain.ErrPetNotFound)
}
