// internal/service/pet_test.go
package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/qr"
	"github.com/adoptyme/backend/internal/repository/memory"
	"github.com/adoptyme/backend/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBackendURL = "http://localhost:8080"

type petFixture struct {
	svc    *PetService
	pets   *memory.PetRepository
	sights *memory.PetSightRepository
	store  *storage.MemoryStore
}

func newPetFixture() *petFixture {
	pets := memory.NewPetRepository()
	sights := memory.NewPetSightRepository()
	store := storage.NewMemoryStore()
	return &petFixture{
		svc:    NewPetService(pets, sights, store, qr.NewGenerator(), testBackendURL),
		pets:   pets,
		sights: sights,
		store:  store,
	}
}

func validPetInput(name string) PetInput {
	return PetInput{AnimalInput: validAnimalInput(name)}
}

func TestCreatePetStoresQRTag(t *testing.T) {
	fx := newPetFixture()
	scope := newScope(t, nil)
	ctx := context.Background()

	pet, err := fx.svc.Create(ctx, scope, personalProfile(), validPetInput("Milo"))
	require.NoError(t, err)

	wantURL := fmt.Sprintf("%s/api/files/qr/%s.png", testBackendURL, pet.ID)
	assert.Equal(t, wantURL, pet.QRCodeURL)

	png, err := fx.store.Read(ctx, "qr", pet.ID.String()+".png")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestCreatePetRequiresPersonalProfile(t *testing.T) {
	fx := newPetFixture()
	scope := newScope(t, nil)

	_, err := fx.svc.Create(context.Background(), scope, organizationalProfile(uuid.New(), model.RoleAdmin), validPetInput("Milo"))
	assert.ErrorIs(t, err, domain.ErrInvalidProfileType)
}

func TestCreateLostPetSeedsSighting(t *testing.T) {
	fx := newPetFixture()
	scope := newScope(t, nil)
	ctx := context.Background()

	lat, lon := -34.6, -58.4
	place := "Parque Centenario"
	input := validPetInput("Milo")
	input.Lost = true
	input.LastKnownPlace = &place
	input.LastKnownLat = &lat
	input.LastKnownLon = &lon

	pet, err := fx.svc.Create(ctx, scope, personalProfile(), input)
	require.NoError(t, err)

	assert.True(t, pet.Lost)
	require.NotNil(t, pet.LostDate)
	assert.Nil(t, pet.FoundDate)

	count, err := fx.sights.CountByPet(scope.Session(), pet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	seeded, err := fx.sights.FindByPet(scope.Session(), pet.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, seeded, 1)
	assert.Equal(t, lat, seeded[0].Lat)
	assert.Equal(t, lon, seeded[0].Lon)
	assert.Nil(t, seeded[0].ReporterAccountID)
}

func TestEditLostAndFoundTransitions(t *testing.T) {
	fx := newPetFixture()
	scope := newScope(t, nil)
	ctx := context.Background()

	owner := personalProfile()
	pet, err := fx.svc.Create(ctx, scope, owner, validPetInput("Milo"))
	require.NoError(t, err)

	lat, lon := -34.6, -58.4
	lost := validPetInput("Milo")
	lost.Lost = true
	lost.LastKnownLat = &lat
	lost.LastKnownLon = &lon

	pet, err = fx.svc.Edit(ctx, scope, owner, pet.ID, lost)
	require.NoError(t, err)
	assert.True(t, pet.Lost)
	require.NotNil(t, pet.LostDate)

	count, err := fx.sights.CountByPet(scope.Session(), pet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Marking the pet lost again only refreshes the coordinates.
	newLat := -34.7
	lost.LastKnownLat = &newLat
	pet, err = fx.svc.Edit(ctx, scope, owner, pet.ID, lost)
	require.NoError(t, err)
	require.NotNil(t, pet.LastKnownLat)
	assert.Equal(t, newLat, *pet.LastKnownLat)

	count, err = fx.sights.CountByPet(scope.Session(), pet.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "re-marking lost must not seed another sighting")

	found := validPetInput("Milo")
	pet, err = fx.svc.Edit(ctx, scope, owner, pet.ID, found)
	require.NoError(t, err)
	assert.False(t, pet.Lost)
	assert.Nil(t, pet.LostDate)
	assert.Nil(t, pet.LastKnownLat)
	assert.Nil(t, pet.LastKnownLon)
	assert.Nil(t, pet.LastKnownPlace)
	require.NotNil(t, pet.FoundDate)
	assert.WithinDuration(t, time.Now().UTC(), *pet.FoundDate, time.Minute)
}

func TestEditRequiresOwner(t *testing.T) {
	fx := newPetFixture()
	scope := newScope(t, nil)
	ctx := context.Background()

	pet, err := fx.svc.Create(ctx, scope, personalProfile(), validPetInput("Milo"))
	require.NoError(t, err)

	_, err = fx.svc.Edit(ctx, scope, personalProfile(), pet.ID, validPetInput("Milo"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestDeletePetRemovesSightingsAndQR(t *testing.T) {
	fx := newPetFixture()
	scope := newScope(t, nil)
	ctx := context.Background()

	owner := personalProfile()
	lat, lon := -34.6, -58.4
	input := validPetInput("Milo")
	input.Lost = true
	input.LastKnownLat = &lat
	input.LastKnownLon = &lon

	pet, err := fx.svc.Create(ctx, scope, owner, input)
	require.NoError(t, err)

	require.NoError(t, fx.svc.Delete(ctx, scope, owner, pet.ID))

	_, err = fx.pets.FindByID(scope.Session(), pet.ID)
	assert.ErrorIs(t, err, domain.ErrPetNotFound)

	count, err := fx.sights.CountByPet(scope.Session(), pet.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = fx.store.Read(ctx, "qr", pet.ID.String()+".png")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegenerateQR(t *testing.T) {
	fx := newPetFixture()
	scope := newScope(t, nil)
	ctx := context.Background()

	owner := personalProfile()
	pet, err := fx.svc.Create(ctx, scope, owner, validPetInput("Milo"))
	require.NoError(t, err)

	require.NoError(t, fx.store.DeleteFile(ctx, "qr", pet.ID.String()+".png"))

	pet, err = fx.svc.RegenerateQR(ctx, scope, owner, pet.ID)
	require.NoError(t, err)

	png, err := fx.store.Read(ctx, "qr", pet.ID.String()+".png")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestCreateFromAdoptionIsIdempotent(t *testing.T) {
	fx := newPetFixture()
	scope := newScope(t, nil)
	ctx := context.Background()

	race := "border collie"
	animal := &model.AdoptionAnimal{
		AnimalBase: model.AnimalBase{
			ID:             uuid.New(),
			Name:           "Luna",
			BirthYear:      2020,
			Species:        model.SpeciesDog,
			Gender:         model.GenderFemale,
			Size:           model.SizeMedium,
			Vaccinated:     true,
			OwnerProfileID: uuid.New(),
			Race:           &race,
		},
		State: model.StateAdopted,
	}
	adopterID := uuid.New()

	pet, err := fx.svc.CreateFromAdoption(ctx, scope, animal, adopterID)
	require.NoError(t, err)
	assert.Equal(t, "Luna", pet.Name)
	assert.Equal(t, adopterID, pet.OwnerProfileID)
	require.NotNil(t, pet.AdoptionAnimalID)
	assert.Equal(t, animal.ID, *pet.AdoptionAnimalID)
	require.NotNil(t, pet.Race)
	assert.Equal(t, race, *pet.Race)
	assert.NotEmpty(t, pet.QRCodeURL)

	again, err := fx.svc.CreateFromAdoption(ctx, scope, animal, adopterID)
	require.NoError(t, err)
	assert.Equal(t, pet.ID, again.ID)

	owned, err := fx.pets.FindByOwner(scope.Session(), adopterID)
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}
