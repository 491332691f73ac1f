// internal/service/pet.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/qr"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/storage"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const qrPrefix = "qr"

// PetService manages owned pets, their lost/found transitions and the
// QR tag each pet carries.
type PetService struct {
	pets       repository.PetRepositoryIface
	sights     repository.PetSightRepositoryIface
	store      storage.Store
	qr         *qr.Generator
	backendURL string
	validate   *validator.Validate
	now        func() time.Time
}

func NewPetService(
	pets repository.PetRepositoryIface,
	sights repository.PetSightRepositoryIface,
	store storage.Store,
	generator *qr.Generator,
	backendURL string,
) *PetService {
	return &PetService{
		pets:       pets,
		sights:     sights,
		store:      store,
		qr:         generator,
		backendURL: backendURL,
		validate:   validator.New(),
		now:        time.Now,
	}
}

type PetInput struct {
	AnimalInput
	Lost           bool       `json:"lost"`
	LostDate       *time.Time `json:"lost_date,omitempty"`
	LastKnownPlace *string    `json:"last_known_location,omitempty"`
	LastKnownLat   *float64   `json:"last_known_lat,omitempty"`
	LastKnownLon   *float64   `json:"last_known_lon,omitempty"`
}

func (s *PetService) qrKey(petID uuid.UUID) string {
	return petID.String() + ".png"
}

func (s *PetService) qrURL(petID uuid.UUID) string {
	return fmt.Sprintf("%s/api/files/%s/%s", s.backendURL, qrPrefix, s.qrKey(petID))
}

func (s *PetService) storeQR(ctx context.Context, pet *model.Pet) error {
	png, err := s.qr.Generate(s.qrURL(pet.ID))
	if err != nil {
		return err
	}
	if err := s.store.SaveFile(ctx, qrPrefix, s.qrKey(pet.ID), png); err != nil {
		return fmt.Errorf("%w: storing qr code: %v", domain.ErrFileStorage, err)
	}
	pet.QRCodeURL = s.qrURL(pet.ID)
	return nil
}

// Create registers a pet for a personal profile and stores its QR tag.
func (s *PetService) Create(ctx context.Context, scope *uow.Scope, owner model.Profile, input PetInput) (*model.Pet, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !owner.IsPersonal() {
		return nil, domain.ErrInvalidProfileType
	}

	pet := &model.Pet{
		AnimalBase: model.AnimalBase{
			Name:           input.Name,
			BirthYear:      input.BirthYear,
			Species:        input.Species,
			Gender:         input.Gender,
			Size:           input.Size,
			Sterilized:     input.Sterilized,
			Vaccinated:     input.Vaccinated,
			Picture:        input.Picture,
			OwnerProfileID: owner.ID(),
			Race:           input.Race,
			SpecialCare:    input.SpecialCare,
		},
	}
	if input.Lost {
		s.markLost(pet, input)
	}

	if err := s.pets.Create(scope.Session(), pet); err != nil {
		return nil, err
	}
	if err := s.storeQR(ctx, pet); err != nil {
		return nil, err
	}
	if err := s.pets.Update(scope.Session(), pet); err != nil {
		return nil, err
	}

	if pet.Lost && pet.LastKnownLat != nil && pet.LastKnownLon != nil {
		if err := s.seedSight(scope, pet); err != nil {
			return nil, err
		}
	}
	return pet, nil
}

func (s *PetService) markLost(pet *model.Pet, input PetInput) {
	pet.Lost = true
	pet.FoundDate = nil
	pet.LastKnownPlace = input.LastKnownPlace
	pet.LastKnownLat = input.LastKnownLat
	pet.LastKnownLon = input.LastKnownLon
	if input.LostDate != nil {
		pet.LostDate = input.LostDate
	} else {
		today := s.now().UTC()
		pet.LostDate = &today
	}
}

// seedSight records the owner-reported last-known position as the first
// sighting so the trail starts where the pet went missing.
func (s *PetService) seedSight(scope *uow.Scope, pet *model.Pet) error {
	return s.sights.Create(scope.Session(), &model.PetSight{
		PetID: pet.ID,
		Lat:   *pet.LastKnownLat,
		Lon:   *pet.LastKnownLon,
	})
}

func (s *PetService) requireOwner(scope *uow.Scope, actor model.Profile, petID uuid.UUID) (*model.Pet, error) {
	pet, err := s.pets.FindByID(scope.Session(), petID)
	if err != nil {
		return nil, err
	}
	if pet.OwnerProfileID != actor.ID() {
		return nil, domain.ErrUnauthorized
	}
	return pet, nil
}

// Edit updates the pet and applies lost/found transitions. Marking a
// lost pet found clears the last-known data and stamps the found date;
// marking it lost stamps the lost date and seeds a sighting at the
// last-known coordinates.
func (s *PetService) Edit(ctx context.Context, scope *uow.Scope, actor model.Profile, petID uuid.UUID, input PetInput) (*model.Pet, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	pet, err := s.requireOwner(scope, actor, petID)
	if err != nil {
		return nil, err
	}

	wasLost := pet.Lost

	pet.Name = input.Name
	pet.BirthYear = input.BirthYear
	pet.Species = input.Species
	pet.Gender = input.Gender
	pet.Size = input.Size
	pet.Sterilized = input.Sterilized
	pet.Vaccinated = input.Vaccinated
	pet.Picture = input.Picture
	pet.Race = input.Race
	pet.SpecialCare = input.SpecialCare

	switch {
	case input.Lost && !wasLost:
		s.markLost(pet, input)
	case !input.Lost && wasLost:
		pet.Lost = false
		pet.LastKnownPlace = nil
		pet.LastKnownLat = nil
		pet.LastKnownLon = nil
		pet.LostDate = nil
		today := s.now().UTC()
		pet.FoundDate = &today
	case input.Lost && wasLost:
		pet.LastKnownPlace = input.LastKnownPlace
		pet.LastKnownLat = input.LastKnownLat
		pet.LastKnownLon = input.LastKnownLon
	}

	if err := s.pets.Update(scope.Session(), pet); err != nil {
		return nil, err
	}

	if input.Lost && !wasLost && pet.LastKnownLat != nil && pet.LastKnownLon != nil {
		if err := s.seedSight(scope, pet); err != nil {
			return nil, err
		}
	}
	return pet, nil
}

// Delete removes the pet, its sightings and its stored QR image. The
// QR removal runs best-effort after the row deletes.
func (s *PetService) Delete(ctx context.Context, scope *uow.Scope, actor model.Profile, petID uuid.UUID) error {
	pet, err := s.requireOwner(scope, actor, petID)
	if err != nil {
		return err
	}

	if err := s.sights.DeleteByPet(scope.Session(), pet.ID); err != nil {
		return err
	}
	if err := s.pets.Delete(scope.Session(), pet.ID); err != nil {
		return err
	}

	if err := s.store.DeleteFile(ctx, qrPrefix, s.qrKey(pet.ID)); err != nil {
		slog.Warn("failed to delete qr code", "pet_id", pet.ID, "error", err)
	}
	return nil
}

// RegenerateQR re-renders and re-stores the pet's QR tag. Safe to call
// repeatedly; the key is derived from the pet id.
func (s *PetService) RegenerateQR(ctx context.Context, scope *uow.Scope, actor model.Profile, petID uuid.UUID) (*model.Pet, error) {
	pet, err := s.requireOwner(scope, actor, petID)
	if err != nil {
		return nil, err
	}
	if err := s.storeQR(ctx, pet); err != nil {
		return nil, err
	}
	if err := s.pets.Update(scope.Session(), pet); err != nil {
		return nil, err
	}
	return pet, nil
}

// CreateFromAdoption materializes a pet from an adopted animal. It is
// idempotent on the source animal: a second call returns the pet that
// already exists.
func (s *PetService) CreateFromAdoption(ctx context.Context, scope *uow.Scope, animal *model.AdoptionAnimal, adopterProfileID uuid.UUID) (*model.Pet, error) {
	if existing, err := s.pets.FindByAdoptionAnimal(scope.Session(), animal.ID); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrPetNotFound) {
		return nil, err
	}

	animalID := animal.ID
	pet := &model.Pet{
		AnimalBase: model.AnimalBase{
			Name:           animal.Name,
			BirthYear:      animal.BirthYear,
			Species:        animal.Species,
			Gender:         animal.Gender,
			Size:           animal.Size,
			Sterilized:     animal.Sterilized,
			Vaccinated:     animal.Vaccinated,
			Picture:        animal.Picture,
			OwnerProfileID: adopterProfileID,
			Race:           animal.Race,
			SpecialCare:    animal.SpecialCare,
		},
		AdoptionAnimalID: &animalID,
	}
	if err := s.pets.Create(scope.Session(), pet); err != nil {
		return nil, err
	}
	if err := s.storeQR(ctx, pet); err != nil {
		return nil, err
	}
	if err := s.pets.Update(scope.Session(), pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *PetService) Get(ctx context.Context, scope *uow.Scope, petID uuid.UUID) (*model.Pet, error) {
	return s.pets.FindByID(scope.Session(), petID)
}

func (s *PetService) ListByOwner(ctx context.Context, scope *uow.Scope, owner model.Profile) ([]model.Pet, error) {
	return s.pets.FindByOwner(scope.Session(), owner.ID())
}
