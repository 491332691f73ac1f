// internal/service/pet_sight.go
package service

import (
	"context"
	"fmt"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// PetSightService records sightings of lost pets. Reporting requires no
// profile; whoever scans the QR tag may report.
type PetSightService struct {
	sights   repository.PetSightRepositoryIface
	pets     repository.PetRepositoryIface
	validate *validator.Validate
}

func NewPetSightService(sights repository.PetSightRepositoryIface, pets repository.PetRepositoryIface) *PetSightService {
	return &PetSightService{
		sights:   sights,
		pets:     pets,
		validate: validator.New(),
	}
}

// SightInput coordinates are plain floats: zero is a valid latitude and
// longitude, so only the range is validated.
type SightInput struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// Register stores a sighting for a lost pet. The owner is notified only
// when the pet already had at least one sighting on record, so the
// seeded last-known position does not trigger mail.
func (s *PetSightService) Register(ctx context.Context, scope *uow.Scope, petID uuid.UUID, reporterAccountID *uuid.UUID, input SightInput) (*model.PetSight, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	pet, err := s.pets.FindByID(scope.Session(), petID)
	if err != nil {
		return nil, err
	}
	if !pet.Lost {
		return nil, domain.ErrPetNotLost
	}

	prior, err := s.sights.CountByPet(scope.Session(), petID)
	if err != nil {
		return nil, err
	}

	sight := &model.PetSight{
		PetID:             petID,
		Lat:               input.Lat,
		Lon:               input.Lon,
		ReporterAccountID: reporterAccountID,
	}
	if err := s.sights.Create(scope.Session(), sight); err != nil {
		return nil, err
	}

	if prior > 0 {
		scope.Emit(domain.PetSightingReported{
			SightID: sight.ID,
			PetID:   petID,
			Lat:     input.Lat,
			Lon:     input.Lon,
		})
	}
	return sight, nil
}

func (s *PetSightService) ListByPet(ctx context.Context, scope *uow.Scope, petID uuid.UUID, limit, offset int) ([]model.PetSight, error) {
	if _, err := s.pets.FindByID(scope.Session(), petID); err != nil {
		return nil, err
	}
	return s.sights.FindByPet(scope.Session(), petID, limit, offset)
}
