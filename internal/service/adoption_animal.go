// internal/service/adoption_animal.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AdoptionAnimalService struct {
	animals  repository.AdoptionAnimalRepositoryIface
	validate *validator.Validate
	now      func() time.Time
}

func NewAdoptionAnimalService(animals repository.AdoptionAnimalRepositoryIface) *AdoptionAnimalService {
	return &AdoptionAnimalService{
		animals:  animals,
		validate: validator.New(),
		now:      time.Now,
	}
}

type AnimalInput struct {
	Name        string        `json:"name" validate:"required"`
	BirthYear   int           `json:"birth_year" validate:"required,gt=1980"`
	Species     model.Species `json:"species" validate:"required"`
	Gender      model.Gender  `json:"gender" validate:"required"`
	Size        model.Size    `json:"size" validate:"required"`
	Sterilized  bool          `json:"sterilized"`
	Vaccinated  bool          `json:"vaccinated"`
	Picture     string        `json:"picture"`
	Race        *string       `json:"race,omitempty"`
	SpecialCare *string       `json:"special_care,omitempty"`
	Description *string       `json:"description,omitempty"`
}

// Create publishes an animal for adoption. An organizational owner
// publishes on behalf of its organization.
func (s *AdoptionAnimalService) Create(ctx context.Context, scope *uow.Scope, owner model.Profile, input AnimalInput) (*model.AdoptionAnimal, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	animal := &model.AdoptionAnimal{
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
		State:           model.StateForAdoption,
		PublicationDate: s.now().UTC(),
		Description:     input.Description,
	}
	if !owner.IsPersonal() {
		orgID := owner.Organizational.OrganizationID
		animal.OrganizationID = &orgID
	}

	if err := s.animals.Create(scope.Session(), animal); err != nil {
		return nil, err
	}
	return animal, nil
}

// canManage reports whether the actor owns the animal or belongs to the
// organization that published it.
func canManage(actor model.Profile, animal *model.AdoptionAnimal) bool {
	if animal.OwnerProfileID == actor.ID() {
		return true
	}
	if !actor.IsPersonal() && animal.OrganizationID != nil &&
		*animal.OrganizationID == actor.Organizational.OrganizationID {
		return true
	}
	return false
}

func (s *AdoptionAnimalService) Edit(ctx context.Context, scope *uow.Scope, actor model.Profile, animalID uuid.UUID, input AnimalInput) (*model.AdoptionAnimal, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	animal, err := s.animals.FindByID(scope.Session(), animalID, false)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, animal) {
		return nil, domain.ErrUnauthorized
	}

	animal.Name = input.Name
	animal.BirthYear = input.BirthYear
	animal.Species = input.Species
	animal.Gender = input.Gender
	animal.Size = input.Size
	animal.Sterilized = input.Sterilized
	animal.Vaccinated = input.Vaccinated
	animal.Picture = input.Picture
	animal.Race = input.Race
	animal.SpecialCare = input.SpecialCare
	animal.Description = input.Description

	if err := s.animals.Update(scope.Session(), animal); err != nil {
		return nil, err
	}
	return animal, nil
}

// Delete soft-deletes the animal so historical applications keep their
// reference, and emits AdoptionAnimalDeleted. Unlike Edit, removal is
// reserved to the profile that published the listing.
func (s *AdoptionAnimalService) Delete(ctx context.Context, scope *uow.Scope, actor model.Profile, animalID uuid.UUID) error {
	animal, err := s.animals.FindByID(scope.Session(), animalID, false)
	if err != nil {
		return err
	}
	if animal.OwnerProfileID != actor.ID() {
		return domain.ErrUnauthorized
	}

	animal.Deleted = true
	if err := s.animals.Update(scope.Session(), animal); err != nil {
		return err
	}

	scope.Emit(domain.AdoptionAnimalDeleted{AnimalID: animal.ID})
	return nil
}

func (s *AdoptionAnimalService) Get(ctx context.Context, scope *uow.Scope, animalID uuid.UUID, includeDeleted bool) (*model.AdoptionAnimal, error) {
	return s.animals.FindByID(scope.Session(), animalID, includeDeleted)
}

func (s *AdoptionAnimalService) List(ctx context.Context, scope *uow.Scope, filter repository.AnimalFilter) ([]model.AdoptionAnimal, int64, error) {
	animals, err := s.animals.List(scope.Session(), filter)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.animals.Count(scope.Session(), filter)
	if err != nil {
		return nil, 0, err
	}
	return animals, count, nil
}
