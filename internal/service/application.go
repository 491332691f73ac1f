// internal/service/application.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AdoptionApplicationService drives the application state machine and
// the cross-aggregate acceptance cascade.
type AdoptionApplicationService struct {
	applications repository.AdoptionApplicationRepositoryIface
	adoptions    repository.AdoptionRepositoryIface
	animals      repository.AdoptionAnimalRepositoryIface
	validate     *validator.Validate
	now          func() time.Time
}

func NewAdoptionApplicationService(
	applications repository.AdoptionApplicationRepositoryIface,
	adoptions repository.AdoptionRepositoryIface,
	animals repository.AdoptionAnimalRepositoryIface,
) *AdoptionApplicationService {
	return &AdoptionApplicationService{
		applications: applications,
		adoptions:    adoptions,
		animals:      animals,
		validate:     validator.New(),
		now:          time.Now,
	}
}

type ApplicationInput struct {
	EverHadPet        bool              `json:"ever_had_pet"`
	HasPet            bool              `json:"has_pet"`
	HousingType       model.HousingType `json:"housing_type" validate:"required"`
	OpenSpace         *bool             `json:"open_space,omitempty"`
	PetTimeCommitment string            `json:"pet_time_commitment" validate:"required"`
	AdoptionInfo      string            `json:"adoption_info" validate:"required"`
	Safety            *string           `json:"safety,omitempty"`
	NiceToOthers      *bool             `json:"nice_to_others,omitempty"`
}

// Create opens a PENDING application. Guards, in order: the adopter is
// a personal profile, the adopter does not own the animal, the animal
// is not adopted yet, and the adopter has no open application for it.
func (s *AdoptionApplicationService) Create(ctx context.Context, scope *uow.Scope, adopter model.Profile, animalID uuid.UUID, input ApplicationInput) (*model.AdoptionApplication, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !adopter.IsPersonal() {
		return nil, domain.ErrApplicationByOrganizationInvalid
	}

	animal, err := s.animals.FindByID(scope.Session(), animalID, false)
	if err != nil {
		return nil, err
	}
	if animal.OwnerProfileID == adopter.ID() {
		return nil, domain.ErrApplicationForOwnAnimal
	}
	if animal.State == model.StateAdopted {
		return nil, domain.ErrAnimalAlreadyAdopted
	}

	_, err = s.applications.FindOpenByAdopterAndAnimal(scope.Session(), adopter.ID(), animalID)
	if err == nil {
		return nil, domain.ErrProfileAlreadyApplied
	}
	if !errors.Is(err, domain.ErrApplicationNotFound) {
		return nil, err
	}

	application := &model.AdoptionApplication{
		ApplicationDate:   s.now().UTC(),
		EverHadPet:        input.EverHadPet,
		HasPet:            input.HasPet,
		HousingType:       input.HousingType,
		OpenSpace:         input.OpenSpace,
		PetTimeCommitment: input.PetTimeCommitment,
		AdoptionInfo:      input.AdoptionInfo,
		AdopterProfileID:  adopter.ID(),
		AnimalID:          animalID,
		State:             model.ApplicationPending,
		Safety:            input.Safety,
		NiceToOthers:      input.NiceToOthers,
	}
	if err := s.applications.Create(scope.Session(), application); err != nil {
		return nil, err
	}
	return application, nil
}

// canDecide reports whether the actor may accept or reject applications
// for the animal: the owning personal profile, or an ADMIN or MANAGER
// of the owning organization. COLLABORATOR is read-only here.
func canDecide(actor model.Profile, animal *model.AdoptionAnimal) bool {
	if animal.OwnerProfileID == actor.ID() {
		return true
	}
	if actor.IsPersonal() || animal.OrganizationID == nil {
		return false
	}
	org := actor.Organizational
	return org.OrganizationID == *animal.OrganizationID &&
		(org.Role == model.RoleAdmin || org.Role == model.RoleManager)
}

// Decide moves a PENDING application to ACCEPTED or REJECTED.
//
// Acceptance locks the animal row so two concurrent acceptances for the
// same animal serialize; the loser re-reads the animal as ADOPTED and
// fails. Acceptance then creates the adoption, marks the animal
// adopted, rejects every sibling PENDING application, and emits
// ApplicationStateUpdated before AnimalAdopted. The buffer preserves
// that order, so the outcome email precedes the pet materialization.
func (s *AdoptionApplicationService) Decide(ctx context.Context, scope *uow.Scope, actor model.Profile, applicationID uuid.UUID, newState model.ApplicationState) (*model.AdoptionApplication, error) {
	if newState != model.ApplicationAccepted && newState != model.ApplicationRejected {
		return nil, fmt.Errorf("%w: invalid application state", domain.ErrInvalidInput)
	}

	application, err := s.applications.FindByID(scope.Session(), applicationID)
	if err != nil {
		return nil, err
	}
	if application.State != model.ApplicationPending {
		return nil, domain.ErrApplicationAlreadyClosed
	}

	// Deleted animals are still reachable here: rejection of leftover
	// applications must work after a soft delete.
	animal, err := s.animals.FindByID(scope.Session(), application.AnimalID, true)
	if err != nil {
		return nil, err
	}
	if !canDecide(actor, animal) {
		return nil, domain.ErrUnauthorized
	}

	if newState == model.ApplicationRejected {
		application.State = model.ApplicationRejected
		if err := s.applications.Update(scope.Session(), application); err != nil {
			return nil, err
		}
		scope.Emit(domain.ApplicationStateUpdated{
			ApplicationID:    application.ID,
			AnimalID:         animal.ID,
			AdopterProfileID: application.AdopterProfileID,
			DeciderProfileID: actor.ID(),
			NewState:         string(model.ApplicationRejected),
		})
		return application, nil
	}

	return s.accept(scope, actor, application)
}

func (s *AdoptionApplicationService) accept(scope *uow.Scope, actor model.Profile, application *model.AdoptionApplication) (*model.AdoptionApplication, error) {
	animal, err := s.animals.FindByIDLocked(scope.Session(), application.AnimalID)
	if err != nil {
		return nil, err
	}
	if animal.State == model.StateAdopted {
		return nil, domain.ErrAnimalAlreadyAdopted
	}

	application.State = model.ApplicationAccepted
	if err := s.applications.Update(scope.Session(), application); err != nil {
		return nil, err
	}

	adoption := &model.Adoption{
		AdoptionDate:          s.now().UTC(),
		AdoptionApplicationID: application.ID,
	}
	if err := s.adoptions.Create(scope.Session(), adoption); err != nil {
		return nil, err
	}

	animal.State = model.StateAdopted
	if err := s.animals.Update(scope.Session(), animal); err != nil {
		return nil, err
	}

	siblings, err := s.applications.FindByAnimal(scope.Session(), animal.ID)
	if err != nil {
		return nil, err
	}
	for i := range siblings {
		sibling := &siblings[i]
		if sibling.ID == application.ID || sibling.State != model.ApplicationPending {
			continue
		}
		sibling.State = model.ApplicationRejected
		if err := s.applications.Update(scope.Session(), sibling); err != nil {
			return nil, err
		}
		scope.Emit(domain.ApplicationStateUpdated{
			ApplicationID:    sibling.ID,
			AnimalID:         animal.ID,
			AdopterProfileID: sibling.AdopterProfileID,
			DeciderProfileID: actor.ID(),
			NewState:         string(model.ApplicationRejected),
		})
	}
	if err := scope.Flush(); err != nil {
		return nil, err
	}

	scope.Emit(domain.ApplicationStateUpdated{
		ApplicationID:    application.ID,
		AnimalID:         animal.ID,
		AdopterProfileID: application.AdopterProfileID,
		DeciderProfileID: actor.ID(),
		NewState:         string(model.ApplicationAccepted),
	})
	scope.Emit(domain.AnimalAdopted{
		AnimalID:         animal.ID,
		ApplicationID:    application.ID,
		AdopterProfileID: application.AdopterProfileID,
	})

	return application, nil
}

// RejectAllForAnimal bulk-rejects every open application bound to the
// animal. Used when an animal listing is removed; deliberately emits
// nothing, so no further cascade runs.
func (s *AdoptionApplicationService) RejectAllForAnimal(ctx context.Context, scope *uow.Scope, animalID uuid.UUID) error {
	applications, err := s.applications.FindByAnimal(scope.Session(), animalID)
	if err != nil {
		return err
	}
	for i := range applications {
		application := &applications[i]
		if application.State != model.ApplicationPending {
			continue
		}
		application.State = model.ApplicationRejected
		if err := s.applications.Update(scope.Session(), application); err != nil {
			return err
		}
	}
	return nil
}

// ListByAnimal returns the animal's applications to whoever may decide
// on them.
func (s *AdoptionApplicationService) ListByAnimal(ctx context.Context, scope *uow.Scope, actor model.Profile, animalID uuid.UUID) ([]model.AdoptionApplication, error) {
	animal, err := s.animals.FindByID(scope.Session(), animalID, true)
	if err != nil {
		return nil, err
	}
	if !canManage(actor, animal) {
		return nil, domain.ErrUnauthorized
	}
	return s.applications.FindByAnimal(scope.Session(), animalID)
}

func (s *AdoptionApplicationService) ListByAdopter(ctx context.Context, scope *uow.Scope, adopter model.Profile, limit, offset int) ([]model.AdoptionApplication, error) {
	return s.applications.FindByAdopter(scope.Session(), adopter.ID(), limit, offset)
}

func (s *AdoptionApplicationService) Get(ctx context.Context, scope *uow.Scope, id uuid.UUID) (*model.AdoptionApplication, error) {
	return s.applications.FindByID(scope.Session(), id)
}
