// internal/usecase/adoptions.go
package usecase

import (
	"context"

	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
)

type PublishAnimal struct {
	Manager  *uow.Manager
	Profiles *service.ProfileService
	Animals  *service.AdoptionAnimalService
}

func (uc *PublishAnimal) Execute(ctx context.Context, accountID uuid.UUID, input service.AnimalInput) (*model.AdoptionAnimal, error) {
	var animal *model.AdoptionAnimal
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		owner, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		animal, err = uc.Animals.Create(ctx, scope, owner, input)
		return err
	})
	return animal, err
}

type EditAnimal struct {
	Manager  *uow.Manager
	Profiles *service.ProfileService
	Animals  *service.AdoptionAnimalService
}

func (uc *EditAnimal) Execute(ctx context.Context, accountID, animalID uuid.UUID, input service.AnimalInput) (*model.AdoptionAnimal, error) {
	var animal *model.AdoptionAnimal
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		actor, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		animal, err = uc.Animals.Edit(ctx, scope, actor, animalID, input)
		return err
	})
	return animal, err
}

// RemoveAnimal soft-deletes the listing; open applications are rejected
// by the deletion handler after commit.
type RemoveAnimal struct {
	Manager  *uow.Manager
	Profiles *service.ProfileService
	Animals  *service.AdoptionAnimalService
}

func (uc *RemoveAnimal) Execute(ctx context.Context, accountID, animalID uuid.UUID) error {
	return uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		actor, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		return uc.Animals.Delete(ctx, scope, actor, animalID)
	})
}

type GetAnimal struct {
	Manager *uow.Manager
	Animals *service.AdoptionAnimalService
}

func (uc *GetAnimal) Execute(ctx context.Context, animalID uuid.UUID) (*model.AdoptionAnimal, error) {
	var animal *model.AdoptionAnimal
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		animal, err = uc.Animals.Get(ctx, scope, animalID, false)
		return err
	})
	return animal, err
}

type ListAnimals struct {
	Manager *uow.Manager
	Animals *service.AdoptionAnimalService
}

type AnimalList struct {
	Animals []model.AdoptionAnimal `json:"animals"`
	Total   int64                  `json:"total"`
}

func (uc *ListAnimals) Execute(ctx context.Context, filter repository.AnimalFilter) (*AnimalList, error) {
	var out AnimalList
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		out.Animals, out.Total, err = uc.Animals.List(ctx, scope, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type ApplyForAdoption struct {
	Manager      *uow.Manager
	Profiles     *service.ProfileService
	Applications *service.AdoptionApplicationService
}

func (uc *ApplyForAdoption) Execute(ctx context.Context, accountID, animalID uuid.UUID, input service.ApplicationInput) (*model.AdoptionApplication, error) {
	var application *model.AdoptionApplication
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		adopter, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		application, err = uc.Applications.Create(ctx, scope, adopter, animalID, input)
		return err
	})
	return application, err
}

// DecideApplication accepts or rejects a pending application. The
// acceptance cascade, sibling rejections included, commits atomically;
// emails and pet materialization follow from the published events.
type DecideApplication struct {
	Manager      *uow.Manager
	Profiles     *service.ProfileService
	Applications *service.AdoptionApplicationService
}

func (uc *DecideApplication) Execute(ctx context.Context, accountID, applicationID uuid.UUID, newState model.ApplicationState) (*model.AdoptionApplication, error) {
	var application *model.AdoptionApplication
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		actor, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		application, err = uc.Applications.Decide(ctx, scope, actor, applicationID, newState)
		return err
	})
	return application, err
}

type ListAnimalApplications struct {
	Manager      *uow.Manager
	Profiles     *service.ProfileService
	Applications *service.AdoptionApplicationService
}

func (uc *ListAnimalApplications) Execute(ctx context.Context, accountID, animalID uuid.UUID) ([]model.AdoptionApplication, error) {
	var applications []model.AdoptionApplication
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		actor, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		applications, err = uc.Applications.ListByAnimal(ctx, scope, actor, animalID)
		return err
	})
	return applications, err
}

type ListMyApplications struct {
	Manager      *uow.Manager
	Profiles     *service.ProfileService
	Applications *service.AdoptionApplicationService
}

func (uc *ListMyApplications) Execute(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]model.AdoptionApplication, error) {
	var applications []model.AdoptionApplication
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		adopter, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		applications, err = uc.Applications.ListByAdopter(ctx, scope, adopter, limit, offset)
		return err
	})
	return applications, err
}
