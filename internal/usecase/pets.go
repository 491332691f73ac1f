// internal/usecase/pets.go
package usecase

import (
	"context"

	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
)

type RegisterPet struct {
	Manager  *uow.Manager
	Profiles *service.ProfileService
	Pets     *service.PetService
}

func (uc *RegisterPet) Execute(ctx context.Context, accountID uuid.UUID, input service.PetInput) (*model.Pet, error) {
	var pet *model.Pet
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		owner, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		pet, err = uc.Pets.Create(ctx, scope, owner, input)
		return err
	})
	return pet, err
}

type EditPet struct {
	Manager  *uow.Manager
	Profiles *service.ProfileService
	Pets     *service.PetService
}

func (uc *EditPet) Execute(ctx context.Context, accountID, petID uuid.UUID, input service.PetInput) (*model.Pet, error) {
	var pet *model.Pet
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		actor, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		pet, err = uc.Pets.Edit(ctx, scope, actor, petID, input)
		return err
	})
	return pet, err
}

type RemovePet struct {
	Manager  *uow.Manager
	Profiles *service.ProfileService
	Pets     *service.PetService
}

func (uc *RemovePet) Execute(ctx context.Context, accountID, petID uuid.UUID) error {
	return uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		actor, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		return uc.Pets.Delete(ctx, scope, actor, petID)
	})
}

type RegeneratePetQR struct {
	Manager  *uow.Manager
	Profiles *service.ProfileService
	Pets     *service.PetService
}

func (uc *RegeneratePetQR) Execute(ctx context.Context, accountID, petID uuid.UUID) (*model.Pet, error) {
	var pet *model.Pet
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		actor, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		pet, err = uc.Pets.RegenerateQR(ctx, scope, actor, petID)
		return err
	})
	return pet, err
}

// GetPet is public: the QR tag resolves to this without authentication.
type GetPet struct {
	Manager *uow.Manager
	Pets    *service.PetService
}

func (uc *GetPet) Execute(ctx context.Context, petID uuid.UUID) (*model.Pet, error) {
	var pet *model.Pet
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		pet, err = uc.Pets.Get(ctx, scope, petID)
		return err
	})
	return pet, err
}

type ListMyPets struct {
	Manager  *uow.Manager
	Profiles *service.ProfileService
	Pets     *service.PetService
}

func (uc *ListMyPets) Execute(ctx context.Context, accountID uuid.UUID) ([]model.Pet, error) {
	var pets []model.Pet
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		owner, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		pets, err = uc.Pets.ListByOwner(ctx, scope, owner)
		return err
	})
	return pets, err
}

// ReportSighting accepts anonymous reports; reporterAccountID is nil
// when the caller is not logged in.
type ReportSighting struct {
	Manager *uow.Manager
	Sights  *service.PetSightService
}

func (uc *ReportSighting) Execute(ctx context.Context, petID uuid.UUID, reporterAccountID *uuid.UUID, input service.SightInput) (*model.PetSight, error) {
	var sight *model.PetSight
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		sight, err = uc.Sights.Register(ctx, scope, petID, reporterAccountID, input)
		return err
	})
	return sight, err
}

type ListSightings struct {
	Manager *uow.Manager
	Sights  *service.PetSightService
}

func (uc *ListSightings) Execute(ctx context.Context, petID uuid.UUID, limit, offset int) ([]model.PetSight, error) {
	var sights []model.PetSight
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		sights, err = uc.Sights.ListByPet(ctx, scope, petID, limit, offset)
		return err
	})
	return sights, err
}
