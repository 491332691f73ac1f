// internal/usecase/reports.go
package usecase

import (
	"context"

	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
)

type AdoptionsReport struct {
	Manager *uow.Manager
	Reports *service.ReportService
}

func (uc *AdoptionsReport) Execute(ctx context.Context) ([]repository.AdoptedByOrganizationRow, error) {
	var rows []repository.AdoptedByOrganizationRow
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		rows, err = uc.Reports.AdoptedAnimalsByOrganization(ctx, scope)
		return err
	})
	return rows, err
}

type DonationsReport struct {
	Manager *uow.Manager
	Reports *service.ReportService
}

func (uc *DonationsReport) Execute(ctx context.Context, orgID uuid.UUID) ([]repository.CollectedByCampaignRow, error) {
	var rows []repository.CollectedByCampaignRow
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		rows, err = uc.Reports.CollectedMoneyByCampaign(ctx, scope, orgID)
		return err
	})
	return rows, err
}

type LostPetsReport struct {
	Manager *uow.Manager
	Reports *service.ReportService
}

func (uc *LostPetsReport) Execute(ctx context.Context) ([]repository.LostAndFoundPetRow, error) {
	var rows []repository.LostAndFoundPetRow
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		rows, err = uc.Reports.LostAndFoundPets(ctx, scope)
		return err
	})
	return rows, err
}
