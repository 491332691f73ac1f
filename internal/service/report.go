// internal/service/report.go
package service

import (
	"context"

	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
)

// ReportService exposes the read-model projections. Reports are
// platform-wide and read-only; no authorization beyond authentication.
type ReportService struct {
	reports repository.ReportRepositoryIface
}

func NewReportService(reports repository.ReportRepositoryIface) *ReportService {
	return &ReportService{reports: reports}
}

func (s *ReportService) AdoptedAnimalsByOrganization(ctx context.Context, scope *uow.Scope) ([]repository.AdoptedByOrganizationRow, error) {
	return s.reports.AdoptedAnimalsByOrganization(scope.Session())
}

// CollectedMoneyByCampaign reports every campaign when orgID is the
// zero uuid, otherwise only the organization's campaigns.
func (s *ReportService) CollectedMoneyByCampaign(ctx context.Context, scope *uow.Scope, orgID uuid.UUID) ([]repository.CollectedByCampaignRow, error) {
	return s.reports.CollectedMoneyByCampaign(scope.Session(), orgID)
}

func (s *ReportService) LostAndFoundPets(ctx context.Context, scope *uow.Scope) ([]repository.LostAndFoundPetRow, error) {
	return s.reports.LostAndFoundPets(scope.Session())
}
