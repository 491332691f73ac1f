// internal/repository/report.go
package repository

import (
	"fmt"

	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Read-model rows. These are denormalized projections over existing
// tables; the report repository never writes.

type AdoptedByOrganizationRow struct {
	OrganizationID   uuid.UUID `json:"organization_id"`
	OrganizationName string    `json:"organization_name"`
	AdoptedCount     int64     `json:"adopted_count"`
}

type CollectedByCampaignRow struct {
	CampaignID   uuid.UUID       `json:"campaign_id"`
	CampaignName string          `json:"campaign_name"`
	MoneyGoal    decimal.Decimal `json:"money_goal"`
	Collected    decimal.Decimal `json:"collected"`
	Active       bool            `json:"active"`
}

type LostAndFoundPetRow struct {
	PetID      uuid.UUID `json:"pet_id"`
	PetName    string    `json:"pet_name"`
	Lost       bool      `json:"lost"`
	SightCount int64     `json:"sight_count"`
}

type ReportRepositoryIface interface {
	AdoptedAnimalsByOrganization(s uow.Session) ([]AdoptedByOrganizationRow, error)
	CollectedMoneyByCampaign(s uow.Session, organizationID uuid.UUID) ([]CollectedByCampaignRow, error)
	LostAndFoundPets(s uow.Session) ([]LostAndFoundPetRow, error)
}

type ReportRepository struct{}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{}
}

func (r *ReportRepository) AdoptedAnimalsByOrganization(s uow.Session) ([]AdoptedByOrganizationRow, error) {
	var rows []AdoptedByOrganizationRow
	err := s.DB().Raw(`
		SELECT o.id AS organization_id, o.name AS organization_name,
		       COUNT(a.id) AS adopted_count
		FROM organizations o
		LEFT JOIN adoption_animals a
		       ON a.organization_id = o.id AND a.state = 'ADOPTED'
		GROUP BY o.id, o.name
		ORDER BY adopted_count DESC, o.name`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build adopted-by-organization report: %w", err)
	}
	return rows, nil
}

func (r *ReportRepository) CollectedMoneyByCampaign(s uow.Session, organizationID uuid.UUID) ([]CollectedByCampaignRow, error) {
	var rows []CollectedByCampaignRow
	q := s.DB().Raw(`
		SELECT c.id AS campaign_id, c.name AS campaign_name,
		       c.money_goal, c.active,
		       COALESCE(SUM(d.amount), 0) AS collected
		FROM donation_campaigns c
		LEFT JOIN individual_donations d ON d.campaign_id = c.id
		WHERE (? = '00000000-0000-0000-0000-000000000000'::uuid OR c.organization_id = ?)
		GROUP BY c.id, c.name, c.money_goal, c.active
		ORDER BY c.name`, organizationID, organizationID)
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to build collected-by-campaign report: %w", err)
	}
	return rows, nil
}

func (r *ReportRepository) LostAndFoundPets(s uow.Session) ([]LostAndFoundPetRow, error) {
	var rows []LostAndFoundPetRow
	err := s.DB().Raw(`
		SELECT p.id AS pet_id, p.name AS pet_name, p.lost,
		       COUNT(ps.id) AS sight_count
		FROM pets p
		LEFT JOIN pet_sights ps ON ps.pet_id = p.id
		WHERE p.lost = true OR p.found_date IS NOT NULL
		GROUP BY p.id, p.name, p.lost
		ORDER BY p.name`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to build lost-and-found report: %w", err)
	}
	return rows, nil
}
