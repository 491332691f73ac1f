// internal/repository/donation.go
package repository

import (
	"errors"
	"fmt"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CampaignFilter struct {
	OrganizationID uuid.UUID
	OnlyActive     bool
	Limit          int
	Offset         int
}

type DonationRepositoryIface interface {
	CreateCampaign(s uow.Session, campaign *model.DonationCampaign) error
	FindCampaignByID(s uow.Session, id uuid.UUID) (*model.DonationCampaign, error)
	// FindCampaignByIDLocked takes a row lock so concurrent donations
	// serialize on the campaign.
	FindCampaignByIDLocked(s uow.Session, id uuid.UUID) (*model.DonationCampaign, error)
	UpdateCampaign(s uow.Session, campaign *model.DonationCampaign) error
	ListCampaigns(s uow.Session, filter CampaignFilter) ([]model.DonationCampaign, error)

	CreateDonation(s uow.Session, donation *model.IndividualDonation) error
	ListDonationsByCampaign(s uow.Session, campaignID uuid.UUID, limit, offset int) ([]model.IndividualDonation, error)
	// SumNetByCampaign totals the persisted (net) amounts.
	SumNetByCampaign(s uow.Session, campaignID uuid.UUID) (decimal.Decimal, error)
}

type DonationRepository struct{}

func NewDonationRepository() *DonationRepository {
	return &DonationRepository{}
}

func (r *DonationRepository) CreateCampaign(s uow.Session, campaign *model.DonationCampaign) error {
	if err := s.DB().Create(campaign).Error; err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func (r *DonationRepository) FindCampaignByID(s uow.Session, id uuid.UUID) (*model.DonationCampaign, error) {
	var campaign model.DonationCampaign
	if err := s.DB().First(&campaign, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}
	return &campaign, nil
}

func (r *DonationRepository) FindCampaignByIDLocked(s uow.Session, id uuid.UUID) (*model.DonationCampaign, error) {
	var campaign model.DonationCampaign
	err := s.DB().Clauses(forUpdate()).First(&campaign, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to lock campaign: %w", err)
	}
	return &campaign, nil
}

func (r *DonationRepository) UpdateCampaign(s uow.Session, campaign *model.DonationCampaign) error {
	if err := s.DB().Save(campaign).Error; err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	return nil
}

func (r *DonationRepository) ListCampaigns(s uow.Session, filter CampaignFilter) ([]model.DonationCampaign, error) {
	var campaigns []model.DonationCampaign
	q := s.DB().Order("name")
	if filter.OrganizationID != uuid.Nil {
		q = q.Where("organization_id = ?", filter.OrganizationID)
	}
	if filter.OnlyActive {
		q = q.Where("active = true")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if err := q.Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

func (r *DonationRepository) CreateDonation(s uow.Session, donation *model.IndividualDonation) error {
	if err := s.DB().Create(donation).Error; err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

func (r *DonationRepository) ListDonationsByCampaign(s uow.Session, campaignID uuid.UUID, limit, offset int) ([]model.IndividualDonation, error) {
	var donations []model.IndividualDonation
	q := s.DB().Where("campaign_id = ?", campaignID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return donations, nil
}

func (r *DonationRepository) SumNetByCampaign(s uow.Session, campaignID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := s.DB().Model(&model.IndividualDonation{}).
		Where("campaign_id = ?", campaignID).
		Select("SUM(amount)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum donations: %w", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

type MpTransactionRepositoryIface interface {
	Create(s uow.Session, tx *model.MpTransaction) error
	FindByID(s uow.Session, id uuid.UUID) (*model.MpTransaction, error)
}

type MpTransactionRepository struct{}

func NewMpTransactionRepository() *MpTransactionRepository {
	return &MpTransactionRepository{}
}

func (r *MpTransactionRepository) Create(s uow.Session, tx *model.MpTransaction) error {
	if err := s.DB().Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create mp transaction: %w", err)
	}
	return nil
}

func (r *MpTransactionRepository) FindByID(s uow.Session, id uuid.UUID) (*model.MpTransaction, error) {
	var tx model.MpTransaction
	if err := s.DB().First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find mp transaction: %w", err)
	}
	return &tx, nil
}
