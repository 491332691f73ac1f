// internal/service/donation.go
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/payment"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DonationService manages campaigns and records donation outcomes. The
// gateway call itself lives in the use case layer, between the guard
// scope and the record scope, so no scope stays open across the network
// round trip.
type DonationService struct {
	donations     repository.DonationRepositoryIface
	transactions  repository.MpTransactionRepositoryIface
	organizations repository.OrganizationRepositoryIface
	validate      *validator.Validate
}

func NewDonationService(
	donations repository.DonationRepositoryIface,
	transactions repository.MpTransactionRepositoryIface,
	organizations repository.OrganizationRepositoryIface,
) *DonationService {
	return &DonationService{
		donations:     donations,
		transactions:  transactions,
		organizations: organizations,
		validate:      validator.New(),
	}
}

type CampaignInput struct {
	Name        string          `json:"name" validate:"required"`
	Picture     string          `json:"picture"`
	MoneyGoal   decimal.Decimal `json:"money_goal" validate:"required"`
	Description string          `json:"description" validate:"required"`
	ExtraInfo   string          `json:"extra_info"`
}

func (s *DonationService) requireCampaignManager(actor model.Profile, orgID uuid.UUID) error {
	if actor.IsPersonal() ||
		actor.Organizational.OrganizationID != orgID ||
		actor.Organizational.Role == model.RoleCollaborator {
		return domain.ErrUnauthorized
	}
	return nil
}

// CreateCampaign opens a campaign for the actor's organization. The
// organization must have a linked merchant account so donations have
// somewhere to land.
func (s *DonationService) CreateCampaign(ctx context.Context, scope *uow.Scope, actor model.Profile, input CampaignInput) (*model.DonationCampaign, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if input.MoneyGoal.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if actor.IsPersonal() || actor.Organizational.Role == model.RoleCollaborator {
		return nil, domain.ErrUnauthorized
	}

	orgID := actor.Organizational.OrganizationID
	org, err := s.organizations.FindByID(scope.Session(), orgID)
	if err != nil {
		return nil, err
	}
	if org.MerchantData == nil {
		return nil, domain.ErrMerchantNotLinked
	}

	campaign := &model.DonationCampaign{
		OrganizationID: orgID,
		Name:           input.Name,
		Picture:        input.Picture,
		MoneyGoal:      input.MoneyGoal,
		Description:    input.Description,
		ExtraInfo:      input.ExtraInfo,
		Active:         true,
	}
	if err := s.donations.CreateCampaign(scope.Session(), campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// CloseCampaign deactivates an active campaign.
func (s *DonationService) CloseCampaign(ctx context.Context, scope *uow.Scope, actor model.Profile, campaignID uuid.UUID) (*model.DonationCampaign, error) {
	campaign, err := s.donations.FindCampaignByID(scope.Session(), campaignID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCampaignManager(actor, campaign.OrganizationID); err != nil {
		return nil, err
	}
	if !campaign.Active {
		return nil, domain.ErrCampaignAlreadyFinished
	}

	campaign.Active = false
	if err := s.donations.UpdateCampaign(scope.Session(), campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// GetCampaignForDonation locks the campaign row and validates that a
// donation of the given amount may proceed. It returns the campaign
// and its organization's merchant token.
func (s *DonationService) GetCampaignForDonation(ctx context.Context, scope *uow.Scope, campaignID uuid.UUID, amount decimal.Decimal) (*model.DonationCampaign, string, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, "", domain.ErrInvalidAmount
	}

	campaign, err := s.donations.FindCampaignByIDLocked(scope.Session(), campaignID)
	if err != nil {
		return nil, "", err
	}
	if !campaign.Active {
		return nil, "", domain.ErrCampaignAlreadyFinished
	}

	org, err := s.organizations.FindByID(scope.Session(), campaign.OrganizationID)
	if err != nil {
		return nil, "", err
	}
	token, err := merchantToken(org)
	if err != nil {
		return nil, "", err
	}
	return campaign, token, nil
}

// RecordTransaction persists the gateway outcome, approved or not.
func (s *DonationService) RecordTransaction(ctx context.Context, scope *uow.Scope, campaignID uuid.UUID, charge *payment.ChargeResponse) (*model.MpTransaction, error) {
	tx := &model.MpTransaction{
		CampaignID:    campaignID,
		ExternalID:    charge.TransactionID,
		Status:        mpStatus(charge.Status),
		StatusDetail:  charge.StatusDetail,
		PayerEmail:    charge.PayerEmail,
		PayerName:     charge.PayerName,
		PaymentMethod: charge.PaymentMethod,
		PaymentType:   charge.PaymentType,
		DateApproved:  charge.DateApproved,
	}
	if err := s.transactions.Create(scope.Session(), tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// RecordFailedCharge keeps the audit trail complete when the gateway
// call itself failed and no verdict came back. The reason goes into
// status_detail.
func (s *DonationService) RecordFailedCharge(ctx context.Context, scope *uow.Scope, campaignID uuid.UUID, reason string) (*model.MpTransaction, error) {
	tx := &model.MpTransaction{
		CampaignID:   campaignID,
		Status:       model.MpStatusFailed,
		StatusDetail: reason,
	}
	if err := s.transactions.Create(scope.Session(), tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// RecordDonation credits the campaign with the net amount of an
// approved transaction and deactivates the campaign once the collected
// net total reaches the goal.
func (s *DonationService) RecordDonation(ctx context.Context, scope *uow.Scope, campaign *model.DonationCampaign, donorAccountID uuid.UUID, tx *model.MpTransaction, charge *payment.ChargeResponse) (*model.IndividualDonation, error) {
	donation := &model.IndividualDonation{
		CampaignID:      campaign.ID,
		DonorAccountID:  donorAccountID,
		Amount:          charge.NetAmount,
		MpFee:           charge.MpFee,
		AppFee:          charge.AppFee,
		MpTransactionID: tx.ID,
	}
	if err := s.donations.CreateDonation(scope.Session(), donation); err != nil {
		return nil, err
	}

	collected, err := s.donations.SumNetByCampaign(scope.Session(), campaign.ID)
	if err != nil {
		return nil, err
	}
	if collected.GreaterThanOrEqual(campaign.MoneyGoal) && campaign.Active {
		campaign.Active = false
		if err := s.donations.UpdateCampaign(scope.Session(), campaign); err != nil {
			return nil, err
		}
	}
	return donation, nil
}

func (s *DonationService) GetCampaign(ctx context.Context, scope *uow.Scope, id uuid.UUID) (*model.DonationCampaign, error) {
	return s.donations.FindCampaignByID(scope.Session(), id)
}

// CollectedByCampaign returns the net total credited so far.
func (s *DonationService) CollectedByCampaign(ctx context.Context, scope *uow.Scope, campaignID uuid.UUID) (decimal.Decimal, error) {
	if _, err := s.donations.FindCampaignByID(scope.Session(), campaignID); err != nil {
		return decimal.Zero, err
	}
	return s.donations.SumNetByCampaign(scope.Session(), campaignID)
}

func (s *DonationService) ListCampaigns(ctx context.Context, scope *uow.Scope, filter repository.CampaignFilter) ([]model.DonationCampaign, error) {
	return s.donations.ListCampaigns(scope.Session(), filter)
}

// ListDonations returns a campaign's donations to its organization's
// non-COLLABORATOR members.
func (s *DonationService) ListDonations(ctx context.Context, scope *uow.Scope, actor model.Profile, campaignID uuid.UUID, limit, offset int) ([]model.IndividualDonation, error) {
	campaign, err := s.donations.FindCampaignByID(scope.Session(), campaignID)
	if err != nil {
		return nil, err
	}
	if err := s.requireCampaignManager(actor, campaign.OrganizationID); err != nil {
		return nil, err
	}
	return s.donations.ListDonationsByCampaign(scope.Session(), campaignID, limit, offset)
}

func mpStatus(status string) model.MpTransactionStatus {
	switch strings.ToLower(status) {
	case "approved":
		return model.MpStatusApproved
	case "rejected":
		return model.MpStatusRejected
	case "in_process", "pending":
		return model.MpStatusInProcess
	case "cancelled":
		return model.MpStatusCancelled
	case "charged_back":
		return model.MpStatusChargeback
	default:
		return model.MpStatusRejected
	}
}
