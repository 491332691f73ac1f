// internal/usecase/donations.go
package usecase

import (
	"context"
	"fmt"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/payment"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCampaign struct {
	Manager   *uow.Manager
	Profiles  *service.ProfileService
	Donations *service.DonationService
}

func (uc *CreateCampaign) Execute(ctx context.Context, accountID uuid.UUID, input service.CampaignInput) (*model.DonationCampaign, error) {
	var campaign *model.DonationCampaign
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		actor, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		campaign, err = uc.Donations.CreateCampaign(ctx, scope, actor, input)
		return err
	})
	return campaign, err
}

type CloseCampaign struct {
	Manager   *uow.Manager
	Profiles  *service.ProfileService
	Donations *service.DonationService
}

func (uc *CloseCampaign) Execute(ctx context.Context, accountID, campaignID uuid.UUID) (*model.DonationCampaign, error) {
	var campaign *model.DonationCampaign
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		actor, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		campaign, err = uc.Donations.CloseCampaign(ctx, scope, actor, campaignID)
		return err
	})
	return campaign, err
}

type ListCampaigns struct {
	Manager   *uow.Manager
	Donations *service.DonationService
}

func (uc *ListCampaigns) Execute(ctx context.Context, filter repository.CampaignFilter) ([]model.DonationCampaign, error) {
	var campaigns []model.DonationCampaign
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		campaigns, err = uc.Donations.ListCampaigns(ctx, scope, filter)
		return err
	})
	return campaigns, err
}

type GetCampaign struct {
	Manager   *uow.Manager
	Donations *service.DonationService
}

type CampaignDetail struct {
	Campaign  *model.DonationCampaign `json:"campaign"`
	Collected decimal.Decimal         `json:"collected"`
}

func (uc *GetCampaign) Execute(ctx context.Context, campaignID uuid.UUID) (*CampaignDetail, error) {
	var detail CampaignDetail
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		campaign, err := uc.Donations.GetCampaign(ctx, scope, campaignID)
		if err != nil {
			return err
		}
		collected, err := uc.Donations.CollectedByCampaign(ctx, scope, campaignID)
		if err != nil {
			return err
		}
		detail.Campaign = campaign
		detail.Collected = collected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

type ListDonations struct {
	Manager   *uow.Manager
	Profiles  *service.ProfileService
	Donations *service.DonationService
}

func (uc *ListDonations) Execute(ctx context.Context, accountID, campaignID uuid.UUID, limit, offset int) ([]model.IndividualDonation, error) {
	var donations []model.IndividualDonation
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		actor, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		donations, err = uc.Donations.ListDonations(ctx, scope, actor, campaignID, limit, offset)
		return err
	})
	return donations, err
}

type DonateInput struct {
	CardToken     string          `json:"card_token" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Installments  int             `json:"installments"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
}

// DonateToCampaign runs in three phases: a guard scope validates the
// donor and campaign and resolves the merchant token, the gateway
// charge happens with no scope open, and a record scope persists the
// outcome. Every completed guard pass leaves an MpTransaction row, so
// rejected and failed charges stay on the audit trail.
type DonateToCampaign struct {
	Manager   *uow.Manager
	Accounts  *service.AccountService
	Profiles  *service.ProfileService
	Donations *service.DonationService
	Gateway   payment.Gateway
}

func (uc *DonateToCampaign) Execute(ctx context.Context, accountID, campaignID uuid.UUID, input DonateInput) (*model.IndividualDonation, error) {
	var (
		merchantToken string
		donor         *model.Account
	)
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		donor, err = uc.Accounts.GetByID(ctx, scope, accountID.String())
		if err != nil {
			return err
		}
		profile, err := uc.Profiles.GetByAccount(ctx, scope, accountID)
		if err != nil {
			return err
		}
		if !profile.IsPersonal() {
			return domain.ErrInvalidProfileType
		}
		_, merchantToken, err = uc.Donations.GetCampaignForDonation(ctx, scope, campaignID, input.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	charge, err := uc.Gateway.Charge(ctx, merchantToken, payment.ChargeRequest{
		CardToken:     input.CardToken,
		Amount:        input.Amount,
		Installments:  input.Installments,
		PaymentMethod: input.PaymentMethod,
		PayerEmail:    donor.Email,
		Description:   "Adoptyme campaign donation",
	})
	if err != nil {
		// The charge may or may not have landed; the failed row keeps
		// the audit trail complete for reconciliation.
		reason := err.Error()
		recErr := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
			_, recordErr := uc.Donations.RecordFailedCharge(ctx, scope, campaignID, reason)
			return recordErr
		})
		if recErr != nil {
			return nil, recErr
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTransactionNotApproved, err)
	}

	if !charge.Approved() {
		// Audit trail for the refusal, committed on its own.
		recErr := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
			_, err := uc.Donations.RecordTransaction(ctx, scope, campaignID, charge)
			return err
		})
		if recErr != nil {
			return nil, recErr
		}
		return nil, domain.ErrTransactionNotApproved
	}

	var donation *model.IndividualDonation
	err = uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		// The money is charged, so the donation records even if the
		// campaign closed while the gateway ran.
		campaign, err := uc.Donations.GetCampaign(ctx, scope, campaignID)
		if err != nil {
			return err
		}
		tx, err := uc.Donations.RecordTransaction(ctx, scope, campaignID, charge)
		if err != nil {
			return err
		}
		donation, err = uc.Donations.RecordDonation(ctx, scope, campaign, accountID, tx, charge)
		return err
	})
	if err != nil {
		return nil, err
	}
	return donation, nil
}

// CreateDonationPreference builds a hosted-checkout preference for a
// campaign.
type CreateDonationPreference struct {
	Manager   *uow.Manager
	Donations *service.DonationService
	Gateway   payment.Gateway
}

func (uc *CreateDonationPreference) Execute(ctx context.Context, campaignID uuid.UUID, amount decimal.Decimal) (string, error) {
	var (
		merchantToken string
		campaign      *model.DonationCampaign
	)
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		campaign, merchantToken, err = uc.Donations.GetCampaignForDonation(ctx, scope, campaignID, amount)
		return err
	})
	if err != nil {
		return "", err
	}

	url, err := uc.Gateway.CreatePreference(ctx, merchantToken, payment.PreferenceItem{
		Title:     campaign.Name,
		Quantity:  1,
		UnitPrice: amount,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPreferenceNotGenerated, err)
	}
	return url, nil
}
