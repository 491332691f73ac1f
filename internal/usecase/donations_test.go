// internal/usecase/donations_test.go
package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/adoptyme/backend/internal/auth"
	"github.com/adoptyme/backend/internal/config"
	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/email"
	"github.com/adoptyme/backend/internal/mocks"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/payment"
	"github.com/adoptyme/backend/internal/repository/memory"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type donateFixture struct {
	uc           *DonateToCampaign
	gateway      *mocks.MockGateway
	donations    *memory.DonationRepository
	transactions *memory.MpTransactionRepository
	profiles     *memory.ProfileRepository
	accounts     *memory.AccountRepository
	donor        *model.Account
	campaign     *model.DonationCampaign
}

func newDonateFixture(t *testing.T) *donateFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	manager := uow.NewManager(uow.NewMemorySessionFactory(), uow.NewBus())

	accounts := memory.NewAccountRepository()
	donations := memory.NewDonationRepository()
	transactions := memory.NewMpTransactionRepository()
	organizations := memory.NewOrganizationRepository()
	profiles := memory.NewProfileRepository()
	gateway := mocks.NewMockGateway(ctrl)

	cfg := &config.Config{}
	cfg.URL.Frontend = "http://localhost:3000"
	accountSvc := service.NewAccountService(
		accounts,
		auth.NewPasswordHasher(),
		auth.NewTokenManager("test-secret", time.Hour, time.Hour),
		email.NewCaptureGateway(),
		cfg,
	)

	donor := &model.Account{Email: "donor@example.com", Verified: true}
	require.NoError(t, accounts.Create(nil, donor))
	require.NoError(t, profiles.CreatePersonal(nil, &model.PersonalProfile{
		ProfileBase: model.ProfileBase{
			AccountID: donor.ID,
			FirstName: "Dana",
			Surname:   "Reyes",
		},
	}))

	merchant := `{"user_id":"mp-1","access_token":"tok-123"}`
	org := &model.Organization{
		Name:             "Refugio Esperanza",
		CreatorAccountID: uuid.New(),
		Phone:            "123456",
		MerchantData:     &merchant,
	}
	require.NoError(t, organizations.Create(nil, org))

	campaign := &model.DonationCampaign{
		OrganizationID: org.ID,
		Name:           "Winter shelter fund",
		MoneyGoal:      decimal.NewFromInt(1000),
		Description:    "Heating for the winter months",
		Active:         true,
	}
	require.NoError(t, donations.CreateCampaign(nil, campaign))

	return &donateFixture{
		uc: &DonateToCampaign{
			Manager:   manager,
			Accounts:  accountSvc,
			Profiles:  service.NewProfileService(profiles),
			Donations: service.NewDonationService(donations, transactions, organizations),
			Gateway:   gateway,
		},
		gateway:      gateway,
		donations:    donations,
		transactions: transactions,
		profiles:     profiles,
		accounts:     accounts,
		donor:        donor,
		campaign:     campaign,
	}
}

func donateInput(amount int64) DonateInput {
	return DonateInput{
		CardToken:     "card-token",
		Amount:        decimal.NewFromInt(amount),
		Installments:  1,
		PaymentMethod: "visa",
	}
}

func TestDonateApprovedChargeRecordsDonation(t *testing.T) {
	fx := newDonateFixture(t)
	when := time.Now().UTC()

	fx.gateway.EXPECT().
		Charge(gomock.Any(), "tok-123", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, req payment.ChargeRequest) (*payment.ChargeResponse, error) {
			assert.Equal(t, "donor@example.com", req.PayerEmail)
			assert.True(t, req.Amount.Equal(decimal.NewFromInt(100)))
			return &payment.ChargeResponse{
				TransactionID: "mp-tx-1",
				Status:        "approved",
				NetAmount:     decimal.NewFromInt(95),
				MpFee:         decimal.NewFromInt(4),
				AppFee:        decimal.NewFromInt(1),
				PayerEmail:    "donor@example.com",
				PayerName:     "Dana Reyes",
				DateApproved:  &when,
			}, nil
		})

	donation, err := fx.uc.Execute(context.Background(), fx.donor.ID, fx.campaign.ID, donateInput(100))
	require.NoError(t, err)
	assert.True(t, donation.Amount.Equal(decimal.NewFromInt(95)), "the campaign is credited the net amount")
	assert.Equal(t, fx.donor.ID, donation.DonorAccountID)

	recorded := fx.transactions.All()
	require.Len(t, recorded, 1)
	assert.Equal(t, "mp-tx-1", recorded[0].ExternalID)
	assert.Equal(t, model.MpStatusApproved, recorded[0].Status)
	assert.Equal(t, "donor@example.com", recorded[0].PayerEmail)
	assert.Equal(t, "Dana Reyes", recorded[0].PayerName)
}

func TestDonateRequiresPersonalProfile(t *testing.T) {
	fx := newDonateFixture(t)

	shelter := &model.Account{Email: "shelter@example.com", Verified: true}
	require.NoError(t, fx.accounts.Create(nil, shelter))
	require.NoError(t, fx.profiles.CreateOrganizational(nil, &model.OrganizationalProfile{
		ProfileBase: model.ProfileBase{
			AccountID: shelter.ID,
			FirstName: "Sam",
			Surname:   "Ortiz",
		},
		OrganizationID: fx.campaign.OrganizationID,
		Role:           model.RoleManager,
		VerifiedByOrg:  true,
	}))

	// No Charge expectation: the guard scope rejects before any money
	// moves, and nothing is recorded.
	_, err := fx.uc.Execute(context.Background(), shelter.ID, fx.campaign.ID, donateInput(100))
	assert.ErrorIs(t, err, domain.ErrInvalidProfileType)
	assert.Empty(t, fx.transactions.All())
}

func TestDonateWithoutProfileRejected(t *testing.T) {
	fx := newDonateFixture(t)

	bare := &model.Account{Email: "bare@example.com", Verified: true}
	require.NoError(t, fx.accounts.Create(nil, bare))

	_, err := fx.uc.Execute(context.Background(), bare.ID, fx.campaign.ID, donateInput(100))
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.Empty(t, fx.transactions.All())
}

func TestDonateRejectedChargeKeepsAuditTrail(t *testing.T) {
	fx := newDonateFixture(t)

	fx.gateway.EXPECT().
		Charge(gomock.Any(), "tok-123", gomock.Any()).
		Return(&payment.ChargeResponse{
			TransactionID: "mp-tx-2",
			Status:        "rejected",
			StatusDetail:  "cc_rejected_insufficient_amount",
		}, nil)

	donation, err := fx.uc.Execute(context.Background(), fx.donor.ID, fx.campaign.ID, donateInput(100))
	assert.ErrorIs(t, err, domain.ErrTransactionNotApproved)
	assert.Nil(t, donation)

	// The refusal is still on record.
	recorded := fx.transactions.All()
	require.Len(t, recorded, 1)
	assert.Equal(t, model.MpStatusRejected, recorded[0].Status)
	assert.Equal(t, "cc_rejected_insufficient_amount", recorded[0].StatusDetail)

	// But no donation was credited.
	list, err := fx.donations.ListDonationsByCampaign(nil, fx.campaign.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDonateGatewayFailureKeepsAuditTrail(t *testing.T) {
	fx := newDonateFixture(t)

	fx.gateway.EXPECT().
		Charge(gomock.Any(), "tok-123", gomock.Any()).
		Return(nil, errors.New("context deadline exceeded"))

	_, err := fx.uc.Execute(context.Background(), fx.donor.ID, fx.campaign.ID, donateInput(100))
	assert.ErrorIs(t, err, domain.ErrTransactionNotApproved)

	// The charge may have landed on the gateway side, so the failure is
	// still on record for reconciliation.
	recorded := fx.transactions.All()
	require.Len(t, recorded, 1)
	assert.Equal(t, model.MpStatusFailed, recorded[0].Status)
	assert.Contains(t, recorded[0].StatusDetail, "context deadline exceeded")

	list, err := fx.donations.ListDonationsByCampaign(nil, fx.campaign.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDonateToClosedCampaignSkipsGateway(t *testing.T) {
	fx := newDonateFixture(t)

	fx.campaign.Active = false
	require.NoError(t, fx.donations.UpdateCampaign(nil, fx.campaign))

	// No Charge expectation: the guard scope fails first.
	_, err := fx.uc.Execute(context.Background(), fx.donor.ID, fx.campaign.ID, donateInput(100))
	assert.ErrorIs(t, err, domain.ErrCampaignAlreadyFinished)
}

func TestDonateRejectsNonPositiveAmount(t *testing.T) {
	fx := newDonateFixture(t)

	_, err := fx.uc.Execute(context.Background(), fx.donor.ID, fx.campaign.ID, donateInput(0))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCreateDonationPreference(t *testing.T) {
	fx := newDonateFixture(t)
	uc := &CreateDonationPreference{
		Manager:   fx.uc.Manager,
		Donations: fx.uc.Donations,
		Gateway:   fx.gateway,
	}

	fx.gateway.EXPECT().
		CreatePreference(gomock.Any(), "tok-123", payment.PreferenceItem{
			Title:     "Winter shelter fund",
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(50),
		}).
		Return("https://mp.example/init/abc", nil)

	url, err := uc.Execute(context.Background(), fx.campaign.ID, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.Equal(t, "https://mp.example/init/abc", url)
}

func TestCreateDonationPreferenceGatewayFailure(t *testing.T) {
	fx := newDonateFixture(t)
	uc := &CreateDonationPreference{
		Manager:   fx.uc.Manager,
		Donations: fx.uc.Donations,
		Gateway:   fx.gateway,
	}

	fx.gateway.EXPECT().
		CreatePreference(gomock.Any(), "tok-123", gomock.Any()).
		Return("", errors.New("timeout"))

	_, err := uc.Execute(context.Background(), fx.campaign.ID, decimal.NewFromInt(50))
	assert.ErrorIs(t, err, domain.ErrPreferenceNotGenerated)
}
