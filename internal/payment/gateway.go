// internal/payment/gateway.go
package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MerchantData is the OAuth-exchanged credential set allowing the
// platform to charge on behalf of an organization.
type MerchantData struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	PublicKey    string `json:"public_key"`
}

type ChargeRequest struct {
	CardToken     string
	Amount        decimal.Decimal
	Installments  int
	PaymentMethod string
	PayerEmail    string
	PayerName     string
	Description   string
}

type ChargeResponse struct {
	TransactionID string
	Status        string
	StatusDetail  string
	// NetAmount is what the campaign is credited with after fees.
	NetAmount     decimal.Decimal
	MpFee         decimal.Decimal
	AppFee        decimal.Decimal
	PayerEmail    string
	PayerName     string
	PaymentMethod string
	PaymentType   string
	DateApproved  *time.Time
}

func (r *ChargeResponse) Approved() bool { return r.Status == "approved" }

type PreferenceItem struct {
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Gateway is the narrow payment surface the donation flow consumes.
type Gateway interface {
	ExchangeOAuthCode(ctx context.Context, code string) (*MerchantData, error)
	Charge(ctx context.Context, merchantToken string, req ChargeRequest) (*ChargeResponse, error)
	CreatePreference(ctx context.Context, merchantToken string, item PreferenceItem) (string, error)
}
