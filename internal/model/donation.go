// internal/model/donation.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DonationCampaign struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrganizationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string          `gorm:"type:text;not null" json:"name"`
	Picture        string          `gorm:"type:text" json:"picture"`
	MoneyGoal      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"money_goal"`
	Description    string          `gorm:"type:text;not null" json:"description"`
	ExtraInfo      string          `gorm:"type:text" json:"extra_info"`
	Active         bool            `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

// IndividualDonation records the net amount credited to the campaign;
// fees are kept for the audit trail.
type IndividualDonation struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CampaignID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"campaign_id"`
	DonorAccountID  uuid.UUID       `gorm:"type:uuid;not null" json:"donor_account_id"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	MpFee           decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"mp_fee"`
	AppFee          decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"app_fee"`
	MpTransactionID uuid.UUID       `gorm:"type:uuid;not null" json:"mp_transaction_id"`
	CreatedAt       time.Time       `json:"created_at"`

	Campaign DonationCampaign `gorm:"foreignKey:CampaignID" json:"-"`
}

type MpTransactionStatus string

const (
	MpStatusApproved   MpTransactionStatus = "APPROVED"
	MpStatusRejected   MpTransactionStatus = "REJECTED"
	MpStatusInProcess  MpTransactionStatus = "IN_PROCESS"
	MpStatusCancelled  MpTransactionStatus = "CANCELLED"
	MpStatusChargeback MpTransactionStatus = "CHARGED_BACK"
	// MpStatusFailed marks charges that never completed: transport
	// errors and timeouts where no gateway verdict exists.
	MpStatusFailed MpTransactionStatus = "FAILED"
)

// MpTransaction is persisted whether or not the gateway approved the
// payment.
type MpTransaction struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CampaignID    uuid.UUID           `gorm:"type:uuid;not null;index" json:"campaign_id"`
	ExternalID    string              `gorm:"type:text" json:"external_id"`
	Status        MpTransactionStatus `gorm:"type:text;not null" json:"status"`
	StatusDetail  string              `gorm:"type:text" json:"status_detail"`
	PayerEmail    string              `gorm:"type:text" json:"payer_email"`
	PayerName     string              `gorm:"type:text" json:"payer_name"`
	PaymentMethod string              `gorm:"type:text" json:"payment_method"`
	PaymentType   string              `gorm:"type:text" json:"payment_type"`
	DateApproved  *time.Time          `json:"date_approved,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}
