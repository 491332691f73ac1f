// internal/model/organization.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Organization struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name             string    `gorm:"type:text;uniqueIndex;not null" json:"name"`
	CreatorAccountID uuid.UUID `gorm:"type:uuid;not null" json:"creator_account_id"`
	Verified         bool      `gorm:"not null;default:false" json:"verified"`
	VerifiedBank     bool      `gorm:"not null;default:false" json:"verified_bank"`
	Phone            string    `gorm:"type:text;not null" json:"phone"`
	SocialMediaURL   *string   `gorm:"type:text" json:"social_media_url,omitempty"`
	// MerchantData holds the OAuth-exchanged payment credentials as JSON.
	MerchantData *string   `gorm:"type:jsonb" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Creator Account `gorm:"foreignKey:CreatorAccountID" json:"-"`
}
