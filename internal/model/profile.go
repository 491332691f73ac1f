// internal/model/profile.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type OrganizationalRole string

const (
	RoleAdmin        OrganizationalRole = "ADMIN"
	RoleManager      OrganizationalRole = "MANAGER"
	RoleCollaborator OrganizationalRole = "COLLABORATOR"
)

// ProfileBase carries the attributes shared by both profile variants.
// Each variant lives in its own table; the one-profile-per-account rule
// spans both and is enforced by the profile service.
type ProfileBase struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"account_id"`
	FirstName string    `gorm:"type:text;not null" json:"first_name"`
	Surname   string    `gorm:"type:text;not null" json:"surname"`
	Phone     string    `gorm:"type:text;not null" json:"phone"`
	GovID     string    `gorm:"type:text;not null" json:"gov_id"`
	Birthdate time.Time `json:"birthdate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PersonalProfile struct {
	ProfileBase
	SocialMediaURL *string `gorm:"type:text" json:"social_media_url,omitempty"`

	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

type OrganizationalProfile struct {
	ProfileBase
	OrganizationID uuid.UUID          `gorm:"type:uuid;not null;index" json:"organization_id"`
	Role           OrganizationalRole `gorm:"type:text;not null" json:"role"`
	VerifiedByOrg  bool               `gorm:"not null;default:false" json:"verified_by_org"`

	Account      Account      `gorm:"foreignKey:AccountID" json:"-"`
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
}

// Profile is the tagged variant handed around by services; exactly one
// of the two pointers is set.
type Profile struct {
	Personal       *PersonalProfile
	Organizational *OrganizationalProfile
}

func (p Profile) IsPersonal() bool { return p.Personal != nil }

func (p Profile) ID() uuid.UUID {
	if p.Personal != nil {
		return p.Personal.ID
	}
	return p.Organizational.ID
}

func (p Profile) AccountID() uuid.UUID {
	if p.Personal != nil {
		return p.Personal.AccountID
	}
	return p.Organizational.AccountID
}

func (p Profile) FirstName() string {
	if p.Personal != nil {
		return p.Personal.FirstName
	}
	return p.Organizational.FirstName
}
