// internal/model/application.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationState string

const (
	ApplicationPending  ApplicationState = "PENDING"
	ApplicationAccepted ApplicationState = "ACCEPTED"
	ApplicationRejected ApplicationState = "REJECTED"
)

type HousingType string

const (
	HousingHouse     HousingType = "HOUSE"
	HousingApartment HousingType = "APARTMENT"
	HousingFarm      HousingType = "FARM"
	HousingOther     HousingType = "OTHER"
)

type AdoptionApplication struct {
	ID                uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicationDate   time.Time        `gorm:"not null" json:"application_date"`
	EverHadPet        bool             `gorm:"not null" json:"ever_had_pet"`
	HasPet            bool             `gorm:"not null" json:"has_pet"`
	HousingType       HousingType      `gorm:"type:text;not null" json:"housing_type"`
	OpenSpace         *bool            `json:"open_space,omitempty"`
	PetTimeCommitment string           `gorm:"type:text;not null" json:"pet_time_commitment"`
	AdoptionInfo      string           `gorm:"type:text;not null" json:"adoption_info"`
	AdopterProfileID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"adopter_profile_id"`
	AnimalID          uuid.UUID        `gorm:"type:uuid;not null;index" json:"animal_id"`
	State             ApplicationState `gorm:"type:text;not null;default:'PENDING'" json:"state"`
	Safety            *string          `gorm:"type:text" json:"safety,omitempty"`
	NiceToOthers      *bool            `json:"nice_to_others,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`

	Animal AdoptionAnimal `gorm:"foreignKey:AnimalID" json:"-"`
}

// Adoption exists if and only if its application is accepted.
type Adoption struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AdoptionDate          time.Time `gorm:"not null" json:"adoption_date"`
	AdoptionApplicationID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"adoption_application_id"`
	CreatedAt             time.Time `json:"created_at"`

	Application AdoptionApplication `gorm:"foreignKey:AdoptionApplicationID" json:"-"`
}
