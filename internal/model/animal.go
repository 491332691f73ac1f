// internal/model/animal.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type Species string

const (
	SpeciesDog   Species = "DOG"
	SpeciesCat   Species = "CAT"
	SpeciesOther Species = "OTHER"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

type Size string

const (
	SizeSmall  Size = "SMALL"
	SizeMedium Size = "MEDIUM"
	SizeLarge  Size = "LARGE"
)

type AdoptionState string

const (
	StateForAdoption AdoptionState = "FOR_ADOPTION"
	StateAdopted     AdoptionState = "ADOPTED"
)

// AnimalBase carries the descriptive attributes shared by adoptable
// animals and owned pets. Each variant has its own table.
type AnimalBase struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name           string    `gorm:"type:text;not null" json:"name"`
	BirthYear      int       `gorm:"not null" json:"birth_year"`
	Species        Species   `gorm:"type:text;not null" json:"species"`
	Gender         Gender    `gorm:"type:text;not null" json:"gender"`
	Size           Size      `gorm:"type:text;not null" json:"size"`
	Sterilized     bool      `gorm:"not null" json:"sterilized"`
	Vaccinated     bool      `gorm:"not null" json:"vaccinated"`
	Picture        string    `gorm:"type:text" json:"picture"`
	OwnerProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_profile_id"`
	Race           *string   `gorm:"type:text" json:"race,omitempty"`
	SpecialCare    *string   `gorm:"type:text" json:"special_care,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AdoptionAnimal is soft-deleted so historical applications and
// adoptions keep a valid reference.
type AdoptionAnimal struct {
	AnimalBase
	State           AdoptionState `gorm:"type:text;not null;default:'FOR_ADOPTION'" json:"state"`
	OrganizationID  *uuid.UUID    `gorm:"type:uuid;index" json:"organization_id,omitempty"`
	PublicationDate time.Time     `gorm:"not null" json:"publication_date"`
	Description     *string       `gorm:"type:text" json:"description,omitempty"`
	Deleted         bool          `gorm:"not null;default:false" json:"-"`
}

// Pet is hard-deleted together with its sightings.
type Pet struct {
	AnimalBase
	Lost             bool       `gorm:"not null;default:false" json:"lost"`
	LostDate         *time.Time `json:"lost_date,omitempty"`
	FoundDate        *time.Time `json:"found_date,omitempty"`
	QRCodeURL        string     `gorm:"type:text" json:"qr_code_url"`
	LastKnownPlace   *string    `gorm:"type:text" json:"last_known_location,omitempty"`
	LastKnownLat     *float64   `json:"last_known_lat,omitempty"`
	LastKnownLon     *float64   `json:"last_known_lon,omitempty"`
	AdoptionAnimalID *uuid.UUID `gorm:"type:uuid;index" json:"adoption_animal_id,omitempty"`
}
