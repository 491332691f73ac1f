// internal/model/pet_sight.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type PetSight struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PetID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"pet_id"`
	Lat               float64    `gorm:"not null" json:"lat"`
	Lon               float64    `gorm:"not null" json:"lon"`
	ReporterAccountID *uuid.UUID `gorm:"type:uuid" json:"reporter_account_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`

	Pet Pet `gorm:"foreignKey:PetID;constraint:OnDelete:CASCADE" json:"-"`
}
