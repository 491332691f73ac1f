// internal/domain/events.go
package domain

import "github.com/google/uuid"

// Event is a domain occurrence buffered by a scope and published after
// the scope commits.
type Event interface {
	EventName() string
}

type AccountVerified struct {
	AccountID uuid.UUID
	Email     string
	FirstName string
}

func (AccountVerified) EventName() string { return "account.verified" }

type PersonalProfileCreated struct {
	ProfileID uuid.UUID
	AccountID uuid.UUID
}

func (PersonalProfileCreated) EventName() string { return "profile.personal.created" }

type OrganizationalProfileCreated struct {
	ProfileID      uuid.UUID
	AccountID      uuid.UUID
	OrganizationID uuid.UUID
}

func (OrganizationalProfileCreated) EventName() string { return "profile.organizational.created" }

type OrganizationVerified struct {
	OrganizationID uuid.UUID
}

func (OrganizationVerified) EventName() string { return "organization.verified" }

type AdoptionAnimalDeleted struct {
	AnimalID uuid.UUID
}

func (AdoptionAnimalDeleted) EventName() string { return "adoption_animal.deleted" }

// ApplicationStateUpdated is emitted whenever an application leaves the
// pending state. DeciderProfileID identifies who accepted or rejected it.
type ApplicationStateUpdated struct {
	ApplicationID    uuid.UUID
	AnimalID         uuid.UUID
	AdopterProfileID uuid.UUID
	DeciderProfileID uuid.UUID
	NewState         string
}

func (ApplicationStateUpdated) EventName() string { return "adoption_application.state_updated" }

type AnimalAdopted struct {
	AnimalID         uuid.UUID
	ApplicationID    uuid.UUID
	AdopterProfileID uuid.UUID
}

func (AnimalAdopted) EventName() string { return "adoption_animal.adopted" }

// PetSightingReported is not emitted for the seed sighting recorded when
// a pet becomes lost.
type PetSightingReported struct {
	SightID uuid.UUID
	PetID   uuid.UUID
	Lat     float64
	Lon     float64
}

func (PetSightingReported) EventName() string { return "pet.sighting_reported" }
