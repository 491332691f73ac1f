// internal/service/helpers_test.go
package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newScope opens a scope over the in-memory session factory. Tests that
// assert on published events pass a bus with handlers registered.
func newScope(t *testing.T, bus *uow.Bus) *uow.Scope {
	t.Helper()
	if bus == nil {
		bus = uow.NewBus()
	}
	manager := uow.NewManager(uow.NewMemorySessionFactory(), bus)
	scope, err := manager.Begin(context.Background())
	require.NoError(t, err)
	return scope
}

type eventRecorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *eventRecorder) handle(_ context.Context, event domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) all() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Event, len(r.events))
	copy(out, r.events)
	return out
}

// recordingBus wires a recorder to every event name the suite emits.
func recordingBus() (*uow.Bus, *eventRecorder) {
	bus := uow.NewBus()
	rec := &eventRecorder{}
	for _, name := range []string{
		domain.AccountVerified{}.EventName(),
		domain.PersonalProfileCreated{}.EventName(),
		domain.OrganizationalProfileCreated{}.EventName(),
		domain.OrganizationVerified{}.EventName(),
		domain.AdoptionAnimalDeleted{}.EventName(),
		domain.ApplicationStateUpdated{}.EventName(),
		domain.AnimalAdopted{}.EventName(),
		domain.PetSightingReported{}.EventName(),
	} {
		bus.On(name, rec.handle)
	}
	return bus, rec
}

func waitForEvents(t *testing.T, rec *eventRecorder, n int) []domain.Event {
	t.Helper()
	require.Eventually(t, func() bool {
		return len(rec.all()) >= n
	}, time.Second, 5*time.Millisecond)
	return rec.all()
}

func personalProfile() model.Profile {
	return model.Profile{Personal: &model.PersonalProfile{
		ProfileBase: model.ProfileBase{
			ID:        uuid.New(),
			AccountID: uuid.New(),
			FirstName: "Dana",
			Surname:   "Reyes",
		},
	}}
}

func organizationalProfile(orgID uuid.UUID, role model.OrganizationalRole) model.Profile {
	return model.Profile{Organizational: &model.OrganizationalProfile{
		ProfileBase: model.ProfileBase{
			ID:        uuid.New(),
			AccountID: uuid.New(),
			FirstName: "Sam",
			Surname:   "Ortiz",
		},
		OrganizationID: orgID,
		Role:           role,
		VerifiedByOrg:  true,
	}}
}

func validApplicationInput() ApplicationInput {
	return ApplicationInput{
		EverHadPet:        true,
		HousingType:       model.HousingHouse,
		PetTimeCommitment: "evenings and weekends",
		AdoptionInfo:      "garden with a fence",
	}
}

func validAnimalInput(name string) AnimalInput {
	return AnimalInput{
		Name:      name,
		BirthYear: 2021,
		Species:   model.SpeciesDog,
		Gender:    model.GenderFemale,
		Size:      model.SizeMedium,
	}
}
