// internal/service/application_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/repository/memory"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type applicationFixture struct {
	svc          *AdoptionApplicationService
	animals      *memory.AdoptionAnimalRepository
	applications *memory.AdoptionApplicationRepository
	adoptions    *memory.AdoptionRepository
}

func newApplicationFixture() *applicationFixture {
	animals := memory.NewAdoptionAnimalRepository()
	applications := memory.NewAdoptionApplicationRepository()
	adoptions := memory.NewAdoptionRepository()
	return &applicationFixture{
		svc:          NewAdoptionApplicationService(applications, adoptions, animals),
		animals:      animals,
		applications: applications,
		adoptions:    adoptions,
	}
}

func (fx *applicationFixture) seedAnimal(t *testing.T, scope *uow.Scope, owner model.Profile) *model.AdoptionAnimal {
	t.Helper()
	animal := &model.AdoptionAnimal{
		AnimalBase: model.AnimalBase{
			Name:           "Luna",
			BirthYear:      2020,
			Species:        model.SpeciesDog,
			Gender:         model.GenderFemale,
			Size:           model.SizeMedium,
			OwnerProfileID: owner.ID(),
		},
		State:           model.StateForAdoption,
		PublicationDate: time.Now().UTC(),
	}
	if !owner.IsPersonal() {
		orgID := owner.Organizational.OrganizationID
		animal.OrganizationID = &orgID
	}
	require.NoError(t, fx.animals.Create(scope.Session(), animal))
	return animal
}

func TestCreateApplicationGuards(t *testing.T) {
	fx := newApplicationFixture()
	scope := newScope(t, nil)
	ctx := context.Background()

	owner := personalProfile()
	animal := fx.seedAnimal(t, scope, owner)

	_, err := fx.svc.Create(ctx, scope, organizationalProfile(uuid.New(), model.RoleAdmin), animal.ID, validApplicationInput())
	assert.ErrorIs(t, err, domain.ErrApplicationByOrganizationInvalid)

	_, err = fx.svc.Create(ctx, scope, owner, animal.ID, validApplicationInput())
	assert.ErrorIs(t, err, domain.ErrApplicationForOwnAnimal)

	adopter := personalProfile()
	_, err = fx.svc.Create(ctx, scope, adopter, animal.ID, validApplicationInput())
	require.NoError(t, err)

	_, err = fx.svc.Create(ctx, scope, adopter, animal.ID, validApplicationInput())
	assert.ErrorIs(t, err, domain.ErrProfileAlreadyApplied)

	animal.State = model.StateAdopted
	require.NoError(t, fx.animals.Update(scope.Session(), animal))
	_, err = fx.svc.Create(ctx, scope, personalProfile(), animal.ID, validApplicationInput())
	assert.ErrorIs(t, err, domain.ErrAnimalAlreadyAdopted)
}

func TestDecideAuthorization(t *testing.T) {
	fx := newApplicationFixture()
	scope := newScope(t, nil)
	ctx := context.Background()

	orgID := uuid.New()
	owner := organizationalProfile(orgID, model.RoleAdmin)
	animal := fx.seedAnimal(t, scope, owner)

	application, err := fx.svc.Create(ctx, scope, personalProfile(), animal.ID, validApplicationInput())
	require.NoError(t, err)

	// COLLABORATOR may look but not decide.
	collaborator := organizationalProfile(orgID, model.RoleCollaborator)
	_, err = fx.svc.Decide(ctx, scope, collaborator, application.ID, model.ApplicationRejected)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Members of another organization have no say at all.
	outsider := organizationalProfile(uuid.New(), model.RoleAdmin)
	_, err = fx.svc.Decide(ctx, scope, outsider, application.ID, model.ApplicationRejected)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	manager := organizationalProfile(orgID, model.RoleManager)
	decided, err := fx.svc.Decide(ctx, scope, manager, application.ID, model.ApplicationRejected)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationRejected, decided.State)
}

func TestDecideRejectsInvalidTargetState(t *testing.T) {
	fx := newApplicationFixture()
	scope := newScope(t, nil)

	_, err := fx.svc.Decide(context.Background(), scope, personalProfile(), uuid.New(), model.ApplicationPending)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAcceptCascade(t *testing.T) {
	fx := newApplicationFixture()
	bus, rec := recordingBus()
	scope := newScope(t, bus)
	ctx := context.Background()

	owner := personalProfile()
	animal := fx.seedAnimal(t, scope, owner)

	winner := personalProfile()
	winning, err := fx.svc.Create(ctx, scope, winner, animal.ID, validApplicationInput())
	require.NoError(t, err)

	loserA, err := fx.svc.Create(ctx, scope, personalProfile(), animal.ID, validApplicationInput())
	require.NoError(t, err)
	loserB, err := fx.svc.Create(ctx, scope, personalProfile(), animal.ID, validApplicationInput())
	require.NoError(t, err)

	decided, err := fx.svc.Decide(ctx, scope, owner, winning.ID, model.ApplicationAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationAccepted, decided.State)

	adoption, err := fx.adoptions.FindByApplication(scope.Session(), winning.ID)
	require.NoError(t, err)
	assert.Equal(t, winning.ID, adoption.AdoptionApplicationID)

	updated, err := fx.animals.FindByID(scope.Session(), animal.ID, false)
	require.NoError(t, err)
	assert.Equal(t, model.StateAdopted, updated.State)

	for _, id := range []uuid.UUID{loserA.ID, loserB.ID} {
		sibling, err := fx.applications.FindByID(scope.Session(), id)
		require.NoError(t, err)
		assert.Equal(t, model.ApplicationRejected, sibling.State)
	}

	require.NoError(t, scope.Commit())

	// Two sibling rejections, the acceptance, then the adoption event.
	events := waitForEvents(t, rec, 4)
	require.Len(t, events, 4)
	for _, event := range events[:2] {
		rejected, ok := event.(domain.ApplicationStateUpdated)
		require.True(t, ok)
		assert.Equal(t, string(model.ApplicationRejected), rejected.NewState)
	}
	accepted, ok := events[2].(domain.ApplicationStateUpdated)
	require.True(t, ok)
	assert.Equal(t, string(model.ApplicationAccepted), accepted.NewState)
	assert.Equal(t, winning.ID, accepted.ApplicationID)

	adopted, ok := events[3].(domain.AnimalAdopted)
	require.True(t, ok)
	assert.Equal(t, animal.ID, adopted.AnimalID)
	assert.Equal(t, winner.ID(), adopted.AdopterProfileID)
}

func TestAcceptFailsWhenAnimalAlreadyAdopted(t *testing.T) {
	fx := newApplicationFixture()
	scope := newScope(t, nil)
	ctx := context.Background()

	owner := personalProfile()
	animal := fx.seedAnimal(t, scope, owner)

	first, err := fx.svc.Create(ctx, scope, personalProfile(), animal.ID, validApplicationInput())
	require.NoError(t, err)

	// The application predates the adoption but the animal is gone by
	// decision time.
	animal.State = model.StateAdopted
	require.NoError(t, fx.animals.Update(scope.Session(), animal))

	_, err = fx.svc.Decide(ctx, scope, owner, first.ID, model.ApplicationAccepted)
	assert.ErrorIs(t, err, domain.ErrAnimalAlreadyAdopted)
}

func TestDecideClosedApplication(t *testing.T) {
	fx := newApplicationFixture()
	scope := newScope(t, nil)
	ctx := context.Background()

	owner := personalProfile()
	animal := fx.seedAnimal(t, scope, owner)

	application, err := fx.svc.Create(ctx, scope, personalProfile(), animal.ID, validApplicationInput())
	require.NoError(t, err)

	_, err = fx.svc.Decide(ctx, scope, owner, application.ID, model.ApplicationRejected)
	require.NoError(t, err)

	_, err = fx.svc.Decide(ctx, scope, owner, application.ID, model.ApplicationAccepted)
	assert.ErrorIs(t, err, domain.ErrApplicationAlreadyClosed)
}

func TestRejectEmitsSingleOutcomeEvent(t *testing.T) {
	fx := newApplicationFixture()
	bus, rec := recordingBus()
	scope := newScope(t, bus)
	ctx := context.Background()

	owner := personalProfile()
	animal := fx.seedAnimal(t, scope, owner)
	application, err := fx.svc.Create(ctx, scope, personalProfile(), animal.ID, validApplicationInput())
	require.NoError(t, err)

	_, err = fx.svc.Decide(ctx, scope, owner, application.ID, model.ApplicationRejected)
	require.NoError(t, err)
	require.NoError(t, scope.Commit())

	events := waitForEvents(t, rec, 1)
	require.Len(t, events, 1)
	updated, ok := events[0].(domain.ApplicationStateUpdated)
	require.True(t, ok)
	assert.Equal(t, string(model.ApplicationRejected), updated.NewState)
	assert.Equal(t, owner.ID(), updated.DeciderProfileID)

	_, err = fx.adoptions.FindByApplication(scope.Session(), application.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRejectAllForAnimalEmitsNothing(t *testing.T) {
	fx := newApplicationFixture()
	bus, rec := recordingBus()
	scope := newScope(t, bus)
	ctx := context.Background()

	owner := personalProfile()
	animal := fx.seedAnimal(t, scope, owner)
	for i := 0; i < 3; i++ {
		_, err := fx.svc.Create(ctx, scope, personalProfile(), animal.ID, validApplicationInput())
		require.NoError(t, err)
	}

	require.NoError(t, fx.svc.RejectAllForAnimal(ctx, scope, animal.ID))
	require.NoError(t, scope.Commit())

	remaining, err := fx.applications.FindByAnimal(nil, animal.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 3)
	for _, application := range remaining {
		assert.Equal(t, model.ApplicationRejected, application.State)
	}
	assert.Empty(t, rec.all())
}

func TestListByAnimalRequiresManagementRights(t *testing.T) {
	fx := newApplicationFixture()
	scope := newScope(t, nil)
	ctx := context.Background()

	orgID := uuid.New()
	owner := organizationalProfile(orgID, model.RoleAdmin)
	animal := fx.seedAnimal(t, scope, owner)

	_, err := fx.svc.ListByAnimal(ctx, scope, personalProfile(), animal.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Any member of the owning organization may read, including a
	// COLLABORATOR.
	collaborator := organizationalProfile(orgID, model.RoleCollaborator)
	_, err = fx.svc.ListByAnimal(ctx, scope, collaborator, animal.ID)
	assert.NoError(t, err)
}
