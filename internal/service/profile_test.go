// internal/service/profile_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfileInput() ProfileInput {
	return ProfileInput{
		FirstName: "Dana",
		Surname:   "Reyes",
		Phone:     "123456",
		GovID:     "30111222",
		Birthdate: time.Date(1992, 7, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreatePersonalProfile(t *testing.T) {
	profiles := memory.NewProfileRepository()
	svc := NewProfileService(profiles)
	bus, rec := recordingBus()
	scope := newScope(t, bus)
	accountID := uuid.New()

	profile, err := svc.CreatePersonal(context.Background(), scope, accountID, validProfileInput())
	require.NoError(t, err)
	assert.Equal(t, accountID, profile.AccountID)

	require.NoError(t, scope.Commit())
	events := waitForEvents(t, rec, 1)
	created, ok := events[0].(domain.PersonalProfileCreated)
	require.True(t, ok)
	assert.Equal(t, profile.ID, created.ProfileID)
}

func TestOneProfilePerAccountSpansBothVariants(t *testing.T) {
	profiles := memory.NewProfileRepository()
	svc := NewProfileService(profiles)
	scope := newScope(t, nil)
	ctx := context.Background()

	accountID := uuid.New()
	_, err := svc.CreatePersonal(ctx, scope, accountID, validProfileInput())
	require.NoError(t, err)

	_, err = svc.CreatePersonal(ctx, scope, accountID, validProfileInput())
	assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)

	_, err = svc.CreateOrganizationalEmployee(ctx, scope, accountID, uuid.New(), model.RoleManager, validProfileInput())
	assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
}

func TestCreateOrganizationalEmployeeRoles(t *testing.T) {
	profiles := memory.NewProfileRepository()
	svc := NewProfileService(profiles)
	scope := newScope(t, nil)
	ctx := context.Background()

	// Joining as ADMIN is reserved for organization creation.
	_, err := svc.CreateOrganizationalEmployee(ctx, scope, uuid.New(), uuid.New(), model.RoleAdmin, validProfileInput())
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	employee, err := svc.CreateOrganizationalEmployee(ctx, scope, uuid.New(), uuid.New(), model.RoleCollaborator, validProfileInput())
	require.NoError(t, err)
	assert.False(t, employee.VerifiedByOrg, "employees wait for the admin to accept them")
}

func TestEditPersonalRejectsOrganizationalProfile(t *testing.T) {
	profiles := memory.NewProfileRepository()
	svc := NewProfileService(profiles)
	scope := newScope(t, nil)
	ctx := context.Background()

	accountID := uuid.New()
	_, err := svc.CreateOrganizationalEmployee(ctx, scope, accountID, uuid.New(), model.RoleManager, validProfileInput())
	require.NoError(t, err)

	_, err = svc.EditPersonal(ctx, scope, accountID, validProfileInput())
	assert.ErrorIs(t, err, domain.ErrInvalidProfileType)
}

func TestEditPersonalUpdatesFields(t *testing.T) {
	profiles := memory.NewProfileRepository()
	svc := NewProfileService(profiles)
	scope := newScope(t, nil)
	ctx := context.Background()

	accountID := uuid.New()
	_, err := svc.CreatePersonal(ctx, scope, accountID, validProfileInput())
	require.NoError(t, err)

	updated := validProfileInput()
	updated.FirstName = "Daniela"
	social := "https://instagram.com/daniela"
	updated.SocialMediaURL = &social

	profile, err := svc.EditPersonal(ctx, scope, accountID, updated)
	require.NoError(t, err)
	assert.Equal(t, "Daniela", profile.FirstName)
	require.NotNil(t, profile.SocialMediaURL)
	assert.Equal(t, social, *profile.SocialMediaURL)
}
