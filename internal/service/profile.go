// internal/service/profile.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ProfileService struct {
	profiles repository.ProfileRepositoryIface
	validate *validator.Validate
}

func NewProfileService(profiles repository.ProfileRepositoryIface) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		validate: validator.New(),
	}
}

type ProfileInput struct {
	FirstName      string    `json:"first_name" validate:"required"`
	Surname        string    `json:"surname" validate:"required"`
	Phone          string    `json:"phone" validate:"required"`
	GovID          string    `json:"gov_id" validate:"required"`
	Birthdate      time.Time `json:"birthdate" validate:"required"`
	SocialMediaURL *string   `json:"social_media_url,omitempty"`
}

func (s *ProfileService) ensureNoProfile(scope *uow.Scope, accountID uuid.UUID) error {
	_, err := s.profiles.FindByAccount(scope.Session(), accountID)
	if err == nil {
		return domain.ErrProfileAlreadyExists
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return err
	}
	return nil
}

// CreatePersonal creates the account's personal profile and emits
// PersonalProfileCreated.
func (s *ProfileService) CreatePersonal(ctx context.Context, scope *uow.Scope, accountID uuid.UUID, input ProfileInput) (*model.PersonalProfile, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := s.ensureNoProfile(scope, accountID); err != nil {
		return nil, err
	}

	profile := &model.PersonalProfile{
		ProfileBase: model.ProfileBase{
			AccountID: accountID,
			FirstName: input.FirstName,
			Surname:   input.Surname,
			Phone:     input.Phone,
			GovID:     input.GovID,
			Birthdate: input.Birthdate,
		},
		SocialMediaURL: input.SocialMediaURL,
	}
	if err := s.profiles.CreatePersonal(scope.Session(), profile); err != nil {
		return nil, err
	}

	scope.Emit(domain.PersonalProfileCreated{
		ProfileID: profile.ID,
		AccountID: accountID,
	})
	return profile, nil
}

// CreateOrganizationalAdmin creates the ADMIN profile of a new
// organization. Only the organization-creation flow calls this; an
// organization has exactly one ADMIN, its creator.
func (s *ProfileService) CreateOrganizationalAdmin(ctx context.Context, scope *uow.Scope, accountID, orgID uuid.UUID, input ProfileInput) (*model.OrganizationalProfile, error) {
	return s.createOrganizational(scope, accountID, orgID, model.RoleAdmin, true, input)
}

// CreateOrganizationalEmployee adds a MANAGER or COLLABORATOR profile,
// pending acceptance by the organization admin.
func (s *ProfileService) CreateOrganizationalEmployee(ctx context.Context, scope *uow.Scope, accountID, orgID uuid.UUID, role model.OrganizationalRole, input ProfileInput) (*model.OrganizationalProfile, error) {
	if role != model.RoleManager && role != model.RoleCollaborator {
		return nil, domain.ErrInvalidRole
	}
	return s.createOrganizational(scope, accountID, orgID, role, false, input)
}

func (s *ProfileService) createOrganizational(scope *uow.Scope, accountID, orgID uuid.UUID, role model.OrganizationalRole, verifiedByOrg bool, input ProfileInput) (*model.OrganizationalProfile, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := s.ensureNoProfile(scope, accountID); err != nil {
		return nil, err
	}

	profile := &model.OrganizationalProfile{
		ProfileBase: model.ProfileBase{
			AccountID: accountID,
			FirstName: input.FirstName,
			Surname:   input.Surname,
			Phone:     input.Phone,
			GovID:     input.GovID,
			Birthdate: input.Birthdate,
		},
		OrganizationID: orgID,
		Role:           role,
		VerifiedByOrg:  verifiedByOrg,
	}
	if err := s.profiles.CreateOrganizational(scope.Session(), profile); err != nil {
		return nil, err
	}

	scope.Emit(domain.OrganizationalProfileCreated{
		ProfileID:      profile.ID,
		AccountID:      accountID,
		OrganizationID: orgID,
	})
	return profile, nil
}

// EditPersonal updates the actor's own personal profile.
func (s *ProfileService) EditPersonal(ctx context.Context, scope *uow.Scope, accountID uuid.UUID, input ProfileInput) (*model.PersonalProfile, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	profile, err := s.profiles.FindByAccount(scope.Session(), accountID)
	if err != nil {
		return nil, err
	}
	if !profile.IsPersonal() {
		return nil, domain.ErrInvalidProfileType
	}

	personal := profile.Personal
	personal.FirstName = input.FirstName
	personal.Surname = input.Surname
	personal.Phone = input.Phone
	personal.GovID = input.GovID
	personal.Birthdate = input.Birthdate
	personal.SocialMediaURL = input.SocialMediaURL

	if err := s.profiles.UpdatePersonal(scope.Session(), personal); err != nil {
		return nil, err
	}
	return personal, nil
}

func (s *ProfileService) GetByAccount(ctx context.Context, scope *uow.Scope, accountID uuid.UUID) (model.Profile, error) {
	return s.profiles.FindByAccount(scope.Session(), accountID)
}

func (s *ProfileService) GetByID(ctx context.Context, scope *uow.Scope, id uuid.UUID) (model.Profile, error) {
	return s.profiles.FindByID(scope.Session(), id)
}

func (s *ProfileService) ListByOrganization(ctx context.Context, scope *uow.Scope, orgID uuid.UUID, limit, offset int) ([]model.OrganizationalProfile, int64, error) {
	profiles, err := s.profiles.FindByOrganization(scope.Session(), orgID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.profiles.CountByOrganization(scope.Session(), orgID)
	if err != nil {
		return nil, 0, err
	}
	return profiles, count, nil
}
