// internal/service/organization.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/payment"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type OrganizationService struct {
	organizations repository.OrganizationRepositoryIface
	profiles      repository.ProfileRepositoryIface
	profileSvc    *ProfileService
	gateway       payment.Gateway
	staffEmail    string
	validate      *validator.Validate
}

func NewOrganizationService(
	organizations repository.OrganizationRepositoryIface,
	profiles repository.ProfileRepositoryIface,
	profileSvc *ProfileService,
	gateway payment.Gateway,
	staffEmail string,
) *OrganizationService {
	return &OrganizationService{
		organizations: organizations,
		profiles:      profiles,
		profileSvc:    profileSvc,
		gateway:       gateway,
		staffEmail:    staffEmail,
		validate:      validator.New(),
	}
}

type CreateOrganizationInput struct {
	Name           string       `json:"name" validate:"required"`
	Phone          string       `json:"phone" validate:"required"`
	SocialMediaURL *string      `json:"social_media_url,omitempty"`
	AdminProfile   ProfileInput `json:"admin_profile" validate:"required"`
}

// Create registers the organization together with its ADMIN profile in
// the caller's scope; both exist or neither does.
func (s *OrganizationService) Create(ctx context.Context, scope *uow.Scope, creatorAccountID uuid.UUID, input CreateOrganizationInput) (*model.Organization, *model.OrganizationalProfile, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	existing, err := s.organizations.FindByName(scope.Session(), input.Name)
	if err != nil && !errors.Is(err, domain.ErrOrganizationNotFound) {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, domain.ErrOrganizationNameTaken
	}

	org := &model.Organization{
		Name:             input.Name,
		CreatorAccountID: creatorAccountID,
		Phone:            input.Phone,
		SocialMediaURL:   input.SocialMediaURL,
	}
	if err := s.organizations.Create(scope.Session(), org); err != nil {
		return nil, nil, err
	}

	admin, err := s.profileSvc.CreateOrganizationalAdmin(ctx, scope, creatorAccountID, org.ID, input.AdminProfile)
	if err != nil {
		return nil, nil, err
	}

	return org, admin, nil
}

// Verify flips the verified flag. Only the configured platform staff
// address may do this.
func (s *OrganizationService) Verify(ctx context.Context, scope *uow.Scope, actor *model.Account, orgID uuid.UUID) (*model.Organization, error) {
	if s.staffEmail == "" || !strings.EqualFold(actor.Email, s.staffEmail) {
		return nil, domain.ErrUnauthorized
	}

	org, err := s.organizations.FindByID(scope.Session(), orgID)
	if err != nil {
		return nil, err
	}
	if org.Verified {
		return nil, domain.ErrAlreadyVerified
	}

	org.Verified = true
	if err := s.organizations.Update(scope.Session(), org); err != nil {
		return nil, err
	}

	scope.Emit(domain.OrganizationVerified{OrganizationID: org.ID})
	return org, nil
}

func (s *OrganizationService) requireAdmin(scope *uow.Scope, actor model.Profile, orgID uuid.UUID) error {
	if actor.IsPersonal() ||
		actor.Organizational.OrganizationID != orgID ||
		actor.Organizational.Role != model.RoleAdmin {
		return domain.ErrUnauthorized
	}
	return nil
}

// AcceptMember marks an employee profile as verified by the
// organization. Actor must be the organization's ADMIN.
func (s *OrganizationService) AcceptMember(ctx context.Context, scope *uow.Scope, actor model.Profile, memberProfileID uuid.UUID) (*model.OrganizationalProfile, error) {
	member, err := s.profiles.FindByID(scope.Session(), memberProfileID)
	if err != nil {
		return nil, err
	}
	if member.IsPersonal() {
		return nil, domain.ErrInvalidProfileType
	}
	if err := s.requireAdmin(scope, actor, member.Organizational.OrganizationID); err != nil {
		return nil, err
	}

	member.Organizational.VerifiedByOrg = true
	if err := s.profiles.UpdateOrganizational(scope.Session(), member.Organizational); err != nil {
		return nil, err
	}
	return member.Organizational, nil
}

// DisableMember revokes an employee's verified-by-org status. The ADMIN
// cannot disable itself.
func (s *OrganizationService) DisableMember(ctx context.Context, scope *uow.Scope, actor model.Profile, memberProfileID uuid.UUID) (*model.OrganizationalProfile, error) {
	member, err := s.profiles.FindByID(scope.Session(), memberProfileID)
	if err != nil {
		return nil, err
	}
	if member.IsPersonal() || member.Organizational.Role == model.RoleAdmin {
		return nil, domain.ErrInvalidProfileType
	}
	if err := s.requireAdmin(scope, actor, member.Organizational.OrganizationID); err != nil {
		return nil, err
	}

	member.Organizational.VerifiedByOrg = false
	if err := s.profiles.UpdateOrganizational(scope.Session(), member.Organizational); err != nil {
		return nil, err
	}
	return member.Organizational, nil
}

// LinkMerchant exchanges the OAuth code and binds the merchant
// credentials to the organization.
func (s *OrganizationService) LinkMerchant(ctx context.Context, scope *uow.Scope, actor model.Profile, orgID uuid.UUID, code string) (*model.Organization, error) {
	if err := s.requireAdmin(scope, actor, orgID); err != nil {
		return nil, err
	}

	org, err := s.organizations.FindByID(scope.Session(), orgID)
	if err != nil {
		return nil, err
	}

	merchant, err := s.gateway.ExchangeOAuthCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMerchantLinkFailed, err)
	}

	raw, err := json.Marshal(merchant)
	if err != nil {
		return nil, fmt.Errorf("encoding merchant data: %w", err)
	}
	encoded := string(raw)

	org.MerchantData = &encoded
	org.VerifiedBank = true
	if err := s.organizations.Update(scope.Session(), org); err != nil {
		return nil, err
	}
	return org, nil
}

// MerchantToken returns the organization's stored merchant access
// token, or ErrMerchantNotLinked.
func (s *OrganizationService) MerchantToken(org *model.Organization) (string, error) {
	return merchantToken(org)
}

func merchantToken(org *model.Organization) (string, error) {
	if org.MerchantData == nil {
		return "", domain.ErrMerchantNotLinked
	}
	var merchant payment.MerchantData
	if err := json.Unmarshal([]byte(*org.MerchantData), &merchant); err != nil {
		return "", fmt.Errorf("decoding merchant data: %w", err)
	}
	return merchant.AccessToken, nil
}

func (s *OrganizationService) GetByID(ctx context.Context, scope *uow.Scope, id uuid.UUID) (*model.Organization, error) {
	return s.organizations.FindByID(scope.Session(), id)
}

func (s *OrganizationService) List(ctx context.Context, scope *uow.Scope, limit, offset int) ([]model.Organization, error) {
	return s.organizations.List(scope.Session(), limit, offset)
}
