// internal/usecase/social.go
package usecase

import (
	"context"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
)

// requireVerifiedAccount gates profile and organization creation behind
// email verification.
func requireVerifiedAccount(ctx context.Context, scope *uow.Scope, accounts *service.AccountService, accountID uuid.UUID) (*model.Account, error) {
	account, err := accounts.GetByID(ctx, scope, accountID.String())
	if err != nil {
		return nil, err
	}
	if !account.Verified {
		return nil, domain.ErrUnauthorized
	}
	return account, nil
}

type CreatePersonalProfile struct {
	Manager  *uow.Manager
	Accounts *service.AccountService
	Profiles *service.ProfileService
}

func (uc *CreatePersonalProfile) Execute(ctx context.Context, accountID uuid.UUID, input service.ProfileInput) (*model.PersonalProfile, error) {
	var profile *model.PersonalProfile
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		if _, err := requireVerifiedAccount(ctx, scope, uc.Accounts, accountID); err != nil {
			return err
		}
		var err error
		profile, err = uc.Profiles.CreatePersonal(ctx, scope, accountID, input)
		return err
	})
	return profile, err
}

type EditPersonalProfile struct {
	Manager  *uow.Manager
	Profiles *service.ProfileService
}

func (uc *EditPersonalProfile) Execute(ctx context.Context, accountID uuid.UUID, input service.ProfileInput) (*model.PersonalProfile, error) {
	var profile *model.PersonalProfile
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		profile, err = uc.Profiles.EditPersonal(ctx, scope, accountID, input)
		return err
	})
	return profile, err
}

// CreateOrganization registers an organization and its ADMIN profile
// atomically.
type CreateOrganization struct {
	Manager       *uow.Manager
	Accounts      *service.AccountService
	Organizations *service.OrganizationService
}

type CreateOrganizationOutput struct {
	Organization *model.Organization          `json:"organization"`
	AdminProfile *model.OrganizationalProfile `json:"admin_profile"`
}

func (uc *CreateOrganization) Execute(ctx context.Context, accountID uuid.UUID, input service.CreateOrganizationInput) (*CreateOrganizationOutput, error) {
	var out CreateOrganizationOutput
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		if _, err := requireVerifiedAccount(ctx, scope, uc.Accounts, accountID); err != nil {
			return err
		}
		org, admin, err := uc.Organizations.Create(ctx, scope, accountID, input)
		if err != nil {
			return err
		}
		out.Organization = org
		out.AdminProfile = admin
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// JoinOrganization creates a MANAGER or COLLABORATOR profile pending
// admin acceptance.
type JoinOrganization struct {
	Manager  *uow.Manager
	Accounts *service.AccountService
	Profiles *service.ProfileService
}

func (uc *JoinOrganization) Execute(ctx context.Context, accountID, orgID uuid.UUID, role model.OrganizationalRole, input service.ProfileInput) (*model.OrganizationalProfile, error) {
	var profile *model.OrganizationalProfile
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		if _, err := requireVerifiedAccount(ctx, scope, uc.Accounts, accountID); err != nil {
			return err
		}
		var err error
		profile, err = uc.Profiles.CreateOrganizationalEmployee(ctx, scope, accountID, orgID, role, input)
		return err
	})
	return profile, err
}

type AcceptOrganizationMember struct {
	Manager       *uow.Manager
	Profiles      *service.ProfileService
	Organizations *service.OrganizationService
}

func (uc *AcceptOrganizationMember) Execute(ctx context.Context, accountID, memberProfileID uuid.UUID) (*model.OrganizationalProfile, error) {
	var member *model.OrganizationalProfile
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		actor, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		member, err = uc.Organizations.AcceptMember(ctx, scope, actor, memberProfileID)
		return err
	})
	return member, err
}

type DisableOrganizationMember struct {
	Manager       *uow.Manager
	Profiles      *service.ProfileService
	Organizations *service.OrganizationService
}

func (uc *DisableOrganizationMember) Execute(ctx context.Context, accountID, memberProfileID uuid.UUID) (*model.OrganizationalProfile, error) {
	var member *model.OrganizationalProfile
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		actor, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		member, err = uc.Organizations.DisableMember(ctx, scope, actor, memberProfileID)
		return err
	})
	return member, err
}

// VerifyOrganization is restricted to the platform staff account.
type VerifyOrganization struct {
	Manager       *uow.Manager
	Accounts      *service.AccountService
	Organizations *service.OrganizationService
}

func (uc *VerifyOrganization) Execute(ctx context.Context, accountID, orgID uuid.UUID) (*model.Organization, error) {
	var org *model.Organization
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		account, err := uc.Accounts.GetByID(ctx, scope, accountID.String())
		if err != nil {
			return err
		}
		org, err = uc.Organizations.Verify(ctx, scope, account, orgID)
		return err
	})
	return org, err
}

type LinkMerchantAccount struct {
	Manager       *uow.Manager
	Profiles      *service.ProfileService
	Organizations *service.OrganizationService
}

func (uc *LinkMerchantAccount) Execute(ctx context.Context, accountID, orgID uuid.UUID, code string) (*model.Organization, error) {
	var org *model.Organization
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		actor, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		org, err = uc.Organizations.LinkMerchant(ctx, scope, actor, orgID, code)
		return err
	})
	return org, err
}

type GetOrganization struct {
	Manager       *uow.Manager
	Organizations *service.OrganizationService
}

func (uc *GetOrganization) Execute(ctx context.Context, orgID uuid.UUID) (*model.Organization, error) {
	var org *model.Organization
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		org, err = uc.Organizations.GetByID(ctx, scope, orgID)
		return err
	})
	return org, err
}

type ListOrganizations struct {
	Manager       *uow.Manager
	Organizations *service.OrganizationService
}

func (uc *ListOrganizations) Execute(ctx context.Context, limit, offset int) ([]model.Organization, error) {
	var orgs []model.Organization
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		orgs, err = uc.Organizations.List(ctx, scope, limit, offset)
		return err
	})
	return orgs, err
}

type ListOrganizationMembers struct {
	Manager  *uow.Manager
	Profiles *service.ProfileService
}

type MemberList struct {
	Members []model.OrganizationalProfile `json:"members"`
	Total   int64                         `json:"total"`
}

func (uc *ListOrganizationMembers) Execute(ctx context.Context, accountID, orgID uuid.UUID, limit, offset int) (*MemberList, error) {
	var out MemberList
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		actor, err := requireProfile(ctx, scope, uc.Profiles, accountID)
		if err != nil {
			return err
		}
		if actor.IsPersonal() || actor.Organizational.OrganizationID != orgID {
			return domain.ErrUnauthorized
		}
		out.Members, out.Total, err = uc.Profiles.ListByOrganization(ctx, scope, orgID, limit, offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type GetProfile struct {
	Manager  *uow.Manager
	Profiles *service.ProfileService
}

func (uc *GetProfile) Execute(ctx context.Context, profileID uuid.UUID) (model.Profile, error) {
	var profile model.Profile
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		profile, err = uc.Profiles.GetByID(ctx, scope, profileID)
		return err
	})
	return profile, err
}
