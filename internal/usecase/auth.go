// internal/usecase/auth.go
package usecase

import (
	"context"
	"errors"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/service"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/google/uuid"
)

type Signup struct {
	Manager  *uow.Manager
	Accounts *service.AccountService
}

func (uc *Signup) Execute(ctx context.Context, input service.SignupInput) (*model.Account, error) {
	var account *model.Account
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		account, err = uc.Accounts.Signup(ctx, scope, input)
		return err
	})
	return account, err
}

type VerifyAccount struct {
	Manager  *uow.Manager
	Accounts *service.AccountService
}

func (uc *VerifyAccount) Execute(ctx context.Context, token string) (*model.Account, error) {
	var account *model.Account
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		account, err = uc.Accounts.Verify(ctx, scope, token)
		return err
	})
	return account, err
}

type Login struct {
	Manager  *uow.Manager
	Accounts *service.AccountService
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*service.LoginOutput, error) {
	var out *service.LoginOutput
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		var err error
		out, err = uc.Accounts.Login(ctx, scope, email, password)
		return err
	})
	return out, err
}

type RequestPasswordReset struct {
	Manager  *uow.Manager
	Accounts *service.AccountService
}

func (uc *RequestPasswordReset) Execute(ctx context.Context, email string) error {
	return uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		return uc.Accounts.RequestPasswordReset(ctx, scope, email)
	})
}

type ResetPassword struct {
	Manager  *uow.Manager
	Accounts *service.AccountService
}

func (uc *ResetPassword) Execute(ctx context.Context, token, newPassword string) error {
	return uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		return uc.Accounts.ResetPassword(ctx, scope, token, newPassword)
	})
}

// Me is the authenticated principal: the account plus its profile when
// one exists.
type Me struct {
	Account *model.Account `json:"account"`
	Profile any            `json:"profile,omitempty"`
}

type GetMe struct {
	Manager  *uow.Manager
	Accounts *service.AccountService
	Profiles *service.ProfileService
}

func (uc *GetMe) Execute(ctx context.Context, accountID uuid.UUID) (*Me, error) {
	var me Me
	err := uc.Manager.Run(ctx, func(ctx context.Context, scope *uow.Scope) error {
		account, err := uc.Accounts.GetByID(ctx, scope, accountID.String())
		if err != nil {
			return err
		}
		me.Account = account

		profile, err := uc.Profiles.GetByAccount(ctx, scope, accountID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				return nil
			}
			return err
		}
		if profile.IsPersonal() {
			me.Profile = profile.Personal
		} else {
			me.Profile = profile.Organizational
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &me, nil
}
