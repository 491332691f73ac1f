// internal/service/account.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adoptyme/backend/internal/auth"
	"github.com/adoptyme/backend/internal/config"
	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/email"
	"github.com/adoptyme/backend/internal/email/mailer"
	"github.com/adoptyme/backend/internal/model"
	"github.com/adoptyme/backend/internal/repository"
	"github.com/adoptyme/backend/internal/uow"
	"github.com/go-playground/validator/v10"
)

type AccountService struct {
	accounts     repository.AccountRepositoryIface
	hasher       *auth.PasswordHasher
	tokens       *auth.TokenManager
	emailGateway email.Gateway
	config       *config.Config
	validate     *validator.Validate
}

func NewAccountService(
	accounts repository.AccountRepositoryIface,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	emailGateway email.Gateway,
	cfg *config.Config,
) *AccountService {
	return &AccountService{
		accounts:     accounts,
		hasher:       hasher,
		tokens:       tokens,
		emailGateway: emailGateway,
		config:       cfg,
		validate:     validator.New(),
	}
}

type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Signup registers a new account and schedules the verification email.
// Verification itself is a separate flow; no event is emitted here.
func (s *AccountService) Signup(ctx context.Context, scope *uow.Scope, input SignupInput) (*model.Account, error) {
	// Normalize before validating so padded addresses pass the email tag.
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	existing, err := s.accounts.FindByEmail(scope.Session(), input.Email)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	account := &model.Account{
		Email:        input.Email,
		PasswordHash: hashed,
	}
	if err := s.accounts.Create(scope.Session(), account); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(account.ID.String(), account.Email, auth.PurposeVerify)
	if err != nil {
		return nil, fmt.Errorf("generating verification token: %w", err)
	}

	verificationLink := fmt.Sprintf("%s/auth/verify?token=%s", s.config.URL.Frontend, token)
	if err := mailer.SendVerificationEmail(s.emailGateway, account.Email, verificationLink); err != nil {
		return nil, fmt.Errorf("sending verification email: %w", err)
	}

	return account, nil
}

// Verify marks the account as verified and emits AccountVerified.
func (s *AccountService) Verify(ctx context.Context, scope *uow.Scope, token string) (*model.Account, error) {
	claims, err := s.tokens.Validate(token, auth.PurposeVerify)
	if err != nil {
		return nil, err
	}

	accountID, err := parseID(claims.AccountID)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.FindByID(scope.Session(), accountID)
	if err != nil {
		return nil, err
	}
	if account.Verified {
		return nil, domain.ErrAlreadyVerified
	}

	account.Verified = true
	if err := s.accounts.Update(scope.Session(), account); err != nil {
		return nil, err
	}

	scope.Emit(domain.AccountVerified{
		AccountID: account.ID,
		Email:     account.Email,
	})
	return account, nil
}

type LoginOutput struct {
	Account *model.Account `json:"account"`
	Token   string         `json:"token"`
}

func (s *AccountService) Login(ctx context.Context, scope *uow.Scope, emailAddr, password string) (*LoginOutput, error) {
	account, err := s.accounts.FindByEmail(scope.Session(), strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	verified, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil || !verified {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(account.ID.String(), account.Email, auth.PurposeAccess)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &LoginOutput{Account: account, Token: token}, nil
}

// RequestPasswordReset schedules the reset email. An unknown address is
// not an error; the response never discloses whether an account exists.
func (s *AccountService) RequestPasswordReset(ctx context.Context, scope *uow.Scope, emailAddr string) error {
	account, err := s.accounts.FindByEmail(scope.Session(), strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil
		}
		return err
	}

	token, err := s.tokens.Generate(account.ID.String(), account.Email, auth.PurposePasswordReset)
	if err != nil {
		return fmt.Errorf("generating reset token: %w", err)
	}

	resetLink := fmt.Sprintf("%s/auth/reset-password?token=%s", s.config.URL.Frontend, token)
	return mailer.SendPasswordResetEmail(s.emailGateway, account.Email, resetLink)
}

func (s *AccountService) ResetPassword(ctx context.Context, scope *uow.Scope, token, newPassword string) error {
	claims, err := s.tokens.Validate(token, auth.PurposePasswordReset)
	if err != nil {
		return err
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password too short", domain.ErrInvalidInput)
	}

	accountID, err := parseID(claims.AccountID)
	if err != nil {
		return err
	}

	account, err := s.accounts.FindByID(scope.Session(), accountID)
	if err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	account.PasswordHash = hashed
	return s.accounts.Update(scope.Session(), account)
}

// GetByID loads an account for principal resolution.
func (s *AccountService) GetByID(ctx context.Context, scope *uow.Scope, id string) (*model.Account, error) {
	accountID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.accounts.FindByID(scope.Session(), accountID)
}
