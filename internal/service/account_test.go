// internal/service/account_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/adoptyme/backend/internal/auth"
	"github.com/adoptyme/backend/internal/config"
	"github.com/adoptyme/backend/internal/domain"
	"github.com/adoptyme/backend/internal/email"
	"github.com/adoptyme/backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountFixture struct {
	svc      *AccountService
	accounts *memory.AccountRepository
	mail     *email.CaptureGateway
	tokens   *auth.TokenManager
}

func newAccountFixture() *accountFixture {
	cfg := &config.Config{}
	cfg.URL.Frontend = "http://localhost:3000"

	accounts := memory.NewAccountRepository()
	mail := email.NewCaptureGateway()
	tokens := auth.NewTokenManager("test-secret", time.Hour, time.Hour)

	return &accountFixture{
		svc:      NewAccountService(accounts, auth.NewPasswordHasher(), tokens, mail, cfg),
		accounts: accounts,
		mail:     mail,
		tokens:   tokens,
	}
}

func TestSignupSendsVerificationMail(t *testing.T) {
	fx := newAccountFixture()
	scope := newScope(t, nil)

	account, err := fx.svc.Signup(context.Background(), scope, SignupInput{
		Email:    "  Dana@Example.com ",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	assert.Equal(t, "dana@example.com", account.Email)
	assert.False(t, account.Verified)
	assert.NotContains(t, account.PasswordHash, "hunter2")

	sent := fx.mail.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "dana@example.com", sent[0].To)
	assert.Contains(t, sent[0].Text, "http://localhost:3000/auth/verify?token=")
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	fx := newAccountFixture()
	scope := newScope(t, nil)

	_, err := fx.svc.Signup(context.Background(), scope, SignupInput{
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = fx.svc.Signup(context.Background(), scope, SignupInput{
		Email:    "DANA@example.com",
		Password: "another-password",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSignupValidatesInput(t *testing.T) {
	fx := newAccountFixture()
	scope := newScope(t, nil)

	_, err := fx.svc.Signup(context.Background(), scope, SignupInput{
		Email:    "not-an-email",
		Password: "hunter2hunter2",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = fx.svc.Signup(context.Background(), scope, SignupInput{
		Email:    "dana@example.com",
		Password: "short",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVerifyEmitsAccountVerified(t *testing.T) {
	fx := newAccountFixture()
	bus, rec := recordingBus()
	scope := newScope(t, bus)

	account, err := fx.svc.Signup(context.Background(), scope, SignupInput{
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	token, err := fx.tokens.Generate(account.ID.String(), account.Email, auth.PurposeVerify)
	require.NoError(t, err)

	verified, err := fx.svc.Verify(context.Background(), scope, token)
	require.NoError(t, err)
	assert.True(t, verified.Verified)

	// A second verification attempt conflicts.
	_, err = fx.svc.Verify(context.Background(), scope, token)
	assert.ErrorIs(t, err, domain.ErrAlreadyVerified)

	require.NoError(t, scope.Commit())
	events := waitForEvents(t, rec, 1)
	evt, ok := events[0].(domain.AccountVerified)
	require.True(t, ok)
	assert.Equal(t, account.ID, evt.AccountID)
	assert.Equal(t, "dana@example.com", evt.Email)
}

func TestVerifyRejectsAccessToken(t *testing.T) {
	fx := newAccountFixture()
	scope := newScope(t, nil)

	account, err := fx.svc.Signup(context.Background(), scope, SignupInput{
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	access, err := fx.tokens.Generate(account.ID.String(), account.Email, auth.PurposeAccess)
	require.NoError(t, err)

	_, err = fx.svc.Verify(context.Background(), scope, access)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestLogin(t *testing.T) {
	fx := newAccountFixture()
	scope := newScope(t, nil)

	_, err := fx.svc.Signup(context.Background(), scope, SignupInput{
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	out, err := fx.svc.Login(context.Background(), scope, "Dana@Example.com", "hunter2hunter2")
	require.NoError(t, err)
	claims, err := fx.tokens.Validate(out.Token, auth.PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, out.Account.ID.String(), claims.AccountID)

	_, err = fx.svc.Login(context.Background(), scope, "dana@example.com", "wrong password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = fx.svc.Login(context.Background(), scope, "nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestPasswordResetFlow(t *testing.T) {
	fx := newAccountFixture()
	scope := newScope(t, nil)

	account, err := fx.svc.Signup(context.Background(), scope, SignupInput{
		Email:    "dana@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	// Unknown addresses are silently accepted and no mail goes out.
	before := len(fx.mail.Sent())
	require.NoError(t, fx.svc.RequestPasswordReset(context.Background(), scope, "nobody@example.com"))
	assert.Len(t, fx.mail.Sent(), before)

	require.NoError(t, fx.svc.RequestPasswordReset(context.Background(), scope, "dana@example.com"))
	sent := fx.mail.Sent()
	require.Len(t, sent, before+1)
	assert.Contains(t, sent[len(sent)-1].Text, "/auth/reset-password?token=")

	token, err := fx.tokens.Generate(account.ID.String(), account.Email, auth.PurposePasswordReset)
	require.NoError(t, err)

	err = fx.svc.ResetPassword(context.Background(), scope, token, "tiny")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, fx.svc.ResetPassword(context.Background(), scope, token, "brand-new-password"))

	_, err = fx.svc.Login(context.Background(), scope, "dana@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = fx.svc.Login(context.Background(), scope, "dana@example.com", "brand-new-password")
	assert.NoError(t, err)
}
