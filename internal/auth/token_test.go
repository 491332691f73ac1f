// internal/auth/token_test.go
package auth

import (
	"testing"
	"time"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 2*time.Hour)

	token, err := tm.Generate("account-123", "user@example.com", PurposeAccess)
	require.NoError(t, err)

	claims, err := tm.Validate(token, PurposeAccess)
	require.NoError(t, err)
	assert.Equal(t, "account-123", claims.AccountID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, PurposeAccess, claims.Purpose)
}

func TestTokenPurposeIsNotInterchangeable(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, 2*time.Hour)

	verify, err := tm.Generate("account-123", "user@example.com", PurposeVerify)
	require.NoError(t, err)

	_, err = tm.Validate(verify, PurposeAccess)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	reset, err := tm.Generate("account-123", "user@example.com", PurposePasswordReset)
	require.NoError(t, err)

	_, err = tm.Validate(reset, PurposeVerify)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenSignedWithOtherSecretIsRejected(t *testing.T) {
	tm := NewTokenManager("secret-a", time.Hour, time.Hour)
	other := NewTokenManager("secret-b", time.Hour, time.Hour)

	token, err := other.Generate("account-123", "user@example.com", PurposeAccess)
	require.NoError(t, err)

	_, err = tm.Validate(token, PurposeAccess)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestGarbageTokenIsRejected(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour, time.Hour)

	_, err := tm.Validate("not.a.token", PurposeAccess)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
