// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adoptyme/backend/internal/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour, time.Hour)
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	handler := RequireAuth(newTokens())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
}

func TestRequireAuthRejectsNonAccessToken(t *testing.T) {
	tokens := newTokens()
	verify, err := tokens.Generate(uuid.NewString(), "user@example.com", auth.PurposeVerify)
	require.NoError(t, err)

	handler := RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a verification token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+verify)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthAttachesAccountID(t *testing.T) {
	tokens := newTokens()
	accountID := uuid.New()
	token, err := tokens.Generate(accountID.String(), "user@example.com", auth.PurposeAccess)
	require.NoError(t, err)

	var seen uuid.UUID
	handler := RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountID(r.Context())
		require.True(t, ok)
		seen = id
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, accountID, seen)
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	var ran bool
	handler := OptionalAuth(newTokens())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := AccountID(r.Context())
		assert.False(t, ok)
		ran = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.True(t, ran)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuthAttachesIDWhenPresent(t *testing.T) {
	tokens := newTokens()
	accountID := uuid.New()
	token, err := tokens.Generate(accountID.String(), "user@example.com", auth.PurposeAccess)
	require.NoError(t, err)

	handler := OptionalAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := AccountID(r.Context())
		require.True(t, ok)
		assert.Equal(t, accountID, id)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
}
