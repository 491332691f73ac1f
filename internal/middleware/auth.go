// internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/adoptyme/backend/internal/auth"
	"github.com/google/uuid"
)

type contextKey string

const accountIDKey contextKey = "account_id"

// AccountID returns the authenticated account id, if any.
func AccountID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(accountIDKey).(uuid.UUID)
	return id, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func resolve(tokens *auth.TokenManager, r *http.Request) (uuid.UUID, bool) {
	raw := bearerToken(r)
	if raw == "" {
		return uuid.Nil, false
	}
	claims, err := tokens.Validate(raw, auth.PurposeAccess)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// RequireAuth rejects requests without a valid access token.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := resolve(tokens, r)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), accountIDKey, id)))
		})
	}
}

// OptionalAuth attaches the account id when a valid token is present
// and lets the request through either way. Sighting reports use this.
func OptionalAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := resolve(tokens, r); ok {
				r = r.WithContext(context.WithValue(r.Context(), accountIDKey, id))
			}
			next.ServeHTTP(w, r)
		})
	}
}
