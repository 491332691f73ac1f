// internal/auth/token.go
package auth

import (
	"fmt"
	"time"

	"github.com/adoptyme/backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenPurpose scopes a signed token to one flow; a verification link
// cannot be replayed as an access token.
type TokenPurpose string

const (
	PurposeAccess        TokenPurpose = "access"
	PurposeVerify        TokenPurpose = "verify"
	PurposePasswordReset TokenPurpose = "password_reset"
)

type TokenManager struct {
	secret       []byte
	accessExpiry time.Duration
	linkExpiry   time.Duration
}

func NewTokenManager(secret string, accessExpiry, linkExpiry time.Duration) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		accessExpiry: accessExpiry,
		linkExpiry:   linkExpiry,
	}
}

type Claims struct {
	AccountID string       `json:"account_id"`
	Email     string       `json:"email"`
	Purpose   TokenPurpose `json:"purpose"`
	jwt.RegisteredClaims
}

func (tm *TokenManager) Generate(accountID, email string, purpose TokenPurpose) (string, error) {
	expiry := tm.accessExpiry
	if purpose != PurposeAccess {
		expiry = tm.linkExpiry
	}

	claims := Claims{
		AccountID: accountID,
		Email:     email,
		Purpose:   purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

func (tm *TokenManager) Validate(tokenString string, purpose TokenPurpose) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Purpose != purpose {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}
