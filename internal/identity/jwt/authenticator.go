// Package jwt implements token issuance and verification for the identity module.
package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shelfwise/shelfwise/internal/domain"
	"github.com/shelfwise/shelfwise/internal/identity"
)

// Config contains JWT authenticator configuration.
type Config struct {
	SecretKey     string
	TokenDuration time.Duration
}

// Claims is the signed token payload: user id (subject) plus role.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator issues and verifies HMAC-signed session tokens.
// Tokens are stateless: there is no server-side revocation, a token
// stays valid until its expiry regardless of logout.
type Authenticator struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// NewAuthenticator creates a new JWT authenticator.
func NewAuthenticator(cfg Config) *Authenticator {
	return &Authenticator{
		secretKey:     []byte(cfg.SecretKey),
		tokenDuration: cfg.TokenDuration,
	}
}

// GenerateToken issues a signed token embedding the user's id and role.
func (a *Authenticator) GenerateToken(_ context.Context, user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies the signature and expiry of a token and returns
// the embedded user id and role. Malformed, tampered and expired tokens
// all fail with the same ErrInvalidToken so callers cannot distinguish
// the failure mode.
func (a *Authenticator) ValidateToken(_ context.Context, tokenString string) (string, domain.Role, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", "", identity.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" || !claims.Role.IsValid() {
		return "", "", identity.ErrInvalidToken
	}

	return claims.Subject, claims.Role, nil
}
