package auth

import (
	"context"
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Principal represents the authenticated driver extracted from a JWT.
type Principal struct {
	DriverID int64
	Email    string
}

type principalKey struct{}

// WithPrincipal stores the principal in context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext retrieves the principal from context (if any).
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

type claims struct {
	DriverID int64  `json:"driver_id"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenTTL is how long an issued driver token stays valid.
const TokenTTL = 24 * time.Hour

// GenerateToken issues a signed HS256 token for the given driver.
func GenerateToken(secret string, driverID int64, email string) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}
	c := claims{
		DriverID: driverID,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a token string and returns the Principal it carries.
func ParseToken(tokenStr, secret string) (*Principal, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	tok, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return nil, err
	}
	c, _ := tok.Claims.(*claims)
	if c == nil || c.DriverID == 0 || c.Email == "" {
		return nil, errors.New("invalid claims")
	}
	return &Principal{DriverID: c.DriverID, Email: c.Email}, nil
}
