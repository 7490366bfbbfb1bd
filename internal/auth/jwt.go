package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/pulseboard/pulseboard/internal/config"
	ierr "github.com/pulseboard/pulseboard/internal/errors"
	"github.com/pulseboard/pulseboard/internal/types"
)

// Claims is the JWT payload. Subject carries the user ID; Role is the
// user's role at issue time.
type Claims struct {
	jwt.RegisteredClaims
	Role types.UserRole `json:"role"`
}

// TokenService issues and verifies access tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service from the auth configuration
func NewTokenService(cfg *config.Configuration) *TokenService {
	return &TokenService{
		secret: []byte(cfg.Auth.Secret),
		ttl:    cfg.Auth.TokenTTL,
	}
}

// Issue signs a token for the given user
func (s *TokenService) Issue(userID string, role types.UserRole) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to sign token").
			Mark(ierr.ErrInternal)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewErrorf("unexpected signing method: %v", t.Header["alg"]).
				Mark(ierr.ErrValidation)
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrPermissionDenied)
	}
	if !token.Valid {
		return nil, ierr.NewError("invalid token").
			Mark(ierr.ErrPermissionDenied)
	}
	return claims, nil
}
