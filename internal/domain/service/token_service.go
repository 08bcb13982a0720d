package service

import (
	"time"

	"drivelink/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenClaims is the decoded, verified content of a session token.
type TokenClaims struct {
	UserID    uuid.UUID
	Role      entity.Role
	ExpiresAt time.Time
}

// TokenService issues and validates the access/refresh token pair backing a
// device session.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a user.
	// Only the access token carries the role claim.
	GenerateTokens(userID uuid.UUID, role entity.Role) (accessToken, refreshToken string, err error)

	// ValidateAccessToken checks signature and expiry of an access token.
	ValidateAccessToken(token string) (*TokenClaims, error)

	// ValidateRefreshToken checks signature and expiry of a refresh token.
	ValidateRefreshToken(token string) (*TokenClaims, error)

	// HashToken returns the hash under which a refresh token is stored.
	HashToken(token string) string

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
