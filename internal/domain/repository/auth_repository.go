package repository

import (
	"context"
	"errors"

	"drivelink/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for authentication persistence.
var (
	// ErrAuthNotFound is returned when no credential exists for an email.
	ErrAuthNotFound = errors.New("authentication not found")
	// ErrTokenNotFound is returned when a refresh token is not found.
	ErrTokenNotFound = errors.New("refresh token not found")
	// ErrTokenExpired is returned when a refresh token exists but has expired.
	ErrTokenExpired = errors.New("refresh token expired")
)

// AuthRepository defines the standard operations for credential persistence.
type AuthRepository interface {
	// CreateAuthentication persists a new email/password credential.
	CreateAuthentication(ctx context.Context, auth *entity.Authentication) error

	// FindAuthenticationByEmail retrieves a credential by its login email.
	FindAuthenticationByEmail(ctx context.Context, email string) (*entity.Authentication, error)
}

// RefreshTokenRepository defines the operations for device session persistence.
type RefreshTokenRepository interface {
	// CreateRefreshToken persists a new refresh token, representing a device session.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindRefreshTokenByHash retrieves a token record by its stored hash.
	// Expired tokens are reported as ErrTokenExpired.
	FindRefreshTokenByHash(ctx context.Context, hash string) (*entity.RefreshToken, error)

	// DeleteRefreshTokenByHash deletes a token by its hash, ending the session.
	DeleteRefreshTokenByHash(ctx context.Context, hash string) error

	// DeleteRefreshTokensByUserID ends every session of one user.
	DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error
}
