// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"drivelink/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
	Role        entity.Role
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput bundles everything a client session needs after a successful
// login or registration: the merged user view, the raw profile, the bound
// role, and the token pair.
type AuthOutput struct {
	User    *entity.User
	Profile *entity.Profile
	Role    entity.Role
	Session *entity.Session
}

// AuthUsecase defines the interface for session and account operations.
// This is the contract that the delivery layer and the stores depend on.
type AuthUsecase interface {
	// Register creates the credential, profile, role binding, and role record
	// in a single transaction. Either everything lands or nothing does.
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)

	// Login verifies the credential and loads profile and role. Any
	// sub-failure aborts the whole operation.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// RefreshSession exchanges a valid refresh token for a new access token.
	// The refresh token itself is left unchanged.
	RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error)

	// Logout deletes the refresh token, ending the device session.
	Logout(ctx context.Context, refreshToken string) error

	// CurrentUser validates an access token and re-fetches the profile and
	// role behind it.
	CurrentUser(ctx context.Context, accessToken string) (*AuthOutput, error)

	// UpdateProfile applies a profile patch and returns the stored row.
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch entity.ProfilePatch) (*entity.Profile, error)
}
