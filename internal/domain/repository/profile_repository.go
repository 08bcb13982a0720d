// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"drivelink/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProfileNotFound is a domain-specific error returned when a profile row is missing.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the standard operations for profile persistence.
type ProfileRepository interface {
	// FindByID retrieves a single profile by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)

	// FindByEmail retrieves a single profile by its email address.
	FindByEmail(ctx context.Context, email string) (*entity.Profile, error)

	// Create persists a new profile row.
	Create(ctx context.Context, profile *entity.Profile) error

	// Update applies a patch and returns the row as stored by the server.
	Update(ctx context.Context, id uuid.UUID, patch entity.ProfilePatch) (*entity.Profile, error)
}
