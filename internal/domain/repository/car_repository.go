package repository

import (
	"context"
	"errors"

	"drivelink/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCarNotFound is returned when a car row is missing.
var ErrCarNotFound = errors.New("car not found")

// CarRepository defines the standard operations for car persistence.
type CarRepository interface {
	// ListAll returns every car, newest first.
	ListAll(ctx context.Context) ([]*entity.Car, error)

	// FindByID retrieves a single car by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error)

	// ListByOwner returns the cars owned by one owner record, newest first.
	ListByOwner(ctx context.Context, ownerRecordID uuid.UUID) ([]*entity.Car, error)

	// ListByStatus returns the cars currently in the given status, newest first.
	ListByStatus(ctx context.Context, status entity.CarStatus) ([]*entity.Car, error)

	// Create persists a new car row.
	Create(ctx context.Context, car *entity.Car) error

	// Update applies a patch and returns the row as stored by the server.
	Update(ctx context.Context, id uuid.UUID, patch entity.CarPatch) (*entity.Car, error)

	// Delete removes the car row permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}
