package usecase

import (
	"context"

	"drivelink/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateCarInput defines the data required to register a new car.
type CreateCarInput struct {
	PlateNo  string
	LibreNo  string
	OwnerID  uuid.UUID // References the owner record.
	Model    string
	Year     int
	Color    string
	FuelType string
	Status   entity.CarStatus // Defaults to available when empty.
}

// CarUsecase defines the interface for fleet car operations.
type CarUsecase interface {
	GetAllCars(ctx context.Context) ([]*entity.Car, error)
	GetCarByID(ctx context.Context, id uuid.UUID) (*entity.Car, error)

	// GetCarsByOwner resolves the owner record for the user, then lists that
	// record's cars. A user without an owner record owns nothing.
	GetCarsByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]*entity.Car, error)

	GetCarsByStatus(ctx context.Context, status entity.CarStatus) ([]*entity.Car, error)

	CreateCar(ctx context.Context, input CreateCarInput) (*entity.Car, error)
	UpdateCar(ctx context.Context, id uuid.UUID, patch entity.CarPatch) (*entity.Car, error)
	DeleteCar(ctx context.Context, id uuid.UUID) error

	// AssignDriver closes any open driver assignment of the car and opens a
	// new one for the given driver record, all in one transaction.
	AssignDriver(ctx context.Context, carID, driverID uuid.UUID) (*entity.CarDriverAssignment, error)

	// AssignManager links a manager record to a car. Several managers may be
	// active on the same car at once.
	AssignManager(ctx context.Context, carID, managerID uuid.UUID) (*entity.CarManagerAssignment, error)
}
