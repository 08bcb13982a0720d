package usecase

import (
	"context"

	"drivelink/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// DriverWithCar pairs a driver with the car of their currently open
// assignment, if any.
type DriverWithCar struct {
	User       *entity.User
	Driver     *entity.DriverRecord
	Assignment *entity.CarDriverAssignment // Nil when the driver has no car.
	Car        *entity.Car                 // Nil when the driver has no car.
}

// ManagerWithCars pairs a manager with every car they are assigned to.
type ManagerWithCars struct {
	User    *entity.User
	Manager *entity.ManagerRecord
	Cars    []*entity.Car
}

// UserUsecase defines the interface for people-directory operations.
type UserUsecase interface {
	// GetUserByID merges profile and role into the user read model. Accounts
	// without a role row default to driver.
	GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	GetDrivers(ctx context.Context) ([]*entity.User, error)
	GetManagers(ctx context.Context) ([]*entity.User, error)
	GetOwners(ctx context.Context) ([]*entity.User, error)
	GetUsersByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)

	// GetDriverWithCar loads a driver and the car of their open assignment.
	GetDriverWithCar(ctx context.Context, driverUserID uuid.UUID) (*DriverWithCar, error)

	// GetManagerWithCars loads a manager and the cars they are assigned to.
	GetManagerWithCars(ctx context.Context, managerUserID uuid.UUID) (*ManagerWithCars, error)

	// UpdateDriverLocation stores a driver's last reported position for the
	// tracking tab.
	UpdateDriverLocation(ctx context.Context, driverUserID uuid.UUID, position orb.Point) error
}
