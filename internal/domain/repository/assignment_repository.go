package repository

import (
	"context"
	"errors"
	"time"

	"drivelink/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAssignmentNotFound is returned when no assignment matches the query.
var ErrAssignmentNotFound = errors.New("assignment not found")

// AssignmentRepository defines the operations for the car↔driver and
// car↔manager assignment tables. Driver exclusivity (at most one open
// assignment per car) is additionally enforced by a partial unique index on
// car_drivers(car_id) WHERE unassigned_at IS NULL.
type AssignmentRepository interface {
	// CloseActiveDriverAssignments stamps unassigned_at on every open driver
	// assignment of the car and returns how many rows were closed.
	CloseActiveDriverAssignments(ctx context.Context, carID uuid.UUID, at time.Time) (int, error)

	// CreateDriverAssignment opens a new driver assignment.
	CreateDriverAssignment(ctx context.Context, carID, driverID uuid.UUID, at time.Time) (*entity.CarDriverAssignment, error)

	// ListDriverAssignmentsByCar returns the car's driver assignments, open
	// ones only when activeOnly is set, newest first.
	ListDriverAssignmentsByCar(ctx context.Context, carID uuid.UUID, activeOnly bool) ([]*entity.CarDriverAssignment, error)

	// FindActiveDriverAssignment returns the driver's currently open
	// assignment, or ErrAssignmentNotFound when the driver has no car.
	FindActiveDriverAssignment(ctx context.Context, driverID uuid.UUID) (*entity.CarDriverAssignment, error)

	// CreateManagerAssignment links a manager to a car. Several managers may
	// be active on the same car concurrently.
	CreateManagerAssignment(ctx context.Context, carID, managerID uuid.UUID, at time.Time) (*entity.CarManagerAssignment, error)

	// ListManagerAssignmentsByManager returns every assignment of one manager.
	ListManagerAssignmentsByManager(ctx context.Context, managerID uuid.UUID) ([]*entity.CarManagerAssignment, error)
}
