package repository

import (
	"context"
	"errors"
	"time"

	"drivelink/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// Not-found sentinels for the role record tables.
var (
	ErrOwnerRecordNotFound   = errors.New("owner record not found")
	ErrManagerRecordNotFound = errors.New("manager record not found")
	ErrDriverRecordNotFound  = errors.New("driver record not found")
)

// MemberRepository defines the operations for the thin role record tables
// (owners, managers, drivers) that link profiles to assignments and cars.
type MemberRepository interface {
	CreateOwner(ctx context.Context, userID uuid.UUID) (*entity.OwnerRecord, error)
	CreateManager(ctx context.Context, userID uuid.UUID) (*entity.ManagerRecord, error)
	CreateDriver(ctx context.Context, userID uuid.UUID) (*entity.DriverRecord, error)

	FindOwnerByUserID(ctx context.Context, userID uuid.UUID) (*entity.OwnerRecord, error)
	FindManagerByUserID(ctx context.Context, userID uuid.UUID) (*entity.ManagerRecord, error)
	FindDriverByUserID(ctx context.Context, userID uuid.UUID) (*entity.DriverRecord, error)

	ListOwners(ctx context.Context) ([]*entity.OwnerRecord, error)
	ListManagers(ctx context.Context) ([]*entity.ManagerRecord, error)
	ListDrivers(ctx context.Context) ([]*entity.DriverRecord, error)

	// UpdateDriverLocation stores the driver's last reported position.
	UpdateDriverLocation(ctx context.Context, driverID uuid.UUID, position orb.Point, reportedAt time.Time) error
}
