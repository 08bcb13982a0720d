package postgres

import (
	"context"
	"time"

	"drivelink/internal/domain/entity"
	domainerrors "drivelink/internal/domain/errors"
	"drivelink/internal/domain/repository"
	"drivelink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// assignmentRepository implements the domain.AssignmentRepository interface.
type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository is the constructor for assignmentRepository.
func NewAssignmentRepository(db *gorm.DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

// CloseActiveDriverAssignments stamps unassigned_at on every open driver
// assignment of the car and returns how many rows were closed.
func (repo *assignmentRepository) CloseActiveDriverAssignments(ctx context.Context, carID uuid.UUID, at time.Time) (int, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.CarDriverModel{}).
		Where("car_id = ? AND unassigned_at IS NULL", carID).
		Update("unassigned_at", at)
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to close driver assignments")
	}

	return int(result.RowsAffected), nil
}

// CreateDriverAssignment opens a new driver assignment. The partial unique
// index on car_drivers(car_id) rejects a second open assignment for the car.
func (repo *assignmentRepository) CreateDriverAssignment(ctx context.Context, carID, driverID uuid.UUID, at time.Time) (*entity.CarDriverAssignment, error) {
	assignmentM := &model.CarDriverModel{
		CarID:      carID,
		DriverID:   driverID,
		AssignedAt: at,
	}

	if err := repo.db.WithContext(ctx).Create(assignmentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return nil, domainerrors.ErrAssignmentConflict.WrapMessage("car already has an active driver")
		}
		if isForeignKeyConstraintViolation(err) {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid car or driver reference")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create driver assignment")
	}

	return toDriverAssignmentDomain(assignmentM), nil
}

// ListDriverAssignmentsByCar returns the car's driver assignments, open ones
// only when activeOnly is set, newest first.
func (repo *assignmentRepository) ListDriverAssignmentsByCar(ctx context.Context, carID uuid.UUID, activeOnly bool) ([]*entity.CarDriverAssignment, error) {
	query := repo.db.WithContext(ctx).
		Where("car_id = ?", carID)
	if activeOnly {
		query = query.Where("unassigned_at IS NULL")
	}

	var assignmentModels []model.CarDriverModel
	if err := query.
		Order("assigned_at DESC").
		Find(&assignmentModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	assignments := make([]*entity.CarDriverAssignment, 0, len(assignmentModels))
	for i := range assignmentModels {
		assignments = append(assignments, toDriverAssignmentDomain(&assignmentModels[i]))
	}

	return assignments, nil
}

// FindActiveDriverAssignment returns the driver's currently open assignment.
func (repo *assignmentRepository) FindActiveDriverAssignment(ctx context.Context, driverID uuid.UUID) (*entity.CarDriverAssignment, error) {
	var assignmentM model.CarDriverModel
	if err := repo.db.WithContext(ctx).
		Where("driver_id = ? AND unassigned_at IS NULL", driverID).
		Order("assigned_at DESC").
		First(&assignmentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAssignmentNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toDriverAssignmentDomain(&assignmentM), nil
}

// CreateManagerAssignment links a manager to a car. Several managers may be
// active on the same car concurrently.
func (repo *assignmentRepository) CreateManagerAssignment(ctx context.Context, carID, managerID uuid.UUID, at time.Time) (*entity.CarManagerAssignment, error) {
	assignmentM := &model.CarManagerModel{
		CarID:      carID,
		ManagerID:  managerID,
		AssignedAt: at,
	}

	if err := repo.db.WithContext(ctx).Create(assignmentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid car or manager reference")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create manager assignment")
	}

	return toManagerAssignmentDomain(assignmentM), nil
}

// ListManagerAssignmentsByManager returns every assignment of one manager.
func (repo *assignmentRepository) ListManagerAssignmentsByManager(ctx context.Context, managerID uuid.UUID) ([]*entity.CarManagerAssignment, error) {
	var assignmentModels []model.CarManagerModel
	if err := repo.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("assigned_at DESC").
		Find(&assignmentModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	assignments := make([]*entity.CarManagerAssignment, 0, len(assignmentModels))
	for i := range assignmentModels {
		assignments = append(assignments, toManagerAssignmentDomain(&assignmentModels[i]))
	}

	return assignments, nil
}

// --- Mapper Functions ---

func toDriverAssignmentDomain(data *model.CarDriverModel) *entity.CarDriverAssignment {
	if data == nil {
		return nil
	}

	return &entity.CarDriverAssignment{
		ID:           data.ID,
		CarID:        data.CarID,
		DriverID:     data.DriverID,
		AssignedAt:   data.AssignedAt,
		UnassignedAt: data.UnassignedAt,
	}
}

func toManagerAssignmentDomain(data *model.CarManagerModel) *entity.CarManagerAssignment {
	if data == nil {
		return nil
	}

	return &entity.CarManagerAssignment{
		ID:           data.ID,
		CarID:        data.CarID,
		ManagerID:    data.ManagerID,
		AssignedAt:   data.AssignedAt,
		UnassignedAt: data.UnassignedAt,
	}
}
