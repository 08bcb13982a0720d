package postgres

import (
	"context"

	"drivelink/internal/domain/entity"
	domainerrors "drivelink/internal/domain/errors"
	"drivelink/internal/domain/repository"
	"drivelink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// carRepository implements the domain.CarRepository interface.
type carRepository struct {
	db *gorm.DB
}

// NewCarRepository is the constructor for carRepository.
func NewCarRepository(db *gorm.DB) repository.CarRepository {
	return &carRepository{db: db}
}

// ListAll returns every car, newest first.
func (repo *carRepository) ListAll(ctx context.Context) ([]*entity.Car, error) {
	var carModels []model.CarModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&carModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toCarDomainList(carModels), nil
}

// FindByID retrieves a single car by its unique ID.
func (repo *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	var carM model.CarModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&carM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCarNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toCarDomain(&carM), nil
}

// ListByOwner returns the cars owned by one owner record, newest first.
func (repo *carRepository) ListByOwner(ctx context.Context, ownerRecordID uuid.UUID) ([]*entity.Car, error) {
	var carModels []model.CarModel
	if err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerRecordID).
		Order("created_at DESC").
		Find(&carModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toCarDomainList(carModels), nil
}

// ListByStatus returns the cars currently in the given status, newest first.
func (repo *carRepository) ListByStatus(ctx context.Context, status entity.CarStatus) ([]*entity.Car, error) {
	var carModels []model.CarModel
	if err := repo.db.WithContext(ctx).
		Where("status = ?", status.String()).
		Order("created_at DESC").
		Find(&carModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toCarDomainList(carModels), nil
}

// Create persists a new car row.
func (repo *carRepository) Create(ctx context.Context, car *entity.Car) error {
	carM := fromCarDomain(car)

	if err := repo.db.WithContext(ctx).Create(carM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrPlateAlreadyRegistered.WrapMessage("plate number already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOwnerRecordNotFound.WrapMessage("invalid owner reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required car information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create car")
	}

	// Update the entity with generated values
	car.ID = carM.ID
	car.CreatedAt = carM.CreatedAt
	if car.Status == "" {
		car.Status = entity.CarStatus(carM.Status)
	}

	return nil
}

// Update applies a patch and returns the row as stored by the server.
func (repo *carRepository) Update(ctx context.Context, id uuid.UUID, patch entity.CarPatch) (*entity.Car, error) {
	updates := map[string]any{}
	if patch.PlateNo != nil {
		updates["plate_no"] = *patch.PlateNo
	}
	if patch.LibreNo != nil {
		updates["libre_no"] = *patch.LibreNo
	}
	if patch.Model != nil {
		updates["model"] = *patch.Model
	}
	if patch.Year != nil {
		updates["year"] = *patch.Year
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if patch.FuelType != nil {
		updates["fuel_type"] = *patch.FuelType
	}
	if patch.Status != nil {
		updates["status"] = patch.Status.String()
	}

	if len(updates) > 0 {
		result := repo.db.WithContext(ctx).
			Model(&model.CarModel{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			if isUniqueConstraintViolation(result.Error) {
				return nil, domainerrors.ErrPlateAlreadyRegistered.WrapMessage("plate number already exists")
			}

			return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update car")
		}
		if result.RowsAffected == 0 {
			return nil, repository.ErrCarNotFound
		}
	}

	return repo.FindByID(ctx, id)
}

// Delete removes the car row permanently.
func (repo *carRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CarModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete car")
	}

	// If no rows were affected, the car was not found.
	if result.RowsAffected == 0 {
		return repository.ErrCarNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCarDomain converts a GORM CarModel to a domain Car entity.
func toCarDomain(data *model.CarModel) *entity.Car {
	if data == nil {
		return nil
	}

	return &entity.Car{
		ID:        data.ID,
		PlateNo:   data.PlateNo,
		LibreNo:   data.LibreNo,
		OwnerID:   data.OwnerID,
		Model:     data.Model,
		Year:      data.Year,
		Color:     data.Color,
		FuelType:  data.FuelType,
		Status:    entity.CarStatus(data.Status),
		CreatedAt: data.CreatedAt,
	}
}

func toCarDomainList(carModels []model.CarModel) []*entity.Car {
	cars := make([]*entity.Car, 0, len(carModels))
	for i := range carModels {
		cars = append(cars, toCarDomain(&carModels[i]))
	}

	return cars
}

// fromCarDomain converts a domain Car entity to a GORM CarModel.
func fromCarDomain(data *entity.Car) *model.CarModel {
	if data == nil {
		return nil
	}

	return &model.CarModel{
		ID:       data.ID,
		PlateNo:  data.PlateNo,
		LibreNo:  data.LibreNo,
		OwnerID:  data.OwnerID,
		Model:    data.Model,
		Year:     data.Year,
		Color:    data.Color,
		FuelType: data.FuelType,
		Status:   data.Status.String(),
	}
}
