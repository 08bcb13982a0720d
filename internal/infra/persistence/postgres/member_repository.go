package postgres

import (
	"context"
	"time"

	"drivelink/internal/domain/entity"
	domainerrors "drivelink/internal/domain/errors"
	"drivelink/internal/domain/repository"
	"drivelink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// memberRepository implements the domain.MemberRepository interface covering
// the owners, managers, and drivers role record tables.
type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository is the constructor for memberRepository.
func NewMemberRepository(db *gorm.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

// CreateOwner inserts an owner record for a user.
func (repo *memberRepository) CreateOwner(ctx context.Context, userID uuid.UUID) (*entity.OwnerRecord, error) {
	ownerM := &model.OwnerModel{UserID: userID}

	if err := repo.db.WithContext(ctx).Create(ownerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return nil, domainerrors.ErrConflict.WrapMessage("owner record already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid user reference")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create owner record")
	}

	return toOwnerDomain(ownerM), nil
}

// CreateManager inserts a manager record for a user.
func (repo *memberRepository) CreateManager(ctx context.Context, userID uuid.UUID) (*entity.ManagerRecord, error) {
	managerM := &model.ManagerModel{UserID: userID}

	if err := repo.db.WithContext(ctx).Create(managerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return nil, domainerrors.ErrConflict.WrapMessage("manager record already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid user reference")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create manager record")
	}

	return toManagerDomain(managerM), nil
}

// CreateDriver inserts a driver record for a user.
func (repo *memberRepository) CreateDriver(ctx context.Context, userID uuid.UUID) (*entity.DriverRecord, error) {
	driverM := &model.DriverModel{UserID: userID}

	if err := repo.db.WithContext(ctx).Create(driverM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return nil, domainerrors.ErrConflict.WrapMessage("driver record already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid user reference")
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create driver record")
	}

	return toDriverDomain(driverM), nil
}

// FindOwnerByUserID retrieves the owner record linked to a user.
func (repo *memberRepository) FindOwnerByUserID(ctx context.Context, userID uuid.UUID) (*entity.OwnerRecord, error) {
	var ownerM model.OwnerModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&ownerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOwnerRecordNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toOwnerDomain(&ownerM), nil
}

// FindManagerByUserID retrieves the manager record linked to a user.
func (repo *memberRepository) FindManagerByUserID(ctx context.Context, userID uuid.UUID) (*entity.ManagerRecord, error) {
	var managerM model.ManagerModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&managerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrManagerRecordNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toManagerDomain(&managerM), nil
}

// FindDriverByUserID retrieves the driver record linked to a user.
func (repo *memberRepository) FindDriverByUserID(ctx context.Context, userID uuid.UUID) (*entity.DriverRecord, error) {
	var driverM model.DriverModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&driverM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDriverRecordNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toDriverDomain(&driverM), nil
}

// ListOwners returns every owner record, newest first.
func (repo *memberRepository) ListOwners(ctx context.Context) ([]*entity.OwnerRecord, error) {
	var ownerModels []model.OwnerModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&ownerModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	owners := make([]*entity.OwnerRecord, 0, len(ownerModels))
	for i := range ownerModels {
		owners = append(owners, toOwnerDomain(&ownerModels[i]))
	}

	return owners, nil
}

// ListManagers returns every manager record, newest first.
func (repo *memberRepository) ListManagers(ctx context.Context) ([]*entity.ManagerRecord, error) {
	var managerModels []model.ManagerModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&managerModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	managers := make([]*entity.ManagerRecord, 0, len(managerModels))
	for i := range managerModels {
		managers = append(managers, toManagerDomain(&managerModels[i]))
	}

	return managers, nil
}

// ListDrivers returns every driver record, newest first.
func (repo *memberRepository) ListDrivers(ctx context.Context) ([]*entity.DriverRecord, error) {
	var driverModels []model.DriverModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&driverModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	drivers := make([]*entity.DriverRecord, 0, len(driverModels))
	for i := range driverModels {
		drivers = append(drivers, toDriverDomain(&driverModels[i]))
	}

	return drivers, nil
}

// UpdateDriverLocation stores the driver's last reported position.
func (repo *memberRepository) UpdateDriverLocation(ctx context.Context, driverID uuid.UUID, position orb.Point, reportedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.DriverModel{}).
		Where("id = ?", driverID).
		Updates(map[string]any{
			"longitude":  position.Lon(),
			"latitude":   position.Lat(),
			"located_at": reportedAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update driver location")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDriverRecordNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toOwnerDomain(data *model.OwnerModel) *entity.OwnerRecord {
	if data == nil {
		return nil
	}

	return &entity.OwnerRecord{
		ID:        data.ID,
		UserID:    data.UserID,
		CreatedAt: data.CreatedAt,
	}
}

func toManagerDomain(data *model.ManagerModel) *entity.ManagerRecord {
	if data == nil {
		return nil
	}

	return &entity.ManagerRecord{
		ID:        data.ID,
		UserID:    data.UserID,
		CreatedAt: data.CreatedAt,
	}
}

func toDriverDomain(data *model.DriverModel) *entity.DriverRecord {
	if data == nil {
		return nil
	}

	driver := &entity.DriverRecord{
		ID:        data.ID,
		UserID:    data.UserID,
		LocatedAt: data.LocatedAt,
		CreatedAt: data.CreatedAt,
	}
	if data.Longitude != nil && data.Latitude != nil {
		point := orb.Point{*data.Longitude, *data.Latitude}
		driver.Geolocation = &point
	}

	return driver
}
