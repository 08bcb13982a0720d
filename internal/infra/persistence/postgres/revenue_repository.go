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

// revenueRepository implements the domain.RevenueRepository interface.
type revenueRepository struct {
	db *gorm.DB
}

// NewRevenueRepository is the constructor for revenueRepository.
func NewRevenueRepository(db *gorm.DB) repository.RevenueRepository {
	return &revenueRepository{db: db}
}

// ListByCar returns a car's revenue entries, newest revenue date first.
func (repo *revenueRepository) ListByCar(ctx context.Context, carID uuid.UUID) ([]*entity.CarRevenue, error) {
	var revenueModels []model.CarRevenueModel
	if err := repo.db.WithContext(ctx).
		Where("car_id = ?", carID).
		Order("revenue_date DESC").
		Find(&revenueModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toRevenueDomainList(revenueModels), nil
}

// FindByID retrieves a single revenue entry.
func (repo *revenueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CarRevenue, error) {
	var revenueM model.CarRevenueModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&revenueM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRevenueNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toRevenueDomain(&revenueM), nil
}

// Create persists a new revenue entry.
func (repo *revenueRepository) Create(ctx context.Context, revenue *entity.CarRevenue) error {
	revenueM := fromRevenueDomain(revenue)

	if err := repo.db.WithContext(ctx).Create(revenueM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCarNotFound.WrapMessage("invalid car reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required revenue information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create revenue entry")
	}

	// Update the entity with generated values
	revenue.ID = revenueM.ID
	revenue.CreatedAt = revenueM.CreatedAt

	return nil
}

// Update applies a patch and returns the row as stored by the server.
func (repo *revenueRepository) Update(ctx context.Context, id uuid.UUID, patch entity.RevenuePatch) (*entity.CarRevenue, error) {
	updates := map[string]any{}
	if patch.Amount != nil {
		updates["amount"] = *patch.Amount
	}
	if patch.Source != nil {
		updates["source"] = string(*patch.Source)
	}
	if patch.RevenueDate != nil {
		updates["revenue_date"] = *patch.RevenueDate
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if patch.TripID != nil {
		updates["trip_id"] = *patch.TripID
	}

	if len(updates) > 0 {
		result := repo.db.WithContext(ctx).
			Model(&model.CarRevenueModel{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update revenue entry")
		}
		if result.RowsAffected == 0 {
			return nil, repository.ErrRevenueNotFound
		}
	}

	return repo.FindByID(ctx, id)
}

// Delete removes the entry permanently.
func (repo *revenueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CarRevenueModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete revenue entry")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRevenueNotFound
	}

	return nil
}

// ListByDateRange returns all revenue entries inside the range, newest first.
func (repo *revenueRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.CarRevenue, error) {
	var revenueModels []model.CarRevenueModel
	if err := repo.db.WithContext(ctx).
		Where("revenue_date >= ? AND revenue_date <= ?", start, end).
		Order("revenue_date DESC").
		Find(&revenueModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toRevenueDomainList(revenueModels), nil
}

// SumByCar computes the server-side SUM(amount) for one car over an optional
// date range.
func (repo *revenueRepository) SumByCar(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (float64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.CarRevenueModel{}).
		Where("car_id = ?", carID)
	if dateRange.Start != nil {
		query = query.Where("revenue_date >= ?", *dateRange.Start)
	}
	if dateRange.End != nil {
		query = query.Where("revenue_date <= ?", *dateRange.End)
	}

	var total float64
	if err := query.
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, errors.WithStack(err)
	}

	return total, nil
}

// ListRecent returns the latest entries across all cars by creation time.
func (repo *revenueRepository) ListRecent(ctx context.Context, limit int) ([]*entity.CarRevenue, error) {
	var revenueModels []model.CarRevenueModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&revenueModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toRevenueDomainList(revenueModels), nil
}

// --- Mapper Functions ---

func toRevenueDomain(data *model.CarRevenueModel) *entity.CarRevenue {
	if data == nil {
		return nil
	}

	return &entity.CarRevenue{
		ID:          data.ID,
		CarID:       data.CarID,
		Amount:      data.Amount,
		Source:      entity.RevenueSource(data.Source),
		RevenueDate: data.RevenueDate,
		Notes:       data.Notes,
		TripID:      data.TripID,
		CreatedAt:   data.CreatedAt,
		CreatedBy:   data.CreatedBy,
	}
}

func toRevenueDomainList(revenueModels []model.CarRevenueModel) []*entity.CarRevenue {
	revenues := make([]*entity.CarRevenue, 0, len(revenueModels))
	for i := range revenueModels {
		revenues = append(revenues, toRevenueDomain(&revenueModels[i]))
	}

	return revenues
}

func fromRevenueDomain(data *entity.CarRevenue) *model.CarRevenueModel {
	if data == nil {
		return nil
	}

	return &model.CarRevenueModel{
		ID:          data.ID,
		CarID:       data.CarID,
		Amount:      data.Amount,
		Source:      string(data.Source),
		RevenueDate: data.RevenueDate,
		Notes:       data.Notes,
		TripID:      data.TripID,
		CreatedBy:   data.CreatedBy,
	}
}
