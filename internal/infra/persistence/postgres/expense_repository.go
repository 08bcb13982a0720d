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

// expenseRepository implements the domain.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository is the constructor for expenseRepository.
func NewExpenseRepository(db *gorm.DB) repository.ExpenseRepository {
	return &expenseRepository{db: db}
}

// ListByCar returns a car's expense entries, newest expense date first.
func (repo *expenseRepository) ListByCar(ctx context.Context, carID uuid.UUID) ([]*entity.CarExpense, error) {
	var expenseModels []model.CarExpenseModel
	if err := repo.db.WithContext(ctx).
		Where("car_id = ?", carID).
		Order("expense_date DESC").
		Find(&expenseModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toExpenseDomainList(expenseModels), nil
}

// FindByID retrieves a single expense entry.
func (repo *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CarExpense, error) {
	var expenseM model.CarExpenseModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&expenseM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrExpenseNotFound
		}

		return nil, errors.WithStack(err)
	}

	return toExpenseDomain(&expenseM), nil
}

// Create persists a new expense entry.
func (repo *expenseRepository) Create(ctx context.Context, expense *entity.CarExpense) error {
	expenseM := fromExpenseDomain(expense)

	if err := repo.db.WithContext(ctx).Create(expenseM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCarNotFound.WrapMessage("invalid car reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required expense information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create expense entry")
	}

	// Update the entity with generated values
	expense.ID = expenseM.ID
	expense.CreatedAt = expenseM.CreatedAt

	return nil
}

// Update applies a patch and returns the row as stored by the server.
func (repo *expenseRepository) Update(ctx context.Context, id uuid.UUID, patch entity.ExpensePatch) (*entity.CarExpense, error) {
	updates := map[string]any{}
	if patch.Amount != nil {
		updates["amount"] = *patch.Amount
	}
	if patch.Category != nil {
		updates["category"] = string(*patch.Category)
	}
	if patch.ExpenseDate != nil {
		updates["expense_date"] = *patch.ExpenseDate
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.ReceiptURL != nil {
		updates["receipt_url"] = *patch.ReceiptURL
	}

	if len(updates) > 0 {
		result := repo.db.WithContext(ctx).
			Model(&model.CarExpenseModel{}).
			Where("id = ?", id).
			Updates(updates)
		if result.Error != nil {
			return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update expense entry")
		}
		if result.RowsAffected == 0 {
			return nil, repository.ErrExpenseNotFound
		}
	}

	return repo.FindByID(ctx, id)
}

// Delete removes the entry permanently.
func (repo *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CarExpenseModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete expense entry")
	}
	if result.RowsAffected == 0 {
		return repository.ErrExpenseNotFound
	}

	return nil
}

// ListByDateRange returns all expense entries inside the range, newest first.
func (repo *expenseRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.CarExpense, error) {
	var expenseModels []model.CarExpenseModel
	if err := repo.db.WithContext(ctx).
		Where("expense_date >= ? AND expense_date <= ?", start, end).
		Order("expense_date DESC").
		Find(&expenseModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toExpenseDomainList(expenseModels), nil
}

// SumByCar computes the server-side SUM(amount) for one car over an optional
// date range.
func (repo *expenseRepository) SumByCar(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (float64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.CarExpenseModel{}).
		Where("car_id = ?", carID)
	if dateRange.Start != nil {
		query = query.Where("expense_date >= ?", *dateRange.Start)
	}
	if dateRange.End != nil {
		query = query.Where("expense_date <= ?", *dateRange.End)
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
func (repo *expenseRepository) ListRecent(ctx context.Context, limit int) ([]*entity.CarExpense, error) {
	var expenseModels []model.CarExpenseModel
	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&expenseModels).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return toExpenseDomainList(expenseModels), nil
}

// --- Mapper Functions ---

func toExpenseDomain(data *model.CarExpenseModel) *entity.CarExpense {
	if data == nil {
		return nil
	}

	return &entity.CarExpense{
		ID:          data.ID,
		CarID:       data.CarID,
		Amount:      data.Amount,
		Category:    entity.ExpenseCategory(data.Category),
		ExpenseDate: data.ExpenseDate,
		Description: data.Description,
		ReceiptURL:  data.ReceiptURL,
		CreatedAt:   data.CreatedAt,
		CreatedBy:   data.CreatedBy,
	}
}

func toExpenseDomainList(expenseModels []model.CarExpenseModel) []*entity.CarExpense {
	expenses := make([]*entity.CarExpense, 0, len(expenseModels))
	for i := range expenseModels {
		expenses = append(expenses, toExpenseDomain(&expenseModels[i]))
	}

	return expenses
}

func fromExpenseDomain(data *entity.CarExpense) *model.CarExpenseModel {
	if data == nil {
		return nil
	}

	return &model.CarExpenseModel{
		ID:          data.ID,
		CarID:       data.CarID,
		Amount:      data.Amount,
		Category:    string(data.Category),
		ExpenseDate: data.ExpenseDate,
		Description: data.Description,
		ReceiptURL:  data.ReceiptURL,
		CreatedBy:   data.CreatedBy,
	}
}
