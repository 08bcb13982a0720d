package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "drivelink/internal/delivery/context"
	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/repository"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// expenseService implements the ExpenseUsecase interface.
type expenseService struct {
	expenseRepo repository.ExpenseRepository
	logger      *slog.Logger
}

// ExpenseServiceParams holds dependencies for expenseService, injected by Fx.
type ExpenseServiceParams struct {
	fx.In

	ExpenseRepo repository.ExpenseRepository
	Logger      *slog.Logger
}

// NewExpenseService is the constructor for expenseService.
func NewExpenseService(params ExpenseServiceParams) usecase.ExpenseUsecase {
	return &expenseService{
		expenseRepo: params.ExpenseRepo,
		logger:      params.Logger,
	}
}

func (srv *expenseService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCarExpenses returns a car's expense entries, newest first.
func (srv *expenseService) GetCarExpenses(ctx context.Context, carID uuid.UUID) ([]*entity.CarExpense, error) {
	expenses, err := srv.expenseRepo.ListByCar(ctx, carID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list car expenses")
	}

	return expenses, nil
}

// GetExpenseByID retrieves a single expense entry.
func (srv *expenseService) GetExpenseByID(ctx context.Context, id uuid.UUID) (*entity.CarExpense, error) {
	expense, err := srv.expenseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find expense entry")
	}

	return expense, nil
}

// CreateExpense logs a new expense entry against a car.
func (srv *expenseService) CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (*entity.CarExpense, error) {
	srv.log(ctx).Info("Creating expense entry", slog.Any("carID", input.CarID), slog.Float64("amount", input.Amount))

	expense := &entity.CarExpense{
		CarID:       input.CarID,
		Amount:      input.Amount,
		Category:    input.Category,
		ExpenseDate: input.ExpenseDate,
		Description: input.Description,
		ReceiptURL:  input.ReceiptURL,
		CreatedBy:   input.CreatedBy,
	}
	if expense.ExpenseDate.IsZero() {
		expense.ExpenseDate = time.Now()
	}

	if err := srv.expenseRepo.Create(ctx, expense); err != nil {
		srv.log(ctx).Error("Failed to create expense entry", slog.Any("carID", input.CarID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create expense entry")
	}

	return expense, nil
}

// UpdateExpense applies a patch and returns the stored row.
func (srv *expenseService) UpdateExpense(ctx context.Context, id uuid.UUID, patch entity.ExpensePatch) (*entity.CarExpense, error) {
	expense, err := srv.expenseRepo.Update(ctx, id, patch)
	if err != nil {
		srv.log(ctx).Error("Failed to update expense entry", slog.Any("expenseID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update expense entry")
	}

	return expense, nil
}

// DeleteExpense removes an expense entry permanently.
func (srv *expenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting expense entry", slog.Any("expenseID", id))

	if err := srv.expenseRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete expense entry")
	}

	return nil
}

// GetExpensesByDateRange returns all expense entries inside the range.
func (srv *expenseService) GetExpensesByDateRange(ctx context.Context, start, end time.Time) ([]*entity.CarExpense, error) {
	expenses, err := srv.expenseRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list expenses by date range")
	}

	return expenses, nil
}

// GetTotalExpenses computes the server-side sum for one car.
func (srv *expenseService) GetTotalExpenses(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (float64, error) {
	total, err := srv.expenseRepo.SumByCar(ctx, carID, dateRange)
	if err != nil {
		return 0, errors.Wrap(err, "failed to sum expenses")
	}

	return total, nil
}

// GetRecentExpenses returns the latest entries across all cars.
func (srv *expenseService) GetRecentExpenses(ctx context.Context, limit int) ([]*entity.CarExpense, error) {
	expenses, err := srv.expenseRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent expenses")
	}

	return expenses, nil
}
