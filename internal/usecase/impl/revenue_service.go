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
	"golang.org/x/sync/errgroup"
)

// revenueService implements the RevenueUsecase interface.
type revenueService struct {
	revenueRepo repository.RevenueRepository
	expenseRepo repository.ExpenseRepository
	logger      *slog.Logger
}

// RevenueServiceParams holds dependencies for revenueService, injected by Fx.
type RevenueServiceParams struct {
	fx.In

	RevenueRepo repository.RevenueRepository
	ExpenseRepo repository.ExpenseRepository
	Logger      *slog.Logger
}

// NewRevenueService is the constructor for revenueService.
func NewRevenueService(params RevenueServiceParams) usecase.RevenueUsecase {
	return &revenueService{
		revenueRepo: params.RevenueRepo,
		expenseRepo: params.ExpenseRepo,
		logger:      params.Logger,
	}
}

func (srv *revenueService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCarRevenue returns a car's revenue entries, newest first.
func (srv *revenueService) GetCarRevenue(ctx context.Context, carID uuid.UUID) ([]*entity.CarRevenue, error) {
	revenues, err := srv.revenueRepo.ListByCar(ctx, carID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list car revenue")
	}

	return revenues, nil
}

// GetRevenueByID retrieves a single revenue entry.
func (srv *revenueService) GetRevenueByID(ctx context.Context, id uuid.UUID) (*entity.CarRevenue, error) {
	revenue, err := srv.revenueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find revenue entry")
	}

	return revenue, nil
}

// CreateRevenue logs a new revenue entry against a car.
func (srv *revenueService) CreateRevenue(ctx context.Context, input usecase.CreateRevenueInput) (*entity.CarRevenue, error) {
	srv.log(ctx).Info("Creating revenue entry", slog.Any("carID", input.CarID), slog.Float64("amount", input.Amount))

	revenue := &entity.CarRevenue{
		CarID:       input.CarID,
		Amount:      input.Amount,
		Source:      input.Source,
		RevenueDate: input.RevenueDate,
		Notes:       input.Notes,
		TripID:      input.TripID,
		CreatedBy:   input.CreatedBy,
	}
	if revenue.RevenueDate.IsZero() {
		revenue.RevenueDate = time.Now()
	}

	if err := srv.revenueRepo.Create(ctx, revenue); err != nil {
		srv.log(ctx).Error("Failed to create revenue entry", slog.Any("carID", input.CarID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create revenue entry")
	}

	return revenue, nil
}

// UpdateRevenue applies a patch and returns the stored row.
func (srv *revenueService) UpdateRevenue(ctx context.Context, id uuid.UUID, patch entity.RevenuePatch) (*entity.CarRevenue, error) {
	revenue, err := srv.revenueRepo.Update(ctx, id, patch)
	if err != nil {
		srv.log(ctx).Error("Failed to update revenue entry", slog.Any("revenueID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update revenue entry")
	}

	return revenue, nil
}

// DeleteRevenue removes a revenue entry permanently.
func (srv *revenueService) DeleteRevenue(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting revenue entry", slog.Any("revenueID", id))

	if err := srv.revenueRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete revenue entry")
	}

	return nil
}

// GetRevenueByDateRange returns all revenue entries inside the range.
func (srv *revenueService) GetRevenueByDateRange(ctx context.Context, start, end time.Time) ([]*entity.CarRevenue, error) {
	revenues, err := srv.revenueRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list revenue by date range")
	}

	return revenues, nil
}

// GetTotalRevenue computes the server-side sum for one car.
func (srv *revenueService) GetTotalRevenue(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (float64, error) {
	total, err := srv.revenueRepo.SumByCar(ctx, carID, dateRange)
	if err != nil {
		return 0, errors.Wrap(err, "failed to sum revenue")
	}

	return total, nil
}

// GetRecentRevenue returns the latest entries across all cars.
func (srv *revenueService) GetRecentRevenue(ctx context.Context, limit int) ([]*entity.CarRevenue, error) {
	revenues, err := srv.revenueRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent revenue")
	}

	return revenues, nil
}

// GetProfitLoss derives the financial summary for one car. The two aggregate
// sums run in parallel; profit and margin are computed from the results.
func (srv *revenueService) GetProfitLoss(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (*entity.ProfitLoss, error) {
	var totalRevenue, totalExpenses float64

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		totalRevenue, err = srv.revenueRepo.SumByCar(groupCtx, carID, dateRange)

		return errors.Wrap(err, "failed to sum revenue")
	})
	group.Go(func() error {
		var err error
		totalExpenses, err = srv.expenseRepo.SumByCar(groupCtx, carID, dateRange)

		return errors.Wrap(err, "failed to sum expenses")
	})
	if err := group.Wait(); err != nil {
		srv.log(ctx).Error("Failed to compute profit/loss", slog.Any("carID", carID), slog.Any("error", err))

		return nil, err
	}

	profitLoss := entity.NewProfitLoss(totalRevenue, totalExpenses)

	return &profitLoss, nil
}
