package usecase

import (
	"context"
	"time"

	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/repository"

	"github.com/google/uuid"
)

// CreateRevenueInput defines the data required to log a revenue entry.
type CreateRevenueInput struct {
	CarID       uuid.UUID
	Amount      float64
	Source      entity.RevenueSource
	RevenueDate time.Time
	Notes       string
	TripID      string
	CreatedBy   uuid.UUID
}

// CreateExpenseInput defines the data required to log an expense entry.
type CreateExpenseInput struct {
	CarID       uuid.UUID
	Amount      float64
	Category    entity.ExpenseCategory
	ExpenseDate time.Time
	Description string
	ReceiptURL  string
	CreatedBy   uuid.UUID
}

// RevenueUsecase defines the interface for car revenue operations.
type RevenueUsecase interface {
	GetCarRevenue(ctx context.Context, carID uuid.UUID) ([]*entity.CarRevenue, error)
	GetRevenueByID(ctx context.Context, id uuid.UUID) (*entity.CarRevenue, error)
	CreateRevenue(ctx context.Context, input CreateRevenueInput) (*entity.CarRevenue, error)
	UpdateRevenue(ctx context.Context, id uuid.UUID, patch entity.RevenuePatch) (*entity.CarRevenue, error)
	DeleteRevenue(ctx context.Context, id uuid.UUID) error
	GetRevenueByDateRange(ctx context.Context, start, end time.Time) ([]*entity.CarRevenue, error)

	// GetTotalRevenue computes the server-side sum for one car over an
	// optional date range.
	GetTotalRevenue(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (float64, error)

	// GetRecentRevenue returns the latest entries across all cars.
	GetRecentRevenue(ctx context.Context, limit int) ([]*entity.CarRevenue, error)

	// GetProfitLoss derives the financial summary for one car: both aggregate
	// sums, profit, and margin.
	GetProfitLoss(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (*entity.ProfitLoss, error)
}

// ExpenseUsecase defines the interface for car expense operations.
type ExpenseUsecase interface {
	GetCarExpenses(ctx context.Context, carID uuid.UUID) ([]*entity.CarExpense, error)
	GetExpenseByID(ctx context.Context, id uuid.UUID) (*entity.CarExpense, error)
	CreateExpense(ctx context.Context, input CreateExpenseInput) (*entity.CarExpense, error)
	UpdateExpense(ctx context.Context, id uuid.UUID, patch entity.ExpensePatch) (*entity.CarExpense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
	GetExpensesByDateRange(ctx context.Context, start, end time.Time) ([]*entity.CarExpense, error)
	GetTotalExpenses(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (float64, error)
	GetRecentExpenses(ctx context.Context, limit int) ([]*entity.CarExpense, error)
}
