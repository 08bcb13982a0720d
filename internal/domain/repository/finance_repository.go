package repository

import (
	"context"
	"errors"
	"time"

	"drivelink/internal/domain/entity"

	"github.com/google/uuid"
)

// Not-found sentinels for the finance tables.
var (
	ErrRevenueNotFound = errors.New("revenue entry not found")
	ErrExpenseNotFound = errors.New("expense entry not found")
)

// DateRange bounds an aggregate query. Nil endpoints leave that side open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// RevenueRepository defines the operations for car revenue persistence.
type RevenueRepository interface {
	// ListByCar returns a car's revenue entries, newest revenue date first.
	ListByCar(ctx context.Context, carID uuid.UUID) ([]*entity.CarRevenue, error)

	// FindByID retrieves a single revenue entry.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CarRevenue, error)

	// Create persists a new revenue entry.
	Create(ctx context.Context, revenue *entity.CarRevenue) error

	// Update applies a patch and returns the row as stored by the server.
	Update(ctx context.Context, id uuid.UUID, patch entity.RevenuePatch) (*entity.CarRevenue, error)

	// Delete removes the entry permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByDateRange returns all revenue entries inside the range, newest first.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.CarRevenue, error)

	// SumByCar computes the server-side SUM(amount) for one car over an
	// optional date range.
	SumByCar(ctx context.Context, carID uuid.UUID, dateRange DateRange) (float64, error)

	// ListRecent returns the latest entries across all cars by creation time.
	ListRecent(ctx context.Context, limit int) ([]*entity.CarRevenue, error)
}

// ExpenseRepository defines the operations for car expense persistence.
type ExpenseRepository interface {
	ListByCar(ctx context.Context, carID uuid.UUID) ([]*entity.CarExpense, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CarExpense, error)
	Create(ctx context.Context, expense *entity.CarExpense) error
	Update(ctx context.Context, id uuid.UUID, patch entity.ExpensePatch) (*entity.CarExpense, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.CarExpense, error)
	SumByCar(ctx context.Context, carID uuid.UUID, dateRange DateRange) (float64, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.CarExpense, error)
}
