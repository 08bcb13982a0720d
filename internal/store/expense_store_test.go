package store

import (
	"context"
	"testing"
	"time"

	"drivelink/internal/domain/entity"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseStore_CreateExpense_FoldsIntoBothViews(t *testing.T) {
	ctx := context.Background()
	carID := uuid.New()
	expenseUC := &fakeExpenseUsecase{
		CreateExpenseFn: func(_ context.Context, input usecase.CreateExpenseInput) (*entity.CarExpense, error) {
			return &entity.CarExpense{
				ID:       uuid.New(),
				CarID:    input.CarID,
				Amount:   input.Amount,
				Category: input.Category,
			}, nil
		},
	}
	store := newExpenseStore(expenseUC, newMemorySnapshotStore(), newDiscardLogger())

	entry, err := store.CreateExpense(ctx, usecase.CreateExpenseInput{
		CarID:    carID,
		Amount:   80,
		Category: entity.ExpenseCategoryFuel,
	})

	require.NoError(t, err)
	require.Len(t, store.CarExpenses(carID), 1)
	require.Len(t, store.Recent(), 1)
	assert.Equal(t, entry.ID, store.Recent()[0].ID)
}

func TestExpenseStore_FetchByDateRange(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	expenseUC := &fakeExpenseUsecase{
		GetExpensesByDateRangeFn: func(_ context.Context, gotStart, gotEnd time.Time) ([]*entity.CarExpense, error) {
			assert.Equal(t, start, gotStart)
			assert.Equal(t, end, gotEnd)

			return []*entity.CarExpense{
				{ID: uuid.New(), Amount: 120, ExpenseDate: start.AddDate(0, 0, 5)},
			}, nil
		},
	}
	store := newExpenseStore(expenseUC, newMemorySnapshotStore(), newDiscardLogger())

	entries, err := store.FetchByDateRange(ctx, start, end)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, store.IsLoading())
	// The window result is not folded into the cached views.
	assert.Empty(t, store.Recent())
}

func TestExpenseStore_FetchByDateRange_FailureSetsError(t *testing.T) {
	ctx := context.Background()
	expenseUC := &fakeExpenseUsecase{
		GetExpensesByDateRangeFn: func(context.Context, time.Time, time.Time) ([]*entity.CarExpense, error) {
			return nil, assert.AnError
		},
	}
	store := newExpenseStore(expenseUC, newMemorySnapshotStore(), newDiscardLogger())

	_, err := store.FetchByDateRange(ctx, time.Now().AddDate(0, -1, 0), time.Now())

	require.Error(t, err)
	assert.Equal(t, assert.AnError.Error(), store.Err())
}
