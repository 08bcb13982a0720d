package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/repository"
	"drivelink/internal/domain/service"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevenueStore_CreateRevenue_FoldsIntoBothViews(t *testing.T) {
	ctx := context.Background()
	carID := uuid.New()
	revenueUC := &fakeRevenueUsecase{
		CreateRevenueFn: func(_ context.Context, input usecase.CreateRevenueInput) (*entity.CarRevenue, error) {
			return &entity.CarRevenue{
				ID:     uuid.New(),
				CarID:  input.CarID,
				Amount: input.Amount,
				Source: input.Source,
			}, nil
		},
	}
	store := newRevenueStore(revenueUC, newMemorySnapshotStore(), newDiscardLogger())

	entry, err := store.CreateRevenue(ctx, usecase.CreateRevenueInput{
		CarID:  carID,
		Amount: 250,
		Source: entity.RevenueSourceRide,
	})

	require.NoError(t, err)
	require.Len(t, store.CarRevenue(carID), 1)
	require.Len(t, store.Recent(), 1)
	assert.Equal(t, entry.ID, store.Recent()[0].ID)
}

func TestRevenueStore_RecentIsCappedNewestFirst(t *testing.T) {
	ctx := context.Background()
	carID := uuid.New()
	counter := 0
	revenueUC := &fakeRevenueUsecase{
		CreateRevenueFn: func(_ context.Context, input usecase.CreateRevenueInput) (*entity.CarRevenue, error) {
			counter++

			return &entity.CarRevenue{
				ID:     uuid.New(),
				CarID:  input.CarID,
				Amount: input.Amount,
				Notes:  fmt.Sprintf("entry-%d", counter),
			}, nil
		},
	}
	store := newRevenueStore(revenueUC, newMemorySnapshotStore(), newDiscardLogger())

	for i := 0; i < recentEntryCap+5; i++ {
		_, err := store.CreateRevenue(ctx, usecase.CreateRevenueInput{CarID: carID, Amount: float64(i)})
		require.NoError(t, err)
	}

	recent := store.Recent()
	require.Len(t, recent, recentEntryCap)
	assert.Equal(t, "entry-15", recent[0].Notes)
	assert.Equal(t, "entry-6", recent[recentEntryCap-1].Notes)

	// The per-car view keeps everything.
	assert.Len(t, store.CarRevenue(carID), recentEntryCap+5)
}

func TestRevenueStore_CreateInvalidatesCachedTotal(t *testing.T) {
	ctx := context.Background()
	carID := uuid.New()
	revenueUC := &fakeRevenueUsecase{
		GetTotalRevenueFn: func(context.Context, uuid.UUID, repository.DateRange) (float64, error) {
			return 1200, nil
		},
		CreateRevenueFn: func(_ context.Context, input usecase.CreateRevenueInput) (*entity.CarRevenue, error) {
			return &entity.CarRevenue{ID: uuid.New(), CarID: input.CarID, Amount: input.Amount}, nil
		},
	}
	store := newRevenueStore(revenueUC, newMemorySnapshotStore(), newDiscardLogger())

	total, err := store.FetchTotal(ctx, carID, repository.DateRange{})
	require.NoError(t, err)
	assert.InDelta(t, 1200.0, total, 0.001)

	cached, ok := store.CachedTotal(carID)
	require.True(t, ok)
	assert.InDelta(t, 1200.0, cached, 0.001)

	_, err = store.CreateRevenue(ctx, usecase.CreateRevenueInput{CarID: carID, Amount: 50})
	require.NoError(t, err)

	_, ok = store.CachedTotal(carID)
	assert.False(t, ok)
}

func TestRevenueStore_DeleteRemovesFromAllViews(t *testing.T) {
	ctx := context.Background()
	carID := uuid.New()
	entryID := uuid.New()
	revenueUC := &fakeRevenueUsecase{
		CreateRevenueFn: func(_ context.Context, input usecase.CreateRevenueInput) (*entity.CarRevenue, error) {
			return &entity.CarRevenue{ID: entryID, CarID: input.CarID, Amount: input.Amount}, nil
		},
		DeleteRevenueFn: func(context.Context, uuid.UUID) error {
			return nil
		},
	}
	store := newRevenueStore(revenueUC, newMemorySnapshotStore(), newDiscardLogger())

	_, err := store.CreateRevenue(ctx, usecase.CreateRevenueInput{CarID: carID, Amount: 75})
	require.NoError(t, err)

	require.NoError(t, store.DeleteRevenue(ctx, entryID))

	assert.Empty(t, store.CarRevenue(carID))
	assert.Empty(t, store.Recent())
}

func TestRevenueStore_FailureSetsErrorAndKeepsCache(t *testing.T) {
	ctx := context.Background()
	carID := uuid.New()
	revenueUC := &fakeRevenueUsecase{
		CreateRevenueFn: func(_ context.Context, input usecase.CreateRevenueInput) (*entity.CarRevenue, error) {
			if input.Amount < 0 {
				return nil, assert.AnError
			}

			return &entity.CarRevenue{ID: uuid.New(), CarID: input.CarID, Amount: input.Amount}, nil
		},
	}
	store := newRevenueStore(revenueUC, newMemorySnapshotStore(), newDiscardLogger())

	_, err := store.CreateRevenue(ctx, usecase.CreateRevenueInput{CarID: carID, Amount: 75})
	require.NoError(t, err)

	_, err = store.CreateRevenue(ctx, usecase.CreateRevenueInput{CarID: carID, Amount: -1})
	require.Error(t, err)

	assert.Equal(t, assert.AnError.Error(), store.Err())
	assert.Len(t, store.CarRevenue(carID), 1)
}

func TestRevenueStore_HydrateTrimsOversizedRecent(t *testing.T) {
	ctx := context.Background()
	snapshots := newMemorySnapshotStore()

	oversized := make([]entity.CarRevenue, 0, recentEntryCap+3)
	for i := 0; i < recentEntryCap+3; i++ {
		oversized = append(oversized, entity.CarRevenue{
			ID:          uuid.New(),
			CarID:       uuid.New(),
			Amount:      float64(i),
			RevenueDate: time.Now(),
		})
	}
	require.NoError(t, saveSnapshot(ctx, snapshots, service.SnapshotRevenue, revenueState{
		ByCar:  map[uuid.UUID][]entity.CarRevenue{},
		Recent: oversized,
	}))

	store := newRevenueStore(&fakeRevenueUsecase{}, snapshots, newDiscardLogger())
	require.NoError(t, store.Hydrate(ctx))

	assert.Len(t, store.Recent(), recentEntryCap)
}

func TestRevenueStore_FetchByDateRange(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	revenueUC := &fakeRevenueUsecase{
		GetRevenueByDateRangeFn: func(_ context.Context, gotStart, gotEnd time.Time) ([]*entity.CarRevenue, error) {
			assert.Equal(t, start, gotStart)
			assert.Equal(t, end, gotEnd)

			return []*entity.CarRevenue{
				{ID: uuid.New(), Amount: 300, RevenueDate: start.AddDate(0, 0, 10)},
				{ID: uuid.New(), Amount: 150, RevenueDate: start.AddDate(0, 0, 3)},
			}, nil
		},
	}
	store := newRevenueStore(revenueUC, newMemorySnapshotStore(), newDiscardLogger())

	entries, err := store.FetchByDateRange(ctx, start, end)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, store.IsLoading())
	// The window result is not folded into the cached views.
	assert.Empty(t, store.Recent())
}

func TestRevenueStore_ProfitLossPassthrough(t *testing.T) {
	ctx := context.Background()
	carID := uuid.New()
	revenueUC := &fakeRevenueUsecase{
		GetProfitLossFn: func(context.Context, uuid.UUID, repository.DateRange) (*entity.ProfitLoss, error) {
			summary := entity.NewProfitLoss(1000, 400)

			return &summary, nil
		},
	}
	store := newRevenueStore(revenueUC, newMemorySnapshotStore(), newDiscardLogger())

	summary, err := store.ProfitLoss(ctx, carID, repository.DateRange{})

	require.NoError(t, err)
	assert.InDelta(t, 600.0, summary.Profit, 0.001)
	assert.InDelta(t, 60.0, summary.ProfitMargin, 0.001)
	assert.False(t, store.IsLoading())
}
