package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/service"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFleet(now time.Time) []*entity.Car {
	return []*entity.Car{
		{ID: uuid.New(), PlateNo: "AA-11111", Status: entity.CarStatusAvailable, CreatedAt: now.Add(-3 * time.Hour)},
		{ID: uuid.New(), PlateNo: "AA-22222", Status: entity.CarStatusActive, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: uuid.New(), PlateNo: "AA-33333", Status: entity.CarStatusAvailable, CreatedAt: now.Add(-time.Hour)},
	}
}

func TestCarStore_FetchCars_ViewsAreComputedFromTheMap(t *testing.T) {
	ctx := context.Background()
	fleet := testFleet(time.Now())
	carUC := &fakeCarUsecase{
		GetAllCarsFn: func(context.Context) ([]*entity.Car, error) {
			return fleet, nil
		},
	}
	store := newCarStore(carUC, newMemorySnapshotStore(), newDiscardLogger())

	cars, err := store.FetchCars(ctx)

	require.NoError(t, err)
	require.Len(t, cars, 3)
	// Newest first.
	assert.Equal(t, "AA-33333", cars[0].PlateNo)
	assert.Equal(t, "AA-11111", cars[2].PlateNo)

	available := store.CarsByStatus(entity.CarStatusAvailable)
	active := store.CarsByStatus(entity.CarStatusActive)
	assert.Len(t, available, 2)
	assert.Len(t, active, 1)
	assert.Empty(t, store.CarsByStatus(entity.CarStatusMaintenance))
}

func TestCarStore_StatusChangeMovesCarBetweenBuckets(t *testing.T) {
	ctx := context.Background()
	fleet := testFleet(time.Now())
	target := fleet[1] // The active car.
	carUC := &fakeCarUsecase{
		GetAllCarsFn: func(context.Context) ([]*entity.Car, error) {
			return fleet, nil
		},
		UpdateCarFn: func(_ context.Context, id uuid.UUID, patch entity.CarPatch) (*entity.Car, error) {
			updated := *target
			updated.Status = *patch.Status

			return &updated, nil
		},
	}
	store := newCarStore(carUC, newMemorySnapshotStore(), newDiscardLogger())

	_, err := store.FetchCars(ctx)
	require.NoError(t, err)

	_, err = store.UpdateCarStatus(ctx, target.ID, entity.CarStatusMaintenance)
	require.NoError(t, err)

	// The car appears in exactly one bucket, with no stale copy left behind.
	assert.Empty(t, store.CarsByStatus(entity.CarStatusActive))
	maintenance := store.CarsByStatus(entity.CarStatusMaintenance)
	require.Len(t, maintenance, 1)
	assert.Equal(t, target.ID, maintenance[0].ID)
	assert.Len(t, store.Cars(), 3)
}

func TestCarStore_UpdateCar_FailureLeavesCacheUntouched(t *testing.T) {
	ctx := context.Background()
	fleet := testFleet(time.Now())
	carUC := &fakeCarUsecase{
		GetAllCarsFn: func(context.Context) ([]*entity.Car, error) {
			return fleet, nil
		},
		UpdateCarFn: func(context.Context, uuid.UUID, entity.CarPatch) (*entity.Car, error) {
			return nil, assert.AnError
		},
	}
	store := newCarStore(carUC, newMemorySnapshotStore(), newDiscardLogger())

	_, err := store.FetchCars(ctx)
	require.NoError(t, err)

	_, err = store.UpdateCarStatus(ctx, fleet[0].ID, entity.CarStatusInactive)

	require.Error(t, err)
	assert.Equal(t, assert.AnError.Error(), store.Err())
	cached, ok := store.Car(fleet[0].ID)
	require.True(t, ok)
	assert.Equal(t, entity.CarStatusAvailable, cached.Status)
}

func TestCarStore_DeleteCar_ClearsSelectionAndOwnerSubset(t *testing.T) {
	ctx := context.Background()
	ownerUserID := uuid.New()
	fleet := testFleet(time.Now())
	carUC := &fakeCarUsecase{
		GetCarsByOwnerFn: func(context.Context, uuid.UUID) ([]*entity.Car, error) {
			return fleet, nil
		},
		DeleteCarFn: func(context.Context, uuid.UUID) error {
			return nil
		},
	}
	store := newCarStore(carUC, newMemorySnapshotStore(), newDiscardLogger())

	_, err := store.FetchOwnerCars(ctx, ownerUserID)
	require.NoError(t, err)
	store.SelectCar(ctx, fleet[0].ID)

	require.NoError(t, store.DeleteCar(ctx, fleet[0].ID))

	_, ok := store.Car(fleet[0].ID)
	assert.False(t, ok)
	_, selected := store.SelectedCar()
	assert.False(t, selected)
	assert.Len(t, store.OwnerCars(), 2)
}

func TestCarStore_ConcurrentCreatesPersistSafely(t *testing.T) {
	ctx := context.Background()
	carUC := &fakeCarUsecase{
		CreateCarFn: func(_ context.Context, input usecase.CreateCarInput) (*entity.Car, error) {
			return &entity.Car{
				ID:        uuid.New(),
				PlateNo:   input.PlateNo,
				Status:    entity.CarStatusAvailable,
				CreatedAt: time.Now(),
			}, nil
		},
	}
	snapshots := newMemorySnapshotStore()
	store := newCarStore(carUC, snapshots, newDiscardLogger())

	// Each create mutates the car map and persists a snapshot of it; running
	// them in parallel exercises both sides under the race detector.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := store.CreateCar(ctx, usecase.CreateCarInput{PlateNo: fmt.Sprintf("AA-%05d", n)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Cars(), 50)
	assert.True(t, snapshots.has(service.SnapshotCar))
}

func TestCarStore_HydrateRestoresFleet(t *testing.T) {
	ctx := context.Background()
	snapshots := newMemorySnapshotStore()
	carID := uuid.New()

	require.NoError(t, saveSnapshot(ctx, snapshots, service.SnapshotCar, carState{
		Cars: map[uuid.UUID]entity.Car{
			carID: {ID: carID, PlateNo: "AA-44444", Status: entity.CarStatusAvailable},
		},
	}))

	store := newCarStore(&fakeCarUsecase{}, snapshots, newDiscardLogger())
	require.NoError(t, store.Hydrate(ctx))

	car, ok := store.Car(carID)
	require.True(t, ok)
	assert.Equal(t, "AA-44444", car.PlateNo)
}

func TestCarStore_AssignDriver_Passthrough(t *testing.T) {
	ctx := context.Background()
	carID := uuid.New()
	driverID := uuid.New()
	carUC := &fakeCarUsecase{
		AssignDriverFn: func(_ context.Context, gotCarID, gotDriverID uuid.UUID) (*entity.CarDriverAssignment, error) {
			assert.Equal(t, carID, gotCarID)
			assert.Equal(t, driverID, gotDriverID)

			return &entity.CarDriverAssignment{ID: uuid.New(), CarID: carID, DriverID: driverID}, nil
		},
	}
	store := newCarStore(carUC, newMemorySnapshotStore(), newDiscardLogger())

	assignment, err := store.AssignDriver(ctx, carID, driverID)

	require.NoError(t, err)
	assert.True(t, assignment.Active())
	assert.False(t, store.IsLoading())
	assert.Empty(t, store.Err())
}
