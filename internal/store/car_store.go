package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/service"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// carState is the whitelisted subset of the car store persisted under
// car-storage. The normalized car map is the single source of truth; the flat
// list and the per-status buckets are computed views and never stored.
type carState struct {
	Cars          map[uuid.UUID]entity.Car `json:"cars"`
	OwnerCarIDs   []uuid.UUID              `json:"ownerCarIds"`
	SelectedCarID *uuid.UUID               `json:"selectedCarId"`
}

// CarStore caches the fleet. Reads are pure filters over the normalized map,
// so the list and the status buckets can never disagree about a car.
type CarStore struct {
	mu        sync.RWMutex
	state     carState
	loading   bool
	lastError string

	carUC     usecase.CarUsecase
	snapshots service.SnapshotStore
	logger    *slog.Logger
}

// CarStoreParams holds dependencies for CarStore, injected by Fx.
type CarStoreParams struct {
	fx.In
	fx.Lifecycle

	CarUC     usecase.CarUsecase
	Snapshots service.SnapshotStore
	Logger    *slog.Logger
}

// NewCarStore is the fx constructor: the store hydrates on start and saves
// its snapshot on stop.
func NewCarStore(params CarStoreParams) *CarStore {
	store := newCarStore(params.CarUC, params.Snapshots, params.Logger)

	params.Append(fx.Hook{
		OnStart: store.Hydrate,
		OnStop:  store.Close,
	})

	return store
}

func newCarStore(carUC usecase.CarUsecase, snapshots service.SnapshotStore, logger *slog.Logger) *CarStore {
	return &CarStore{
		state:     carState{Cars: make(map[uuid.UUID]entity.Car)},
		carUC:     carUC,
		snapshots: snapshots,
		logger:    logger,
	}
}

func (s *CarStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
}

func (s *CarStore) fail(err error) error {
	s.mu.Lock()
	s.loading = false
	s.lastError = err.Error()
	s.mu.Unlock()

	return err
}

func (s *CarStore) finish() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// IsLoading reports whether an action is in flight.
func (s *CarStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

// Err returns the message of the last failed action, empty after a success.
func (s *CarStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastError
}

// sortCarsNewestFirst orders a computed view the way screens list cars.
func sortCarsNewestFirst(cars []entity.Car) {
	sort.Slice(cars, func(i, j int) bool {
		return cars[i].CreatedAt.After(cars[j].CreatedAt)
	})
}

// Cars returns the flat fleet view, newest first. Computed from the map on
// every call.
func (s *CarStore) Cars() []entity.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cars := make([]entity.Car, 0, len(s.state.Cars))
	for _, car := range s.state.Cars {
		cars = append(cars, car)
	}
	sortCarsNewestFirst(cars)

	return cars
}

// CarsByStatus returns the status bucket view, newest first.
func (s *CarStore) CarsByStatus(status entity.CarStatus) []entity.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cars []entity.Car
	for _, car := range s.state.Cars {
		if car.Status == status {
			cars = append(cars, car)
		}
	}
	sortCarsNewestFirst(cars)

	return cars
}

// Car returns one cached car by ID.
func (s *CarStore) Car(id uuid.UUID) (entity.Car, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	car, ok := s.state.Cars[id]

	return car, ok
}

// OwnerCars returns the cached owner-scoped subset, newest first.
func (s *CarStore) OwnerCars() []entity.Car {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cars []entity.Car
	for _, id := range s.state.OwnerCarIDs {
		if car, ok := s.state.Cars[id]; ok {
			cars = append(cars, car)
		}
	}
	sortCarsNewestFirst(cars)

	return cars
}

// SelectedCar returns the currently selected car, if any.
func (s *CarStore) SelectedCar() (entity.Car, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.SelectedCarID == nil {
		return entity.Car{}, false
	}
	car, ok := s.state.Cars[*s.state.SelectedCarID]

	return car, ok
}

// SelectCar marks a cached car as selected.
func (s *CarStore) SelectCar(ctx context.Context, id uuid.UUID) {
	s.mu.Lock()
	if _, ok := s.state.Cars[id]; ok {
		selected := id
		s.state.SelectedCarID = &selected
	}
	s.mu.Unlock()

	s.persist(ctx)
}

// FetchCars replaces the whole cache with the server's fleet view.
func (s *CarStore) FetchCars(ctx context.Context) ([]entity.Car, error) {
	s.begin()

	cars, err := s.carUC.GetAllCars(ctx)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.state.Cars = make(map[uuid.UUID]entity.Car, len(cars))
	for _, car := range cars {
		s.state.Cars[car.ID] = *car
	}
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return s.Cars(), nil
}

// FetchOwnerCars loads one user's cars and records the owner-scoped subset.
func (s *CarStore) FetchOwnerCars(ctx context.Context, ownerUserID uuid.UUID) ([]entity.Car, error) {
	s.begin()

	cars, err := s.carUC.GetCarsByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	ids := make([]uuid.UUID, 0, len(cars))
	for _, car := range cars {
		s.state.Cars[car.ID] = *car
		ids = append(ids, car.ID)
	}
	s.state.OwnerCarIDs = ids
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return s.OwnerCars(), nil
}

// CreateCar registers a car and folds it into the cache.
func (s *CarStore) CreateCar(ctx context.Context, input usecase.CreateCarInput) (*entity.Car, error) {
	s.begin()

	car, err := s.carUC.CreateCar(ctx, input)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.state.Cars[car.ID] = *car
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return car, nil
}

// UpdateCar patches a car. The returned server row replaces the cached one,
// so a status change moves the car between buckets atomically.
func (s *CarStore) UpdateCar(ctx context.Context, id uuid.UUID, patch entity.CarPatch) (*entity.Car, error) {
	s.begin()

	car, err := s.carUC.UpdateCar(ctx, id, patch)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.state.Cars[car.ID] = *car
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return car, nil
}

// UpdateCarStatus is the single-field convenience used by the dashboards.
func (s *CarStore) UpdateCarStatus(ctx context.Context, id uuid.UUID, status entity.CarStatus) (*entity.Car, error) {
	return s.UpdateCar(ctx, id, entity.CarPatch{Status: &status})
}

// DeleteCar removes a car everywhere: server, cache, owner subset, and the
// selection if it pointed at the deleted car.
func (s *CarStore) DeleteCar(ctx context.Context, id uuid.UUID) error {
	s.begin()

	if err := s.carUC.DeleteCar(ctx, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	delete(s.state.Cars, id)
	for i, ownerCarID := range s.state.OwnerCarIDs {
		if ownerCarID == id {
			s.state.OwnerCarIDs = append(s.state.OwnerCarIDs[:i], s.state.OwnerCarIDs[i+1:]...)

			break
		}
	}
	if s.state.SelectedCarID != nil && *s.state.SelectedCarID == id {
		s.state.SelectedCarID = nil
	}
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return nil
}

// AssignDriver replaces the car's active driver assignment.
func (s *CarStore) AssignDriver(ctx context.Context, carID, driverID uuid.UUID) (*entity.CarDriverAssignment, error) {
	s.begin()

	assignment, err := s.carUC.AssignDriver(ctx, carID, driverID)
	if err != nil {
		return nil, s.fail(err)
	}
	s.finish()

	return assignment, nil
}

// AssignManager links a manager to a car.
func (s *CarStore) AssignManager(ctx context.Context, carID, managerID uuid.UUID) (*entity.CarManagerAssignment, error) {
	s.begin()

	assignment, err := s.carUC.AssignManager(ctx, carID, managerID)
	if err != nil {
		return nil, s.fail(err)
	}
	s.finish()

	return assignment, nil
}

// Hydrate restores the persisted fleet cache.
func (s *CarStore) Hydrate(ctx context.Context) error {
	var restored carState
	ok, err := loadSnapshot(ctx, s.snapshots, service.SnapshotCar, &restored)
	if err != nil {
		s.logger.Warn("Failed to read car snapshot", slog.Any("error", err))

		return nil
	}
	if !ok {
		return nil
	}
	if restored.Cars == nil {
		restored.Cars = make(map[uuid.UUID]entity.Car)
	}

	s.mu.Lock()
	s.state = restored
	s.mu.Unlock()

	s.logger.Debug("Car store hydrated", slog.Int("cars", len(restored.Cars)))

	return nil
}

// Close persists the final snapshot.
func (s *CarStore) Close(ctx context.Context) error {
	s.persist(ctx)

	return nil
}

func (s *CarStore) persist(ctx context.Context) {
	// Encode while holding the read lock; the state's map is shared with
	// concurrent actions mutating it under the write lock.
	s.mu.RLock()
	data, err := encodeSnapshot(s.state)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Warn("Failed to persist car snapshot", slog.Any("error", err))

		return
	}

	if err := s.snapshots.Save(ctx, service.SnapshotCar, data); err != nil {
		s.logger.Warn("Failed to persist car snapshot", slog.Any("error", err))
	}
}
