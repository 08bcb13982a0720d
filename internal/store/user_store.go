package store

import (
	"context"
	"log/slog"
	"sync"

	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/service"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// userState is the whitelisted subset of the user store persisted under
// user-storage.
type userState struct {
	Users        []entity.User `json:"users"`
	Drivers      []entity.User `json:"drivers"`
	Managers     []entity.User `json:"managers"`
	Owners       []entity.User `json:"owners"`
	SelectedUser *entity.User  `json:"selectedUser"`
}

// UserStore caches the people directory: role-scoped user lists plus the
// user currently open in a detail view.
type UserStore struct {
	mu        sync.RWMutex
	state     userState
	loading   bool
	lastError string

	userUC    usecase.UserUsecase
	snapshots service.SnapshotStore
	logger    *slog.Logger
}

// UserStoreParams holds dependencies for UserStore, injected by Fx.
type UserStoreParams struct {
	fx.In
	fx.Lifecycle

	UserUC    usecase.UserUsecase
	Snapshots service.SnapshotStore
	Logger    *slog.Logger
}

// NewUserStore is the fx constructor: the store hydrates on start and saves
// its snapshot on stop.
func NewUserStore(params UserStoreParams) *UserStore {
	store := newUserStore(params.UserUC, params.Snapshots, params.Logger)

	params.Append(fx.Hook{
		OnStart: store.Hydrate,
		OnStop:  store.Close,
	})

	return store
}

func newUserStore(userUC usecase.UserUsecase, snapshots service.SnapshotStore, logger *slog.Logger) *UserStore {
	return &UserStore{
		userUC:    userUC,
		snapshots: snapshots,
		logger:    logger,
	}
}

func (s *UserStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
}

func (s *UserStore) fail(err error) error {
	s.mu.Lock()
	s.loading = false
	s.lastError = err.Error()
	s.mu.Unlock()

	return err
}

// IsLoading reports whether an action is in flight.
func (s *UserStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

// Err returns the message of the last failed action, empty after a success.
func (s *UserStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastError
}

// Users returns the last fetched by-role listing.
func (s *UserStore) Users() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.User, len(s.state.Users))
	copy(out, s.state.Users)

	return out
}

// Drivers returns the cached driver list.
func (s *UserStore) Drivers() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.User, len(s.state.Drivers))
	copy(out, s.state.Drivers)

	return out
}

// Managers returns the cached manager list.
func (s *UserStore) Managers() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.User, len(s.state.Managers))
	copy(out, s.state.Managers)

	return out
}

// Owners returns the cached owner list.
func (s *UserStore) Owners() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.User, len(s.state.Owners))
	copy(out, s.state.Owners)

	return out
}

// SelectedUser returns the user open in the detail view, if any.
func (s *UserStore) SelectedUser() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.SelectedUser
}

func derefUsers(users []*entity.User) []entity.User {
	out := make([]entity.User, 0, len(users))
	for _, user := range users {
		out = append(out, *user)
	}

	return out
}

// FetchUsersByRole replaces the generic listing with one role's users.
func (s *UserStore) FetchUsersByRole(ctx context.Context, role entity.Role) ([]entity.User, error) {
	s.begin()

	users, err := s.userUC.GetUsersByRole(ctx, role)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.state.Users = derefUsers(users)
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return s.Users(), nil
}

// FetchDrivers refreshes the cached driver list.
func (s *UserStore) FetchDrivers(ctx context.Context) ([]entity.User, error) {
	s.begin()

	users, err := s.userUC.GetDrivers(ctx)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.state.Drivers = derefUsers(users)
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return s.Drivers(), nil
}

// FetchManagers refreshes the cached manager list.
func (s *UserStore) FetchManagers(ctx context.Context) ([]entity.User, error) {
	s.begin()

	users, err := s.userUC.GetManagers(ctx)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.state.Managers = derefUsers(users)
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return s.Managers(), nil
}

// FetchOwners refreshes the cached owner list.
func (s *UserStore) FetchOwners(ctx context.Context) ([]entity.User, error) {
	s.begin()

	users, err := s.userUC.GetOwners(ctx)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.state.Owners = derefUsers(users)
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return s.Owners(), nil
}

// SelectUser loads one user into the detail view.
func (s *UserStore) SelectUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	s.begin()

	user, err := s.userUC.GetUserByID(ctx, id)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.state.SelectedUser = user
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return user, nil
}

// ClearSelection drops the detail-view user.
func (s *UserStore) ClearSelection(ctx context.Context) {
	s.mu.Lock()
	s.state.SelectedUser = nil
	s.mu.Unlock()

	s.persist(ctx)
}

// DriverWithCar loads a driver plus the car of their open assignment.
// Passthrough: the pairing is derived server-side and not cached.
func (s *UserStore) DriverWithCar(ctx context.Context, driverUserID uuid.UUID) (*usecase.DriverWithCar, error) {
	s.begin()

	result, err := s.userUC.GetDriverWithCar(ctx, driverUserID)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()

	return result, nil
}

// ManagerWithCars loads a manager plus their assigned cars. Passthrough.
func (s *UserStore) ManagerWithCars(ctx context.Context, managerUserID uuid.UUID) (*usecase.ManagerWithCars, error) {
	s.begin()

	result, err := s.userUC.GetManagerWithCars(ctx, managerUserID)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()

	return result, nil
}

// Hydrate restores the persisted directory cache.
func (s *UserStore) Hydrate(ctx context.Context) error {
	var restored userState
	ok, err := loadSnapshot(ctx, s.snapshots, service.SnapshotUser, &restored)
	if err != nil {
		s.logger.Warn("Failed to read user snapshot", slog.Any("error", err))

		return nil
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.state = restored
	s.mu.Unlock()

	return nil
}

// Close persists the final snapshot.
func (s *UserStore) Close(ctx context.Context) error {
	s.persist(ctx)

	return nil
}

func (s *UserStore) persist(ctx context.Context) {
	// Encode while holding the read lock; the state is shared with concurrent
	// actions mutating it under the write lock.
	s.mu.RLock()
	data, err := encodeSnapshot(s.state)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Warn("Failed to persist user snapshot", slog.Any("error", err))

		return
	}

	if err := s.snapshots.Save(ctx, service.SnapshotUser, data); err != nil {
		s.logger.Warn("Failed to persist user snapshot", slog.Any("error", err))
	}
}
