package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/repository"
	"drivelink/internal/domain/service"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// expenseState is the whitelisted subset of the expense store persisted under
// expense-storage.
type expenseState struct {
	ByCar  map[uuid.UUID][]entity.CarExpense `json:"byCar"`
	Recent []entity.CarExpense               `json:"recent"`
}

// ExpenseStore caches cost entries per car plus a bounded cross-car recent
// list. It mirrors RevenueStore for the expense side of the ledger.
type ExpenseStore struct {
	mu        sync.RWMutex
	state     expenseState
	totals    map[uuid.UUID]float64
	loading   bool
	lastError string

	expenseUC usecase.ExpenseUsecase
	snapshots service.SnapshotStore
	logger    *slog.Logger
}

// ExpenseStoreParams holds dependencies for ExpenseStore, injected by Fx.
type ExpenseStoreParams struct {
	fx.In
	fx.Lifecycle

	ExpenseUC usecase.ExpenseUsecase
	Snapshots service.SnapshotStore
	Logger    *slog.Logger
}

// NewExpenseStore is the fx constructor: the store hydrates on start and
// saves its snapshot on stop.
func NewExpenseStore(params ExpenseStoreParams) *ExpenseStore {
	store := newExpenseStore(params.ExpenseUC, params.Snapshots, params.Logger)

	params.Append(fx.Hook{
		OnStart: store.Hydrate,
		OnStop:  store.Close,
	})

	return store
}

func newExpenseStore(expenseUC usecase.ExpenseUsecase, snapshots service.SnapshotStore, logger *slog.Logger) *ExpenseStore {
	return &ExpenseStore{
		state:     expenseState{ByCar: make(map[uuid.UUID][]entity.CarExpense)},
		totals:    make(map[uuid.UUID]float64),
		expenseUC: expenseUC,
		snapshots: snapshots,
		logger:    logger,
	}
}

func (s *ExpenseStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
}

func (s *ExpenseStore) fail(err error) error {
	s.mu.Lock()
	s.loading = false
	s.lastError = err.Error()
	s.mu.Unlock()

	return err
}

// IsLoading reports whether an action is in flight.
func (s *ExpenseStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

// Err returns the message of the last failed action, empty after a success.
func (s *ExpenseStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastError
}

// CarExpenses returns the cached entries for one car, newest first.
func (s *ExpenseStore) CarExpenses(carID uuid.UUID) []entity.CarExpense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.state.ByCar[carID]
	out := make([]entity.CarExpense, len(entries))
	copy(out, entries)

	return out
}

// Recent returns the cached cross-car recent list, newest first, at most
// recentEntryCap entries.
func (s *ExpenseStore) Recent() []entity.CarExpense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.CarExpense, len(s.state.Recent))
	copy(out, s.state.Recent)

	return out
}

// CachedTotal returns the last fetched total for a car.
func (s *ExpenseStore) CachedTotal(carID uuid.UUID) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total, ok := s.totals[carID]

	return total, ok
}

// FetchCarExpenses replaces one car's cached entries with the server view.
func (s *ExpenseStore) FetchCarExpenses(ctx context.Context, carID uuid.UUID) ([]entity.CarExpense, error) {
	s.begin()

	entries, err := s.expenseUC.GetCarExpenses(ctx, carID)
	if err != nil {
		return nil, s.fail(err)
	}

	cached := make([]entity.CarExpense, 0, len(entries))
	for _, entry := range entries {
		cached = append(cached, *entry)
	}

	s.mu.Lock()
	s.state.ByCar[carID] = cached
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return s.CarExpenses(carID), nil
}

// FetchRecent replaces the cached recent list with the server view, capped.
func (s *ExpenseStore) FetchRecent(ctx context.Context) ([]entity.CarExpense, error) {
	s.begin()

	entries, err := s.expenseUC.GetRecentExpenses(ctx, recentEntryCap)
	if err != nil {
		return nil, s.fail(err)
	}

	recent := make([]entity.CarExpense, 0, len(entries))
	for _, entry := range entries {
		recent = append(recent, *entry)
	}
	if len(recent) > recentEntryCap {
		recent = recent[:recentEntryCap]
	}

	s.mu.Lock()
	s.state.Recent = recent
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return s.Recent(), nil
}

// CreateExpense logs an entry and folds it into both cache views.
func (s *ExpenseStore) CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (*entity.CarExpense, error) {
	s.begin()

	entry, err := s.expenseUC.CreateExpense(ctx, input)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.state.ByCar[entry.CarID] = append([]entity.CarExpense{*entry}, s.state.ByCar[entry.CarID]...)
	s.state.Recent = append([]entity.CarExpense{*entry}, s.state.Recent...)
	if len(s.state.Recent) > recentEntryCap {
		s.state.Recent = s.state.Recent[:recentEntryCap]
	}
	delete(s.totals, entry.CarID) // The cached sum is stale now.
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return entry, nil
}

// UpdateExpense patches an entry and reconciles both cache views.
func (s *ExpenseStore) UpdateExpense(ctx context.Context, id uuid.UUID, patch entity.ExpensePatch) (*entity.CarExpense, error) {
	s.begin()

	entry, err := s.expenseUC.UpdateExpense(ctx, id, patch)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	replaceExpense(s.state.ByCar[entry.CarID], *entry)
	replaceExpense(s.state.Recent, *entry)
	delete(s.totals, entry.CarID)
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return entry, nil
}

func replaceExpense(entries []entity.CarExpense, entry entity.CarExpense) {
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = entry

			return
		}
	}
}

// DeleteExpense removes an entry from the server and both cache views.
func (s *ExpenseStore) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	s.begin()

	if err := s.expenseUC.DeleteExpense(ctx, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	for carID, entries := range s.state.ByCar {
		s.state.ByCar[carID] = removeExpense(entries, id)
	}
	s.state.Recent = removeExpense(s.state.Recent, id)
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return nil
}

func removeExpense(entries []entity.CarExpense, id uuid.UUID) []entity.CarExpense {
	for i := range entries {
		if entries[i].ID == id {
			return append(entries[:i], entries[i+1:]...)
		}
	}

	return entries
}

// FetchByDateRange returns every entry logged inside the window, across all
// cars. The result is query-shaped, so it is handed back directly rather than
// folded into the per-car cache.
func (s *ExpenseStore) FetchByDateRange(ctx context.Context, start, end time.Time) ([]entity.CarExpense, error) {
	s.begin()

	entries, err := s.expenseUC.GetExpensesByDateRange(ctx, start, end)
	if err != nil {
		return nil, s.fail(err)
	}

	out := make([]entity.CarExpense, 0, len(entries))
	for _, entry := range entries {
		out = append(out, *entry)
	}

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()

	return out, nil
}

// FetchTotal fetches the server-side sum for one car and caches it.
func (s *ExpenseStore) FetchTotal(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (float64, error) {
	s.begin()

	total, err := s.expenseUC.GetTotalExpenses(ctx, carID, dateRange)
	if err != nil {
		return 0, s.fail(err)
	}

	s.mu.Lock()
	s.totals[carID] = total
	s.loading = false
	s.mu.Unlock()

	return total, nil
}

// Hydrate restores the persisted expense cache.
func (s *ExpenseStore) Hydrate(ctx context.Context) error {
	var restored expenseState
	ok, err := loadSnapshot(ctx, s.snapshots, service.SnapshotExpense, &restored)
	if err != nil {
		s.logger.Warn("Failed to read expense snapshot", slog.Any("error", err))

		return nil
	}
	if !ok {
		return nil
	}
	if restored.ByCar == nil {
		restored.ByCar = make(map[uuid.UUID][]entity.CarExpense)
	}
	if len(restored.Recent) > recentEntryCap {
		restored.Recent = restored.Recent[:recentEntryCap]
	}

	s.mu.Lock()
	s.state = restored
	s.mu.Unlock()

	return nil
}

// Close persists the final snapshot.
func (s *ExpenseStore) Close(ctx context.Context) error {
	s.persist(ctx)

	return nil
}

func (s *ExpenseStore) persist(ctx context.Context) {
	// Encode while holding the read lock; the per-car map is shared with
	// concurrent actions mutating it under the write lock.
	s.mu.RLock()
	data, err := encodeSnapshot(s.state)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Warn("Failed to persist expense snapshot", slog.Any("error", err))

		return
	}

	if err := s.snapshots.Save(ctx, service.SnapshotExpense, data); err != nil {
		s.logger.Warn("Failed to persist expense snapshot", slog.Any("error", err))
	}
}
