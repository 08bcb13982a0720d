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

// recentEntryCap bounds the cross-car recent list kept by the finance stores.
const recentEntryCap = 10

// revenueState is the whitelisted subset of the revenue store persisted under
// revenue-storage. Totals are cached best-effort and never persisted.
type revenueState struct {
	ByCar  map[uuid.UUID][]entity.CarRevenue `json:"byCar"`
	Recent []entity.CarRevenue               `json:"recent"`
}

// RevenueStore caches income entries per car plus a bounded cross-car recent
// list.
type RevenueStore struct {
	mu        sync.RWMutex
	state     revenueState
	totals    map[uuid.UUID]float64
	loading   bool
	lastError string

	revenueUC usecase.RevenueUsecase
	snapshots service.SnapshotStore
	logger    *slog.Logger
}

// RevenueStoreParams holds dependencies for RevenueStore, injected by Fx.
type RevenueStoreParams struct {
	fx.In
	fx.Lifecycle

	RevenueUC usecase.RevenueUsecase
	Snapshots service.SnapshotStore
	Logger    *slog.Logger
}

// NewRevenueStore is the fx constructor: the store hydrates on start and
// saves its snapshot on stop.
func NewRevenueStore(params RevenueStoreParams) *RevenueStore {
	store := newRevenueStore(params.RevenueUC, params.Snapshots, params.Logger)

	params.Append(fx.Hook{
		OnStart: store.Hydrate,
		OnStop:  store.Close,
	})

	return store
}

func newRevenueStore(revenueUC usecase.RevenueUsecase, snapshots service.SnapshotStore, logger *slog.Logger) *RevenueStore {
	return &RevenueStore{
		state:     revenueState{ByCar: make(map[uuid.UUID][]entity.CarRevenue)},
		totals:    make(map[uuid.UUID]float64),
		revenueUC: revenueUC,
		snapshots: snapshots,
		logger:    logger,
	}
}

func (s *RevenueStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
}

func (s *RevenueStore) fail(err error) error {
	s.mu.Lock()
	s.loading = false
	s.lastError = err.Error()
	s.mu.Unlock()

	return err
}

// IsLoading reports whether an action is in flight.
func (s *RevenueStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

// Err returns the message of the last failed action, empty after a success.
func (s *RevenueStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastError
}

// CarRevenue returns the cached entries for one car, newest first.
func (s *RevenueStore) CarRevenue(carID uuid.UUID) []entity.CarRevenue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.state.ByCar[carID]
	out := make([]entity.CarRevenue, len(entries))
	copy(out, entries)

	return out
}

// Recent returns the cached cross-car recent list, newest first, at most
// recentEntryCap entries.
func (s *RevenueStore) Recent() []entity.CarRevenue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.CarRevenue, len(s.state.Recent))
	copy(out, s.state.Recent)

	return out
}

// CachedTotal returns the last fetched total for a car.
func (s *RevenueStore) CachedTotal(carID uuid.UUID) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total, ok := s.totals[carID]

	return total, ok
}

// capRecent prepends an entry and trims the list to the cap.
func capRecent(recent []entity.CarRevenue, entry entity.CarRevenue) []entity.CarRevenue {
	recent = append([]entity.CarRevenue{entry}, recent...)
	if len(recent) > recentEntryCap {
		recent = recent[:recentEntryCap]
	}

	return recent
}

// FetchCarRevenue replaces one car's cached entries with the server view.
func (s *RevenueStore) FetchCarRevenue(ctx context.Context, carID uuid.UUID) ([]entity.CarRevenue, error) {
	s.begin()

	entries, err := s.revenueUC.GetCarRevenue(ctx, carID)
	if err != nil {
		return nil, s.fail(err)
	}

	cached := make([]entity.CarRevenue, 0, len(entries))
	for _, entry := range entries {
		cached = append(cached, *entry)
	}

	s.mu.Lock()
	s.state.ByCar[carID] = cached
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return s.CarRevenue(carID), nil
}

// FetchRecent replaces the cached recent list with the server view, capped.
func (s *RevenueStore) FetchRecent(ctx context.Context) ([]entity.CarRevenue, error) {
	s.begin()

	entries, err := s.revenueUC.GetRecentRevenue(ctx, recentEntryCap)
	if err != nil {
		return nil, s.fail(err)
	}

	recent := make([]entity.CarRevenue, 0, len(entries))
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

// CreateRevenue logs an entry and folds it into both cache views.
func (s *RevenueStore) CreateRevenue(ctx context.Context, input usecase.CreateRevenueInput) (*entity.CarRevenue, error) {
	s.begin()

	entry, err := s.revenueUC.CreateRevenue(ctx, input)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.state.ByCar[entry.CarID] = append([]entity.CarRevenue{*entry}, s.state.ByCar[entry.CarID]...)
	s.state.Recent = capRecent(s.state.Recent, *entry)
	delete(s.totals, entry.CarID) // The cached sum is stale now.
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return entry, nil
}

// UpdateRevenue patches an entry and reconciles both cache views.
func (s *RevenueStore) UpdateRevenue(ctx context.Context, id uuid.UUID, patch entity.RevenuePatch) (*entity.CarRevenue, error) {
	s.begin()

	entry, err := s.revenueUC.UpdateRevenue(ctx, id, patch)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	replaceRevenue(s.state.ByCar[entry.CarID], *entry)
	replaceRevenue(s.state.Recent, *entry)
	delete(s.totals, entry.CarID)
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return entry, nil
}

// replaceRevenue swaps the matching entry in place, if cached.
func replaceRevenue(entries []entity.CarRevenue, entry entity.CarRevenue) {
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = entry

			return
		}
	}
}

// DeleteRevenue removes an entry from the server and both cache views.
func (s *RevenueStore) DeleteRevenue(ctx context.Context, id uuid.UUID) error {
	s.begin()

	if err := s.revenueUC.DeleteRevenue(ctx, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	for carID, entries := range s.state.ByCar {
		s.state.ByCar[carID] = removeRevenue(entries, id)
	}
	s.state.Recent = removeRevenue(s.state.Recent, id)
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return nil
}

func removeRevenue(entries []entity.CarRevenue, id uuid.UUID) []entity.CarRevenue {
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
func (s *RevenueStore) FetchByDateRange(ctx context.Context, start, end time.Time) ([]entity.CarRevenue, error) {
	s.begin()

	entries, err := s.revenueUC.GetRevenueByDateRange(ctx, start, end)
	if err != nil {
		return nil, s.fail(err)
	}

	out := make([]entity.CarRevenue, 0, len(entries))
	for _, entry := range entries {
		out = append(out, *entry)
	}

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()

	return out, nil
}

// FetchTotal fetches the server-side sum for one car and caches it.
func (s *RevenueStore) FetchTotal(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (float64, error) {
	s.begin()

	total, err := s.revenueUC.GetTotalRevenue(ctx, carID, dateRange)
	if err != nil {
		return 0, s.fail(err)
	}

	s.mu.Lock()
	s.totals[carID] = total
	s.loading = false
	s.mu.Unlock()

	return total, nil
}

// ProfitLoss is a pure passthrough: the summary is derived server-side and
// never cached.
func (s *RevenueStore) ProfitLoss(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (*entity.ProfitLoss, error) {
	s.begin()

	summary, err := s.revenueUC.GetProfitLoss(ctx, carID, dateRange)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()

	return summary, nil
}

// Hydrate restores the persisted revenue cache.
func (s *RevenueStore) Hydrate(ctx context.Context) error {
	var restored revenueState
	ok, err := loadSnapshot(ctx, s.snapshots, service.SnapshotRevenue, &restored)
	if err != nil {
		s.logger.Warn("Failed to read revenue snapshot", slog.Any("error", err))

		return nil
	}
	if !ok {
		return nil
	}
	if restored.ByCar == nil {
		restored.ByCar = make(map[uuid.UUID][]entity.CarRevenue)
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
func (s *RevenueStore) Close(ctx context.Context) error {
	s.persist(ctx)

	return nil
}

func (s *RevenueStore) persist(ctx context.Context) {
	// Encode while holding the read lock; the per-car map is shared with
	// concurrent actions mutating it under the write lock.
	s.mu.RLock()
	data, err := encodeSnapshot(s.state)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Warn("Failed to persist revenue snapshot", slog.Any("error", err))

		return
	}

	if err := s.snapshots.Save(ctx, service.SnapshotRevenue, data); err != nil {
		s.logger.Warn("Failed to persist revenue snapshot", slog.Any("error", err))
	}
}
