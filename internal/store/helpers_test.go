package store

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/repository"
	"drivelink/internal/domain/service"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memorySnapshotStore is an in-memory service.SnapshotStore for store tests.
type memorySnapshotStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemorySnapshotStore() *memorySnapshotStore {
	return &memorySnapshotStore{data: make(map[string][]byte)}
}

func (m *memorySnapshotStore) Save(_ context.Context, namespace string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[namespace] = data

	return nil
}

func (m *memorySnapshotStore) Load(_ context.Context, namespace string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[namespace]
	if !ok {
		return nil, service.ErrSnapshotNotFound
	}

	return data, nil
}

func (m *memorySnapshotStore) Delete(_ context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, namespace)

	return nil
}

func (m *memorySnapshotStore) has(namespace string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[namespace]

	return ok
}

// fakeAuthUsecase implements usecase.AuthUsecase with function fields, so each
// test plugs in only the behavior it needs.
type fakeAuthUsecase struct {
	RegisterFn       func(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error)
	LoginFn          func(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error)
	RefreshSessionFn func(ctx context.Context, refreshToken string) (*entity.Session, error)
	LogoutFn         func(ctx context.Context, refreshToken string) error
	CurrentUserFn    func(ctx context.Context, accessToken string) (*usecase.AuthOutput, error)
	UpdateProfileFn  func(ctx context.Context, userID uuid.UUID, patch entity.ProfilePatch) (*entity.Profile, error)
}

func (f *fakeAuthUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	return f.RegisterFn(ctx, input)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	return f.LoginFn(ctx, input)
}

func (f *fakeAuthUsecase) RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error) {
	return f.RefreshSessionFn(ctx, refreshToken)
}

func (f *fakeAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	return f.LogoutFn(ctx, refreshToken)
}

func (f *fakeAuthUsecase) CurrentUser(ctx context.Context, accessToken string) (*usecase.AuthOutput, error) {
	return f.CurrentUserFn(ctx, accessToken)
}

func (f *fakeAuthUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, patch entity.ProfilePatch) (*entity.Profile, error) {
	return f.UpdateProfileFn(ctx, userID, patch)
}

// fakeCarUsecase implements usecase.CarUsecase with function fields.
type fakeCarUsecase struct {
	GetAllCarsFn      func(ctx context.Context) ([]*entity.Car, error)
	GetCarByIDFn      func(ctx context.Context, id uuid.UUID) (*entity.Car, error)
	GetCarsByOwnerFn  func(ctx context.Context, ownerUserID uuid.UUID) ([]*entity.Car, error)
	GetCarsByStatusFn func(ctx context.Context, status entity.CarStatus) ([]*entity.Car, error)
	CreateCarFn       func(ctx context.Context, input usecase.CreateCarInput) (*entity.Car, error)
	UpdateCarFn       func(ctx context.Context, id uuid.UUID, patch entity.CarPatch) (*entity.Car, error)
	DeleteCarFn       func(ctx context.Context, id uuid.UUID) error
	AssignDriverFn    func(ctx context.Context, carID, driverID uuid.UUID) (*entity.CarDriverAssignment, error)
	AssignManagerFn   func(ctx context.Context, carID, managerID uuid.UUID) (*entity.CarManagerAssignment, error)
}

func (f *fakeCarUsecase) GetAllCars(ctx context.Context) ([]*entity.Car, error) {
	return f.GetAllCarsFn(ctx)
}

func (f *fakeCarUsecase) GetCarByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	return f.GetCarByIDFn(ctx, id)
}

func (f *fakeCarUsecase) GetCarsByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]*entity.Car, error) {
	return f.GetCarsByOwnerFn(ctx, ownerUserID)
}

func (f *fakeCarUsecase) GetCarsByStatus(ctx context.Context, status entity.CarStatus) ([]*entity.Car, error) {
	return f.GetCarsByStatusFn(ctx, status)
}

func (f *fakeCarUsecase) CreateCar(ctx context.Context, input usecase.CreateCarInput) (*entity.Car, error) {
	return f.CreateCarFn(ctx, input)
}

func (f *fakeCarUsecase) UpdateCar(ctx context.Context, id uuid.UUID, patch entity.CarPatch) (*entity.Car, error) {
	return f.UpdateCarFn(ctx, id, patch)
}

func (f *fakeCarUsecase) DeleteCar(ctx context.Context, id uuid.UUID) error {
	return f.DeleteCarFn(ctx, id)
}

func (f *fakeCarUsecase) AssignDriver(ctx context.Context, carID, driverID uuid.UUID) (*entity.CarDriverAssignment, error) {
	return f.AssignDriverFn(ctx, carID, driverID)
}

func (f *fakeCarUsecase) AssignManager(ctx context.Context, carID, managerID uuid.UUID) (*entity.CarManagerAssignment, error) {
	return f.AssignManagerFn(ctx, carID, managerID)
}

// fakeRevenueUsecase implements usecase.RevenueUsecase with function fields.
type fakeRevenueUsecase struct {
	GetCarRevenueFn         func(ctx context.Context, carID uuid.UUID) ([]*entity.CarRevenue, error)
	GetRevenueByIDFn        func(ctx context.Context, id uuid.UUID) (*entity.CarRevenue, error)
	CreateRevenueFn         func(ctx context.Context, input usecase.CreateRevenueInput) (*entity.CarRevenue, error)
	UpdateRevenueFn         func(ctx context.Context, id uuid.UUID, patch entity.RevenuePatch) (*entity.CarRevenue, error)
	DeleteRevenueFn         func(ctx context.Context, id uuid.UUID) error
	GetRevenueByDateRangeFn func(ctx context.Context, start, end time.Time) ([]*entity.CarRevenue, error)
	GetTotalRevenueFn       func(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (float64, error)
	GetRecentRevenueFn      func(ctx context.Context, limit int) ([]*entity.CarRevenue, error)
	GetProfitLossFn         func(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (*entity.ProfitLoss, error)
}

func (f *fakeRevenueUsecase) GetCarRevenue(ctx context.Context, carID uuid.UUID) ([]*entity.CarRevenue, error) {
	return f.GetCarRevenueFn(ctx, carID)
}

func (f *fakeRevenueUsecase) GetRevenueByID(ctx context.Context, id uuid.UUID) (*entity.CarRevenue, error) {
	return f.GetRevenueByIDFn(ctx, id)
}

func (f *fakeRevenueUsecase) CreateRevenue(ctx context.Context, input usecase.CreateRevenueInput) (*entity.CarRevenue, error) {
	return f.CreateRevenueFn(ctx, input)
}

func (f *fakeRevenueUsecase) UpdateRevenue(ctx context.Context, id uuid.UUID, patch entity.RevenuePatch) (*entity.CarRevenue, error) {
	return f.UpdateRevenueFn(ctx, id, patch)
}

func (f *fakeRevenueUsecase) DeleteRevenue(ctx context.Context, id uuid.UUID) error {
	return f.DeleteRevenueFn(ctx, id)
}

func (f *fakeRevenueUsecase) GetRevenueByDateRange(ctx context.Context, start, end time.Time) ([]*entity.CarRevenue, error) {
	return f.GetRevenueByDateRangeFn(ctx, start, end)
}

func (f *fakeRevenueUsecase) GetTotalRevenue(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (float64, error) {
	return f.GetTotalRevenueFn(ctx, carID, dateRange)
}

func (f *fakeRevenueUsecase) GetRecentRevenue(ctx context.Context, limit int) ([]*entity.CarRevenue, error) {
	return f.GetRecentRevenueFn(ctx, limit)
}

func (f *fakeRevenueUsecase) GetProfitLoss(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (*entity.ProfitLoss, error) {
	return f.GetProfitLossFn(ctx, carID, dateRange)
}

// fakeExpenseUsecase implements usecase.ExpenseUsecase with function fields.
type fakeExpenseUsecase struct {
	GetCarExpensesFn         func(ctx context.Context, carID uuid.UUID) ([]*entity.CarExpense, error)
	GetExpenseByIDFn         func(ctx context.Context, id uuid.UUID) (*entity.CarExpense, error)
	CreateExpenseFn          func(ctx context.Context, input usecase.CreateExpenseInput) (*entity.CarExpense, error)
	UpdateExpenseFn          func(ctx context.Context, id uuid.UUID, patch entity.ExpensePatch) (*entity.CarExpense, error)
	DeleteExpenseFn          func(ctx context.Context, id uuid.UUID) error
	GetExpensesByDateRangeFn func(ctx context.Context, start, end time.Time) ([]*entity.CarExpense, error)
	GetTotalExpensesFn       func(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (float64, error)
	GetRecentExpensesFn      func(ctx context.Context, limit int) ([]*entity.CarExpense, error)
}

func (f *fakeExpenseUsecase) GetCarExpenses(ctx context.Context, carID uuid.UUID) ([]*entity.CarExpense, error) {
	return f.GetCarExpensesFn(ctx, carID)
}

func (f *fakeExpenseUsecase) GetExpenseByID(ctx context.Context, id uuid.UUID) (*entity.CarExpense, error) {
	return f.GetExpenseByIDFn(ctx, id)
}

func (f *fakeExpenseUsecase) CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (*entity.CarExpense, error) {
	return f.CreateExpenseFn(ctx, input)
}

func (f *fakeExpenseUsecase) UpdateExpense(ctx context.Context, id uuid.UUID, patch entity.ExpensePatch) (*entity.CarExpense, error) {
	return f.UpdateExpenseFn(ctx, id, patch)
}

func (f *fakeExpenseUsecase) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return f.DeleteExpenseFn(ctx, id)
}

func (f *fakeExpenseUsecase) GetExpensesByDateRange(ctx context.Context, start, end time.Time) ([]*entity.CarExpense, error) {
	return f.GetExpensesByDateRangeFn(ctx, start, end)
}

func (f *fakeExpenseUsecase) GetTotalExpenses(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (float64, error) {
	return f.GetTotalExpensesFn(ctx, carID, dateRange)
}

func (f *fakeExpenseUsecase) GetRecentExpenses(ctx context.Context, limit int) ([]*entity.CarExpense, error) {
	return f.GetRecentExpensesFn(ctx, limit)
}
