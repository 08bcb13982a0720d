// Package repository contains hand-written testify doubles for the
// persistence interfaces.
package repository

import (
	"context"
	"testing"
	"time"

	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/mock"
)

// MockTransactionManager is a mock for repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates the mock and asserts expectations on cleanup.
func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Execute supports two return styles: a plain error, or a function with the
// same signature that is invoked with the real callback so its error
// propagates to the caller.
func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	if run, ok := args.Get(0).(func(context.Context, func(repository.RepositoryFactory) error) error); ok {
		return run(ctx, fn)
	}

	return args.Error(0)
}

// MockRepositoryFactory is a mock for repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) ProfileRepo() repository.ProfileRepository {
	return m.Called().Get(0).(repository.ProfileRepository)
}

func (m *MockRepositoryFactory) AuthRepo() repository.AuthRepository {
	return m.Called().Get(0).(repository.AuthRepository)
}

func (m *MockRepositoryFactory) RoleRepo() repository.RoleRepository {
	return m.Called().Get(0).(repository.RoleRepository)
}

func (m *MockRepositoryFactory) MemberRepo() repository.MemberRepository {
	return m.Called().Get(0).(repository.MemberRepository)
}

func (m *MockRepositoryFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return m.Called().Get(0).(repository.RefreshTokenRepository)
}

func (m *MockRepositoryFactory) CarRepo() repository.CarRepository {
	return m.Called().Get(0).(repository.CarRepository)
}

func (m *MockRepositoryFactory) AssignmentRepo() repository.AssignmentRepository {
	return m.Called().Get(0).(repository.AssignmentRepository)
}

func (m *MockRepositoryFactory) RevenueRepo() repository.RevenueRepository {
	return m.Called().Get(0).(repository.RevenueRepository)
}

func (m *MockRepositoryFactory) ExpenseRepo() repository.ExpenseRepository {
	return m.Called().Get(0).(repository.ExpenseRepository)
}

// MockProfileRepository is a mock for repository.ProfileRepository.
type MockProfileRepository struct {
	mock.Mock
}

func NewMockProfileRepository(t *testing.T) *MockProfileRepository {
	m := &MockProfileRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	args := m.Called(ctx, id)
	if profile, ok := args.Get(0).(*entity.Profile); ok {
		return profile, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	args := m.Called(ctx, email)
	if profile, ok := args.Get(0).(*entity.Profile); ok {
		return profile, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, id uuid.UUID, patch entity.ProfilePatch) (*entity.Profile, error) {
	args := m.Called(ctx, id, patch)
	if profile, ok := args.Get(0).(*entity.Profile); ok {
		return profile, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockAuthRepository is a mock for repository.AuthRepository.
type MockAuthRepository struct {
	mock.Mock
}

func NewMockAuthRepository(t *testing.T) *MockAuthRepository {
	m := &MockAuthRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	return m.Called(ctx, auth).Error(0)
}

func (m *MockAuthRepository) FindAuthenticationByEmail(ctx context.Context, email string) (*entity.Authentication, error) {
	args := m.Called(ctx, email)
	if auth, ok := args.Get(0).(*entity.Authentication); ok {
		return auth, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockRoleRepository is a mock for repository.RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

func NewMockRoleRepository(t *testing.T) *MockRoleRepository {
	m := &MockRoleRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRoleRepository) CreateRole(ctx context.Context, userID uuid.UUID, role entity.Role) error {
	return m.Called(ctx, userID, role).Error(0)
}

func (m *MockRoleRepository) FindRoleByUserID(ctx context.Context, userID uuid.UUID) (entity.Role, error) {
	args := m.Called(ctx, userID)

	return args.Get(0).(entity.Role), args.Error(1)
}

func (m *MockRoleRepository) ListUsersByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	args := m.Called(ctx, role)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockMemberRepository is a mock for repository.MemberRepository.
type MockMemberRepository struct {
	mock.Mock
}

func NewMockMemberRepository(t *testing.T) *MockMemberRepository {
	m := &MockMemberRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMemberRepository) CreateOwner(ctx context.Context, userID uuid.UUID) (*entity.OwnerRecord, error) {
	args := m.Called(ctx, userID)
	if record, ok := args.Get(0).(*entity.OwnerRecord); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMemberRepository) CreateManager(ctx context.Context, userID uuid.UUID) (*entity.ManagerRecord, error) {
	args := m.Called(ctx, userID)
	if record, ok := args.Get(0).(*entity.ManagerRecord); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMemberRepository) CreateDriver(ctx context.Context, userID uuid.UUID) (*entity.DriverRecord, error) {
	args := m.Called(ctx, userID)
	if record, ok := args.Get(0).(*entity.DriverRecord); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMemberRepository) FindOwnerByUserID(ctx context.Context, userID uuid.UUID) (*entity.OwnerRecord, error) {
	args := m.Called(ctx, userID)
	if record, ok := args.Get(0).(*entity.OwnerRecord); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMemberRepository) FindManagerByUserID(ctx context.Context, userID uuid.UUID) (*entity.ManagerRecord, error) {
	args := m.Called(ctx, userID)
	if record, ok := args.Get(0).(*entity.ManagerRecord); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMemberRepository) FindDriverByUserID(ctx context.Context, userID uuid.UUID) (*entity.DriverRecord, error) {
	args := m.Called(ctx, userID)
	if record, ok := args.Get(0).(*entity.DriverRecord); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMemberRepository) ListOwners(ctx context.Context) ([]*entity.OwnerRecord, error) {
	args := m.Called(ctx)
	if records, ok := args.Get(0).([]*entity.OwnerRecord); ok {
		return records, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMemberRepository) ListManagers(ctx context.Context) ([]*entity.ManagerRecord, error) {
	args := m.Called(ctx)
	if records, ok := args.Get(0).([]*entity.ManagerRecord); ok {
		return records, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMemberRepository) ListDrivers(ctx context.Context) ([]*entity.DriverRecord, error) {
	args := m.Called(ctx)
	if records, ok := args.Get(0).([]*entity.DriverRecord); ok {
		return records, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockMemberRepository) UpdateDriverLocation(ctx context.Context, driverID uuid.UUID, position orb.Point, reportedAt time.Time) error {
	return m.Called(ctx, driverID, position, reportedAt).Error(0)
}

// MockRefreshTokenRepository is a mock for repository.RefreshTokenRepository.
type MockRefreshTokenRepository struct {
	mock.Mock
}

func NewMockRefreshTokenRepository(t *testing.T) *MockRefreshTokenRepository {
	m := &MockRefreshTokenRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRefreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, hash string) (*entity.RefreshToken, error) {
	args := m.Called(ctx, hash)
	if token, ok := args.Get(0).(*entity.RefreshToken); ok {
		return token, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, hash string) error {
	return m.Called(ctx, hash).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

// MockCarRepository is a mock for repository.CarRepository.
type MockCarRepository struct {
	mock.Mock
}

func NewMockCarRepository(t *testing.T) *MockCarRepository {
	m := &MockCarRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockCarRepository) ListAll(ctx context.Context) ([]*entity.Car, error) {
	args := m.Called(ctx)
	if cars, ok := args.Get(0).([]*entity.Car); ok {
		return cars, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCarRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	args := m.Called(ctx, id)
	if car, ok := args.Get(0).(*entity.Car); ok {
		return car, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCarRepository) ListByOwner(ctx context.Context, ownerRecordID uuid.UUID) ([]*entity.Car, error) {
	args := m.Called(ctx, ownerRecordID)
	if cars, ok := args.Get(0).([]*entity.Car); ok {
		return cars, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCarRepository) ListByStatus(ctx context.Context, status entity.CarStatus) ([]*entity.Car, error) {
	args := m.Called(ctx, status)
	if cars, ok := args.Get(0).([]*entity.Car); ok {
		return cars, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCarRepository) Create(ctx context.Context, car *entity.Car) error {
	return m.Called(ctx, car).Error(0)
}

func (m *MockCarRepository) Update(ctx context.Context, id uuid.UUID, patch entity.CarPatch) (*entity.Car, error) {
	args := m.Called(ctx, id, patch)
	if car, ok := args.Get(0).(*entity.Car); ok {
		return car, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockAssignmentRepository is a mock for repository.AssignmentRepository.
type MockAssignmentRepository struct {
	mock.Mock
}

func NewMockAssignmentRepository(t *testing.T) *MockAssignmentRepository {
	m := &MockAssignmentRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAssignmentRepository) CloseActiveDriverAssignments(ctx context.Context, carID uuid.UUID, at time.Time) (int, error) {
	args := m.Called(ctx, carID, at)

	return args.Int(0), args.Error(1)
}

func (m *MockAssignmentRepository) CreateDriverAssignment(ctx context.Context, carID, driverID uuid.UUID, at time.Time) (*entity.CarDriverAssignment, error) {
	args := m.Called(ctx, carID, driverID, at)
	if assignment, ok := args.Get(0).(*entity.CarDriverAssignment); ok {
		return assignment, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) ListDriverAssignmentsByCar(ctx context.Context, carID uuid.UUID, activeOnly bool) ([]*entity.CarDriverAssignment, error) {
	args := m.Called(ctx, carID, activeOnly)
	if assignments, ok := args.Get(0).([]*entity.CarDriverAssignment); ok {
		return assignments, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) FindActiveDriverAssignment(ctx context.Context, driverID uuid.UUID) (*entity.CarDriverAssignment, error) {
	args := m.Called(ctx, driverID)
	if assignment, ok := args.Get(0).(*entity.CarDriverAssignment); ok {
		return assignment, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) CreateManagerAssignment(ctx context.Context, carID, managerID uuid.UUID, at time.Time) (*entity.CarManagerAssignment, error) {
	args := m.Called(ctx, carID, managerID, at)
	if assignment, ok := args.Get(0).(*entity.CarManagerAssignment); ok {
		return assignment, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockAssignmentRepository) ListManagerAssignmentsByManager(ctx context.Context, managerID uuid.UUID) ([]*entity.CarManagerAssignment, error) {
	args := m.Called(ctx, managerID)
	if assignments, ok := args.Get(0).([]*entity.CarManagerAssignment); ok {
		return assignments, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockRevenueRepository is a mock for repository.RevenueRepository.
type MockRevenueRepository struct {
	mock.Mock
}

func NewMockRevenueRepository(t *testing.T) *MockRevenueRepository {
	m := &MockRevenueRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRevenueRepository) ListByCar(ctx context.Context, carID uuid.UUID) ([]*entity.CarRevenue, error) {
	args := m.Called(ctx, carID)
	if entries, ok := args.Get(0).([]*entity.CarRevenue); ok {
		return entries, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRevenueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CarRevenue, error) {
	args := m.Called(ctx, id)
	if entry, ok := args.Get(0).(*entity.CarRevenue); ok {
		return entry, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRevenueRepository) Create(ctx context.Context, revenue *entity.CarRevenue) error {
	return m.Called(ctx, revenue).Error(0)
}

func (m *MockRevenueRepository) Update(ctx context.Context, id uuid.UUID, patch entity.RevenuePatch) (*entity.CarRevenue, error) {
	args := m.Called(ctx, id, patch)
	if entry, ok := args.Get(0).(*entity.CarRevenue); ok {
		return entry, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRevenueRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRevenueRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.CarRevenue, error) {
	args := m.Called(ctx, start, end)
	if entries, ok := args.Get(0).([]*entity.CarRevenue); ok {
		return entries, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockRevenueRepository) SumByCar(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (float64, error) {
	args := m.Called(ctx, carID, dateRange)

	return args.Get(0).(float64), args.Error(1)
}

func (m *MockRevenueRepository) ListRecent(ctx context.Context, limit int) ([]*entity.CarRevenue, error) {
	args := m.Called(ctx, limit)
	if entries, ok := args.Get(0).([]*entity.CarRevenue); ok {
		return entries, args.Error(1)
	}

	return nil, args.Error(1)
}

// MockExpenseRepository is a mock for repository.ExpenseRepository.
type MockExpenseRepository struct {
	mock.Mock
}

func NewMockExpenseRepository(t *testing.T) *MockExpenseRepository {
	m := &MockExpenseRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockExpenseRepository) ListByCar(ctx context.Context, carID uuid.UUID) ([]*entity.CarExpense, error) {
	args := m.Called(ctx, carID)
	if entries, ok := args.Get(0).([]*entity.CarExpense); ok {
		return entries, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CarExpense, error) {
	args := m.Called(ctx, id)
	if entry, ok := args.Get(0).(*entity.CarExpense); ok {
		return entry, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockExpenseRepository) Create(ctx context.Context, expense *entity.CarExpense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *MockExpenseRepository) Update(ctx context.Context, id uuid.UUID, patch entity.ExpensePatch) (*entity.CarExpense, error) {
	args := m.Called(ctx, id, patch)
	if entry, ok := args.Get(0).(*entity.CarExpense); ok {
		return entry, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockExpenseRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.CarExpense, error) {
	args := m.Called(ctx, start, end)
	if entries, ok := args.Get(0).([]*entity.CarExpense); ok {
		return entries, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockExpenseRepository) SumByCar(ctx context.Context, carID uuid.UUID, dateRange repository.DateRange) (float64, error) {
	args := m.Called(ctx, carID, dateRange)

	return args.Get(0).(float64), args.Error(1)
}

func (m *MockExpenseRepository) ListRecent(ctx context.Context, limit int) ([]*entity.CarExpense, error) {
	args := m.Called(ctx, limit)
	if entries, ok := args.Get(0).([]*entity.CarExpense); ok {
		return entries, args.Error(1)
	}

	return nil, args.Error(1)
}
