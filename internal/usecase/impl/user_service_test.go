package impl

import (
	"context"
	"testing"

	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/repository"
	mockRepo "drivelink/internal/mocks/repository"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userServiceFixtures struct {
	profileRepo    *mockRepo.MockProfileRepository
	roleRepo       *mockRepo.MockRoleRepository
	memberRepo     *mockRepo.MockMemberRepository
	assignmentRepo *mockRepo.MockAssignmentRepository
	carRepo        *mockRepo.MockCarRepository
	service        usecase.UserUsecase
}

func newUserServiceFixtures(t *testing.T) *userServiceFixtures {
	f := &userServiceFixtures{
		profileRepo:    mockRepo.NewMockProfileRepository(t),
		roleRepo:       mockRepo.NewMockRoleRepository(t),
		memberRepo:     mockRepo.NewMockMemberRepository(t),
		assignmentRepo: mockRepo.NewMockAssignmentRepository(t),
		carRepo:        mockRepo.NewMockCarRepository(t),
	}
	f.service = NewUserService(UserServiceParams{
		ProfileRepo:    f.profileRepo,
		RoleRepo:       f.roleRepo,
		MemberRepo:     f.memberRepo,
		AssignmentRepo: f.assignmentRepo,
		CarRepo:        f.carRepo,
		Logger:         newDiscardLogger(),
	})

	return f
}

func TestUserService_GetUserByID_MergesProfileAndRole(t *testing.T) {
	f := newUserServiceFixtures(t)
	ctx := context.Background()
	userID := uuid.New()

	f.profileRepo.On("FindByID", ctx, userID).
		Return(&entity.Profile{ID: userID, Email: "owner@fleet.dev", FullName: "Owner"}, nil)
	f.roleRepo.On("FindRoleByUserID", ctx, userID).Return(entity.RoleOwner, nil)

	user, err := f.service.GetUserByID(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, entity.RoleOwner, user.Role)
	assert.Equal(t, "owner@fleet.dev", user.Email)
}

func TestUserService_GetUserByID_MissingRoleDefaultsToDriver(t *testing.T) {
	f := newUserServiceFixtures(t)
	ctx := context.Background()
	userID := uuid.New()

	f.profileRepo.On("FindByID", ctx, userID).Return(&entity.Profile{ID: userID}, nil)
	f.roleRepo.On("FindRoleByUserID", ctx, userID).Return(entity.Role(""), repository.ErrRoleNotFound)

	user, err := f.service.GetUserByID(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleDriver, user.Role)
}

func TestUserService_GetDriverWithCar_NoOpenAssignment(t *testing.T) {
	f := newUserServiceFixtures(t)
	ctx := context.Background()
	userID := uuid.New()
	driverRecordID := uuid.New()

	f.profileRepo.On("FindByID", ctx, userID).Return(&entity.Profile{ID: userID}, nil)
	f.roleRepo.On("FindRoleByUserID", ctx, userID).Return(entity.RoleDriver, nil)
	f.memberRepo.On("FindDriverByUserID", ctx, userID).
		Return(&entity.DriverRecord{ID: driverRecordID, UserID: userID}, nil)
	f.assignmentRepo.On("FindActiveDriverAssignment", ctx, driverRecordID).
		Return(nil, repository.ErrAssignmentNotFound)

	result, err := f.service.GetDriverWithCar(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, result.User.ID)
	assert.Nil(t, result.Assignment)
	assert.Nil(t, result.Car)
}

func TestUserService_GetDriverWithCar_WithOpenAssignment(t *testing.T) {
	f := newUserServiceFixtures(t)
	ctx := context.Background()
	userID := uuid.New()
	driverRecordID := uuid.New()
	carID := uuid.New()

	f.profileRepo.On("FindByID", ctx, userID).Return(&entity.Profile{ID: userID}, nil)
	f.roleRepo.On("FindRoleByUserID", ctx, userID).Return(entity.RoleDriver, nil)
	f.memberRepo.On("FindDriverByUserID", ctx, userID).
		Return(&entity.DriverRecord{ID: driverRecordID, UserID: userID}, nil)
	f.assignmentRepo.On("FindActiveDriverAssignment", ctx, driverRecordID).
		Return(&entity.CarDriverAssignment{ID: uuid.New(), CarID: carID, DriverID: driverRecordID}, nil)
	f.carRepo.On("FindByID", ctx, carID).Return(&entity.Car{ID: carID, PlateNo: "AA-12345"}, nil)

	result, err := f.service.GetDriverWithCar(ctx, userID)

	require.NoError(t, err)
	require.NotNil(t, result.Car)
	assert.Equal(t, "AA-12345", result.Car.PlateNo)
	assert.True(t, result.Assignment.Active())
}

func TestUserService_GetManagerWithCars_SkipsDanglingAssignments(t *testing.T) {
	f := newUserServiceFixtures(t)
	ctx := context.Background()
	userID := uuid.New()
	managerRecordID := uuid.New()
	liveCarID := uuid.New()
	deletedCarID := uuid.New()

	f.profileRepo.On("FindByID", ctx, userID).Return(&entity.Profile{ID: userID}, nil)
	f.roleRepo.On("FindRoleByUserID", ctx, userID).Return(entity.RoleManager, nil)
	f.memberRepo.On("FindManagerByUserID", ctx, userID).
		Return(&entity.ManagerRecord{ID: managerRecordID, UserID: userID}, nil)
	f.assignmentRepo.On("ListManagerAssignmentsByManager", ctx, managerRecordID).
		Return([]*entity.CarManagerAssignment{
			{ID: uuid.New(), CarID: liveCarID, ManagerID: managerRecordID},
			{ID: uuid.New(), CarID: deletedCarID, ManagerID: managerRecordID},
		}, nil)
	f.carRepo.On("FindByID", ctx, liveCarID).Return(&entity.Car{ID: liveCarID}, nil)
	f.carRepo.On("FindByID", ctx, deletedCarID).Return(nil, repository.ErrCarNotFound)

	result, err := f.service.GetManagerWithCars(ctx, userID)

	require.NoError(t, err)
	require.Len(t, result.Cars, 1)
	assert.Equal(t, liveCarID, result.Cars[0].ID)
}

func TestUserService_UpdateDriverLocation(t *testing.T) {
	f := newUserServiceFixtures(t)
	ctx := context.Background()
	userID := uuid.New()
	driverRecordID := uuid.New()
	position := orb.Point{38.7578, 9.0301}

	f.memberRepo.On("FindDriverByUserID", ctx, userID).
		Return(&entity.DriverRecord{ID: driverRecordID, UserID: userID}, nil)
	f.memberRepo.On("UpdateDriverLocation", ctx, driverRecordID, position, mock.AnythingOfType("time.Time")).
		Return(nil)

	err := f.service.UpdateDriverLocation(ctx, userID, position)

	require.NoError(t, err)
}

func TestUserService_GetUsersByRole(t *testing.T) {
	f := newUserServiceFixtures(t)
	ctx := context.Background()

	f.roleRepo.On("ListUsersByRole", ctx, entity.RoleDriver).
		Return([]*entity.User{{ID: uuid.New(), Role: entity.RoleDriver}}, nil)

	users, err := f.service.GetDrivers(ctx)

	require.NoError(t, err)
	assert.Len(t, users, 1)
}
