package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "drivelink/internal/delivery/context"
	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/repository"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	profileRepo    repository.ProfileRepository
	roleRepo       repository.RoleRepository
	memberRepo     repository.MemberRepository
	assignmentRepo repository.AssignmentRepository
	carRepo        repository.CarRepository
	logger         *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	ProfileRepo    repository.ProfileRepository
	RoleRepo       repository.RoleRepository
	MemberRepo     repository.MemberRepository
	AssignmentRepo repository.AssignmentRepository
	CarRepo        repository.CarRepository
	Logger         *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		profileRepo:    params.ProfileRepo,
		roleRepo:       params.RoleRepo,
		memberRepo:     params.MemberRepo,
		assignmentRepo: params.AssignmentRepo,
		carRepo:        params.CarRepo,
		logger:         params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetUserByID merges the profile and its bound role into the user read model.
// Accounts without a role row default to driver.
func (srv *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	profile, err := srv.profileRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	role, err := srv.roleRepo.FindRoleByUserID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrRoleNotFound) {
			return nil, errors.Wrap(err, "failed to load role")
		}
		role = entity.RoleDriver
	}

	return mergeUser(profile, role), nil
}

// GetDrivers lists every user holding the driver role.
func (srv *userService) GetDrivers(ctx context.Context) ([]*entity.User, error) {
	return srv.GetUsersByRole(ctx, entity.RoleDriver)
}

// GetManagers lists every user holding the manager role.
func (srv *userService) GetManagers(ctx context.Context) ([]*entity.User, error) {
	return srv.GetUsersByRole(ctx, entity.RoleManager)
}

// GetOwners lists every user holding the owner role.
func (srv *userService) GetOwners(ctx context.Context) ([]*entity.User, error) {
	return srv.GetUsersByRole(ctx, entity.RoleOwner)
}

// GetUsersByRole lists the merged read model for one role, newest first.
func (srv *userService) GetUsersByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	users, err := srv.roleRepo.ListUsersByRole(ctx, role)
	if err != nil {
		srv.log(ctx).Error("Failed to list users by role", slog.Any("role", role), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list users by role")
	}

	return users, nil
}

// GetDriverWithCar loads a driver and the car of their open assignment. A
// driver without an open assignment comes back with nil assignment and car.
func (srv *userService) GetDriverWithCar(ctx context.Context, driverUserID uuid.UUID) (*usecase.DriverWithCar, error) {
	user, err := srv.GetUserByID(ctx, driverUserID)
	if err != nil {
		return nil, err
	}

	driver, err := srv.memberRepo.FindDriverByUserID(ctx, driverUserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve driver record")
	}

	result := &usecase.DriverWithCar{
		User:   user,
		Driver: driver,
	}

	assignment, err := srv.assignmentRepo.FindActiveDriverAssignment(ctx, driver.ID)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return result, nil
		}

		return nil, errors.Wrap(err, "failed to find active assignment")
	}

	car, err := srv.carRepo.FindByID(ctx, assignment.CarID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load assigned car")
	}

	result.Assignment = assignment
	result.Car = car

	return result, nil
}

// GetManagerWithCars loads a manager and every car they are assigned to.
func (srv *userService) GetManagerWithCars(ctx context.Context, managerUserID uuid.UUID) (*usecase.ManagerWithCars, error) {
	user, err := srv.GetUserByID(ctx, managerUserID)
	if err != nil {
		return nil, err
	}

	manager, err := srv.memberRepo.FindManagerByUserID(ctx, managerUserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve manager record")
	}

	assignments, err := srv.assignmentRepo.ListManagerAssignmentsByManager(ctx, manager.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list manager assignments")
	}

	cars := make([]*entity.Car, 0, len(assignments))
	for _, assignment := range assignments {
		car, err := srv.carRepo.FindByID(ctx, assignment.CarID)
		if err != nil {
			// A deleted car leaves a dangling assignment row; skip it.
			if errors.Is(err, repository.ErrCarNotFound) {
				continue
			}

			return nil, errors.Wrap(err, "failed to load managed car")
		}
		cars = append(cars, car)
	}

	return &usecase.ManagerWithCars{
		User:    user,
		Manager: manager,
		Cars:    cars,
	}, nil
}

// UpdateDriverLocation stores a driver's last reported position.
func (srv *userService) UpdateDriverLocation(ctx context.Context, driverUserID uuid.UUID, position orb.Point) error {
	driver, err := srv.memberRepo.FindDriverByUserID(ctx, driverUserID)
	if err != nil {
		return errors.Wrap(err, "failed to resolve driver record")
	}

	if err := srv.memberRepo.UpdateDriverLocation(ctx, driver.ID, position, time.Now()); err != nil {
		srv.log(ctx).Error("Failed to update driver location", slog.Any("driverID", driver.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to update driver location")
	}

	return nil
}
