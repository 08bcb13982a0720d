package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "drivelink/internal/delivery/context"
	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/repository"
	"drivelink/internal/domain/service"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// carService implements the CarUsecase interface.
type carService struct {
	txManager      repository.TransactionManager
	carRepo        repository.CarRepository
	memberRepo     repository.MemberRepository
	eventPublisher service.EventPublisher
	logger         *slog.Logger
}

// CarServiceParams holds dependencies for carService, injected by Fx.
type CarServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	CarRepo        repository.CarRepository
	MemberRepo     repository.MemberRepository
	EventPublisher service.EventPublisher
	Logger         *slog.Logger
}

// NewCarService is the constructor for carService.
func NewCarService(params CarServiceParams) usecase.CarUsecase {
	return &carService{
		txManager:      params.TxManager,
		carRepo:        params.CarRepo,
		memberRepo:     params.MemberRepo,
		eventPublisher: params.EventPublisher,
		logger:         params.Logger,
	}
}

func (srv *carService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetAllCars returns every car in the fleet.
func (srv *carService) GetAllCars(ctx context.Context) ([]*entity.Car, error) {
	cars, err := srv.carRepo.ListAll(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list cars", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list cars")
	}

	return cars, nil
}

// GetCarByID retrieves a single car.
func (srv *carService) GetCarByID(ctx context.Context, id uuid.UUID) (*entity.Car, error) {
	car, err := srv.carRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find car")
	}

	return car, nil
}

// GetCarsByOwner resolves the owner record for the user, then lists that
// record's cars.
func (srv *carService) GetCarsByOwner(ctx context.Context, ownerUserID uuid.UUID) ([]*entity.Car, error) {
	owner, err := srv.memberRepo.FindOwnerByUserID(ctx, ownerUserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve owner record")
	}

	cars, err := srv.carRepo.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list owner cars")
	}

	return cars, nil
}

// GetCarsByStatus returns the cars currently in the given status.
func (srv *carService) GetCarsByStatus(ctx context.Context, status entity.CarStatus) ([]*entity.Car, error) {
	cars, err := srv.carRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cars by status")
	}

	return cars, nil
}

// CreateCar registers a new car for an owner record.
func (srv *carService) CreateCar(ctx context.Context, input usecase.CreateCarInput) (*entity.Car, error) {
	srv.log(ctx).Info("Creating car", slog.String("plateNo", input.PlateNo), slog.Any("ownerID", input.OwnerID))

	status := input.Status
	if status == "" {
		status = entity.CarStatusAvailable
	}

	car := &entity.Car{
		PlateNo:  input.PlateNo,
		LibreNo:  input.LibreNo,
		OwnerID:  input.OwnerID,
		Model:    input.Model,
		Year:     input.Year,
		Color:    input.Color,
		FuelType: input.FuelType,
		Status:   status,
	}

	if err := srv.carRepo.Create(ctx, car); err != nil {
		srv.log(ctx).Error("Failed to create car", slog.String("plateNo", input.PlateNo), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create car")
	}

	return car, nil
}

// UpdateCar applies a patch and returns the stored row. A status change is
// published as a fleet event.
func (srv *carService) UpdateCar(ctx context.Context, id uuid.UUID, patch entity.CarPatch) (*entity.Car, error) {
	srv.log(ctx).Debug("Updating car", slog.Any("carID", id))

	car, err := srv.carRepo.Update(ctx, id, patch)
	if err != nil {
		srv.log(ctx).Error("Failed to update car", slog.Any("carID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update car")
	}

	if patch.Status != nil {
		srv.publishEvent(ctx, &service.FleetEvent{
			Type:       service.FleetEventCarStatusChanged,
			CarID:      car.ID,
			Status:     car.Status.String(),
			OccurredAt: time.Now(),
		})
	}

	return car, nil
}

// DeleteCar removes the car row permanently.
func (srv *carService) DeleteCar(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting car", slog.Any("carID", id))

	if err := srv.carRepo.Delete(ctx, id); err != nil {
		srv.log(ctx).Error("Failed to delete car", slog.Any("carID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete car")
	}

	return nil
}

// AssignDriver closes any open driver assignment of the car and opens a new
// one, all in one transaction. The partial unique index on car_drivers is the
// backstop against concurrent assigns.
func (srv *carService) AssignDriver(ctx context.Context, carID, driverID uuid.UUID) (*entity.CarDriverAssignment, error) {
	srv.log(ctx).Info("Assigning driver", slog.Any("carID", carID), slog.Any("driverID", driverID))

	now := time.Now()

	var (
		assignment *entity.CarDriverAssignment
		closed     int
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		carRepo := repoFactory.CarRepo()
		assignmentRepo := repoFactory.AssignmentRepo()

		// The car must exist before anything is closed or opened.
		if _, err := carRepo.FindByID(ctx, carID); err != nil {
			return errors.Wrap(err, "failed to find car for assignment")
		}

		var err error
		closed, err = assignmentRepo.CloseActiveDriverAssignments(ctx, carID, now)
		if err != nil {
			return errors.Wrap(err, "failed to close previous assignments")
		}

		assignment, err = assignmentRepo.CreateDriverAssignment(ctx, carID, driverID, now)
		if err != nil {
			return errors.Wrap(err, "failed to open driver assignment")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute driver assignment transaction",
			slog.Any("carID", carID), slog.Any("driverID", driverID), slog.Any("error", err))

		return nil, err
	}

	if closed > 0 {
		srv.publishEvent(ctx, &service.FleetEvent{
			Type:       service.FleetEventDriverUnassigned,
			CarID:      carID,
			OccurredAt: now,
		})
	}
	srv.publishEvent(ctx, &service.FleetEvent{
		Type:       service.FleetEventDriverAssigned,
		CarID:      carID,
		DriverID:   driverID,
		OccurredAt: now,
	})

	return assignment, nil
}

// AssignManager links a manager record to a car.
func (srv *carService) AssignManager(ctx context.Context, carID, managerID uuid.UUID) (*entity.CarManagerAssignment, error) {
	srv.log(ctx).Info("Assigning manager", slog.Any("carID", carID), slog.Any("managerID", managerID))

	now := time.Now()

	var assignment *entity.CarManagerAssignment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		carRepo := repoFactory.CarRepo()
		assignmentRepo := repoFactory.AssignmentRepo()

		if _, err := carRepo.FindByID(ctx, carID); err != nil {
			return errors.Wrap(err, "failed to find car for assignment")
		}

		var err error
		assignment, err = assignmentRepo.CreateManagerAssignment(ctx, carID, managerID, now)
		if err != nil {
			return errors.Wrap(err, "failed to create manager assignment")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute manager assignment transaction",
			slog.Any("carID", carID), slog.Any("managerID", managerID), slog.Any("error", err))

		return nil, err
	}

	srv.publishEvent(ctx, &service.FleetEvent{
		Type:       service.FleetEventManagerAssigned,
		CarID:      carID,
		ManagerID:  managerID,
		OccurredAt: now,
	})

	return assignment, nil
}

// publishEvent publishes a fleet event after the owning transaction commits.
// Publishing is best-effort: a broker failure never fails the operation.
func (srv *carService) publishEvent(ctx context.Context, event *service.FleetEvent) {
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)

	if err := srv.eventPublisher.PublishFleetEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish fleet event",
			slog.String("event_type", event.Type), slog.Any("error", err))
	}
}
