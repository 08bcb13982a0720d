package handler

import (
	"log/slog"
	"net/http"

	"drivelink/internal/delivery/http/response"
	"drivelink/internal/domain/entity"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CarHandler holds dependencies for fleet car handlers.
type CarHandler struct {
	uc     usecase.CarUsecase
	logger *slog.Logger
}

// NewCarHandler is the constructor for CarHandler, injected by Fx.
func NewCarHandler(uc usecase.CarUsecase, logger *slog.Logger) *CarHandler {
	return &CarHandler{
		uc:     uc,
		logger: logger,
	}
}

type createCarRequest struct {
	PlateNo  string `json:"plateNo" validate:"required"`
	LibreNo  string `json:"libreNo"`
	OwnerID  string `json:"ownerId" validate:"required,uuid"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Color    string `json:"color"`
	FuelType string `json:"fuelType"`
	Status   string `json:"status" validate:"omitempty,car_status"`
}

type updateCarRequest struct {
	PlateNo  *string `json:"plateNo"`
	LibreNo  *string `json:"libreNo"`
	Model    *string `json:"model"`
	Year     *int    `json:"year"`
	Color    *string `json:"color"`
	FuelType *string `json:"fuelType"`
	Status   *string `json:"status" validate:"omitempty,car_status"`
}

type assignDriverRequest struct {
	DriverID string `json:"driverId" validate:"required,uuid"`
}

type assignManagerRequest struct {
	ManagerID string `json:"managerId" validate:"required,uuid"`
}

// ListCars returns all cars, optionally filtered by status via ?status=.
func (h *CarHandler) ListCars(c echo.Context) error {
	if status := c.QueryParam("status"); status != "" {
		carStatus := entity.CarStatus(status)
		if !carStatus.IsValid() {
			return response.BadRequest(c, "INVALID_STATUS", "Unknown car status")
		}

		cars, err := h.uc.GetCarsByStatus(c.Request().Context(), carStatus)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, cars, "Cars retrieved successfully")
	}

	cars, err := h.uc.GetAllCars(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cars, "Cars retrieved successfully")
}

// GetCar returns a single car by ID.
func (h *CarHandler) GetCar(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid car ID")
	}

	car, err := h.uc.GetCarByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, car, "Car retrieved successfully")
}

// ListOwnerCars returns the cars owned by one user.
func (h *CarHandler) ListOwnerCars(c echo.Context) error {
	ownerUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid owner user ID")
	}

	cars, err := h.uc.GetCarsByOwner(c.Request().Context(), ownerUserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, cars, "Owner cars retrieved successfully")
}

// CreateCar registers a new car.
func (h *CarHandler) CreateCar(c echo.Context) error {
	var req createCarRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid car input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid owner record ID")
	}

	car, err := h.uc.CreateCar(c.Request().Context(), usecase.CreateCarInput{
		PlateNo:  req.PlateNo,
		LibreNo:  req.LibreNo,
		OwnerID:  ownerID,
		Model:    req.Model,
		Year:     req.Year,
		Color:    req.Color,
		FuelType: req.FuelType,
		Status:   entity.CarStatus(req.Status),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, car, "Car registered successfully")
}

// UpdateCar applies a partial update to a car.
func (h *CarHandler) UpdateCar(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid car ID")
	}

	var req updateCarRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid car input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	patch := entity.CarPatch{
		PlateNo:  req.PlateNo,
		LibreNo:  req.LibreNo,
		Model:    req.Model,
		Year:     req.Year,
		Color:    req.Color,
		FuelType: req.FuelType,
	}
	if req.Status != nil {
		status := entity.CarStatus(*req.Status)
		patch.Status = &status
	}

	car, err := h.uc.UpdateCar(c.Request().Context(), id, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, car, "Car updated successfully")
}

// DeleteCar removes a car from the fleet.
func (h *CarHandler) DeleteCar(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid car ID")
	}

	if err := h.uc.DeleteCar(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Car deleted"}, "Car deleted successfully")
}

// AssignDriver replaces the car's active driver assignment.
func (h *CarHandler) AssignDriver(c echo.Context) error {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid car ID")
	}

	var req assignDriverRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid assignment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	driverID, err := uuid.Parse(req.DriverID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid driver record ID")
	}

	assignment, err := h.uc.AssignDriver(c.Request().Context(), carID, driverID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, assignment, "Driver assigned successfully")
}

// AssignManager links a manager to a car.
func (h *CarHandler) AssignManager(c echo.Context) error {
	carID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid car ID")
	}

	var req assignManagerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid assignment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	managerID, err := uuid.Parse(req.ManagerID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid manager record ID")
	}

	assignment, err := h.uc.AssignManager(c.Request().Context(), carID, managerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, assignment, "Manager assigned successfully")
}
