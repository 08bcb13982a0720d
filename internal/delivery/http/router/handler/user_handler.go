package handler

import (
	"log/slog"
	"net/http"

	"drivelink/internal/delivery/http/middleware"
	"drivelink/internal/delivery/http/response"
	"drivelink/internal/domain/entity"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for people-directory handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

type updateLocationRequest struct {
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
}

// GetUser returns the merged profile+role view of one user.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	user, err := h.uc.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User retrieved successfully")
}

// ListUsers returns users, optionally filtered by ?role=.
func (h *UserHandler) ListUsers(c echo.Context) error {
	role := entity.Role(c.QueryParam("role"))
	if !role.IsValid() {
		return response.BadRequest(c, "INVALID_ROLE", "A valid role query parameter is required")
	}

	users, err := h.uc.GetUsersByRole(c.Request().Context(), role)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "Users retrieved successfully")
}

// ListDrivers returns every user holding the driver role.
func (h *UserHandler) ListDrivers(c echo.Context) error {
	users, err := h.uc.GetDrivers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "Drivers retrieved successfully")
}

// ListManagers returns every user holding the manager role.
func (h *UserHandler) ListManagers(c echo.Context) error {
	users, err := h.uc.GetManagers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "Managers retrieved successfully")
}

// ListOwners returns every user holding the owner role.
func (h *UserHandler) ListOwners(c echo.Context) error {
	users, err := h.uc.GetOwners(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "Owners retrieved successfully")
}

// GetDriverWithCar returns a driver and the car of their open assignment.
func (h *UserHandler) GetDriverWithCar(c echo.Context) error {
	driverUserID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	result, err := h.uc.GetDriverWithCar(c.Request().Context(), driverUserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Driver retrieved successfully")
}

// GetManagerWithCars returns a manager and the cars they are assigned to.
func (h *UserHandler) GetManagerWithCars(c echo.Context) error {
	managerUserID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	result, err := h.uc.GetManagerWithCars(c.Request().Context(), managerUserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Manager retrieved successfully")
}

// UpdateDriverLocation stores a driver's last reported position. A driver may
// only report their own; manager level and above may correct any record.
func (h *UserHandler) UpdateDriverLocation(c echo.Context) error {
	driverUserID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid user ID")
	}

	authUserID, _ := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	role, _ := c.Get(middleware.ContextKeyRole).(entity.Role)
	if driverUserID != authUserID && !entity.HasPermission(role, entity.RoleManager) {
		return response.Error(c, http.StatusForbidden, "FORBIDDEN", "You may only report your own position", "")
	}

	var req updateLocationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid location input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	position := orb.Point{req.Longitude, req.Latitude}
	if err := h.uc.UpdateDriverLocation(c.Request().Context(), driverUserID, position); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Location updated"}, "Location updated successfully")
}
