package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"drivelink/internal/delivery/http/middleware"
	"drivelink/internal/delivery/http/response"
	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/repository"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// defaultRecentLimit caps how many recent finance entries are returned when
// the client does not ask for a specific count.
const defaultRecentLimit = 10

// FinanceHandler holds dependencies for revenue and expense handlers.
type FinanceHandler struct {
	revenueUC usecase.RevenueUsecase
	expenseUC usecase.ExpenseUsecase
	logger    *slog.Logger
}

// NewFinanceHandler is the constructor for FinanceHandler, injected by Fx.
func NewFinanceHandler(revenueUC usecase.RevenueUsecase, expenseUC usecase.ExpenseUsecase, logger *slog.Logger) *FinanceHandler {
	return &FinanceHandler{
		revenueUC: revenueUC,
		expenseUC: expenseUC,
		logger:    logger,
	}
}

type createRevenueRequest struct {
	CarID       string  `json:"carId" validate:"required,uuid"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Source      string  `json:"source" validate:"required"`
	RevenueDate string  `json:"revenueDate"`
	Notes       string  `json:"notes"`
	TripID      string  `json:"tripId"`
}

type updateRevenueRequest struct {
	Amount      *float64 `json:"amount" validate:"omitempty,gt=0"`
	Source      *string  `json:"source"`
	RevenueDate *string  `json:"revenueDate"`
	Notes       *string  `json:"notes"`
	TripID      *string  `json:"tripId"`
}

type createExpenseRequest struct {
	CarID       string  `json:"carId" validate:"required,uuid"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	ExpenseDate string  `json:"expenseDate"`
	Description string  `json:"description"`
	ReceiptURL  string  `json:"receiptUrl"`
}

type updateExpenseRequest struct {
	Amount      *float64 `json:"amount" validate:"omitempty,gt=0"`
	Category    *string  `json:"category"`
	ExpenseDate *string  `json:"expenseDate"`
	Description *string  `json:"description"`
	ReceiptURL  *string  `json:"receiptUrl"`
}

// parseFinanceDate accepts both RFC3339 timestamps and bare dates.
func parseFinanceDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", value)
}

// dateRangeFromQuery builds the optional aggregation window from ?start= and
// ?end= query parameters.
func dateRangeFromQuery(c echo.Context) (repository.DateRange, error) {
	var dateRange repository.DateRange

	if start := c.QueryParam("start"); start != "" {
		t, err := parseFinanceDate(start)
		if err != nil {
			return dateRange, errors.Wrap(err, "invalid start date")
		}
		dateRange.Start = &t
	}
	if end := c.QueryParam("end"); end != "" {
		t, err := parseFinanceDate(end)
		if err != nil {
			return dateRange, errors.Wrap(err, "invalid end date")
		}
		dateRange.End = &t
	}

	return dateRange, nil
}

// windowFromQuery reads the mandatory ?start= and ?end= query parameters of
// the cross-car date-range listings.
func windowFromQuery(c echo.Context) (time.Time, time.Time, error) {
	start, err := parseFinanceDate(c.QueryParam("start"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "invalid start date")
	}

	end, err := parseFinanceDate(c.QueryParam("end"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "invalid end date")
	}

	return start, end, nil
}

// recentLimitFromQuery reads ?limit=, falling back to the default cap.
func recentLimitFromQuery(c echo.Context) int {
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			return limit
		}
	}

	return defaultRecentLimit
}

// --- Revenue handlers ---

// ListCarRevenue returns a car's revenue entries, newest first.
func (h *FinanceHandler) ListCarRevenue(c echo.Context) error {
	carID, err := uuid.Parse(c.Param("carId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid car ID")
	}

	revenues, err := h.revenueUC.GetCarRevenue(c.Request().Context(), carID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, revenues, "Revenue retrieved successfully")
}

// ListRecentRevenue returns the latest revenue entries across all cars.
func (h *FinanceHandler) ListRecentRevenue(c echo.Context) error {
	revenues, err := h.revenueUC.GetRecentRevenue(c.Request().Context(), recentLimitFromQuery(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, revenues, "Recent revenue retrieved successfully")
}

// ListRevenueByDateRange returns revenue entries across all cars logged
// between ?start= and ?end=.
func (h *FinanceHandler) ListRevenueByDateRange(c echo.Context) error {
	start, end, err := windowFromQuery(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_DATE", err.Error())
	}

	revenues, err := h.revenueUC.GetRevenueByDateRange(c.Request().Context(), start, end)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, revenues, "Revenue retrieved successfully")
}

// CreateRevenue logs a revenue entry against a car.
func (h *FinanceHandler) CreateRevenue(c echo.Context) error {
	var req createRevenueRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid revenue input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid car ID")
	}

	source := entity.RevenueSource(req.Source)
	if !source.IsValid() {
		return response.BadRequest(c, "INVALID_SOURCE", "Unknown revenue source")
	}

	input := usecase.CreateRevenueInput{
		CarID:  carID,
		Amount: req.Amount,
		Source: source,
		Notes:  req.Notes,
		TripID: req.TripID,
	}
	if req.RevenueDate != "" {
		date, err := parseFinanceDate(req.RevenueDate)
		if err != nil {
			return response.BadRequest(c, "INVALID_DATE", "Invalid revenue date")
		}
		input.RevenueDate = date
	}
	if userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID); ok {
		input.CreatedBy = userID
	}

	revenue, err := h.revenueUC.CreateRevenue(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, revenue, "Revenue logged successfully")
}

// UpdateRevenue applies a partial update to a revenue entry.
func (h *FinanceHandler) UpdateRevenue(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid revenue ID")
	}

	var req updateRevenueRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid revenue input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	patch := entity.RevenuePatch{
		Amount: req.Amount,
		Notes:  req.Notes,
		TripID: req.TripID,
	}
	if req.Source != nil {
		source := entity.RevenueSource(*req.Source)
		if !source.IsValid() {
			return response.BadRequest(c, "INVALID_SOURCE", "Unknown revenue source")
		}
		patch.Source = &source
	}
	if req.RevenueDate != nil {
		date, err := parseFinanceDate(*req.RevenueDate)
		if err != nil {
			return response.BadRequest(c, "INVALID_DATE", "Invalid revenue date")
		}
		patch.RevenueDate = &date
	}

	revenue, err := h.revenueUC.UpdateRevenue(c.Request().Context(), id, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, revenue, "Revenue updated successfully")
}

// DeleteRevenue removes a revenue entry.
func (h *FinanceHandler) DeleteRevenue(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid revenue ID")
	}

	if err := h.revenueUC.DeleteRevenue(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Revenue deleted"}, "Revenue deleted successfully")
}

// GetTotalRevenue returns the server-side revenue sum for one car.
func (h *FinanceHandler) GetTotalRevenue(c echo.Context) error {
	carID, err := uuid.Parse(c.Param("carId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid car ID")
	}

	dateRange, err := dateRangeFromQuery(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_DATE", err.Error())
	}

	total, err := h.revenueUC.GetTotalRevenue(c.Request().Context(), carID, dateRange)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]float64{"total": total}, "Total revenue computed successfully")
}

// GetProfitLoss returns the derived financial summary for one car.
func (h *FinanceHandler) GetProfitLoss(c echo.Context) error {
	carID, err := uuid.Parse(c.Param("carId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid car ID")
	}

	dateRange, err := dateRangeFromQuery(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_DATE", err.Error())
	}

	profitLoss, err := h.revenueUC.GetProfitLoss(c.Request().Context(), carID, dateRange)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profitLoss, "Profit/loss computed successfully")
}

// --- Expense handlers ---

// ListCarExpenses returns a car's expense entries, newest first.
func (h *FinanceHandler) ListCarExpenses(c echo.Context) error {
	carID, err := uuid.Parse(c.Param("carId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid car ID")
	}

	expenses, err := h.expenseUC.GetCarExpenses(c.Request().Context(), carID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, expenses, "Expenses retrieved successfully")
}

// ListRecentExpenses returns the latest expense entries across all cars.
func (h *FinanceHandler) ListRecentExpenses(c echo.Context) error {
	expenses, err := h.expenseUC.GetRecentExpenses(c.Request().Context(), recentLimitFromQuery(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, expenses, "Recent expenses retrieved successfully")
}

// ListExpensesByDateRange returns expense entries across all cars logged
// between ?start= and ?end=.
func (h *FinanceHandler) ListExpensesByDateRange(c echo.Context) error {
	start, end, err := windowFromQuery(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_DATE", err.Error())
	}

	expenses, err := h.expenseUC.GetExpensesByDateRange(c.Request().Context(), start, end)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, expenses, "Expenses retrieved successfully")
}

// CreateExpense logs an expense entry against a car.
func (h *FinanceHandler) CreateExpense(c echo.Context) error {
	var req createExpenseRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid expense input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid car ID")
	}

	category := entity.ExpenseCategory(req.Category)
	if !category.IsValid() {
		return response.BadRequest(c, "INVALID_CATEGORY", "Unknown expense category")
	}

	input := usecase.CreateExpenseInput{
		CarID:       carID,
		Amount:      req.Amount,
		Category:    category,
		Description: req.Description,
		ReceiptURL:  req.ReceiptURL,
	}
	if req.ExpenseDate != "" {
		date, err := parseFinanceDate(req.ExpenseDate)
		if err != nil {
			return response.BadRequest(c, "INVALID_DATE", "Invalid expense date")
		}
		input.ExpenseDate = date
	}
	if userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID); ok {
		input.CreatedBy = userID
	}

	expense, err := h.expenseUC.CreateExpense(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, expense, "Expense logged successfully")
}

// UpdateExpense applies a partial update to an expense entry.
func (h *FinanceHandler) UpdateExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid expense ID")
	}

	var req updateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid expense input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	patch := entity.ExpensePatch{
		Amount:      req.Amount,
		Description: req.Description,
		ReceiptURL:  req.ReceiptURL,
	}
	if req.Category != nil {
		category := entity.ExpenseCategory(*req.Category)
		if !category.IsValid() {
			return response.BadRequest(c, "INVALID_CATEGORY", "Unknown expense category")
		}
		patch.Category = &category
	}
	if req.ExpenseDate != nil {
		date, err := parseFinanceDate(*req.ExpenseDate)
		if err != nil {
			return response.BadRequest(c, "INVALID_DATE", "Invalid expense date")
		}
		patch.ExpenseDate = &date
	}

	expense, err := h.expenseUC.UpdateExpense(c.Request().Context(), id, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, expense, "Expense updated successfully")
}

// DeleteExpense removes an expense entry.
func (h *FinanceHandler) DeleteExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid expense ID")
	}

	if err := h.expenseUC.DeleteExpense(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Expense deleted"}, "Expense deleted successfully")
}

// GetTotalExpenses returns the server-side expense sum for one car.
func (h *FinanceHandler) GetTotalExpenses(c echo.Context) error {
	carID, err := uuid.Parse(c.Param("carId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid car ID")
	}

	dateRange, err := dateRangeFromQuery(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_DATE", err.Error())
	}

	total, err := h.expenseUC.GetTotalExpenses(c.Request().Context(), carID, dateRange)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]float64{"total": total}, "Total expenses computed successfully")
}
