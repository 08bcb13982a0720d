// Package validator adapts go-playground/validator to Echo's Validator
// interface and centralizes the request validation rules.
package validator

import (
	"fmt"
	"strings"

	"drivelink/internal/domain/entity"
	domainerrors "drivelink/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps a validator.Validate instance for Echo.
type CustomValidator struct {
	validate *validator.Validate
}

// New builds the validator with the project's custom rules registered.
func New() *CustomValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// fleet_role accepts only the registerable roles; guest is derived state.
	_ = validate.RegisterValidation("fleet_role", func(fl validator.FieldLevel) bool {
		return entity.Role(fl.Field().String()).IsValid()
	})

	// car_status accepts only the known fleet statuses.
	_ = validate.RegisterValidation("car_status", func(fl validator.FieldLevel) bool {
		return entity.CarStatus(fl.Field().String()).IsValid()
	})

	return &CustomValidator{validate: validate}
}

// Validate implements echo.Validator. Violations are folded into a single
// validation error carrying a field→rule summary.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	violations := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		violations = append(violations, describeViolation(fieldError))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(violations, "; "))
}

// describeViolation renders one field error as a human-readable message.
func describeViolation(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "fleet_role":
		return fmt.Sprintf("%s must be one of owner, manager, driver, admin", field)
	case "car_status":
		return fmt.Sprintf("%s must be a known car status", field)
	default:
		return fmt.Sprintf("%s failed on the %s rule", field, fe.Tag())
	}
}
