package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"drivelink/internal/delivery/http/middleware"
	"drivelink/internal/delivery/http/validator"
	"drivelink/internal/domain/entity"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserUsecase stubs the single method under test; the embedded interface
// panics on anything else.
type fakeUserUsecase struct {
	usecase.UserUsecase

	UpdateDriverLocationFn func(ctx context.Context, driverUserID uuid.UUID, position orb.Point) error
}

func (f *fakeUserUsecase) UpdateDriverLocation(ctx context.Context, driverUserID uuid.UUID, position orb.Point) error {
	return f.UpdateDriverLocationFn(ctx, driverUserID, position)
}

// newLocationContext builds an authenticated request against
// PUT /users/:id/location.
func newLocationContext(targetID, authUserID uuid.UUID, role entity.Role) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"longitude":9.0301,"latitude":38.7578}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	c.SetPath("/users/:id/location")
	c.SetParamNames("id")
	c.SetParamValues(targetID.String())
	c.Set(middleware.ContextKeyUserID, authUserID)
	c.Set(middleware.ContextKeyRole, role)

	return c, rec
}

func TestUserHandler_UpdateDriverLocation_RejectsAnotherDriversRecord(t *testing.T) {
	called := false
	uc := &fakeUserUsecase{
		UpdateDriverLocationFn: func(context.Context, uuid.UUID, orb.Point) error {
			called = true

			return nil
		},
	}
	h := NewUserHandler(uc, newDiscardLogger())

	c, rec := newLocationContext(uuid.New(), uuid.New(), entity.RoleDriver)

	require.NoError(t, h.UpdateDriverLocation(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestUserHandler_UpdateDriverLocation_AllowsSelf(t *testing.T) {
	driverUserID := uuid.New()
	var gotID uuid.UUID
	uc := &fakeUserUsecase{
		UpdateDriverLocationFn: func(_ context.Context, id uuid.UUID, position orb.Point) error {
			gotID = id
			assert.InDelta(t, 9.0301, position.Lon(), 0.0001)
			assert.InDelta(t, 38.7578, position.Lat(), 0.0001)

			return nil
		},
	}
	h := NewUserHandler(uc, newDiscardLogger())

	c, rec := newLocationContext(driverUserID, driverUserID, entity.RoleDriver)

	require.NoError(t, h.UpdateDriverLocation(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, driverUserID, gotID)
}

func TestUserHandler_UpdateDriverLocation_ManagerOverridesAnyRecord(t *testing.T) {
	uc := &fakeUserUsecase{
		UpdateDriverLocationFn: func(context.Context, uuid.UUID, orb.Point) error {
			return nil
		},
	}
	h := NewUserHandler(uc, newDiscardLogger())

	c, rec := newLocationContext(uuid.New(), uuid.New(), entity.RoleManager)

	require.NoError(t, h.UpdateDriverLocation(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
