package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/service"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthOutput(userID uuid.UUID, role entity.Role) *usecase.AuthOutput {
	return &usecase.AuthOutput{
		User:    &entity.User{ID: userID, Email: "user@fleet.dev", FullName: "User", Role: role},
		Profile: &entity.Profile{ID: userID, Email: "user@fleet.dev", FullName: "User"},
		Role:    role,
		Session: &entity.Session{
			UserID:       userID,
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresAt:    time.Now().Add(15 * time.Minute),
		},
	}
}

func TestAuthStore_StartsAsGuest(t *testing.T) {
	store := newAuthStore(&fakeAuthUsecase{}, newMemorySnapshotStore(), newDiscardLogger())

	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, entity.RoleGuest, store.Role())
	assert.Equal(t, "/auth/login", store.DashboardPath())
	assert.Equal(t, uuid.Nil, store.UserID())
}

func TestAuthStore_Login_PopulatesEverythingAtOnce(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	snapshots := newMemorySnapshotStore()
	authUC := &fakeAuthUsecase{
		LoginFn: func(_ context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
			assert.Equal(t, "owner@fleet.dev", input.Email)

			return testAuthOutput(userID, entity.RoleOwner), nil
		},
	}
	store := newAuthStore(authUC, snapshots, newDiscardLogger())

	user, err := store.Login(ctx, "owner@fleet.dev", "Sup3rSecret!")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, entity.RoleOwner, store.Role())
	assert.Equal(t, "/owner/dashboard", store.DashboardPath())
	assert.NotNil(t, store.Profile())
	assert.Empty(t, store.Err())
	assert.False(t, store.IsLoading())
	assert.True(t, snapshots.has(service.SnapshotAuth))
}

func TestAuthStore_Login_FailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	authUC := &fakeAuthUsecase{
		LoginFn: func(context.Context, usecase.LoginInput) (*usecase.AuthOutput, error) {
			return nil, assert.AnError
		},
	}
	store := newAuthStore(authUC, newMemorySnapshotStore(), newDiscardLogger())

	user, err := store.Login(ctx, "owner@fleet.dev", "wrong")

	require.Error(t, err)
	assert.Nil(t, user)
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, store.CurrentUser())
	assert.Nil(t, store.Session())
	assert.Equal(t, entity.RoleGuest, store.Role())
	assert.Equal(t, assert.AnError.Error(), store.Err())
	assert.False(t, store.IsLoading())
}

func TestAuthStore_SecondActionClearsPreviousError(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	failNext := true
	authUC := &fakeAuthUsecase{
		LoginFn: func(context.Context, usecase.LoginInput) (*usecase.AuthOutput, error) {
			if failNext {
				return nil, assert.AnError
			}

			return testAuthOutput(userID, entity.RoleDriver), nil
		},
	}
	store := newAuthStore(authUC, newMemorySnapshotStore(), newDiscardLogger())

	_, err := store.Login(ctx, "driver@fleet.dev", "wrong")
	require.Error(t, err)
	assert.NotEmpty(t, store.Err())

	failNext = false
	_, err = store.Login(ctx, "driver@fleet.dev", "right")
	require.NoError(t, err)
	assert.Empty(t, store.Err())
}

func TestAuthStore_Logout_ClearsIdentityEvenWhenServerFails(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	snapshots := newMemorySnapshotStore()
	authUC := &fakeAuthUsecase{
		LoginFn: func(context.Context, usecase.LoginInput) (*usecase.AuthOutput, error) {
			return testAuthOutput(userID, entity.RoleManager), nil
		},
		LogoutFn: func(context.Context, string) error {
			return assert.AnError
		},
	}
	store := newAuthStore(authUC, snapshots, newDiscardLogger())

	_, err := store.Login(ctx, "manager@fleet.dev", "Sup3rSecret!")
	require.NoError(t, err)

	err = store.Logout(ctx)

	require.Error(t, err)
	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, entity.RoleGuest, store.Role())
	assert.False(t, snapshots.has(service.SnapshotAuth))
}

func TestAuthStore_RefreshSession_SwapsOnlyTheSession(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	authUC := &fakeAuthUsecase{
		LoginFn: func(context.Context, usecase.LoginInput) (*usecase.AuthOutput, error) {
			return testAuthOutput(userID, entity.RoleDriver), nil
		},
		RefreshSessionFn: func(_ context.Context, refreshToken string) (*entity.Session, error) {
			assert.Equal(t, "refresh", refreshToken)

			return &entity.Session{
				UserID:       userID,
				AccessToken:  "access-2",
				RefreshToken: refreshToken,
				ExpiresAt:    time.Now().Add(15 * time.Minute),
			}, nil
		},
	}
	store := newAuthStore(authUC, newMemorySnapshotStore(), newDiscardLogger())

	_, err := store.Login(ctx, "driver@fleet.dev", "Sup3rSecret!")
	require.NoError(t, err)
	userBefore := store.CurrentUser()

	require.NoError(t, store.RefreshSession(ctx))

	assert.Equal(t, "access-2", store.Session().AccessToken)
	assert.Equal(t, "refresh", store.Session().RefreshToken)
	assert.Equal(t, userBefore, store.CurrentUser())
}

func TestAuthStore_RefreshSession_WithoutSession(t *testing.T) {
	store := newAuthStore(&fakeAuthUsecase{}, newMemorySnapshotStore(), newDiscardLogger())

	err := store.RefreshSession(context.Background())

	require.Error(t, err)
	assert.Equal(t, errNoSession.Error(), store.Err())
}

func TestAuthStore_Hydrate_RestoresAndRevalidates(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	snapshots := newMemorySnapshotStore()

	saved := testAuthOutput(userID, entity.RoleOwner)
	require.NoError(t, saveSnapshot(ctx, snapshots, service.SnapshotAuth, authState{
		User:    saved.User,
		Session: saved.Session,
		Profile: saved.Profile,
		Role:    saved.Role,
	}))

	authUC := &fakeAuthUsecase{
		CurrentUserFn: func(_ context.Context, accessToken string) (*usecase.AuthOutput, error) {
			assert.Equal(t, "access", accessToken)

			return &usecase.AuthOutput{User: saved.User, Profile: saved.Profile, Role: saved.Role}, nil
		},
	}
	store := newAuthStore(authUC, snapshots, newDiscardLogger())

	require.NoError(t, store.Hydrate(ctx))

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, entity.RoleOwner, store.Role())
	assert.Equal(t, "access", store.Session().AccessToken)
}

func TestAuthStore_Hydrate_InvalidSessionFailsOpenToGuest(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	snapshots := newMemorySnapshotStore()

	saved := testAuthOutput(userID, entity.RoleOwner)
	require.NoError(t, saveSnapshot(ctx, snapshots, service.SnapshotAuth, authState{
		User: saved.User, Session: saved.Session, Profile: saved.Profile, Role: saved.Role,
	}))

	authUC := &fakeAuthUsecase{
		CurrentUserFn: func(context.Context, string) (*usecase.AuthOutput, error) {
			return nil, assert.AnError
		},
	}
	store := newAuthStore(authUC, snapshots, newDiscardLogger())

	require.NoError(t, store.Hydrate(ctx))

	assert.False(t, store.IsAuthenticated())
	assert.Equal(t, entity.RoleGuest, store.Role())
	assert.False(t, snapshots.has(service.SnapshotAuth))
}

func TestAuthStore_Hydrate_DiscardsMismatchedSchemaVersion(t *testing.T) {
	ctx := context.Background()
	snapshots := newMemorySnapshotStore()

	stale, err := json.Marshal(snapshotEnvelope{
		SchemaVersion: snapshotSchemaVersion + 1,
		State:         json.RawMessage(`{"role":"owner"}`),
	})
	require.NoError(t, err)
	require.NoError(t, snapshots.Save(ctx, service.SnapshotAuth, stale))

	store := newAuthStore(&fakeAuthUsecase{}, snapshots, newDiscardLogger())

	require.NoError(t, store.Hydrate(ctx))

	assert.Equal(t, entity.RoleGuest, store.Role())
	assert.False(t, snapshots.has(service.SnapshotAuth))
}

func TestAuthStore_Hydrate_DiscardsCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	snapshots := newMemorySnapshotStore()
	require.NoError(t, snapshots.Save(ctx, service.SnapshotAuth, []byte("not json{")))

	store := newAuthStore(&fakeAuthUsecase{}, snapshots, newDiscardLogger())

	require.NoError(t, store.Hydrate(ctx))

	assert.Equal(t, entity.RoleGuest, store.Role())
	assert.False(t, snapshots.has(service.SnapshotAuth))
}

func TestAuthStore_HasPermission(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	authUC := &fakeAuthUsecase{
		LoginFn: func(context.Context, usecase.LoginInput) (*usecase.AuthOutput, error) {
			return testAuthOutput(userID, entity.RoleManager), nil
		},
	}
	store := newAuthStore(authUC, newMemorySnapshotStore(), newDiscardLogger())

	assert.False(t, store.HasPermission(entity.RoleDriver)) // Guest is denied everywhere.

	_, err := store.Login(ctx, "manager@fleet.dev", "Sup3rSecret!")
	require.NoError(t, err)

	assert.True(t, store.HasPermission(entity.RoleDriver))
	assert.True(t, store.HasPermission(entity.RoleManager))
	assert.False(t, store.HasPermission(entity.RoleOwner))
}
