package store

import (
	"context"
	"log/slog"
	"sync"

	"drivelink/internal/domain/entity"
	"drivelink/internal/domain/service"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// authState is the whitelisted subset of the auth store persisted under
// auth-storage. Loading and error flags are transient and never stored.
type authState struct {
	User    *entity.User    `json:"user"`
	Session *entity.Session `json:"session"`
	Profile *entity.Profile `json:"profile"`
	Role    entity.Role     `json:"role"`
}

// AuthStore caches the authenticated identity: merged user, raw profile,
// bound role, and the token pair. Its role accessor drives every role gate on
// the client side.
type AuthStore struct {
	mu        sync.RWMutex
	state     authState
	loading   bool
	lastError string

	authUC    usecase.AuthUsecase
	snapshots service.SnapshotStore
	logger    *slog.Logger
}

// AuthStoreParams holds dependencies for AuthStore, injected by Fx.
type AuthStoreParams struct {
	fx.In
	fx.Lifecycle

	AuthUC    usecase.AuthUsecase
	Snapshots service.SnapshotStore
	Logger    *slog.Logger
}

// NewAuthStore is the fx constructor: the store hydrates on start and saves
// its snapshot on stop.
func NewAuthStore(params AuthStoreParams) *AuthStore {
	store := newAuthStore(params.AuthUC, params.Snapshots, params.Logger)

	params.Append(fx.Hook{
		OnStart: store.Hydrate,
		OnStop:  store.Close,
	})

	return store
}

func newAuthStore(authUC usecase.AuthUsecase, snapshots service.SnapshotStore, logger *slog.Logger) *AuthStore {
	return &AuthStore{
		state:  authState{Role: entity.RoleGuest},
		authUC: authUC, snapshots: snapshots, logger: logger,
	}
}

// begin clears the previous error and marks the store busy.
func (s *AuthStore) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastError = ""
	s.mu.Unlock()
}

// fail records the error and releases the busy flag. The cache is untouched.
func (s *AuthStore) fail(err error) error {
	s.mu.Lock()
	s.loading = false
	s.lastError = err.Error()
	s.mu.Unlock()

	return err
}

// IsLoading reports whether an action is in flight.
func (s *AuthStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

// Err returns the message of the last failed action, empty after a success.
func (s *AuthStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastError
}

// CurrentUser returns the cached merged user, nil when logged out.
func (s *AuthStore) CurrentUser() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.User
}

// Profile returns the cached raw profile, nil when logged out.
func (s *AuthStore) Profile() *entity.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Profile
}

// Session returns the cached token pair, nil when logged out.
func (s *AuthStore) Session() *entity.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Session
}

// Role returns the bound role, RoleGuest when logged out.
func (s *AuthStore) Role() entity.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.Role == "" {
		return entity.RoleGuest
	}

	return s.state.Role
}

// IsAuthenticated reports whether a session is cached.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Session != nil && s.state.User != nil
}

// DashboardPath returns the role-scoped dashboard route for the current role.
func (s *AuthStore) DashboardPath() string {
	return entity.DashboardPath(s.Role())
}

// applyAuthOutput replaces the cached identity with a fresh auth result and
// persists the snapshot.
func (s *AuthStore) applyAuthOutput(ctx context.Context, output *usecase.AuthOutput) {
	s.mu.Lock()
	s.state = authState{
		User:    output.User,
		Session: output.Session,
		Profile: output.Profile,
		Role:    output.Role,
	}
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)
}

// Login authenticates and replaces the cached identity. On failure the cached
// state is left exactly as it was.
func (s *AuthStore) Login(ctx context.Context, email, password string) (*entity.User, error) {
	s.begin()

	output, err := s.authUC.Login(ctx, usecase.LoginInput{Email: email, Password: password})
	if err != nil {
		return nil, s.fail(err)
	}

	s.applyAuthOutput(ctx, output)

	return output.User, nil
}

// Register creates the account and logs straight in.
func (s *AuthStore) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	s.begin()

	output, err := s.authUC.Register(ctx, input)
	if err != nil {
		return nil, s.fail(err)
	}

	s.applyAuthOutput(ctx, output)

	return output.User, nil
}

// Logout ends the device session and resets the store to guest. The cached
// identity is cleared even when the server-side logout fails.
func (s *AuthStore) Logout(ctx context.Context) error {
	s.begin()

	var err error
	if session := s.Session(); session != nil {
		err = s.authUC.Logout(ctx, session.RefreshToken)
	}

	s.reset(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
	}

	return err
}

// RefreshSession exchanges the cached refresh token for a new access token.
func (s *AuthStore) RefreshSession(ctx context.Context) error {
	s.begin()

	session := s.Session()
	if session == nil {
		return s.fail(errNoSession)
	}

	refreshed, err := s.authUC.RefreshSession(ctx, session.RefreshToken)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.state.Session = refreshed
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return nil
}

// UpdateProfile patches the profile and reconciles the cached user view.
func (s *AuthStore) UpdateProfile(ctx context.Context, patch entity.ProfilePatch) (*entity.Profile, error) {
	s.begin()

	user := s.CurrentUser()
	if user == nil {
		return nil, s.fail(errNoSession)
	}

	profile, err := s.authUC.UpdateProfile(ctx, user.ID, patch)
	if err != nil {
		return nil, s.fail(err)
	}

	s.mu.Lock()
	s.state.Profile = profile
	if s.state.User != nil {
		s.state.User.FullName = profile.FullName
		s.state.User.PhoneNumber = profile.PhoneNumber
		s.state.User.Avatar = profile.Avatar
	}
	s.loading = false
	s.mu.Unlock()

	s.persist(ctx)

	return profile, nil
}

// Hydrate restores the persisted identity and revalidates it against the
// server. Any failure along the way fails open to guest: the app starts
// logged out rather than broken.
func (s *AuthStore) Hydrate(ctx context.Context) error {
	var restored authState
	ok, err := loadSnapshot(ctx, s.snapshots, service.SnapshotAuth, &restored)
	if err != nil {
		s.logger.Warn("Failed to read auth snapshot", slog.Any("error", err))

		return nil
	}
	if !ok || restored.Session == nil {
		return nil
	}

	output, err := s.authUC.CurrentUser(ctx, restored.Session.AccessToken)
	if err != nil {
		s.logger.Info("Persisted session no longer valid, starting as guest", slog.Any("error", err))
		s.reset(ctx)

		return nil
	}

	s.mu.Lock()
	s.state = authState{
		User:    output.User,
		Session: restored.Session,
		Profile: output.Profile,
		Role:    output.Role,
	}
	s.mu.Unlock()

	s.logger.Debug("Auth store hydrated", slog.Any("userID", output.User.ID))

	return nil
}

// Close persists the final snapshot.
func (s *AuthStore) Close(ctx context.Context) error {
	s.persist(ctx)

	return nil
}

// reset clears the identity and removes the persisted snapshot.
func (s *AuthStore) reset(ctx context.Context) {
	s.mu.Lock()
	s.state = authState{Role: entity.RoleGuest}
	s.loading = false
	s.mu.Unlock()

	if err := s.snapshots.Delete(ctx, service.SnapshotAuth); err != nil {
		s.logger.Warn("Failed to delete auth snapshot", slog.Any("error", err))
	}
}

// persist saves the whitelisted state, best-effort.
func (s *AuthStore) persist(ctx context.Context) {
	// Encode while holding the read lock; the state is shared with concurrent
	// actions mutating it under the write lock.
	s.mu.RLock()
	data, err := encodeSnapshot(s.state)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Warn("Failed to persist auth snapshot", slog.Any("error", err))

		return
	}

	if err := s.snapshots.Save(ctx, service.SnapshotAuth, data); err != nil {
		s.logger.Warn("Failed to persist auth snapshot", slog.Any("error", err))
	}
}

// HasPermission reports whether the current role ranks at or above minimum.
func (s *AuthStore) HasPermission(minimum entity.Role) bool {
	return entity.HasPermission(s.Role(), minimum)
}

// UserID returns the authenticated user's ID, uuid.Nil when logged out.
func (s *AuthStore) UserID() uuid.UUID {
	if user := s.CurrentUser(); user != nil {
		return user.ID
	}

	return uuid.Nil
}
