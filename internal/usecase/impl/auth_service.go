// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "drivelink/internal/delivery/context"
	"drivelink/internal/domain/entity"
	domainerrors "drivelink/internal/domain/errors"
	"drivelink/internal/domain/repository"
	"drivelink/internal/domain/service"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager        repository.TransactionManager
	profileRepo      repository.ProfileRepository
	roleRepo         repository.RoleRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	logger           *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	ProfileRepo      repository.ProfileRepository
	RoleRepo         repository.RoleRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:        params.TxManager,
		profileRepo:      params.ProfileRepo,
		roleRepo:         params.RoleRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration: credential,
// profile, role binding, and role record land in one transaction.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.Any("role", input.Role), slog.String("email", input.Email))

	if !input.Role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidRole, "registration failed")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "password does not meet requirements")
	}

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	var registeredProfile *entity.Profile
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()
		authRepo := repoFactory.AuthRepo()
		roleRepo := repoFactory.RoleRepo()
		memberRepo := repoFactory.MemberRepo()

		_, err := authRepo.FindAuthenticationByEmail(ctx, input.Email)
		if err == nil {
			return errors.Wrap(domainerrors.ErrEmailAlreadyRegistered, "registration failed")
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to check existing credential")
		}

		newProfile := &entity.Profile{
			Email:       input.Email,
			FullName:    input.FullName,
			PhoneNumber: input.PhoneNumber,
		}
		if err := profileRepo.Create(ctx, newProfile); err != nil {
			return errors.Wrap(err, "failed to create profile during registration")
		}

		newAuth := &entity.Authentication{
			UserID:       newProfile.ID,
			Email:        input.Email,
			PasswordHash: hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, newAuth); err != nil {
			return errors.Wrap(err, "failed to create credential during registration")
		}

		if err := roleRepo.CreateRole(ctx, newProfile.ID, input.Role); err != nil {
			return errors.Wrap(err, "failed to bind role during registration")
		}

		if err := createRoleRecord(ctx, memberRepo, newProfile.ID, input.Role); err != nil {
			return errors.Wrap(err, "failed to create role record during registration")
		}

		registeredProfile = newProfile

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	output, err := srv.openSession(ctx, registeredProfile, input.Role)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("role", input.Role), slog.Any("userID", registeredProfile.ID))

	return output, nil
}

// createRoleRecord inserts the thin role record row matching the bound role.
// Admins reuse the owner record so they can hold cars.
func createRoleRecord(ctx context.Context, memberRepo repository.MemberRepository, userID uuid.UUID, role entity.Role) error {
	switch role {
	case entity.RoleOwner, entity.RoleAdmin:
		_, err := memberRepo.CreateOwner(ctx, userID)

		return err
	case entity.RoleManager:
		_, err := memberRepo.CreateManager(ctx, userID)

		return err
	case entity.RoleDriver:
		_, err := memberRepo.CreateDriver(ctx, userID)

		return err
	default:
		return errors.Wrap(domainerrors.ErrInvalidRole, "no role record for role")
	}
}

// Login verifies the credential and loads profile and role. Any sub-failure
// aborts the whole operation; nothing about the session is half-built.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	var (
		authRecord *entity.Authentication
		profile    *entity.Profile
		role       entity.Role
	)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()
		profileRepo := repoFactory.ProfileRepo()
		roleRepo := repoFactory.RoleRepo()

		var err error
		authRecord, err = authRepo.FindAuthenticationByEmail(ctx, input.Email)
		if err != nil {
			if errors.Is(err, repository.ErrAuthNotFound) {
				return errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
			}

			return errors.Wrap(err, "failed to find credential")
		}

		profile, err = profileRepo.FindByID(ctx, authRecord.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to load profile during login")
		}

		role, err = roleRepo.FindRoleByUserID(ctx, authRecord.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to load role during login")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	// Check password outside the transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	output, err := srv.openSession(ctx, profile, role)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", profile.ID))

	return output, nil
}

// openSession generates the token pair, persists the refresh token, and
// assembles the auth output.
func (srv *authService) openSession(ctx context.Context, profile *entity.Profile, role entity.Role) (*usecase.AuthOutput, error) {
	accessToken, refreshTokenString, err := srv.tokenService.GenerateTokens(profile.ID, role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	newRefreshToken := &entity.RefreshToken{
		UserID:    profile.ID,
		TokenHash: srv.tokenService.HashToken(refreshTokenString),
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
	}
	if err := srv.refreshTokenRepo.CreateRefreshToken(ctx, newRefreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &usecase.AuthOutput{
		User:    mergeUser(profile, role),
		Profile: profile,
		Role:    role,
		Session: &entity.Session{
			UserID:       profile.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshTokenString,
			ExpiresAt:    time.Now().Add(srv.tokenService.AccessTokenDuration()),
		},
	}, nil
}

// RefreshSession exchanges a valid refresh token for a new access token.
// The refresh token remains unchanged for security reasons.
func (srv *authService) RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error) {
	srv.log(ctx).Info("Attempting to refresh access token")

	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "invalid refresh token")
	}

	var session *entity.Session
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()
		roleRepo := repoFactory.RoleRepo()

		// Verify the refresh token exists in the database.
		tokenHash := srv.tokenService.HashToken(refreshToken)
		if _, err := refreshRepo.FindRefreshTokenByHash(ctx, tokenHash); err != nil {
			return errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token not found or expired")
		}

		role, err := roleRepo.FindRoleByUserID(ctx, claims.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to load role during refresh")
		}

		// Generate only a new access token; the refresh token is unchanged.
		newAccessToken, _, err := srv.tokenService.GenerateTokens(claims.UserID, role)
		if err != nil {
			return errors.Wrap(err, "failed to generate new access token")
		}

		session = &entity.Session{
			UserID:       claims.UserID,
			AccessToken:  newAccessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(srv.tokenService.AccessTokenDuration()),
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute refresh transaction", slog.Any("error", err))

		return nil, err
	}

	return session, nil
}

// Logout invalidates the device session by deleting its refresh token.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	srv.log(ctx).Info("Attempting to log out")

	if _, err := srv.tokenService.ValidateRefreshToken(refreshToken); err != nil {
		// Even if the token is invalid, we can proceed to delete it from the database.
		srv.log(ctx).Warn("Logout with invalid token", slog.Any("error", err))
	}

	tokenHash := srv.tokenService.HashToken(refreshToken)

	// Single operation - use direct repository instance
	if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			// The session is already gone; logging out twice is harmless.
			return nil
		}
		srv.log(ctx).Error("Failed to delete refresh token", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete refresh token")
	}
	srv.log(ctx).Info("Successfully logged out")

	return nil
}

// CurrentUser validates an access token and re-fetches the profile and role
// behind it.
func (srv *authService) CurrentUser(ctx context.Context, accessToken string) (*usecase.AuthOutput, error) {
	claims, err := srv.tokenService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "invalid access token")
	}

	profile, err := srv.profileRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load current profile")
	}

	role, err := srv.roleRepo.FindRoleByUserID(ctx, claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load current role")
	}

	return &usecase.AuthOutput{
		User:    mergeUser(profile, role),
		Profile: profile,
		Role:    role,
	}, nil
}

// UpdateProfile applies a profile patch and returns the row as stored.
func (srv *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch entity.ProfilePatch) (*entity.Profile, error) {
	srv.log(ctx).Debug("Updating profile", slog.Any("userID", userID))

	profile, err := srv.profileRepo.Update(ctx, userID, patch)
	if err != nil {
		srv.log(ctx).Error("Failed to update profile", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update profile")
	}

	return profile, nil
}

// mergeUser builds the merged profile+role read model.
func mergeUser(profile *entity.Profile, role entity.Role) *entity.User {
	return &entity.User{
		ID:          profile.ID,
		Email:       profile.Email,
		FullName:    profile.FullName,
		PhoneNumber: profile.PhoneNumber,
		Avatar:      profile.Avatar,
		Role:        role,
		CreatedAt:   profile.CreatedAt,
	}
}
