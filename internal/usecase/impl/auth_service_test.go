package impl

import (
	"context"
	"testing"
	"time"

	"drivelink/internal/domain/entity"
	domainerrors "drivelink/internal/domain/errors"
	"drivelink/internal/domain/repository"
	mockRepo "drivelink/internal/mocks/repository"
	mockService "drivelink/internal/mocks/service"
	"drivelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthService(
	txManager repository.TransactionManager,
	profileRepo repository.ProfileRepository,
	roleRepo repository.RoleRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	hasher *mockService.MockPasswordHasher,
	tokenService *mockService.MockTokenService,
) usecase.AuthUsecase {
	return NewAuthService(AuthServiceParams{
		TxManager:        txManager,
		ProfileRepo:      profileRepo,
		RoleRepo:         roleRepo,
		RefreshTokenRepo: refreshTokenRepo,
		Hasher:           hasher,
		TokenService:     tokenService,
		Logger:           newDiscardLogger(),
	})
}

func TestAuthService_Register_ManagerLandsAllRows(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	txManager := mockRepo.NewMockTransactionManager(t)
	profileRepo := mockRepo.NewMockProfileRepository(t)
	roleRepo := mockRepo.NewMockRoleRepository(t)
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokenService := mockService.NewMockTokenService(t)

	service := newAuthService(txManager, profileRepo, roleRepo, refreshRepo, hasher, tokenService)

	hasher.On("ValidatePasswordStrength", "Sup3rSecret!").Return(nil)
	hasher.On("Hash", "Sup3rSecret!").Return("$2a$12$hash", nil)

	txProfileRepo := mockRepo.NewMockProfileRepository(t)
	txAuthRepo := mockRepo.NewMockAuthRepository(t)
	txRoleRepo := mockRepo.NewMockRoleRepository(t)
	txMemberRepo := mockRepo.NewMockMemberRepository(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.On("ProfileRepo").Return(txProfileRepo)
	factory.On("AuthRepo").Return(txAuthRepo)
	factory.On("RoleRepo").Return(txRoleRepo)
	factory.On("MemberRepo").Return(txMemberRepo)

	txAuthRepo.On("FindAuthenticationByEmail", ctx, "manager@fleet.dev").
		Return(nil, repository.ErrAuthNotFound)
	txProfileRepo.On("Create", ctx, mock.AnythingOfType("*entity.Profile")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Profile).ID = userID
		}).
		Return(nil)
	txAuthRepo.On("CreateAuthentication", ctx, mock.MatchedBy(func(auth *entity.Authentication) bool {
		return auth.UserID == userID && auth.PasswordHash == "$2a$12$hash"
	})).Return(nil)
	txRoleRepo.On("CreateRole", ctx, userID, entity.RoleManager).Return(nil)
	txMemberRepo.On("CreateManager", ctx, userID).
		Return(&entity.ManagerRecord{ID: uuid.New(), UserID: userID}, nil)

	txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})

	tokenService.On("GenerateTokens", userID, entity.RoleManager).Return("access", "refresh", nil)
	tokenService.On("HashToken", "refresh").Return("refresh-hash")
	tokenService.On("RefreshTokenDuration").Return(30 * 24 * time.Hour)
	tokenService.On("AccessTokenDuration").Return(15 * time.Minute)
	refreshRepo.On("CreateRefreshToken", ctx, mock.MatchedBy(func(token *entity.RefreshToken) bool {
		return token.UserID == userID && token.TokenHash == "refresh-hash"
	})).Return(nil)

	output, err := service.Register(ctx, usecase.RegisterInput{
		FullName: "Meles Haile",
		Email:    "manager@fleet.dev",
		Password: "Sup3rSecret!",
		Role:     entity.RoleManager,
	})

	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
	assert.Equal(t, entity.RoleManager, output.User.Role)
	assert.Equal(t, "access", output.Session.AccessToken)
	assert.Equal(t, "refresh", output.Session.RefreshToken)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()

	txManager := mockRepo.NewMockTransactionManager(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokenService := mockService.NewMockTokenService(t)

	service := newAuthService(txManager, nil, nil, nil, hasher, tokenService)

	hasher.On("ValidatePasswordStrength", "Sup3rSecret!").Return(nil)
	hasher.On("Hash", "Sup3rSecret!").Return("$2a$12$hash", nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txAuthRepo := mockRepo.NewMockAuthRepository(t)
	factory.On("ProfileRepo").Return(mockRepo.NewMockProfileRepository(t))
	factory.On("AuthRepo").Return(txAuthRepo)
	factory.On("RoleRepo").Return(mockRepo.NewMockRoleRepository(t))
	factory.On("MemberRepo").Return(mockRepo.NewMockMemberRepository(t))

	txAuthRepo.On("FindAuthenticationByEmail", ctx, "taken@fleet.dev").
		Return(&entity.Authentication{Email: "taken@fleet.dev"}, nil)

	txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})

	output, err := service.Register(ctx, usecase.RegisterInput{
		FullName: "Someone Else",
		Email:    "taken@fleet.dev",
		Password: "Sup3rSecret!",
		Role:     entity.RoleDriver,
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	service := newAuthService(nil, nil, nil, nil, mockService.NewMockPasswordHasher(t), mockService.NewMockTokenService(t))

	output, err := service.Register(context.Background(), usecase.RegisterInput{
		Email:    "ghost@fleet.dev",
		Password: "Sup3rSecret!",
		Role:     entity.RoleGuest,
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	profile := &entity.Profile{ID: userID, Email: "owner@fleet.dev", FullName: "Owner"}

	txManager := mockRepo.NewMockTransactionManager(t)
	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	tokenService := mockService.NewMockTokenService(t)

	service := newAuthService(txManager, nil, nil, refreshRepo, hasher, tokenService)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txAuthRepo := mockRepo.NewMockAuthRepository(t)
	txProfileRepo := mockRepo.NewMockProfileRepository(t)
	txRoleRepo := mockRepo.NewMockRoleRepository(t)
	factory.On("AuthRepo").Return(txAuthRepo)
	factory.On("ProfileRepo").Return(txProfileRepo)
	factory.On("RoleRepo").Return(txRoleRepo)

	txAuthRepo.On("FindAuthenticationByEmail", ctx, "owner@fleet.dev").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "$2a$12$hash"}, nil)
	txProfileRepo.On("FindByID", ctx, userID).Return(profile, nil)
	txRoleRepo.On("FindRoleByUserID", ctx, userID).Return(entity.RoleOwner, nil)

	txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})

	hasher.On("Check", "Sup3rSecret!", "$2a$12$hash").Return(true)
	tokenService.On("GenerateTokens", userID, entity.RoleOwner).Return("access", "refresh", nil)
	tokenService.On("HashToken", "refresh").Return("refresh-hash")
	tokenService.On("RefreshTokenDuration").Return(30 * 24 * time.Hour)
	tokenService.On("AccessTokenDuration").Return(15 * time.Minute)
	refreshRepo.On("CreateRefreshToken", ctx, mock.AnythingOfType("*entity.RefreshToken")).Return(nil)

	output, err := service.Login(ctx, usecase.LoginInput{Email: "owner@fleet.dev", Password: "Sup3rSecret!"})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, output.Role)
	assert.Equal(t, userID, output.Session.UserID)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()

	txManager := mockRepo.NewMockTransactionManager(t)
	service := newAuthService(txManager, nil, nil, nil, mockService.NewMockPasswordHasher(t), mockService.NewMockTokenService(t))

	factory := mockRepo.NewMockRepositoryFactory(t)
	txAuthRepo := mockRepo.NewMockAuthRepository(t)
	factory.On("AuthRepo").Return(txAuthRepo)
	factory.On("ProfileRepo").Return(mockRepo.NewMockProfileRepository(t))
	factory.On("RoleRepo").Return(mockRepo.NewMockRoleRepository(t))

	txAuthRepo.On("FindAuthenticationByEmail", ctx, "nobody@fleet.dev").
		Return(nil, repository.ErrAuthNotFound)

	txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})

	output, err := service.Login(ctx, usecase.LoginInput{Email: "nobody@fleet.dev", Password: "whatever"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	txManager := mockRepo.NewMockTransactionManager(t)
	hasher := mockService.NewMockPasswordHasher(t)
	service := newAuthService(txManager, nil, nil, nil, hasher, mockService.NewMockTokenService(t))

	factory := mockRepo.NewMockRepositoryFactory(t)
	txAuthRepo := mockRepo.NewMockAuthRepository(t)
	txProfileRepo := mockRepo.NewMockProfileRepository(t)
	txRoleRepo := mockRepo.NewMockRoleRepository(t)
	factory.On("AuthRepo").Return(txAuthRepo)
	factory.On("ProfileRepo").Return(txProfileRepo)
	factory.On("RoleRepo").Return(txRoleRepo)

	txAuthRepo.On("FindAuthenticationByEmail", ctx, "owner@fleet.dev").
		Return(&entity.Authentication{UserID: userID, PasswordHash: "$2a$12$hash"}, nil)
	txProfileRepo.On("FindByID", ctx, userID).Return(&entity.Profile{ID: userID}, nil)
	txRoleRepo.On("FindRoleByUserID", ctx, userID).Return(entity.RoleOwner, nil)

	txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})

	hasher.On("Check", "wrong", "$2a$12$hash").Return(false)

	output, err := service.Login(ctx, usecase.LoginInput{Email: "owner@fleet.dev", Password: "wrong"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Logout_MissingTokenIsHarmless(t *testing.T) {
	ctx := context.Background()

	refreshRepo := mockRepo.NewMockRefreshTokenRepository(t)
	tokenService := mockService.NewMockTokenService(t)
	service := newAuthService(nil, nil, nil, refreshRepo, mockService.NewMockPasswordHasher(t), tokenService)

	tokenService.On("ValidateRefreshToken", "stale").Return(nil, assert.AnError)
	tokenService.On("HashToken", "stale").Return("stale-hash")
	refreshRepo.On("DeleteRefreshTokenByHash", ctx, "stale-hash").Return(repository.ErrTokenNotFound)

	err := service.Logout(ctx, "stale")

	require.NoError(t, err)
}

func TestAuthService_CurrentUser_InvalidToken(t *testing.T) {
	tokenService := mockService.NewMockTokenService(t)
	service := newAuthService(nil, nil, nil, nil, mockService.NewMockPasswordHasher(t), tokenService)

	tokenService.On("ValidateAccessToken", "garbage").Return(nil, assert.AnError)

	output, err := service.CurrentUser(context.Background(), "garbage")

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
