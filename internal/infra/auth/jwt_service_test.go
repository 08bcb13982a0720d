package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"drivelink/config"
	"drivelink/internal/domain/entity"
)

func jwtTestConfig() *config.Config {
	cfg := &config.Config{
		SecretKey: struct {
			Access  string `json:"access" yaml:"access"`
			Refresh string `json:"refresh" yaml:"refresh"`
		}{
			Access:  "test_access_secret_key_very_long_for_testing",
			Refresh: "test_refresh_secret_key_very_long_for_testing",
		},
	}

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(jwtTestConfig())
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := uuid.New()

	accessToken, refreshToken, err := jwtService.GenerateTokens(userID, entity.RoleManager)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Validate access token
	accessClaims, err := jwtService.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.NotNil(t, accessClaims)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, entity.RoleManager, accessClaims.Role)
	assert.WithinDuration(t, time.Now().Add(jwtService.AccessTokenDuration()), accessClaims.ExpiresAt, 5*time.Second)

	// Validate refresh token
	refreshClaims, err := jwtService.ValidateRefreshToken(refreshToken)
	assert.NoError(t, err)
	assert.NotNil(t, refreshClaims)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Empty(t, refreshClaims.Role) // Refresh tokens don't carry a role
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	jwtService, err := NewJWTService(jwtTestConfig())
	assert.NoError(t, err)

	userID := uuid.New()
	accessToken, refreshToken, err := jwtService.GenerateTokens(userID, entity.RoleDriver)
	assert.NoError(t, err)

	// An access token is not a valid refresh token (different secret and type)
	claims, err := jwtService.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
	assert.Nil(t, claims)

	// And vice versa
	claims, err = jwtService.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(jwtTestConfig())
	assert.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTService_TokenDurations(t *testing.T) {
	cfg := jwtTestConfig()
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 48 * time.Hour,
	}

	jwtService, err := NewJWTService(cfg)
	assert.NoError(t, err)

	assert.Equal(t, 30*time.Minute, jwtService.AccessTokenDuration())
	assert.Equal(t, 48*time.Hour, jwtService.RefreshTokenDuration())
}

func TestJWTService_DefaultDurations(t *testing.T) {
	jwtService, err := NewJWTService(jwtTestConfig())
	assert.NoError(t, err)

	assert.Equal(t, 15*time.Minute, jwtService.AccessTokenDuration())
	assert.Equal(t, 7*24*time.Hour, jwtService.RefreshTokenDuration())
}

func TestJWTService_HashToken(t *testing.T) {
	jwtService, err := NewJWTService(jwtTestConfig())
	assert.NoError(t, err)

	hash := jwtService.HashToken("some-refresh-token")
	assert.Len(t, hash, 64) // hex-encoded SHA-256
	assert.NotEqual(t, "some-refresh-token", hash)

	// Deterministic
	assert.Equal(t, hash, jwtService.HashToken("some-refresh-token"))
	assert.NotEqual(t, hash, jwtService.HashToken("another-token"))
}
