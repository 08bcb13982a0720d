package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"drivelink/config"
)

func testConfig(cost, minLength int) *config.Config {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{
		BcryptCost:        cost,
		PasswordMinLength: minLength,
	}

	return cfg
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(testConfig(bcrypt.MinCost, 6))

	password := "secret123"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Correct password
	assert.True(t, hasher.Check(password, hash))

	// Incorrect password
	assert.False(t, hasher.Check("wrong-password", hash))

	// Empty password
	assert.False(t, hasher.Check("", hash))

	// Invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasher(testConfig(customCost, 6))

	hash, err := hasher.Hash("secret123")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, customCost, cost)
}

func TestBcryptHasher_DefaultsWithoutConfig(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	hash, err := hasher.Hash("secret123")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	// Default minimum length is 6
	assert.Error(t, hasher.ValidatePasswordStrength("12345"))
	assert.NoError(t, hasher.ValidatePasswordStrength("123456"))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasher(testConfig(bcrypt.MinCost, 6))

	// Meets the minimum length
	assert.NoError(t, hasher.ValidatePasswordStrength("secret"))
	assert.NoError(t, hasher.ValidatePasswordStrength("a much longer passphrase"))

	// Too short
	err := hasher.ValidatePasswordStrength("abc")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Input validation failed")

	// Empty password
	assert.Error(t, hasher.ValidatePasswordStrength(""))
}
