package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peershare/item-sharing-backend/internal/auth"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", 15*time.Minute)

	token, err := manager.GenerateAccessToken("user-123", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ParseAndValidate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestJWTWrongSecret(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", 15*time.Minute)
	other := auth.NewJWTManager("another-secret", 15*time.Minute)

	token, err := manager.GenerateAccessToken("user-123", "user@example.com")
	require.NoError(t, err)

	_, err = other.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", -time.Minute)

	token, err := manager.GenerateAccessToken("user-123", "user@example.com")
	require.NoError(t, err)

	_, err = manager.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTGarbage(t *testing.T) {
	manager := auth.NewJWTManager("test-secret", 15*time.Minute)

	_, err := manager.ParseAndValidate("not.a.token")
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasherWithCost(4)

	hash, err := hasher.Hash("password1")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", hash)

	assert.NoError(t, hasher.Compare(hash, "password1"))
	assert.Error(t, hasher.Compare(hash, "password2"))
}
