package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopadmin/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-0123456789",
		TokenExpiration: expiration,
		Issuer:          "shopadmin-test",
	})
}

func TestIssueAndValidate(t *testing.T) {
	service := newTestService(time.Hour)

	token, err := service.Issue(42, "admin@example.com", true)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := service.Validate(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "shopadmin-test", claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidateExpired(t *testing.T) {
	service := newTestService(-time.Minute)

	token, err := service.Issue(1, "a@b.ru", false)
	require.NoError(t, err)

	_, err = service.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := newTestService(time.Hour).Issue(1, "a@b.ru", false)
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:          "a-different-secret",
		TokenExpiration: time.Hour,
		Issuer:          "shopadmin-test",
	})
	_, err = other.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	service := newTestService(time.Hour)

	_, err := service.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDefaultExpiration(t *testing.T) {
	service := NewJWTService(config.JWTConfig{Secret: "s", Issuer: "i"})

	token, err := service.Issue(1, "a@b.ru", false)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), token.ExpiresAt, 5*time.Second)
}
