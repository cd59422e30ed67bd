package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.Generate("U1", "patient")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "U1", claims.UID)
	assert.Equal(t, "patient", claims.Role)
}

func TestTokenExpiryIsOneHour(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.Generate("U1", "doctor")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, time.Hour, ttl)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").Generate("U1", "patient")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewJWTService("test-secret")

	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Validate("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
