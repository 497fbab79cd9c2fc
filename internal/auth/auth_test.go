package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, password string) *Service {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return NewService(hash, "test-secret", time.Hour)
}

func TestLoginAndVerifyRoundTrip(t *testing.T) {
	svc := newTestService(t, "correcthorse")

	token, err := svc.Login("correcthorse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService(t, "correcthorse")

	_, err := svc.Login("batterystaple")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledWithoutHash(t *testing.T) {
	svc := NewService("", "test-secret", time.Hour)

	_, err := svc.Login("anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyRejectsForeignToken(t *testing.T) {
	svc := newTestService(t, "correcthorse")
	other := NewService("", "another-secret", time.Hour)

	token, err := svc.Login("correcthorse")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	hash, err := HashPassword("correcthorse")
	require.NoError(t, err)
	svc := NewService(hash, "test-secret", -time.Minute)

	token, err := svc.Login("correcthorse")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := newTestService(t, "correcthorse")

	_, err := svc.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
