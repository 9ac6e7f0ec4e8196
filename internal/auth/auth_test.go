package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoginSucceedsWithCorrectCredentials(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery-staple")
	require.NoError(t, err)

	svc := New("moderator", hash, "test-secret", time.Hour)
	token, expiresAt, err := svc.Login("moderator", "correct-horse-battery-staple")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, expiresAt.After(time.Now()))

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, "moderator", claims.Username)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery-staple")
	require.NoError(t, err)

	svc := New("moderator", hash, "test-secret", time.Hour)
	_, _, err = svc.Login("moderator", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsUnknownUsername(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery-staple")
	require.NoError(t, err)

	svc := New("moderator", hash, "test-secret", time.Hour)
	_, _, err = svc.Login("someone-else", "correct-horse-battery-staple")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenRejectsTamperedSecret(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)

	svc := New("moderator", hash, "test-secret", time.Hour)
	token, _, err := svc.Login("moderator", "pw")
	require.NoError(t, err)

	other := New("moderator", hash, "different-secret", time.Hour)
	_, err = other.VerifyToken(token)
	require.Error(t, err)
}
