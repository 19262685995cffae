package jwt

import (
	"testing"
	"time"

	"foodgram/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndResolveToken(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.GenerateTokenUser("user-1")
	require.NoError(t, err)

	userID, err := svc.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", time.Minute).(*jwtService)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateTokenUser("user-1")
	require.NoError(t, err)

	_, err = svc.GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenSignedWithAnotherSecret(t *testing.T) {
	token, err := NewJWTService("one", time.Hour).GenerateTokenUser("user-1")
	require.NoError(t, err)

	_, err = NewJWTService("two", time.Hour).GetUserIDByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGarbageToken(t *testing.T) {
	_, err := NewJWTService("secret", time.Hour).GetUserIDByToken("not-a-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
