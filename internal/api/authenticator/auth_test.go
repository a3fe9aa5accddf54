package authenticator

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altivainc/altiva/internal/config"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()

	auth, err := New(&config.Config{JWT_SECRET: "test-secret"})
	require.NoError(t, err)

	return auth
}

func TestGenerateAndVerifyToken(t *testing.T) {
	auth := newTestAuthenticator(t)

	token, err := auth.GenerateToken("user-123", "alice@ex.com", "Alice", "client")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.VerifyAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice@ex.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "client", claims.Role)
}

func TestVerifyAccessToken_TTL(t *testing.T) {
	auth := newTestAuthenticator(t)

	token, err := auth.GenerateToken("user-123", "alice@ex.com", "Alice", "client")
	require.NoError(t, err)

	claims, err := auth.VerifyAccessToken(token)
	require.NoError(t, err)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, TokenTTL, ttl)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	auth := newTestAuthenticator(t)

	// Craft a token that expired a second ago with the right secret.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-TokenTTL - time.Second)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Second)),
		},
		UserID: "user-123",
		Role:   "client",
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = auth.VerifyAccessToken(tokenString)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	auth := newTestAuthenticator(t)

	other, err := New(&config.Config{JWT_SECRET: "other-secret"})
	require.NoError(t, err)

	token, err := other.GenerateToken("user-123", "alice@ex.com", "Alice", "client")
	require.NoError(t, err)

	_, err = auth.VerifyAccessToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessToken_Malformed(t *testing.T) {
	auth := newTestAuthenticator(t)

	_, err := auth.VerifyAccessToken("not.a.jwt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNew_MissingSecret(t *testing.T) {
	_, err := New(&config.Config{})
	require.Error(t, err)
}
