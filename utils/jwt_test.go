package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syndicate-game/backend/config"
)

func init() {
	config.SetForTesting(config.AppConfig{JWTSecret: "test-secret"})
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("424242")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "424242", claims.TelegramID)
}

func TestTokenTamperedSignature(t *testing.T) {
	token, err := GenerateToken("424242")
	require.NoError(t, err)

	// flip the first signature character; the last one carries padding bits
	// that can decode to the same bytes
	i := strings.LastIndex(token, ".")
	require.Greater(t, i, 0)
	flipped := byte('A')
	if token[i+1] == 'A' {
		flipped = 'B'
	}
	_, err = ParseToken(token[:i+1] + string(flipped) + token[i+2:])
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	claims := Claims{
		TelegramID: "424242",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestTokenMalformed(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}
