package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/syndicate-game/backend/config"
)

// SessionTTL is the absolute lifetime of an issued session token.
const SessionTTL = 30 * 24 * time.Hour

// Claims binds the Telegram identifier to a session. No privilege claims are
// carried: the admin flag is re-read from the user row on every request.
type Claims struct {
	TelegramID string `json:"telegram_id"`
	jwt.RegisteredClaims
}

// GenerateToken issues a session JWT for the given Telegram identifier.
func GenerateToken(telegramID string) (string, error) {
	cfg := config.Get()

	claims := Claims{
		TelegramID: telegramID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// GenerateTokenForID is a convenience wrapper for numeric Telegram ids.
func GenerateTokenForID(id int64) (string, error) {
	return GenerateToken(strconv.FormatInt(id, 10))
}

// ParseToken validates a session JWT and returns its claims. Malformed tokens,
// bad signatures, wrong algorithms and expired tokens all return an error.
func ParseToken(tokenStr string) (*Claims, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.TelegramID == "" {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
