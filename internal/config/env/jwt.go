package env

import (
	"backtester/internal/config"
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	accessTokenKeyEnvName       = "ACCESS_TOKEN"
	accessTokenDurationEnvName  = "ACCESS_TOKEN_DURATION"
	refreshTokenDurationEnvName = "REFRESH_TOKEN_DURATION"

	defaultAccessTokenDuration  = 15 * time.Minute
	defaultRefreshTokenDuration = 30 * 24 * time.Hour
)

type jwtConfig struct {
	secret          []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
}

// NewJWTConfig секрет обязателен, сроки жизни токенов по умолчанию 15m и 720h.
// Refresh токен не может жить меньше access токена
func NewJWTConfig() (config.JWTConfig, error) {
	secret := os.Getenv(accessTokenKeyEnvName)
	if len(secret) == 0 {
		return nil, errors.New("access token secret key not found")
	}

	access, err := durationOrDefault(accessTokenDurationEnvName, defaultAccessTokenDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := durationOrDefault(refreshTokenDurationEnvName, defaultRefreshTokenDuration)
	if err != nil {
		return nil, err
	}

	if access <= 0 || refresh <= 0 {
		return nil, errors.New("token durations must be positive")
	}
	if refresh < access {
		return nil, fmt.Errorf("refresh token duration %s is shorter than access token duration %s", refresh, access)
	}

	return &jwtConfig{
		secret:          []byte(secret),
		accessDuration:  access,
		refreshDuration: refresh,
	}, nil
}

func (cfg *jwtConfig) AccessTokenSecretKey() []byte {
	return cfg.secret
}

func (cfg *jwtConfig) AccessTokenDuration() time.Duration {
	return cfg.accessDuration
}

func (cfg *jwtConfig) RefreshTokenDuration() time.Duration {
	return cfg.refreshDuration
}
