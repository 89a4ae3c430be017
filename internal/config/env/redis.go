package env

import (
	"backtester/internal/config"
	"os"
	"time"
)

const (
	redisURLEnvName = "REDIS_URL"
	cacheTTLEnvName = "CACHE_TTL"

	defaultCacheTTL = 10 * time.Minute
)

type redisConfig struct {
	url string
	ttl time.Duration
}

func NewRedisConfig() (config.RedisConfig, error) {
	ttl, err := durationOrDefault(cacheTTLEnvName, defaultCacheTTL)
	if err != nil {
		return nil, err
	}

	return &redisConfig{
		url: os.Getenv(redisURLEnvName),
		ttl: ttl,
	}, nil
}

func (cfg *redisConfig) URL() string {
	return cfg.url
}

func (cfg *redisConfig) TTL() time.Duration {
	return cfg.ttl
}
