package env

import (
	"backtester/internal/config"
	"fmt"
	"os"
	"strconv"
)

const (
	logLevelEnvName       = "LOG_LEVEL"
	logEncodingEnvName    = "LOG_ENCODING"
	logDevelopmentEnvName = "LOG_DEVELOPMENT"
)

type logConfig struct {
	level       string
	encoding    string
	development bool
}

func NewLogConfig() (config.LogConfig, error) {
	cfg := &logConfig{
		level:    os.Getenv(logLevelEnvName),
		encoding: os.Getenv(logEncodingEnvName),
	}
	if len(cfg.level) == 0 {
		cfg.level = "info"
	}
	if len(cfg.encoding) == 0 {
		cfg.encoding = "json"
	}
	if cfg.encoding != "json" && cfg.encoding != "console" {
		return nil, fmt.Errorf("invalid %s %q: want json or console", logEncodingEnvName, cfg.encoding)
	}

	if dev := os.Getenv(logDevelopmentEnvName); len(dev) > 0 {
		v, err := strconv.ParseBool(dev)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", logDevelopmentEnvName, err)
		}
		cfg.development = v
	}

	return cfg, nil
}

func (cfg *logConfig) Level() string {
	return cfg.level
}

func (cfg *logConfig) Encoding() string {
	return cfg.encoding
}

func (cfg *logConfig) Development() bool {
	return cfg.development
}
