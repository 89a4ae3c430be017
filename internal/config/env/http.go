package env

import (
	"backtester/internal/config"
	"fmt"
	"net"
	"os"
	"time"
)

const (
	httpHostEnvName           = "HTTP_HOST"
	httpPortEnvName           = "HTTP_PORT"
	httpReadTimeoutEnvName    = "HTTP_READ_TIMEOUT"
	httpWriteTimeoutEnvName   = "HTTP_WRITE_TIMEOUT"
	httpRequestTimeoutEnvName = "HTTP_REQUEST_TIMEOUT"

	defaultHTTPPort       = "8000"
	defaultReadTimeout    = 15 * time.Second
	defaultWriteTimeout   = 60 * time.Second
	defaultRequestTimeout = 60 * time.Second
)

type httpConfig struct {
	host           string
	port           string
	readTimeout    time.Duration
	writeTimeout   time.Duration
	requestTimeout time.Duration
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	port := os.Getenv(httpPortEnvName)
	if len(port) == 0 {
		port = defaultHTTPPort
	}

	readTimeout, err := durationOrDefault(httpReadTimeoutEnvName, defaultReadTimeout)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := durationOrDefault(httpWriteTimeoutEnvName, defaultWriteTimeout)
	if err != nil {
		return nil, err
	}
	requestTimeout, err := durationOrDefault(httpRequestTimeoutEnvName, defaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	return &httpConfig{
		host:           os.Getenv(httpHostEnvName),
		port:           port,
		readTimeout:    readTimeout,
		writeTimeout:   writeTimeout,
		requestTimeout: requestTimeout,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, cfg.port)
}

func (cfg *httpConfig) ReadTimeout() time.Duration {
	return cfg.readTimeout
}

func (cfg *httpConfig) WriteTimeout() time.Duration {
	return cfg.writeTimeout
}

func (cfg *httpConfig) RequestTimeout() time.Duration {
	return cfg.requestTimeout
}

func durationOrDefault(name string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if len(v) == 0 {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}
