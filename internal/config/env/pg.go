package env

import (
	"backtester/internal/config"
	"errors"
	"net"
	"net/url"
	"os"
)

const (
	pgDSNEnvName      = "PG_DSN"
	pgHostEnvName     = "PG_HOST"
	pgPortEnvName     = "PG_PORT"
	pgUserEnvName     = "PG_USER"
	pgPasswordEnvName = "PG_PASSWORD"
	pgDatabaseEnvName = "PG_DATABASE"
)

type pgConfig struct {
	dsn string
}

// NewPGConfig берёт PG_DSN, а если он пуст - собирает DSN из PG_HOST,
// PG_PORT, PG_USER, PG_PASSWORD и PG_DATABASE
func NewPGConfig() (config.PGConfig, error) {
	if dsn := os.Getenv(pgDSNEnvName); len(dsn) != 0 {
		return &pgConfig{dsn: dsn}, nil
	}

	host := os.Getenv(pgHostEnvName)
	database := os.Getenv(pgDatabaseEnvName)
	if len(host) == 0 || len(database) == 0 {
		return nil, errors.New("pg dsn not found")
	}

	port := os.Getenv(pgPortEnvName)
	if len(port) == 0 {
		port = "5432"
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + database,
	}
	if user := os.Getenv(pgUserEnvName); len(user) != 0 {
		u.User = url.UserPassword(user, os.Getenv(pgPasswordEnvName))
	}

	return &pgConfig{dsn: u.String()}, nil
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}
