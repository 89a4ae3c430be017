package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
	ReadTimeout() time.Duration
	WriteTimeout() time.Duration
	RequestTimeout() time.Duration
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

// RedisConfig пустой URL - кэш результатов выключен
type RedisConfig interface {
	URL() string
	TTL() time.Duration
}

type LogConfig interface {
	Level() string
	Encoding() string
	Development() bool
}

type SimulationConfig interface {
	SweepWorkers() int
}

// DataConfig источник CSV для /load-data и расписание перезагрузки.
// Пустое расписание - перезагрузка по cron выключена
type DataConfig interface {
	CSVPath() string
	ReloadSchedule() string
}
