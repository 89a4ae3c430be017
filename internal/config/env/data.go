package env

import (
	"backtester/internal/config"
	"os"
)

const (
	dataCSVPathEnvName        = "DATA_CSV_PATH"
	dataReloadScheduleEnvName = "DATA_RELOAD_SCHEDULE"

	defaultDataCSVPath = "data/matches.csv"
)

type dataConfig struct {
	csvPath        string
	reloadSchedule string
}

func NewDataConfig() (config.DataConfig, error) {
	path := os.Getenv(dataCSVPathEnvName)
	if len(path) == 0 {
		path = defaultDataCSVPath
	}

	return &dataConfig{
		csvPath:        path,
		reloadSchedule: os.Getenv(dataReloadScheduleEnvName),
	}, nil
}

func (cfg *dataConfig) CSVPath() string {
	return cfg.csvPath
}

func (cfg *dataConfig) ReloadSchedule() string {
	return cfg.reloadSchedule
}
