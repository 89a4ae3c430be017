package env

import (
	"backtester/internal/config"
	"fmt"
	"os"
	"runtime"
	"strconv"
)

const sweepWorkersEnvName = "SWEEP_WORKERS"

type simulationConfig struct {
	sweepWorkers int
}

// NewSimulationConfig по умолчанию перебор параметров использует все ядра
func NewSimulationConfig() (config.SimulationConfig, error) {
	workers := runtime.GOMAXPROCS(0)

	if v := os.Getenv(sweepWorkersEnvName); len(v) > 0 {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid %s %q: want positive integer", sweepWorkersEnvName, v)
		}
		workers = n
	}

	return &simulationConfig{sweepWorkers: workers}, nil
}

func (cfg *simulationConfig) SweepWorkers() int {
	return cfg.sweepWorkers
}
