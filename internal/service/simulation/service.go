package simulation

import (
	"backtester/internal/config"
	"backtester/internal/model"
	"backtester/internal/repository"

	"go.uber.org/zap"
)

type serv struct {
	matchRepo repository.MatchRepository
	cache     repository.ResultCache
	stats     repository.SimulationStatsRepository
	simCfg    config.SimulationConfig
	logger    *zap.Logger
}

func NewService(
	matchRepo repository.MatchRepository,
	cache repository.ResultCache,
	stats repository.SimulationStatsRepository,
	simCfg config.SimulationConfig,
	logger *zap.Logger,
) *serv {
	return &serv{
		matchRepo: matchRepo,
		cache:     cache,
		stats:     stats,
		simCfg:    simCfg,
		logger:    logger,
	}
}

func (s *serv) Stats() model.SimulationStats {
	return s.stats.Snapshot()
}
