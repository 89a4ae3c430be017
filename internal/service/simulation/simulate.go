package simulation

import (
	"backtester/internal/model"
	sim "backtester/internal/simulation"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Simulate прогоняет стратегию по матчам лиги и сезона.
// Ошибки валидации оборачивают sim.ErrInvalidRequest
func (s *serv) Simulate(ctx context.Context, req model.SimulationRequest) (*model.SimulationResult, error) {
	if err := sim.Validate(req); err != nil {
		return nil, err
	}
	strategy, err := sim.NewStrategy(req)
	if err != nil {
		return nil, err
	}

	log := s.logger.With(
		zap.String("league", req.League),
		zap.String("season", req.Season),
		zap.String("strategy", string(req.StrategyType)),
	)

	cached, ok, err := s.cache.Get(ctx, req)
	if err != nil {
		log.Warn("result cache get failed", zap.Error(err))
	}
	if ok {
		s.stats.Record(req, cached, true)
		log.Debug("simulation served from cache")
		return cached, nil
	}

	matches, err := s.matchRepo.GetMatches(ctx, req.League, req.Season)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}

	start := time.Now()
	res, err := sim.NewEngine(req, strategy).Run(ctx, matches)
	if err != nil {
		return nil, fmt.Errorf("run simulation: %w", err)
	}

	log.Info("simulation finished",
		zap.Int("matches", len(matches)),
		zap.Int("bets", res.TotalBets),
		zap.Float64("roi_percent", res.ROIPercent),
		zap.Duration("took", time.Since(start)),
	)

	if err = s.cache.Set(ctx, req, res); err != nil {
		log.Warn("result cache set failed", zap.Error(err))
	}
	s.stats.Record(req, res, false)

	return res, nil
}
