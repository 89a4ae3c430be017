package simulation

import (
	"backtester/internal/model"
	sim "backtester/internal/simulation"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxSweepRuns ограничение на размер сетки одного перебора
const maxSweepRuns = 1000

// Sweep прогоняет базовый запрос по всем комбинациям сетки параметров.
// Матчи загружаются один раз, прогоны идут параллельно.
// Результат отсортирован по ROI по убыванию
func (s *serv) Sweep(ctx context.Context, sweep model.SweepRequest) ([]model.SweepRow, error) {
	combos, err := sim.ExpandGrid(sweep.Grid)
	if err != nil {
		return nil, err
	}
	if len(combos) > maxSweepRuns {
		return nil, fmt.Errorf("%w: grid expands to %d runs, limit is %d",
			sim.ErrInvalidRequest, len(combos), maxSweepRuns)
	}

	// Все комбинации проверяются до загрузки матчей
	requests := make([]model.SimulationRequest, len(combos))
	strategies := make([]sim.Strategy, len(combos))
	for i, params := range combos {
		req, err := sim.ApplyParams(sweep.Base, params)
		if err != nil {
			return nil, err
		}
		if err = sim.Validate(req); err != nil {
			return nil, fmt.Errorf("params %v: %w", params, err)
		}
		if strategies[i], err = sim.NewStrategy(req); err != nil {
			return nil, err
		}
		requests[i] = req
	}

	matches, err := s.matchRepo.GetMatches(ctx, sweep.Base.League, sweep.Base.Season)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}

	start := time.Now()
	rows := make([]model.SweepRow, len(combos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.simCfg.SweepWorkers())

	for i := range combos {
		g.Go(func() error {
			res, err := sim.NewEngine(requests[i], strategies[i]).Run(gctx, matches)
			if err != nil {
				return err
			}
			rows[i] = model.SweepRow{
				Params:        combos[i],
				FinalBankroll: res.FinalBankroll,
				ROIPercent:    res.ROIPercent,
				TotalBets:     res.TotalBets,
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("run sweep: %w", err)
	}

	sim.RankByROI(rows)

	s.logger.Info("sweep finished",
		zap.String("league", sweep.Base.League),
		zap.String("season", sweep.Base.Season),
		zap.Int("runs", len(rows)),
		zap.Duration("took", time.Since(start)),
	)

	return rows, nil
}
