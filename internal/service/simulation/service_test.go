package simulation

import (
	"backtester/internal/model"
	"backtester/internal/repository/stats_repo"
	sim "backtester/internal/simulation"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubMatchRepo struct {
	mu      sync.Mutex
	matches []model.Match
	err     error
	calls   int
}

func (r *stubMatchRepo) GetMatches(context.Context, string, string) ([]model.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.matches, r.err
}

func (r *stubMatchRepo) UpsertMatches(context.Context, []model.Match) (int, error) {
	return 0, nil
}

func (r *stubMatchRepo) ListDatasets(context.Context) ([]model.Dataset, error) {
	return nil, nil
}

type memCache struct {
	data   map[string]*model.SimulationResult
	getErr error
}

func key(req model.SimulationRequest) string {
	return req.League + "/" + req.Season + "/" + string(req.StrategyType)
}

func (c *memCache) Get(_ context.Context, req model.SimulationRequest) (*model.SimulationResult, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	res, ok := c.data[key(req)]
	return res, ok, nil
}

func (c *memCache) Set(_ context.Context, req model.SimulationRequest, res *model.SimulationResult) error {
	c.data[key(req)] = res
	return nil
}

func (c *memCache) Invalidate(context.Context, string, string) error {
	c.data = make(map[string]*model.SimulationResult)
	return nil
}

type stubSimConfig struct{ workers int }

func (c stubSimConfig) SweepWorkers() int { return c.workers }

func ptr[T any](v T) *T { return &v }

func homeWins(n int) []model.Match {
	matches := make([]model.Match, 0, n)
	for i := 0; i < n; i++ {
		matches = append(matches, model.Match{
			ID:            uuid.New(),
			League:        "E0",
			Season:        "2324",
			Kickoff:       time.Date(2024, 1, i+1, 15, 0, 0, 0, time.UTC),
			HomeTeam:      "H" + string(rune('A'+i)),
			AwayTeam:      "A" + string(rune('A'+i)),
			HomeGoals:     1,
			Result:        model.SelectionHome,
			HomeWinOdds:   2,
			DrawOdds:      3,
			AwayWinOdds:   4,
			ModelHomeProb: ptr(0.6),
		})
	}
	return matches
}

func homeRequest() model.SimulationRequest {
	return model.SimulationRequest{
		League:           "E0",
		Season:           "2324",
		StrategyType:     model.StrategyHome,
		StakingMethod:    model.StakingFixed,
		FixedStake:       ptr(100.0),
		StartingBankroll: 1000,
		MultipleLegs:     1,
	}
}

func newTestService(matches []model.Match) (*serv, *stubMatchRepo, *memCache) {
	repo := &stubMatchRepo{matches: matches}
	cache := &memCache{data: make(map[string]*model.SimulationResult)}
	return NewService(repo, cache, stats_repo.NewStatsRepository(), stubSimConfig{workers: 2}, zap.NewNop()), repo, cache
}

func TestSimulate(t *testing.T) {
	s, repo, _ := newTestService(homeWins(4))

	res, err := s.Simulate(context.Background(), homeRequest())
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if res.FinalBankroll != 1400 || res.ROIPercent != 40 || res.TotalBets != 4 {
		t.Fatalf("final=%v roi=%v bets=%d want=1400/40/4", res.FinalBankroll, res.ROIPercent, res.TotalBets)
	}
	if res.MaxDrawdownPercent != 0 || res.LongestWinStreak != 4 {
		t.Fatalf("drawdown=%v streak=%d", res.MaxDrawdownPercent, res.LongestWinStreak)
	}

	// Второй запрос отдаётся из кэша
	if _, err = s.Simulate(context.Background(), homeRequest()); err != nil {
		t.Fatalf("err=%v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("match repo calls=%d want=1", repo.calls)
	}

	stats := s.Stats()
	if stats.TotalRuns != 2 || stats.CacheHits != 1 || stats.TotalBets != 8 {
		t.Fatalf("stats runs=%d hits=%d bets=%d", stats.TotalRuns, stats.CacheHits, stats.TotalBets)
	}
}

func TestSimulate_CacheErrorFallsBackToEngine(t *testing.T) {
	s, repo, cache := newTestService(homeWins(2))
	cache.getErr = errors.New("redis down")

	if _, err := s.Simulate(context.Background(), homeRequest()); err != nil {
		t.Fatalf("err=%v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("match repo calls=%d want=1", repo.calls)
	}
}

func TestSimulate_Errors(t *testing.T) {
	s, repo, _ := newTestService(homeWins(2))

	bad := homeRequest()
	bad.FixedStake = nil
	if _, err := s.Simulate(context.Background(), bad); !errors.Is(err, sim.ErrInvalidRequest) {
		t.Fatalf("err=%v want ErrInvalidRequest", err)
	}

	rules := homeRequest()
	rules.StrategyType = model.StrategyRules
	rules.RuleExpression = ptr("bankroll > 0")
	if _, err := s.Simulate(context.Background(), rules); !errors.Is(err, sim.ErrInvalidRequest) {
		t.Fatalf("err=%v want ErrInvalidRequest", err)
	}
	if repo.calls != 0 {
		t.Fatalf("invalid requests must not hit storage, calls=%d", repo.calls)
	}

	repo.err = errors.New("db down")
	_, err := s.Simulate(context.Background(), homeRequest())
	if err == nil || errors.Is(err, sim.ErrInvalidRequest) {
		t.Fatalf("err=%v want storage error", err)
	}
}

func TestSweep(t *testing.T) {
	s, repo, _ := newTestService(homeWins(4))

	rows, err := s.Sweep(context.Background(), model.SweepRequest{
		Base: homeRequest(),
		Grid: map[string][]float64{sim.ParamFixedStake: {50, 200, 100}},
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("match repo calls=%d want=1", repo.calls)
	}
	if len(rows) != 3 {
		t.Fatalf("rows=%d want=3", len(rows))
	}

	want := []float64{200, 100, 50}
	for i, w := range want {
		if rows[i].Params[sim.ParamFixedStake] != w {
			t.Fatalf("row %d stake=%v want=%v", i, rows[i].Params[sim.ParamFixedStake], w)
		}
	}
	if rows[0].FinalBankroll != 1800 || rows[0].ROIPercent != 80 || rows[0].TotalBets != 4 {
		t.Fatalf("best row=%+v", rows[0])
	}
}

func TestSweep_InvalidCombination(t *testing.T) {
	s, repo, _ := newTestService(homeWins(2))

	_, err := s.Sweep(context.Background(), model.SweepRequest{
		Base: homeRequest(),
		Grid: map[string][]float64{sim.ParamFixedStake: {100, -5}},
	})
	if !errors.Is(err, sim.ErrInvalidRequest) {
		t.Fatalf("err=%v want ErrInvalidRequest", err)
	}
	if repo.calls != 0 {
		t.Fatalf("match repo calls=%d want=0", repo.calls)
	}
}

func TestSweep_TooLarge(t *testing.T) {
	s, _, _ := newTestService(nil)

	values := make([]float64, 40)
	for i := range values {
		values[i] = float64(i + 1)
	}

	_, err := s.Sweep(context.Background(), model.SweepRequest{
		Base: homeRequest(),
		Grid: map[string][]float64{sim.ParamFixedStake: values, sim.ParamMinOdds: values[1:]},
	})
	if !errors.Is(err, sim.ErrInvalidRequest) {
		t.Fatalf("err=%v want ErrInvalidRequest", err)
	}
}
