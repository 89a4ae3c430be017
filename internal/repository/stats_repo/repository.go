package stats_repo

import (
	"backtester/internal/model"
	"sync"
	"time"
)

// defaultWindowSize сколько последних прогонов хранится для /stats
const defaultWindowSize = 20

// StatsRepo счётчики обслуженных симуляций в памяти процесса
type StatsRepo struct {
	mtx        sync.RWMutex
	state      model.SimulationStats
	sumROI     float64
	windowSize int
	now        func() time.Time
}

// NewStatsRepository Конструктор репозитория с пустым состоянием
func NewStatsRepository() *StatsRepo {
	return &StatsRepo{
		state: model.SimulationStats{
			RecentResults: make([]model.RunSummary, 0, defaultWindowSize),
		},
		windowSize: defaultWindowSize,
		now:        time.Now,
	}
}

// Snapshot копия текущего состояния
func (r *StatsRepo) Snapshot() model.SimulationStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	s := r.state
	s.RecentResults = append([]model.RunSummary(nil), r.state.RecentResults...)
	return s
}

// Record учитывает прогон симуляции
func (r *StatsRepo) Record(req model.SimulationRequest, res *model.SimulationResult, cached bool) {
	if res == nil {
		return
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	at := r.now()

	r.state.TotalRuns++
	if cached {
		r.state.CacheHits++
	}
	r.state.TotalBets += res.TotalBets
	r.sumROI += res.ROIPercent
	r.state.AverageROI = r.sumROI / float64(r.state.TotalRuns)
	r.state.LastRunAt = at

	// Добавляем прогон в окно
	r.state.RecentResults = append(r.state.RecentResults, model.RunSummary{
		League:     req.League,
		Season:     req.Season,
		Strategy:   req.StrategyType,
		ROIPercent: res.ROIPercent,
		TotalBets:  res.TotalBets,
		At:         at,
	})

	// Поддерживаем размер окна
	if len(r.state.RecentResults) > r.windowSize {
		r.state.RecentResults = r.state.RecentResults[1:]
	}
}
