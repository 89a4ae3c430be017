package simulation

import (
	"backtester/internal/model"
	"math"
	"sort"
)

// Параметры, которые можно перебирать
const (
	ParamMinEdge       = "min_edge"
	ParamMinOdds       = "min_odds"
	ParamFixedStake    = "fixed_stake"
	ParamPercentStake  = "percent_stake"
	ParamKellyFraction = "kelly_fraction"
	ParamMultipleLegs  = "multiple_legs"
)

var sweepSetters = map[string]func(req *model.SimulationRequest, v float64) error{
	ParamMinEdge: func(req *model.SimulationRequest, v float64) error {
		req.MinEdge = &v
		return nil
	},
	ParamMinOdds: func(req *model.SimulationRequest, v float64) error {
		req.MinOdds = &v
		return nil
	},
	ParamFixedStake: func(req *model.SimulationRequest, v float64) error {
		req.FixedStake = &v
		return nil
	},
	ParamPercentStake: func(req *model.SimulationRequest, v float64) error {
		req.PercentStake = &v
		return nil
	},
	ParamKellyFraction: func(req *model.SimulationRequest, v float64) error {
		req.KellyFraction = &v
		return nil
	},
	ParamMultipleLegs: func(req *model.SimulationRequest, v float64) error {
		if v != math.Trunc(v) {
			return invalidf("multiple_legs must be an integer, got %v", v)
		}
		req.MultipleLegs = int(v)
		return nil
	},
}

// ExpandGrid декартово произведение значений сетки.
// Ключи перебираются в алфавитном порядке, пустая сетка даёт один прогон без параметров
func ExpandGrid(grid map[string][]float64) ([]map[string]float64, error) {
	keys := make([]string, 0, len(grid))
	for k := range grid {
		if _, ok := sweepSetters[k]; !ok {
			return nil, invalidf("unsupported sweep parameter %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	combos := []map[string]float64{{}}
	for _, k := range keys {
		next := make([]map[string]float64, 0, len(combos)*len(grid[k]))
		for _, base := range combos {
			for _, v := range grid[k] {
				params := make(map[string]float64, len(base)+1)
				for bk, bv := range base {
					params[bk] = bv
				}
				params[k] = v
				next = append(next, params)
			}
		}
		combos = next
	}

	return combos, nil
}

// ApplyParams копия базового запроса с подставленными параметрами.
// Указатели базового запроса не разделяются с копией
func ApplyParams(base model.SimulationRequest, params map[string]float64) (model.SimulationRequest, error) {
	req := base
	req.Selection = clonePtr(base.Selection)
	req.MinEdge = clonePtr(base.MinEdge)
	req.RuleExpression = clonePtr(base.RuleExpression)
	req.FixedStake = clonePtr(base.FixedStake)
	req.PercentStake = clonePtr(base.PercentStake)
	req.KellyFraction = clonePtr(base.KellyFraction)
	req.MinOdds = clonePtr(base.MinOdds)

	for name, v := range params {
		set, ok := sweepSetters[name]
		if !ok {
			return model.SimulationRequest{}, invalidf("unsupported sweep parameter %q", name)
		}
		if err := set(&req, v); err != nil {
			return model.SimulationRequest{}, err
		}
	}

	return req, nil
}

// RankByROI сортирует результаты по ROI по убыванию, равные сохраняют порядок
func RankByROI(rows []model.SweepRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ROIPercent > rows[j].ROIPercent
	})
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
