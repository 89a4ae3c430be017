package simulation

import (
	"backtester/internal/model"
	"errors"
	"testing"
)

func TestExpandGrid(t *testing.T) {
	combos, err := ExpandGrid(map[string][]float64{
		ParamMinEdge:      {0.01, 0.05},
		ParamMultipleLegs: {1, 2, 3},
	})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(combos) != 6 {
		t.Fatalf("combos=%d want=6", len(combos))
	}
	// min_edge перебирается внешним циклом (алфавитный порядок ключей)
	if combos[0][ParamMinEdge] != 0.01 || combos[0][ParamMultipleLegs] != 1 {
		t.Fatalf("first combo=%v", combos[0])
	}
	if combos[5][ParamMinEdge] != 0.05 || combos[5][ParamMultipleLegs] != 3 {
		t.Fatalf("last combo=%v", combos[5])
	}

	empty, err := ExpandGrid(nil)
	if err != nil || len(empty) != 1 || len(empty[0]) != 0 {
		t.Fatalf("empty grid combos=%v err=%v want one empty combo", empty, err)
	}

	if _, err := ExpandGrid(map[string][]float64{"window": {3}}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err=%v want ErrInvalidRequest", err)
	}
}

func TestApplyParams_DoesNotAliasBase(t *testing.T) {
	base := fixedRequest(model.StrategyEdge, 100, 1)
	base.Selection = ptr(model.SelectionHome)
	base.MinEdge = ptr(0.02)

	req, err := ApplyParams(base, map[string]float64{ParamMinEdge: 0.1, ParamFixedStake: 50})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if *req.MinEdge != 0.1 || *req.FixedStake != 50 {
		t.Fatalf("min_edge=%v fixed_stake=%v", *req.MinEdge, *req.FixedStake)
	}
	if *base.MinEdge != 0.02 || *base.FixedStake != 100 {
		t.Fatalf("base modified: min_edge=%v fixed_stake=%v", *base.MinEdge, *base.FixedStake)
	}

	*req.Selection = model.SelectionAway
	if *base.Selection != model.SelectionHome {
		t.Fatalf("selection pointer shared with base")
	}

	if _, err := ApplyParams(base, map[string]float64{ParamMultipleLegs: 1.5}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err=%v want ErrInvalidRequest", err)
	}
}

func TestRankByROI(t *testing.T) {
	rows := []model.SweepRow{
		{Params: map[string]float64{"i": 0}, ROIPercent: 1},
		{Params: map[string]float64{"i": 1}, ROIPercent: 5},
		{Params: map[string]float64{"i": 2}, ROIPercent: 1},
		{Params: map[string]float64{"i": 3}, ROIPercent: -2},
	}
	RankByROI(rows)

	want := []float64{1, 0, 2, 3}
	for i, w := range want {
		if rows[i].Params["i"] != w {
			t.Fatalf("position %d has row %v want %v", i, rows[i].Params["i"], w)
		}
	}
}
