package result_cache

import (
	"backtester/internal/model"
	"strings"
	"testing"
)

func TestResultKey(t *testing.T) {
	stake := 100.0
	req := model.SimulationRequest{
		League:           "E0",
		Season:           "2324",
		StrategyType:     model.StrategyHome,
		StakingMethod:    model.StakingFixed,
		FixedStake:       &stake,
		StartingBankroll: 1000,
		MultipleLegs:     1,
	}

	k1, err := resultKey(req)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !strings.HasPrefix(k1, "simulation:E0:2324:") {
		t.Fatalf("key=%q has wrong prefix", k1)
	}

	other := 100.0
	same := req
	same.FixedStake = &other
	k2, _ := resultKey(same)
	if k1 != k2 {
		t.Fatalf("equal requests produce different keys: %q %q", k1, k2)
	}

	changed := req
	changed.MultipleLegs = 2
	k3, _ := resultKey(changed)
	if k1 == k3 {
		t.Fatalf("different requests share key %q", k1)
	}
}

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := t.Context()

	if err := c.Set(ctx, model.SimulationRequest{}, &model.SimulationResult{}); err != nil {
		t.Fatalf("set err=%v", err)
	}
	if _, ok, err := c.Get(ctx, model.SimulationRequest{}); ok || err != nil {
		t.Fatalf("get ok=%v err=%v want miss", ok, err)
	}
	if err := c.Invalidate(ctx, "E0", "2324"); err != nil {
		t.Fatalf("invalidate err=%v", err)
	}
}
