package converter

import (
	dto "backtester/internal/api/dto/simulation"
	"backtester/internal/model"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestToSimulationRequest(t *testing.T) {
	sel := "A"
	edge := 0.05
	got := ToSimulationRequest(dto.SimulationRequest{
		League:        "E0",
		Season:        "2324",
		StrategyType:  "edge",
		Selection:     &sel,
		MinEdge:       &edge,
		StakingMethod: "fixed",
	})

	if got.MultipleLegs != 1 {
		t.Fatalf("multiple_legs=%d want default 1", got.MultipleLegs)
	}
	if got.Selection == nil || *got.Selection != model.SelectionAway {
		t.Fatalf("selection=%v want=A", got.Selection)
	}
	if got.StrategyType != model.StrategyEdge || got.StakingMethod != model.StakingFixed {
		t.Fatalf("strategy=%q staking=%q", got.StrategyType, got.StakingMethod)
	}

	legs := 3
	if got = ToSimulationRequest(dto.SimulationRequest{MultipleLegs: &legs}); got.MultipleLegs != 3 || got.Selection != nil {
		t.Fatalf("multiple_legs=%d selection=%v", got.MultipleLegs, got.Selection)
	}
}

func TestToSimulationResponse_Rounding(t *testing.T) {
	p := 0.123456
	e := 0.0234567
	settled := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)

	res := &model.SimulationResult{
		FinalBankroll: 1100,
		EquityCurve: []model.EquityPoint{
			{T: nil, Bankroll: 1000},
			{T: &settled, Bankroll: 1099.999},
		},
		Bets: []model.SettledBet{{
			Stake:        110.00000000000001,
			CombinedOdds: 3.9899999999999998,
			Profit:       -110.00000000000001,
			SettledAt:    settled,
			Legs: []model.Leg{
				{MatchID: uuid.New(), Selection: model.SelectionHome, Odds: 2.1, ImpliedProb: 1 / 2.1, ModelProb: &p, Edge: &e},
				{MatchID: uuid.New(), Selection: model.SelectionDraw, Odds: 1.9, ImpliedProb: 1 / 1.9},
			},
		}},
	}

	out := ToSimulationResponse(res)

	if out.EquityCurve[0].T != nil || out.EquityCurve[1].Bankroll != 1100 {
		t.Fatalf("equity=%+v", out.EquityCurve)
	}
	b := out.Bets[0]
	if b.Stake != 110 || b.Profit != -110 || b.CombinedOdds != 3.99 {
		t.Fatalf("stake=%v profit=%v odds=%v", b.Stake, b.Profit, b.CombinedOdds)
	}
	if b.Legs[0].ImpliedProb != 0.4762 || *b.Legs[0].ModelProb != 0.1235 || *b.Legs[0].Edge != 0.0235 {
		t.Fatalf("leg=%+v", b.Legs[0])
	}
	if b.Legs[1].ModelProb != nil || b.Legs[1].Edge != nil {
		t.Fatalf("absent probabilities must stay null")
	}
}

func TestToStatsResponse_NoRuns(t *testing.T) {
	out := ToStatsResponse(model.SimulationStats{})
	if out.LastRunAt != nil || out.RecentResults == nil {
		t.Fatalf("last_run_at=%v recent=%v", out.LastRunAt, out.RecentResults)
	}
}
