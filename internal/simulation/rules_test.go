package simulation

import (
	"backtester/internal/model"
	"errors"
	"testing"
)

func rulesRequest(expression string) model.SimulationRequest {
	req := fixedRequest(model.StrategyRules, 100, 1)
	req.Selection = ptr(model.SelectionHome)
	req.RuleExpression = ptr(expression)
	return req
}

func TestRules_PlacesBetWhenTrue(t *testing.T) {
	history := []model.Match{
		fakeMatch("A", "X", day(1, 12), model.SelectionHome, nil), // A +3
		fakeMatch("B", "Y", day(2, 12), model.SelectionAway, nil), // B +0
	}
	target := fakeMatch("A", "B", day(3, 15), model.SelectionHome, nil)

	res := runEngine(t, rulesRequest("home_points > away_points"), append(history, target))
	if res.TotalBets != 1 {
		t.Fatalf("total_bets=%d want=1", res.TotalBets)
	}
	if res.FinalBankroll != 1100 {
		t.Fatalf("final_bankroll=%v want=1100", res.FinalBankroll)
	}
	if res.TotalWins != 1 {
		t.Fatalf("total_wins=%d want=1", res.TotalWins)
	}
}

func TestRules_BlocksBetWhenFalse(t *testing.T) {
	history := []model.Match{
		fakeMatch("A", "X", day(1, 12), model.SelectionAway, nil), // A +0
		fakeMatch("B", "Y", day(2, 12), model.SelectionHome, nil), // B +3
	}
	target := fakeMatch("A", "B", day(3, 15), model.SelectionHome, nil)

	res := runEngine(t, rulesRequest("home_points > away_points"), append(history, target))
	if res.TotalBets != 0 {
		t.Fatalf("total_bets=%d want=0", res.TotalBets)
	}
	if res.FinalBankroll != 1000 {
		t.Fatalf("final_bankroll=%v want=1000", res.FinalBankroll)
	}
}

func TestRules_SupportsAbs(t *testing.T) {
	history := []model.Match{
		fakeMatch("A", "X", day(1, 12), model.SelectionHome, nil), // A +3
		fakeMatch("B", "Y", day(2, 12), model.SelectionDraw, nil), // B +1
	}
	target := fakeMatch("A", "B", day(3, 15), model.SelectionHome, nil)

	res := runEngine(t, rulesRequest("abs(points_diff) >= 2"), append(history, target))
	if res.TotalBets != 1 {
		t.Fatalf("total_bets=%d want=1", res.TotalBets)
	}
}

func TestRules_NoHistoryMeansNoBet(t *testing.T) {
	expressions := []string{
		"home_points >= 0",
		"home_points == away_points",
		"home_points != 5",
		"home_odds > 1 or away_win_rate == 0",
	}

	for _, expression := range expressions {
		t.Run(expression, func(t *testing.T) {
			matches := []model.Match{fakeMatch("A", "B", day(1, 15), model.SelectionHome, nil)}

			res := runEngine(t, rulesRequest(expression), matches)
			if res.TotalBets != 0 {
				t.Fatalf("total_bets=%d want=0", res.TotalBets)
			}
		})
	}
}

func TestRules_UnusedUnknownFeatureDoesNotBlock(t *testing.T) {
	history := []model.Match{fakeMatch("A", "X", day(1, 12), model.SelectionHome, nil)}
	target := fakeMatch("A", "B", day(3, 15), model.SelectionHome, nil)

	// У B нет истории, но выражение использует только признаки A
	res := runEngine(t, rulesRequest("home_points == 3"), append(history, target))
	if res.TotalBets != 1 {
		t.Fatalf("total_bets=%d want=1", res.TotalBets)
	}
}

func TestRules_OddsFeatures(t *testing.T) {
	matches := []model.Match{fakeMatch("A", "B", day(1, 15), model.SelectionHome, nil)}

	res := runEngine(t, rulesRequest("home_odds < away_odds and draw_odds > 3"), matches)
	if res.TotalBets != 1 {
		t.Fatalf("total_bets=%d want=1", res.TotalBets)
	}
}

func TestNewRules_RejectsUnsafeExpressions(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "syntax error", expr: "home_points >"},
		{name: "unknown variable", expr: "bankroll > 10"},
		{name: "disallowed function", expr: "len(\"abc\") > 1"},
		{name: "non boolean result", expr: "home_points + 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRules(tt.expr, model.SelectionHome)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("err=%v want ErrInvalidRequest", err)
			}
		})
	}
}

func TestNewRules_AllowsWhitelistedFunctions(t *testing.T) {
	exprs := []string{
		"abs(goal_diff_diff) > 1",
		"max(home_points, away_points) >= 3",
		"min(home_win_rate, away_win_rate) < 0.5",
		"round(home_win_rate) == 1",
		"floor(home_odds) == 2 or ceil(away_odds) == 4",
	}

	for _, e := range exprs {
		if _, err := NewRules(e, model.SelectionAway); err != nil {
			t.Fatalf("expr %q: %v", e, err)
		}
	}
}
