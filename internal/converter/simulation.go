package converter

import (
	dto "backtester/internal/api/dto/simulation"
	"backtester/internal/model"
	"backtester/internal/simulation"
	"time"
)

// Знаков после запятой в ответе
const (
	moneyPlaces = 2
	probPlaces  = 4
)

// ToSimulationRequest multiple_legs по умолчанию 1
func ToSimulationRequest(req dto.SimulationRequest) model.SimulationRequest {
	legs := 1
	if req.MultipleLegs != nil {
		legs = *req.MultipleLegs
	}

	out := model.SimulationRequest{
		League:           req.League,
		Season:           req.Season,
		StrategyType:     model.StrategyType(req.StrategyType),
		MinEdge:          req.MinEdge,
		RuleExpression:   req.RuleExpression,
		StakingMethod:    model.StakingMethod(req.StakingMethod),
		FixedStake:       req.FixedStake,
		PercentStake:     req.PercentStake,
		KellyFraction:    req.KellyFraction,
		StartingBankroll: req.StartingBankroll,
		MultipleLegs:     legs,
		MinOdds:          req.MinOdds,
	}
	if req.Selection != nil {
		sel := model.Selection(*req.Selection)
		out.Selection = &sel
	}

	return out
}

func ToSimulationResponse(res *model.SimulationResult) dto.SimulationResponse {
	out := dto.SimulationResponse{
		FinalBankroll:      res.FinalBankroll,
		ROIPercent:         res.ROIPercent,
		TotalBets:          res.TotalBets,
		TotalWins:          res.TotalWins,
		TotalLosses:        res.TotalLosses,
		MaxDrawdownPercent: res.MaxDrawdownPercent,
		StrikeRatePercent:  res.StrikeRatePercent,
		TotalStaked:        res.TotalStaked,
		TotalProfit:        res.TotalProfit,
		AverageOdds:        res.AverageOdds,
		LongestWinStreak:   res.LongestWinStreak,
		LongestLossStreak:  res.LongestLossStreak,
		EquityCurve:        make([]dto.EquityPoint, 0, len(res.EquityCurve)),
		Bets:               make([]dto.Bet, 0, len(res.Bets)),
	}

	for _, p := range res.EquityCurve {
		out.EquityCurve = append(out.EquityCurve, dto.EquityPoint{
			T:        p.T,
			Bankroll: simulation.Round(p.Bankroll, moneyPlaces),
		})
	}

	for _, b := range res.Bets {
		out.Bets = append(out.Bets, toBet(b))
	}

	return out
}

func toBet(b model.SettledBet) dto.Bet {
	legs := make([]dto.Leg, 0, len(b.Legs))
	for _, l := range b.Legs {
		legs = append(legs, dto.Leg{
			MatchID:     l.MatchID.String(),
			Kickoff:     l.Kickoff,
			HomeTeam:    l.HomeTeam,
			AwayTeam:    l.AwayTeam,
			Result:      string(l.Result),
			Selection:   string(l.Selection),
			Odds:        l.Odds,
			ImpliedProb: simulation.Round(l.ImpliedProb, probPlaces),
			ModelProb:   roundPtr(l.ModelProb, probPlaces),
			Edge:        roundPtr(l.Edge, probPlaces),
		})
	}

	return dto.Bet{
		SettledAt:    b.SettledAt,
		Stake:        simulation.Round(b.Stake, moneyPlaces),
		CombinedOdds: simulation.Round(b.CombinedOdds, probPlaces),
		IsWin:        b.IsWin,
		ReturnAmount: simulation.Round(b.ReturnAmount, moneyPlaces),
		Profit:       simulation.Round(b.Profit, moneyPlaces),
		Legs:         legs,
	}
}

func ToSweepRequest(req dto.SweepRequest) model.SweepRequest {
	return model.SweepRequest{
		Base: ToSimulationRequest(req.Base),
		Grid: req.Grid,
	}
}

func ToSweepResponse(rows []model.SweepRow) dto.SweepResponse {
	out := dto.SweepResponse{
		Runs:    len(rows),
		Results: make([]dto.SweepRow, 0, len(rows)),
	}
	for _, r := range rows {
		out.Results = append(out.Results, dto.SweepRow{
			Params:        r.Params,
			FinalBankroll: r.FinalBankroll,
			ROIPercent:    r.ROIPercent,
			TotalBets:     r.TotalBets,
		})
	}
	return out
}

func ToStatsResponse(s model.SimulationStats) dto.StatsResponse {
	out := dto.StatsResponse{
		TotalRuns:     s.TotalRuns,
		CacheHits:     s.CacheHits,
		TotalBets:     s.TotalBets,
		AverageROI:    simulation.Round(s.AverageROI, moneyPlaces),
		RecentResults: make([]dto.RunSummary, 0, len(s.RecentResults)),
	}
	if !s.LastRunAt.IsZero() {
		at := s.LastRunAt.UTC().Truncate(time.Second)
		out.LastRunAt = &at
	}
	for _, r := range s.RecentResults {
		out.RecentResults = append(out.RecentResults, dto.RunSummary{
			League:     r.League,
			Season:     r.Season,
			Strategy:   string(r.Strategy),
			ROIPercent: r.ROIPercent,
			TotalBets:  r.TotalBets,
			At:         r.At,
		})
	}
	return out
}

func roundPtr(v *float64, places int32) *float64 {
	if v == nil {
		return nil
	}
	r := simulation.Round(*v, places)
	return &r
}
