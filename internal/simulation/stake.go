package simulation

import "backtester/internal/model"

// CalculateStake размер ставки по методу стейкинга.
// false - ставку делать не нужно (нет перевеса по Келли или нет вероятности)
func CalculateStake(req model.SimulationRequest, bankroll, combinedOdds float64, combinedProb *float64) (float64, bool) {
	switch req.StakingMethod {
	case model.StakingFixed:
		if req.FixedStake == nil {
			return 0, false
		}
		return *req.FixedStake, true

	case model.StakingPercent:
		if req.PercentStake == nil {
			return 0, false
		}
		return bankroll * *req.PercentStake, true

	case model.StakingKelly:
		if req.KellyFraction == nil || combinedProb == nil {
			return 0, false
		}
		f := KellyFraction(combinedOdds, *combinedProb)
		if f <= 0 {
			return 0, false
		}
		return bankroll * f * *req.KellyFraction, true
	}

	return 0, false
}

// KellyFraction доля банка по критерию Келли для десятичного коэффициента.
// Возвращает 0, если перевеса нет
func KellyFraction(odds, prob float64) float64 {
	b := odds - 1
	if b <= 0 {
		return 0
	}

	f := (b*prob - (1 - prob)) / b
	if f <= 0 {
		return 0
	}
	return f
}
