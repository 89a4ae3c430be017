package simulation

import "backtester/internal/model"

// calculateMetrics сводные показатели по рассчитанным ставкам
func calculateMetrics(bets []model.SettledBet, startingBankroll, finalBankroll float64) model.Metrics {
	var (
		totalStaked, totalProfit, sumOdds float64
		wins                              int
		winStreak, lossStreak             int
		longestWin, longestLoss           int
	)

	for _, b := range bets {
		totalStaked += b.Stake
		totalProfit += b.Profit
		sumOdds += b.CombinedOdds

		if b.IsWin {
			wins++
			winStreak++
			lossStreak = 0
		} else {
			lossStreak++
			winStreak = 0
		}
		longestWin = max(longestWin, winStreak)
		longestLoss = max(longestLoss, lossStreak)
	}

	total := len(bets)

	var strikeRate, avgOdds, roi float64
	if total > 0 {
		strikeRate = float64(wins) / float64(total) * 100
		avgOdds = sumOdds / float64(total)
	}
	if startingBankroll != 0 {
		roi = (finalBankroll - startingBankroll) / startingBankroll * 100
	}

	return model.Metrics{
		TotalBets:         total,
		TotalWins:         wins,
		TotalLosses:       total - wins,
		StrikeRatePercent: Round(strikeRate, 2),
		TotalStaked:       Round(totalStaked, 2),
		TotalProfit:       Round(totalProfit, 2),
		AverageOdds:       Round(avgOdds, 2),
		LongestWinStreak:  longestWin,
		LongestLossStreak: longestLoss,
		ROIPercent:        Round(roi, 2),
	}
}
