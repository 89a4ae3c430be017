package simulation

import "time"

type SimulationRequest struct {
	League         string   `json:"league"`
	Season         string   `json:"season"`
	StrategyType   string   `json:"strategy_type"`             // home | edge | rules
	Selection      *string  `json:"selection"`                 // H | D | A, для edge обязательно
	MinEdge        *float64 `json:"min_edge"`                  // Минимальный перевес, для edge обязательно
	RuleExpression *string  `json:"rule_expression,omitempty"` // Условие для rules

	StakingMethod string   `json:"staking_method"` // fixed | percent | kelly
	FixedStake    *float64 `json:"fixed_stake"`
	PercentStake  *float64 `json:"percent_stake"`  // Доля банка (0, 1]
	KellyFraction *float64 `json:"kelly_fraction"` // Доля Келли (0, 1]

	StartingBankroll float64  `json:"starting_bankroll"`
	MultipleLegs     *int     `json:"multiple_legs"` // Размер экспресса, по умолчанию 1
	MinOdds          *float64 `json:"min_odds"`      // Минимальный коэффициент позиции
}

type SimulationResponse struct {
	FinalBankroll      float64 `json:"final_bankroll"`
	ROIPercent         float64 `json:"roi_percent"`
	TotalBets          int     `json:"total_bets"`
	TotalWins          int     `json:"total_wins"`
	TotalLosses        int     `json:"total_losses"`
	MaxDrawdownPercent float64 `json:"max_drawdown_percent"`
	StrikeRatePercent  float64 `json:"strike_rate_percent"`
	TotalStaked        float64 `json:"total_staked"`
	TotalProfit        float64 `json:"total_profit"`
	AverageOdds        float64 `json:"average_odds"`
	LongestWinStreak   int     `json:"longest_win_streak"`
	LongestLossStreak  int     `json:"longest_loss_streak"`

	EquityCurve []EquityPoint `json:"equity_curve"`
	Bets        []Bet         `json:"bets"`
}

type EquityPoint struct {
	T        *time.Time `json:"t"` // null у стартовой точки
	Bankroll float64    `json:"bankroll"`
}

type Bet struct {
	SettledAt    time.Time `json:"settled_at"`
	Stake        float64   `json:"stake"`
	CombinedOdds float64   `json:"combined_odds"`
	IsWin        bool      `json:"is_win"`
	ReturnAmount float64   `json:"return_amount"`
	Profit       float64   `json:"profit"`
	Legs         []Leg     `json:"legs"`
}

type Leg struct {
	MatchID     string    `json:"match_id"`
	Kickoff     time.Time `json:"kickoff"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	Result      string    `json:"result"`
	Selection   string    `json:"selection"`
	Odds        float64   `json:"odds"`
	ImpliedProb float64   `json:"implied_prob"`
	ModelProb   *float64  `json:"model_prob"` // null, если у матча нет вероятности модели
	Edge        *float64  `json:"edge"`
}

type SweepRequest struct {
	Base SimulationRequest    `json:"base"`
	Grid map[string][]float64 `json:"grid"` // Параметр -> список значений
}

type SweepResponse struct {
	Runs    int        `json:"runs"`
	Results []SweepRow `json:"results"` // По убыванию ROI
}

type SweepRow struct {
	Params        map[string]float64 `json:"params"`
	FinalBankroll float64            `json:"final_bankroll"`
	ROIPercent    float64            `json:"roi_percent"`
	TotalBets     int                `json:"total_bets"`
}

type StatsResponse struct {
	TotalRuns     int          `json:"total_runs"`
	CacheHits     int          `json:"cache_hits"`
	TotalBets     int          `json:"total_bets"`
	AverageROI    float64      `json:"average_roi_percent"`
	LastRunAt     *time.Time   `json:"last_run_at"`
	RecentResults []RunSummary `json:"recent_results"`
}

type RunSummary struct {
	League     string    `json:"league"`
	Season     string    `json:"season"`
	Strategy   string    `json:"strategy_type"`
	ROIPercent float64   `json:"roi_percent"`
	TotalBets  int       `json:"total_bets"`
	At         time.Time `json:"at"`
}
