package model

import (
	"time"

	"github.com/google/uuid"
)

type StrategyType string

const (
	StrategyHome  StrategyType = "home"
	StrategyEdge  StrategyType = "edge"
	StrategyRules StrategyType = "rules"
)

type StakingMethod string

const (
	StakingFixed   StakingMethod = "fixed"
	StakingPercent StakingMethod = "percent"
	StakingKelly   StakingMethod = "kelly"
)

// SimulationRequest параметры бэктеста.
// Необязательные поля - указатели, nil означает "не задано"
type SimulationRequest struct {
	League       string
	Season       string
	StrategyType StrategyType

	Selection      *Selection
	MinEdge        *float64
	RuleExpression *string

	StakingMethod StakingMethod
	FixedStake    *float64
	PercentStake  *float64
	KellyFraction *float64

	StartingBankroll float64
	MultipleLegs     int
	MinOdds          *float64
}

// Leg одна позиция в ставке (ординар - одна, экспресс - несколько)
type Leg struct {
	MatchID  uuid.UUID
	Kickoff  time.Time
	HomeTeam string
	AwayTeam string
	Result   Selection

	Selection   Selection
	Odds        float64
	ImpliedProb float64
	ModelProb   *float64
	Edge        *float64
}

// SettledBet рассчитанная ставка
type SettledBet struct {
	Legs         []Leg
	Stake        float64
	CombinedOdds float64
	IsWin        bool
	ReturnAmount float64
	Profit       float64
	SettledAt    time.Time
}

// EquityPoint точка кривой банкролла. T == nil у стартовой точки
type EquityPoint struct {
	T        *time.Time
	Bankroll float64
}

type Metrics struct {
	TotalBets         int
	TotalWins         int
	TotalLosses       int
	StrikeRatePercent float64
	TotalStaked       float64
	TotalProfit       float64
	AverageOdds       float64
	LongestWinStreak  int
	LongestLossStreak int
	ROIPercent        float64
}

type SimulationResult struct {
	Metrics
	FinalBankroll      float64
	MaxDrawdownPercent float64
	EquityCurve        []EquityPoint
	Bets               []SettledBet
}

// SweepRequest перебор параметров поверх базового запроса
type SweepRequest struct {
	Base SimulationRequest
	Grid map[string][]float64
}

// SweepRow результат одного прогона перебора
type SweepRow struct {
	Params        map[string]float64
	FinalBankroll float64
	ROIPercent    float64
	TotalBets     int
}

// SimulationStats счётчики обслуженных симуляций
type SimulationStats struct {
	TotalRuns     int
	CacheHits     int
	TotalBets     int
	AverageROI    float64
	LastRunAt     time.Time
	RecentResults []RunSummary
}

type RunSummary struct {
	League     string
	Season     string
	Strategy   StrategyType
	ROIPercent float64
	TotalBets  int
	At         time.Time
}
