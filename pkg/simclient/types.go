package simclient

import (
	"bytes"
	"encoding/json"
	"time"
)

// Request тело POST /simulate. Незаданные поля уходят как null
type Request struct {
	League       string   `json:"league"`
	Season       string   `json:"season"`
	StrategyType string   `json:"strategy_type"`
	Selection    *string  `json:"selection"`
	MinEdge      *float64 `json:"min_edge"`

	StakingMethod string   `json:"staking_method"`
	FixedStake    *float64 `json:"fixed_stake"`
	PercentStake  *float64 `json:"percent_stake"`
	KellyFraction *float64 `json:"kelly_fraction"`

	StartingBankroll float64  `json:"starting_bankroll"`
	MultipleLegs     int      `json:"multiple_legs"`
	MinOdds          *float64 `json:"min_odds"`
}

type Result struct {
	FinalBankroll      float64 `json:"final_bankroll"`
	ROIPercent         float64 `json:"roi_percent"`
	TotalBets          int     `json:"total_bets"`
	TotalWins          int     `json:"total_wins"`
	TotalLosses        int     `json:"total_losses"`
	MaxDrawdownPercent float64 `json:"max_drawdown_percent"`

	EquityCurve []EquityPoint `json:"equity_curve"`
	Bets        []Bet         `json:"bets"`
}

// EquityPoint Bankroll == nil - точка без значения, на графике не показывается
type EquityPoint struct {
	T        *time.Time `json:"t"`
	Bankroll *float64   `json:"bankroll"`
}

// Bet ставка из ответа. Старые версии сервера вместо Legs
// присылают Matches и Selections (match id -> исход)
type Bet struct {
	SettledAt    time.Time `json:"settled_at"`
	Stake        float64   `json:"stake"`
	CombinedOdds float64   `json:"combined_odds"`
	Profit       float64   `json:"profit"`
	IsWin        bool      `json:"is_win"`
	Legs         []Leg     `json:"legs"`

	Matches    []LegacyMatch     `json:"matches,omitempty"`
	Selections map[string]string `json:"selections,omitempty"`
}

// Leg позиция ставки. Коэффициент и вероятности могут отсутствовать
type Leg struct {
	MatchID     MatchID    `json:"match_id"`
	Kickoff     *time.Time `json:"kickoff"`
	HomeTeam    string     `json:"home_team"`
	AwayTeam    string     `json:"away_team"`
	Result      string     `json:"result"`
	Selection   string     `json:"selection"`
	Odds        *float64   `json:"odds"`
	ImpliedProb *float64   `json:"implied_prob"`
	ModelProb   *float64   `json:"model_prob"`
	Edge        *float64   `json:"edge"`
}

type LegacyMatch struct {
	ID       MatchID    `json:"id"`
	Kickoff  *time.Time `json:"kickoff"`
	HomeTeam string     `json:"home_team"`
	AwayTeam string     `json:"away_team"`
	Result   string     `json:"result"`
}

// MatchID id матча. Сервер присылает строку, старые выгрузки - число
type MatchID string

func (id *MatchID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = MatchID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = MatchID(n.String())
	return nil
}
