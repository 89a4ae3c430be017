package env

import (
	"backtester/internal/model"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type sweepFile struct {
	Base struct {
		League           string   `yaml:"league"`
		Season           string   `yaml:"season"`
		StrategyType     string   `yaml:"strategy_type"`
		Selection        *string  `yaml:"selection"`
		MinEdge          *float64 `yaml:"min_edge"`
		RuleExpression   *string  `yaml:"rule_expression"`
		StakingMethod    string   `yaml:"staking_method"`
		FixedStake       *float64 `yaml:"fixed_stake"`
		PercentStake     *float64 `yaml:"percent_stake"`
		KellyFraction    *float64 `yaml:"kelly_fraction"`
		StartingBankroll *float64 `yaml:"starting_bankroll"`
		MultipleLegs     *int     `yaml:"multiple_legs"`
		MinOdds          *float64 `yaml:"min_odds"`
	} `yaml:"base"`
	Grid map[string][]float64 `yaml:"grid"`
}

// NewSweepFromYAML читает описание перебора параметров.
// starting_bankroll по умолчанию 1000, multiple_legs - 1
func NewSweepFromYAML(path string) (model.SweepRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.SweepRequest{}, fmt.Errorf("read sweep file: %w", err)
	}

	var f sweepFile
	if err = yaml.Unmarshal(data, &f); err != nil {
		return model.SweepRequest{}, fmt.Errorf("parse sweep file: %w", err)
	}

	b := f.Base
	req := model.SimulationRequest{
		League:           b.League,
		Season:           b.Season,
		StrategyType:     model.StrategyType(b.StrategyType),
		MinEdge:          b.MinEdge,
		RuleExpression:   b.RuleExpression,
		StakingMethod:    model.StakingMethod(b.StakingMethod),
		FixedStake:       b.FixedStake,
		PercentStake:     b.PercentStake,
		KellyFraction:    b.KellyFraction,
		StartingBankroll: 1000,
		MultipleLegs:     1,
		MinOdds:          b.MinOdds,
	}
	if b.Selection != nil {
		sel := model.Selection(*b.Selection)
		req.Selection = &sel
	}
	if b.StartingBankroll != nil {
		req.StartingBankroll = *b.StartingBankroll
	}
	if b.MultipleLegs != nil {
		req.MultipleLegs = *b.MultipleLegs
	}

	return model.SweepRequest{Base: req, Grid: f.Grid}, nil
}
