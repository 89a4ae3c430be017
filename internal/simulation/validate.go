package simulation

import (
	"backtester/internal/model"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRequest ошибка валидации запроса, отдаётся клиенту как 422
var ErrInvalidRequest = errors.New("invalid simulation request")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// Validate проверяет согласованность параметров стратегии и стейкинга
func Validate(req model.SimulationRequest) error {
	if strings.TrimSpace(req.League) == "" {
		return invalidf("league is required")
	}
	if strings.TrimSpace(req.Season) == "" {
		return invalidf("season is required")
	}

	// Требования стратегии
	switch req.StrategyType {
	case model.StrategyHome:
	case model.StrategyEdge:
		if req.Selection == nil {
			return invalidf("selection is required for strategy_type='edge'")
		}
		if req.MinEdge == nil {
			return invalidf("min_edge is required for strategy_type='edge'")
		}
	case model.StrategyRules:
		if req.RuleExpression == nil || strings.TrimSpace(*req.RuleExpression) == "" {
			return invalidf("rule_expression is required for strategy_type='rules'")
		}
	default:
		return invalidf("unsupported strategy_type %q", req.StrategyType)
	}
	if req.Selection != nil && !req.Selection.Valid() {
		return invalidf("selection must be one of H, D, A")
	}

	// Требования стейкинга
	switch req.StakingMethod {
	case model.StakingFixed:
		if req.FixedStake == nil {
			return invalidf("fixed_stake is required for staking_method='fixed'")
		}
		if *req.FixedStake <= 0 {
			return invalidf("fixed_stake must be > 0")
		}
	case model.StakingPercent:
		if req.PercentStake == nil {
			return invalidf("percent_stake is required for staking_method='percent'")
		}
		if *req.PercentStake <= 0 || *req.PercentStake > 1 {
			return invalidf("percent_stake must be in (0, 1]")
		}
	case model.StakingKelly:
		if req.KellyFraction == nil {
			return invalidf("kelly_fraction is required for staking_method='kelly'")
		}
		if *req.KellyFraction <= 0 || *req.KellyFraction > 1 {
			return invalidf("kelly_fraction must be in (0, 1]")
		}
	default:
		return invalidf("unsupported staking_method %q", req.StakingMethod)
	}

	if req.StartingBankroll <= 0 {
		return invalidf("starting_bankroll must be > 0")
	}
	if req.MultipleLegs < 1 {
		return invalidf("multiple_legs must be >= 1")
	}
	if req.MinOdds != nil && *req.MinOdds <= 1 {
		return invalidf("min_odds must be > 1 (decimal odds)")
	}

	return nil
}
