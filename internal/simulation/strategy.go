package simulation

import "backtester/internal/model"

// Decision решение стратегии по матчу
type Decision struct {
	PlaceBet  bool
	Selection model.Selection
}

// Strategy решает, ставить ли на матч. Контекст содержит только уже сыгранные матчи
type Strategy interface {
	Evaluate(m model.Match, rc *RollingContext) Decision
}

// AlwaysHome ставит на хозяев в каждом матче
type AlwaysHome struct{}

func (AlwaysHome) Evaluate(model.Match, *RollingContext) Decision {
	return Decision{PlaceBet: true, Selection: model.SelectionHome}
}

// Edge ставит, когда вероятность модели превышает подразумеваемую
// вероятность коэффициента больше чем на MinEdge
type Edge struct {
	Selection model.Selection
	MinEdge   float64
}

func (s Edge) Evaluate(m model.Match, _ *RollingContext) Decision {
	odds, ok := m.OddsFor(s.Selection)
	if !ok || odds <= 0 {
		return Decision{}
	}

	modelProb := m.ModelProbFor(s.Selection)
	if modelProb == nil {
		return Decision{}
	}

	if *modelProb-ImpliedProbability(odds) > s.MinEdge {
		return Decision{PlaceBet: true, Selection: s.Selection}
	}
	return Decision{}
}

// ImpliedProbability вероятность, заложенная в десятичный коэффициент
func ImpliedProbability(odds float64) float64 {
	if odds <= 0 {
		return 0
	}
	return 1 / odds
}

// NewStrategy собирает стратегию из провалидированного запроса
func NewStrategy(req model.SimulationRequest) (Strategy, error) {
	switch req.StrategyType {
	case model.StrategyHome:
		return AlwaysHome{}, nil
	case model.StrategyEdge:
		if req.Selection == nil || req.MinEdge == nil {
			return nil, invalidf("edge strategy needs selection and min_edge")
		}
		return Edge{Selection: *req.Selection, MinEdge: *req.MinEdge}, nil
	case model.StrategyRules:
		if req.RuleExpression == nil {
			return nil, invalidf("rule_expression is required for strategy_type='rules'")
		}
		sel := model.SelectionHome
		if req.Selection != nil {
			sel = *req.Selection
		}
		return NewRules(*req.RuleExpression, sel)
	}
	return nil, invalidf("unsupported strategy_type %q", req.StrategyType)
}
