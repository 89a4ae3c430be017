package simulation

import (
	"backtester/internal/model"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// activeBet ставка, ожидающая расчёта
type activeBet struct {
	legs         []model.Leg
	stake        float64
	combinedOdds float64
	settlesAt    time.Time
}

// Engine прогоняет стратегию по матчам сезона в хронологическом порядке.
// Один Engine - один запрос; Run можно вызывать повторно, состояние сбрасывается
type Engine struct {
	req      model.SimulationRequest
	strategy Strategy

	// Состояние симуляции
	rc        *RollingContext
	bankroll  float64
	active    []*activeBet
	settled   []model.SettledBet
	teamLocks map[string]uuid.UUID
	equity    []model.EquityPoint

	// Просадка
	peak        float64
	maxDrawdown float64
}

func NewEngine(req model.SimulationRequest, strategy Strategy) *Engine {
	return &Engine{
		req:      req,
		strategy: strategy,
	}
}

func (e *Engine) reset() {
	e.rc = NewRollingContext(DefaultWindow)
	e.bankroll = e.req.StartingBankroll
	e.active = nil
	e.settled = nil
	e.teamLocks = make(map[string]uuid.UUID)
	e.equity = []model.EquityPoint{{T: nil, Bankroll: Round(e.bankroll, 2)}}
	e.peak = e.bankroll
	e.maxDrawdown = 0
}

// Run выполняет симуляцию. Матчи с одинаковым временем начала
// обрабатываются одной пачкой
func (e *Engine) Run(ctx context.Context, matches []model.Match) (*model.SimulationResult, error) {
	e.reset()

	ordered := make([]model.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Kickoff.Before(ordered[j].Kickoff)
	})

	for start := 0; start < len(ordered); {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		kickoff := ordered[start].Kickoff
		end := start + 1
		for end < len(ordered) && ordered[end].Kickoff.Equal(kickoff) {
			end++
		}
		batch := ordered[start:end]

		e.settleMatured(kickoff, false)
		e.processBatch(batch)

		start = end
	}

	// Финальный расчёт всех оставшихся ставок
	if len(ordered) > 0 {
		e.settleMatured(ordered[len(ordered)-1].Kickoff, true)
	}

	metrics := calculateMetrics(e.settled, e.req.StartingBankroll, e.bankroll)

	return &model.SimulationResult{
		Metrics:            metrics,
		FinalBankroll:      Round(e.bankroll, 2),
		MaxDrawdownPercent: Round(e.maxDrawdown*100, 2),
		EquityCurve:        e.equity,
		Bets:               e.settled,
	}, nil
}

// settleMatured рассчитывает ставки, чьи матчи уже сыграны к kickoff,
// в порядке их размещения
func (e *Engine) settleMatured(kickoff time.Time, settleAll bool) {
	remaining := e.active[:0]

	for _, bet := range e.active {
		if !settleAll && bet.settlesAt.After(kickoff) {
			remaining = append(remaining, bet)
			continue
		}

		isWin := true
		for _, leg := range bet.legs {
			if leg.Result != leg.Selection {
				isWin = false
				break
			}
		}

		returnAmount := 0.0
		if isWin {
			returnAmount = bet.stake * bet.combinedOdds
		}
		e.bankroll += returnAmount

		settledAt := bet.settlesAt
		e.settled = append(e.settled, model.SettledBet{
			Legs:         bet.legs,
			Stake:        bet.stake,
			CombinedOdds: bet.combinedOdds,
			IsWin:        isWin,
			ReturnAmount: returnAmount,
			Profit:       returnAmount - bet.stake,
			SettledAt:    settledAt,
		})
		e.equity = append(e.equity, model.EquityPoint{T: &settledAt, Bankroll: Round(e.bankroll, 2)})

		for _, leg := range bet.legs {
			delete(e.teamLocks, leg.HomeTeam)
			delete(e.teamLocks, leg.AwayTeam)
		}
	}

	// Хвост больше не нужен
	for i := len(remaining); i < len(e.active); i++ {
		e.active[i] = nil
	}
	e.active = remaining

	e.updateDrawdown()
}

func (e *Engine) processBatch(batch []model.Match) {
	var eligible []candidate

	for _, m := range batch {
		if e.locked(m.HomeTeam) || e.locked(m.AwayTeam) {
			continue
		}

		decision := e.strategy.Evaluate(m, e.rc)
		if !decision.PlaceBet {
			continue
		}
		eligible = append(eligible, candidate{match: m, selection: decision.Selection})
	}

	if len(eligible) >= e.req.MultipleLegs {
		if combo := buildValidCombo(eligible, e.req.MultipleLegs); combo != nil {
			e.placeBet(combo)
		}
	}

	// Контекст обновляется всегда, даже если ставки не было
	for _, m := range batch {
		e.rc.Update(m)
	}
}

func (e *Engine) locked(team string) bool {
	_, ok := e.teamLocks[team]
	return ok
}

func (e *Engine) placeBet(combo []candidate) {
	combinedOdds := 1.0
	combinedProb := 1.0
	legs := make([]model.Leg, 0, len(combo))

	for _, c := range combo {
		odds, ok := c.match.OddsFor(c.selection)
		if !ok || odds <= 0 {
			return
		}
		if e.req.MinOdds != nil && odds < *e.req.MinOdds {
			return
		}
		combinedOdds *= odds

		modelProb := c.match.ModelProbFor(c.selection)
		if e.req.StakingMethod == model.StakingKelly {
			if modelProb == nil {
				return
			}
			combinedProb *= *modelProb
		}

		leg := model.Leg{
			MatchID:     c.match.ID,
			Kickoff:     c.match.Kickoff,
			HomeTeam:    c.match.HomeTeam,
			AwayTeam:    c.match.AwayTeam,
			Result:      c.match.Result,
			Selection:   c.selection,
			Odds:        odds,
			ImpliedProb: ImpliedProbability(odds),
		}
		if modelProb != nil {
			p := *modelProb
			edge := p - leg.ImpliedProb
			leg.ModelProb = &p
			leg.Edge = &edge
		}
		legs = append(legs, leg)
	}

	stake, ok := CalculateStake(e.req, e.bankroll, combinedOdds, &combinedProb)
	if !ok || stake <= 0 || stake > e.bankroll {
		return
	}

	settlesAt := legs[0].Kickoff
	for _, leg := range legs[1:] {
		if leg.Kickoff.After(settlesAt) {
			settlesAt = leg.Kickoff
		}
	}

	e.active = append(e.active, &activeBet{
		legs:         legs,
		stake:        stake,
		combinedOdds: combinedOdds,
		settlesAt:    settlesAt,
	})
	e.bankroll -= stake

	for _, c := range combo {
		e.teamLocks[c.match.HomeTeam] = c.match.ID
		e.teamLocks[c.match.AwayTeam] = c.match.ID
	}
}

func (e *Engine) updateDrawdown() {
	if e.bankroll > e.peak {
		e.peak = e.bankroll
	}
	if e.peak == 0 {
		return
	}

	drawdown := (e.peak - e.bankroll) / e.peak
	if drawdown > e.maxDrawdown {
		e.maxDrawdown = drawdown
	}
}
