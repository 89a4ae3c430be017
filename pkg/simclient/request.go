package simclient

import (
	"fmt"
	"strconv"
	"strings"
)

// StartingBankroll банк, с которого клиент всегда начинает симуляцию
const StartingBankroll = 1000

// Form значения полей формы в том виде, в котором их ввёл пользователь
type Form struct {
	League       string
	Season       string
	StrategyType string // home | edge
	Selection    string // H | D | A
	MinEdge      string

	StakingMethod string // fixed | percent | kelly
	FixedStake    string
	PercentStake  string
	KellyFraction string

	MultipleLegs string
	MinOdds      string // пустая строка - без ограничения
}

func DefaultForm() Form {
	return Form{
		League:        "Premier-League",
		Season:        "2526",
		StrategyType:  "home",
		Selection:     "H",
		MinEdge:       "0.05",
		StakingMethod: "fixed",
		FixedStake:    "100",
		PercentStake:  "0.02",
		KellyFraction: "0.5",
		MultipleLegs:  "1",
		MinOdds:       "",
	}
}

// BuildRequest собирает тело запроса. selection и min_edge заполняются только
// для стратегии edge, из полей ставки - только поле выбранного метода
func BuildRequest(f Form) (Request, error) {
	req := Request{
		League:           f.League,
		Season:           f.Season,
		StrategyType:     f.StrategyType,
		StakingMethod:    f.StakingMethod,
		StartingBankroll: StartingBankroll,
	}

	if f.StrategyType == "edge" {
		sel := f.Selection
		req.Selection = &sel

		v, err := parseNumber("min_edge", f.MinEdge)
		if err != nil {
			return Request{}, err
		}
		req.MinEdge = &v
	}

	var err error
	switch f.StakingMethod {
	case "fixed":
		req.FixedStake, err = numberPtr("fixed_stake", f.FixedStake)
	case "percent":
		req.PercentStake, err = numberPtr("percent_stake", f.PercentStake)
	case "kelly":
		req.KellyFraction, err = numberPtr("kelly_fraction", f.KellyFraction)
	}
	if err != nil {
		return Request{}, err
	}

	legs, err := strconv.Atoi(strings.TrimSpace(f.MultipleLegs))
	if err != nil {
		return Request{}, fmt.Errorf("multiple_legs: %q is not an integer", f.MultipleLegs)
	}
	req.MultipleLegs = legs

	if strings.TrimSpace(f.MinOdds) != "" {
		if req.MinOdds, err = numberPtr("min_odds", f.MinOdds); err != nil {
			return Request{}, err
		}
	}

	return req, nil
}

func parseNumber(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", field, raw)
	}
	return v, nil
}

func numberPtr(field, raw string) (*float64, error) {
	v, err := parseNumber(field, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
