package simulation

import "backtester/internal/model"

type candidate struct {
	match     model.Match
	selection model.Selection
}

// buildValidCombo первое в лексикографическом порядке сочетание из size
// кандидатов, в котором ни одна команда не встречается дважды
func buildValidCombo(eligible []candidate, size int) []candidate {
	if size <= 0 || len(eligible) < size {
		return nil
	}

	combo := make([]candidate, 0, size)
	teams := make(map[string]int)

	var walk func(start int) bool
	walk = func(start int) bool {
		if len(combo) == size {
			return true
		}
		// Оставшихся кандидатов должно хватить на незаполненные позиции
		for i := start; i <= len(eligible)-(size-len(combo)); i++ {
			c := eligible[i]
			if teams[c.match.HomeTeam] > 0 || teams[c.match.AwayTeam] > 0 {
				continue
			}

			teams[c.match.HomeTeam]++
			teams[c.match.AwayTeam]++
			combo = append(combo, c)

			if walk(i + 1) {
				return true
			}

			combo = combo[:len(combo)-1]
			teams[c.match.HomeTeam]--
			teams[c.match.AwayTeam]--
		}
		return false
	}

	if !walk(0) {
		return nil
	}
	return combo
}
