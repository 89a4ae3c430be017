package simclient

// NormalizeLegs позиции ставки в новом формате.
// Для старого формата позиции строятся из Matches в их порядке, исход берётся
// из Selections по id матча, коэффициент и вероятности остаются пустыми
func NormalizeLegs(b Bet) []Leg {
	if len(b.Legs) > 0 || len(b.Matches) == 0 {
		return b.Legs
	}

	legs := make([]Leg, 0, len(b.Matches))
	for _, m := range b.Matches {
		legs = append(legs, Leg{
			MatchID:   m.ID,
			Kickoff:   m.Kickoff,
			HomeTeam:  m.HomeTeam,
			AwayTeam:  m.AwayTeam,
			Result:    m.Result,
			Selection: b.Selections[string(m.ID)],
		})
	}
	return legs
}
