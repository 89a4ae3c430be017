package simulation

import "backtester/internal/model"

// DefaultWindow сколько последних матчей команды учитывается в форме
const DefaultWindow = 5

// Имена признаков, доступных в правилах
const (
	FeatureHomeWinRate  = "home_win_rate"
	FeatureAwayWinRate  = "away_win_rate"
	FeatureHomePoints   = "home_points"
	FeatureAwayPoints   = "away_points"
	FeatureHomeGoalDiff = "home_goal_diff"
	FeatureAwayGoalDiff = "away_goal_diff"
	FeaturePointsDiff   = "points_diff"
	FeatureGoalDiffDiff = "goal_diff_diff"
	FeatureHomeOdds     = "home_odds"
	FeatureDrawOdds     = "draw_odds"
	FeatureAwayOdds     = "away_odds"
)

var featureNames = []string{
	FeatureHomeWinRate, FeatureAwayWinRate,
	FeatureHomePoints, FeatureAwayPoints,
	FeatureHomeGoalDiff, FeatureAwayGoalDiff,
	FeaturePointsDiff, FeatureGoalDiffDiff,
	FeatureHomeOdds, FeatureDrawOdds, FeatureAwayOdds,
}

// Features признаки матча. nil - у команды ещё нет истории
type Features map[string]*float64

// RollingContext скользящее окно последних матчей каждой команды.
// Обновляется после обработки каждого времени начала, поэтому
// стратегия видит только уже сыгранные матчи
type RollingContext struct {
	window  int
	history map[string][]model.Match
}

func NewRollingContext(window int) *RollingContext {
	if window <= 0 {
		window = DefaultWindow
	}
	return &RollingContext{
		window:  window,
		history: make(map[string][]model.Match),
	}
}

// Update добавляет матч в историю обеих команд
func (c *RollingContext) Update(m model.Match) {
	c.push(m.HomeTeam, m)
	c.push(m.AwayTeam, m)
}

func (c *RollingContext) push(team string, m model.Match) {
	h := append(c.history[team], m)
	if len(h) > c.window {
		h = append(h[:0:0], h[len(h)-c.window:]...)
	}
	c.history[team] = h
}

// Recent последние матчи команды, от старых к новым
func (c *RollingContext) Recent(team string) []model.Match {
	return c.history[team]
}

func (c *RollingContext) WinRate(team string) *float64 {
	matches := c.Recent(team)
	if len(matches) == 0 {
		return nil
	}

	wins := 0
	for _, m := range matches {
		if (m.HomeTeam == team && m.Result == model.SelectionHome) ||
			(m.AwayTeam == team && m.Result == model.SelectionAway) {
			wins++
		}
	}

	rate := float64(wins) / float64(len(matches))
	return &rate
}

// Points очки команды: 3 за победу, 1 за ничью
func (c *RollingContext) Points(team string) *float64 {
	matches := c.Recent(team)
	if len(matches) == 0 {
		return nil
	}

	pts := 0.0
	for _, m := range matches {
		switch {
		case m.Result == model.SelectionDraw:
			pts++
		case m.HomeTeam == team && m.Result == model.SelectionHome:
			pts += 3
		case m.AwayTeam == team && m.Result == model.SelectionAway:
			pts += 3
		}
	}
	return &pts
}

func (c *RollingContext) GoalDiff(team string) *float64 {
	matches := c.Recent(team)
	if len(matches) == 0 {
		return nil
	}

	gd := 0.0
	for _, m := range matches {
		if m.HomeTeam == team {
			gd += float64(m.HomeGoals - m.AwayGoals)
		} else {
			gd += float64(m.AwayGoals - m.HomeGoals)
		}
	}
	return &gd
}

// Features собирает признаки для матча
func (c *RollingContext) Features(m model.Match) Features {
	hp, ap := c.Points(m.HomeTeam), c.Points(m.AwayTeam)
	hgd, agd := c.GoalDiff(m.HomeTeam), c.GoalDiff(m.AwayTeam)

	homeOdds, drawOdds, awayOdds := m.HomeWinOdds, m.DrawOdds, m.AwayWinOdds

	return Features{
		FeatureHomeWinRate:  c.WinRate(m.HomeTeam),
		FeatureAwayWinRate:  c.WinRate(m.AwayTeam),
		FeatureHomePoints:   hp,
		FeatureAwayPoints:   ap,
		FeatureHomeGoalDiff: hgd,
		FeatureAwayGoalDiff: agd,
		FeaturePointsDiff:   diff(hp, ap),
		FeatureGoalDiffDiff: diff(hgd, agd),
		FeatureHomeOdds:     &homeOdds,
		FeatureDrawOdds:     &drawOdds,
		FeatureAwayOdds:     &awayOdds,
	}
}

func diff(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	d := *a - *b
	return &d
}
