package simclient

import "time"

const startLabel = "Start"

// SeriesPoint точка графика банкролла
type SeriesPoint struct {
	Index    int
	Label    string
	Bankroll float64
}

// EquitySeries точки для графика. Точки без bankroll отбрасываются,
// у точки без времени подпись Start
func EquitySeries(curve []EquityPoint, loc *time.Location) []SeriesPoint {
	if loc == nil {
		loc = time.Local
	}

	out := make([]SeriesPoint, 0, len(curve))
	for _, p := range curve {
		if p.Bankroll == nil {
			continue
		}

		label := startLabel
		if p.T != nil {
			label = p.T.In(loc).Format(time.DateTime)
		}

		out = append(out, SeriesPoint{
			Index:    len(out),
			Label:    label,
			Bankroll: *p.Bankroll,
		})
	}
	return out
}
