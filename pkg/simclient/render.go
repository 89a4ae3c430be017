package simclient

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

// RenderOptions что показывать в отчёте
type RenderOptions struct {
	ShowLegs   bool
	ShowEquity bool
	Location   *time.Location
}

// Render печатает сводку, график банкролла и таблицу ставок
func Render(w io.Writer, res *Result, opts RenderOptions) error {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Final bankroll\t%.2f\n", res.FinalBankroll)
	fmt.Fprintf(tw, "ROI\t%.2f%%\n", res.ROIPercent)
	fmt.Fprintf(tw, "Bets\t%d (W %d / L %d)\n", res.TotalBets, res.TotalWins, res.TotalLosses)
	fmt.Fprintf(tw, "Max drawdown\t%.2f%%\n", res.MaxDrawdownPercent)
	fmt.Fprintln(tw)

	if opts.ShowEquity {
		fmt.Fprintln(tw, "#\tTIME\tBANKROLL")
		for _, p := range EquitySeries(res.EquityCurve, loc) {
			fmt.Fprintf(tw, "%d\t%s\t%.2f\n", p.Index, p.Label, p.Bankroll)
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprintln(tw, "SETTLED\tLEGS\tODDS\tSTAKE\tPROFIT\tRESULT")
	for _, b := range res.Bets {
		legs := NormalizeLegs(b)
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%+.2f\t%s\n",
			b.SettledAt.In(loc).Format(time.DateTime),
			len(legs),
			b.CombinedOdds,
			b.Stake,
			b.Profit,
			outcome(b.IsWin),
		)

		if !opts.ShowLegs {
			continue
		}
		for _, l := range legs {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n",
				kickoffLabel(l.Kickoff, loc),
				l.HomeTeam+" - "+l.AwayTeam,
				"pick "+l.Selection,
				"result "+l.Result,
				"odds "+optional(l.Odds, 2),
				"edge "+optional(l.Edge, 4),
			)
		}
	}

	return tw.Flush()
}

func outcome(isWin bool) string {
	if isWin {
		return "WIN"
	}
	return "LOSS"
}

func kickoffLabel(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format(time.DateTime)
}

func optional(v *float64, prec int) string {
	if v == nil {
		return "-"
	}
	return strings.TrimSpace(fmt.Sprintf("%.*f", prec, *v))
}
