package main

import (
	"backtester/pkg/simclient"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
)

func main() {
	f := simclient.DefaultForm()

	flag.StringVar(&f.League, "league", f.League, "league code")
	flag.StringVar(&f.Season, "season", f.Season, "season code")
	flag.StringVar(&f.StrategyType, "strategy", f.StrategyType, "strategy: home | edge")
	flag.StringVar(&f.Selection, "selection", f.Selection, "edge selection: H | D | A")
	flag.StringVar(&f.MinEdge, "min-edge", f.MinEdge, "minimum edge for the edge strategy")
	flag.StringVar(&f.StakingMethod, "staking", f.StakingMethod, "staking: fixed | percent | kelly")
	flag.StringVar(&f.FixedStake, "fixed-stake", f.FixedStake, "stake for fixed staking")
	flag.StringVar(&f.PercentStake, "percent-stake", f.PercentStake, "bankroll fraction for percent staking")
	flag.StringVar(&f.KellyFraction, "kelly-fraction", f.KellyFraction, "multiplier for kelly staking")
	flag.StringVar(&f.MultipleLegs, "legs", f.MultipleLegs, "legs per bet")
	flag.StringVar(&f.MinOdds, "min-odds", f.MinOdds, "minimum odds per leg, empty for none")

	apiURL := flag.String("api", "", "API base url, defaults to $"+simclient.BaseURLEnv)
	timeout := flag.Duration("timeout", time.Minute, "request timeout")
	showLegs := flag.Bool("show-legs", false, "print legs of every bet")
	showEquity := flag.Bool("show-equity", false, "print equity curve")
	flag.Parse()

	req, err := simclient.BuildRequest(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	res, err := simclient.NewClient(*apiURL).Simulate(ctx, req)
	if err != nil {
		var apiErr *simclient.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintln(os.Stderr, apiErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, "request failed:", err)
		}
		os.Exit(1)
	}

	err = simclient.Render(os.Stdout, res, simclient.RenderOptions{
		ShowLegs:   *showLegs,
		ShowEquity: *showEquity,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
