package main

import (
	"backtester/internal/config"
	"backtester/internal/config/env"
	"backtester/internal/logger"
	"backtester/internal/model"
	"backtester/internal/repository/match_repo"
	"backtester/internal/repository/result_cache"
	"backtester/internal/repository/stats_repo"
	"backtester/internal/service/simulation"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	path := flag.String("file", "sweep.yaml", "sweep definition")
	top := flag.Int("top", 20, "rows to print, 0 for all")
	flag.Parse()

	if err := config.Load(".env"); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	if err := run(*path, *top); err != nil {
		log.Fatal(err)
	}
}

func run(path string, top int) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweep, err := env.NewSweepFromYAML(path)
	if err != nil {
		return err
	}

	logCfg, err := env.NewLogConfig()
	if err != nil {
		return err
	}
	l, err := logger.New(logCfg)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	pgCfg, err := env.NewPGConfig()
	if err != nil {
		return err
	}
	simCfg, err := env.NewSimulationConfig()
	if err != nil {
		return err
	}

	dbc, err := pgxpool.New(ctx, pgCfg.DSN())
	if err != nil {
		return fmt.Errorf("create db pool: %w", err)
	}
	defer dbc.Close()

	serv := simulation.NewService(
		match_repo.NewMatchRepository(dbc),
		result_cache.NewNoopCache(),
		stats_repo.NewStatsRepository(),
		simCfg,
		l,
	)

	rows, err := serv.Sweep(ctx, sweep)
	if err != nil {
		return err
	}
	l.Info("sweep finished", zap.Int("runs", len(rows)))

	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}
	return printRows(rows)
}

func printRows(rows []model.SweepRow) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPARAMS\tFINAL\tROI\tBETS")

	for i, row := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f%%\t%d\n", i+1, formatParams(row.Params), row.FinalBankroll, row.ROIPercent, row.TotalBets)
	}

	return tw.Flush()
}

func formatParams(params map[string]float64) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%g", k, params[k]))
	}
	return strings.Join(parts, " ")
}
