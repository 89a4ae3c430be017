package env

import (
	"backtester/internal/model"
	"os"
	"path/filepath"
	"testing"
)

func TestNewSweepFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	content := `
base:
  league: E0
  season: "2324"
  strategy_type: edge
  selection: A
  min_edge: 0.02
  staking_method: fixed
  fixed_stake: 50
grid:
  min_edge: [0.01, 0.03, 0.05]
  multiple_legs: [1, 2]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	sweep, err := NewSweepFromYAML(path)
	if err != nil {
		t.Fatalf("err=%v", err)
	}

	b := sweep.Base
	if b.League != "E0" || b.Season != "2324" || b.StrategyType != model.StrategyEdge {
		t.Fatalf("base=%+v", b)
	}
	if b.Selection == nil || *b.Selection != model.SelectionAway {
		t.Fatalf("selection=%v want=A", b.Selection)
	}
	if b.StartingBankroll != 1000 || b.MultipleLegs != 1 {
		t.Fatalf("defaults bankroll=%v legs=%d", b.StartingBankroll, b.MultipleLegs)
	}
	if len(sweep.Grid["min_edge"]) != 3 || len(sweep.Grid["multiple_legs"]) != 2 {
		t.Fatalf("grid=%v", sweep.Grid)
	}
}

func TestNewSweepFromYAML_Errors(t *testing.T) {
	if _, err := NewSweepFromYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("grid: [oops"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewSweepFromYAML(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
