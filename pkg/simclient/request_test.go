package simclient

import (
	"encoding/json"
	"testing"
)

func TestBuildRequest_Defaults(t *testing.T) {
	req, err := BuildRequest(DefaultForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Selection != nil || req.MinEdge != nil {
		t.Fatalf("selection and min_edge must be null for home strategy")
	}
	if req.FixedStake == nil || *req.FixedStake != 100 {
		t.Fatalf("expected fixed_stake 100, got %v", req.FixedStake)
	}
	if req.PercentStake != nil || req.KellyFraction != nil {
		t.Fatalf("only the selected staking field must be set")
	}
	if req.StartingBankroll != 1000 {
		t.Fatalf("expected starting_bankroll 1000, got %v", req.StartingBankroll)
	}
	if req.MultipleLegs != 1 {
		t.Fatalf("expected multiple_legs 1, got %d", req.MultipleLegs)
	}
	if req.MinOdds != nil {
		t.Fatalf("empty min_odds must be null")
	}
}

func TestBuildRequest_EdgeKelly(t *testing.T) {
	f := DefaultForm()
	f.StrategyType = "edge"
	f.Selection = "A"
	f.MinEdge = "0.03"
	f.StakingMethod = "kelly"
	f.KellyFraction = "0.25"
	f.MultipleLegs = "3"
	f.MinOdds = "1.8"

	req, err := BuildRequest(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Selection == nil || *req.Selection != "A" {
		t.Fatalf("expected selection A, got %v", req.Selection)
	}
	if req.MinEdge == nil || *req.MinEdge != 0.03 {
		t.Fatalf("expected min_edge 0.03, got %v", req.MinEdge)
	}
	if req.KellyFraction == nil || *req.KellyFraction != 0.25 {
		t.Fatalf("expected kelly_fraction 0.25, got %v", req.KellyFraction)
	}
	if req.FixedStake != nil || req.PercentStake != nil {
		t.Fatalf("fixed and percent must be null for kelly")
	}
	if req.MultipleLegs != 3 {
		t.Fatalf("expected 3 legs, got %d", req.MultipleLegs)
	}
	if req.MinOdds == nil || *req.MinOdds != 1.8 {
		t.Fatalf("expected min_odds 1.8, got %v", req.MinOdds)
	}
}

func TestBuildRequest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		mod  func(f *Form)
	}{
		{"min odds", func(f *Form) { f.MinOdds = "abc" }},
		{"legs", func(f *Form) { f.MultipleLegs = "two" }},
		{"fixed stake", func(f *Form) { f.FixedStake = "" }},
		{"min edge", func(f *Form) {
			f.StrategyType = "edge"
			f.MinEdge = "x"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultForm()
			tt.mod(&f)
			if _, err := BuildRequest(f); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestRequest_NullFieldsAreSent(t *testing.T) {
	req, err := BuildRequest(DefaultForm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err = json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"selection", "min_edge", "percent_stake", "kelly_fraction", "min_odds"} {
		v, ok := fields[key]
		if !ok {
			t.Fatalf("field %s is missing", key)
		}
		if v != nil {
			t.Fatalf("field %s expected null, got %v", key, v)
		}
	}
}
