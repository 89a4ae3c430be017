package ingest

import (
	"backtester/internal/model"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidCSV ошибка формата файла с матчами
var ErrInvalidCSV = errors.New("invalid csv")

const kickoffLayout = "2006-01-02 15:04"

// Колонки CSV
const (
	colLeague        = "League"
	colSeason        = "Season"
	colDate          = "Date"
	colTime          = "Time"
	colHomeTeam      = "HomeTeam"
	colAwayTeam      = "AwayTeam"
	colHomeGoals     = "FTHG"
	colAwayGoals     = "FTAG"
	colResult        = "FTR"
	colHomeOdds      = "B365CH"
	colDrawOdds      = "B365CD"
	colAwayOdds      = "B365CA"
	colModelHomeProb = "ModelHomeProb"
	colModelDrawProb = "ModelDrawProb"
	colModelAwayProb = "ModelAwayProb"
)

var requiredColumns = []string{
	colLeague, colSeason, colDate, colTime, colHomeTeam, colAwayTeam,
	colHomeGoals, colAwayGoals, colResult, colHomeOdds, colDrawOdds, colAwayOdds,
}

// ParseCSV читает матчи. Время начала в UTC, вероятности модели необязательны
func ParseCSV(r io.Reader) ([]model.Match, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrInvalidCSV)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %s", ErrInvalidCSV, name)
		}
	}

	var matches []model.Match
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
		}

		m, err := parseRow(record, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidCSV, line, err)
		}
		matches = append(matches, m)
	}

	return matches, nil
}

func parseRow(record []string, idx map[string]int) (model.Match, error) {
	get := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	kickoff, err := time.Parse(kickoffLayout, get(colDate)+" "+get(colTime))
	if err != nil {
		return model.Match{}, fmt.Errorf("kickoff: %w", err)
	}

	m := model.Match{
		ID:       uuid.New(),
		League:   get(colLeague),
		Season:   get(colSeason),
		Kickoff:  kickoff,
		HomeTeam: get(colHomeTeam),
		AwayTeam: get(colAwayTeam),
		Result:   model.Selection(get(colResult)),
	}
	if m.League == "" || m.Season == "" || m.HomeTeam == "" || m.AwayTeam == "" {
		return model.Match{}, errors.New("league, season and teams are required")
	}
	if !m.Result.Valid() {
		return model.Match{}, fmt.Errorf("%s must be H, D or A, got %q", colResult, m.Result)
	}

	if m.HomeGoals, err = strconv.Atoi(get(colHomeGoals)); err != nil {
		return model.Match{}, fmt.Errorf("%s: %w", colHomeGoals, err)
	}
	if m.AwayGoals, err = strconv.Atoi(get(colAwayGoals)); err != nil {
		return model.Match{}, fmt.Errorf("%s: %w", colAwayGoals, err)
	}

	odds := []struct {
		col string
		dst *float64
	}{
		{colHomeOdds, &m.HomeWinOdds},
		{colDrawOdds, &m.DrawOdds},
		{colAwayOdds, &m.AwayWinOdds},
	}
	for _, o := range odds {
		v, err := strconv.ParseFloat(get(o.col), 64)
		if err != nil {
			return model.Match{}, fmt.Errorf("%s: %w", o.col, err)
		}
		if v <= 1 {
			return model.Match{}, fmt.Errorf("%s must be decimal odds > 1, got %v", o.col, v)
		}
		*o.dst = v
	}

	probs := []struct {
		col string
		dst **float64
	}{
		{colModelHomeProb, &m.ModelHomeProb},
		{colModelDrawProb, &m.ModelDrawProb},
		{colModelAwayProb, &m.ModelAwayProb},
	}
	for _, p := range probs {
		raw := get(p.col)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.Match{}, fmt.Errorf("%s: %w", p.col, err)
		}
		if v < 0 || v > 1 {
			return model.Match{}, fmt.Errorf("%s must be in [0, 1], got %v", p.col, v)
		}
		*p.dst = &v
	}

	return m, nil
}
