package match_repo

import (
	"backtester/internal/model"
	"backtester/internal/repository"
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	matchesTable = "matches"
	oddsTable    = "odds"

	colID        = "id"
	colLeague    = "league"
	colSeason    = "season"
	colKickoff   = "kickoff"
	colHomeTeam  = "home_team"
	colAwayTeam  = "away_team"
	colHomeGoals = "home_goals"
	colAwayGoals = "away_goals"
	colResult    = "result"

	colMatchID       = "match_id"
	colHomeWin       = "home_win"
	colDraw          = "draw"
	colAwayWin       = "away_win"
	colModelHomeProb = "model_home_prob"
	colModelDrawProb = "model_draw_prob"
	colModelAwayProb = "model_away_prob"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewMatchRepository(dbc *pgxpool.Pool) repository.MatchRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// GetMatches - матчи лиги и сезона вместе с коэффициентами.
// Матчи без коэффициентов не возвращаются
func (r *repo) GetMatches(ctx context.Context, league, season string) ([]model.Match, error) {
	// Формируем запрос
	query := psql.Select(
		"m."+colID, "m."+colLeague, "m."+colSeason, "m."+colKickoff,
		"m."+colHomeTeam, "m."+colAwayTeam, "m."+colHomeGoals, "m."+colAwayGoals, "m."+colResult,
		"o."+colHomeWin, "o."+colDraw, "o."+colAwayWin,
		"o."+colModelHomeProb, "o."+colModelDrawProb, "o."+colModelAwayProb,
	).
		From(matchesTable + " m").
		Join(oddsTable + " o ON o." + colMatchID + " = m." + colID).
		Where(sq.Eq{"m." + colLeague: league, "m." + colSeason: season}).
		OrderBy("m."+colKickoff+" ASC", "m."+colHomeTeam+" ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []model.Match
	for rows.Next() {
		var (
			m      model.Match
			result string
		)
		err = rows.Scan(
			&m.ID, &m.League, &m.Season, &m.Kickoff,
			&m.HomeTeam, &m.AwayTeam, &m.HomeGoals, &m.AwayGoals, &result,
			&m.HomeWinOdds, &m.DrawOdds, &m.AwayWinOdds,
			&m.ModelHomeProb, &m.ModelDrawProb, &m.ModelAwayProb,
		)
		if err != nil {
			return nil, err
		}
		m.Result = model.Selection(result)
		matches = append(matches, m)
	}

	return matches, rows.Err()
}

// UpsertMatches - записывает матчи и коэффициенты.
// Матч определяется лигой, сезоном, командами и временем начала, повторная загрузка обновляет его.
// Вызывать внутри транзакции, иначе частичная загрузка останется в БД
func (r *repo) UpsertMatches(ctx context.Context, matches []model.Match) (int, error) {
	db := r.getter.DefaultTrOrDB(ctx, r.dbc)

	for i, m := range matches {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}

		// Формируем запрос для матча
		matchQuery := psql.Insert(matchesTable).
			Columns(colID, colLeague, colSeason, colKickoff, colHomeTeam, colAwayTeam, colHomeGoals, colAwayGoals, colResult).
			Values(m.ID, m.League, m.Season, m.Kickoff, m.HomeTeam, m.AwayTeam, m.HomeGoals, m.AwayGoals, string(m.Result)).
			Suffix("ON CONFLICT (" + colLeague + ", " + colSeason + ", " + colHomeTeam + ", " + colAwayTeam + ", " + colKickoff + ") " +
				"DO UPDATE SET " + colHomeGoals + " = EXCLUDED." + colHomeGoals + ", " +
				colAwayGoals + " = EXCLUDED." + colAwayGoals + ", " +
				colResult + " = EXCLUDED." + colResult + " RETURNING " + colID)

		sqlStr, args, err := matchQuery.ToSql()
		if err != nil {
			return i, err
		}

		var id uuid.UUID
		if err = db.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
			return i, fmt.Errorf("upsert match %s - %s: %w", m.HomeTeam, m.AwayTeam, err)
		}

		// Формируем запрос для коэффициентов
		oddsQuery := psql.Insert(oddsTable).
			Columns(colID, colMatchID, colHomeWin, colDraw, colAwayWin, colModelHomeProb, colModelDrawProb, colModelAwayProb).
			Values(uuid.New(), id, m.HomeWinOdds, m.DrawOdds, m.AwayWinOdds, m.ModelHomeProb, m.ModelDrawProb, m.ModelAwayProb).
			Suffix("ON CONFLICT (" + colMatchID + ") DO UPDATE SET " +
				colHomeWin + " = EXCLUDED." + colHomeWin + ", " +
				colDraw + " = EXCLUDED." + colDraw + ", " +
				colAwayWin + " = EXCLUDED." + colAwayWin + ", " +
				colModelHomeProb + " = EXCLUDED." + colModelHomeProb + ", " +
				colModelDrawProb + " = EXCLUDED." + colModelDrawProb + ", " +
				colModelAwayProb + " = EXCLUDED." + colModelAwayProb)

		sqlStr, args, err = oddsQuery.ToSql()
		if err != nil {
			return i, err
		}

		if _, err = db.Exec(ctx, sqlStr, args...); err != nil {
			return i, fmt.Errorf("upsert odds %s - %s: %w", m.HomeTeam, m.AwayTeam, err)
		}
	}

	return len(matches), nil
}

// ListDatasets - загруженные лиги и сезоны с количеством матчей
func (r *repo) ListDatasets(ctx context.Context) ([]model.Dataset, error) {
	// Формируем запрос
	query := psql.Select(colLeague, colSeason, "COUNT(*)").
		From(matchesTable).
		GroupBy(colLeague, colSeason).
		OrderBy(colLeague+" ASC", colSeason+" ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []model.Dataset
	for rows.Next() {
		var d model.Dataset
		if err = rows.Scan(&d.League, &d.Season, &d.Matches); err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
	}

	return datasets, rows.Err()
}
