package ingest

import (
	"backtester/internal/model"
	"backtester/internal/repository"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

type serv struct {
	txManager trm.Manager
	matchRepo repository.MatchRepository
	cache     repository.ResultCache
	logger    *zap.Logger
}

func NewService(
	txManager trm.Manager,
	matchRepo repository.MatchRepository,
	cache repository.ResultCache,
	logger *zap.Logger,
) *serv {
	return &serv{
		txManager: txManager,
		matchRepo: matchRepo,
		cache:     cache,
		logger:    logger,
	}
}

// Load разбирает CSV целиком и записывает матчи одной транзакцией.
// Ошибка в любой строке отменяет всю загрузку
func (s *serv) Load(ctx context.Context, r io.Reader) (int, error) {
	start := time.Now()

	matches, err := ParseCSV(r)
	if err != nil {
		return 0, err
	}

	var written int
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		written, err = s.matchRepo.UpsertMatches(ctx, matches)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("store matches: %w", err)
	}

	// Закэшированные результаты по затронутым лигам устарели
	for _, d := range datasetsOf(matches) {
		if err = s.cache.Invalidate(ctx, d.League, d.Season); err != nil {
			s.logger.Warn("result cache invalidate failed",
				zap.String("league", d.League), zap.String("season", d.Season), zap.Error(err))
		}
	}

	s.logger.Info("matches loaded", zap.Int("rows", written), zap.Duration("took", time.Since(start)))
	return written, nil
}

func (s *serv) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	return s.Load(ctx, f)
}

func (s *serv) Datasets(ctx context.Context) ([]model.Dataset, error) {
	return s.matchRepo.ListDatasets(ctx)
}

func datasetsOf(matches []model.Match) []model.Dataset {
	seen := make(map[[2]string]int)
	var out []model.Dataset

	for _, m := range matches {
		k := [2]string{m.League, m.Season}
		i, ok := seen[k]
		if !ok {
			i = len(out)
			seen[k] = i
			out = append(out, model.Dataset{League: m.League, Season: m.Season})
		}
		out[i].Matches++
	}

	return out
}
