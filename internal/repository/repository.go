package repository

import (
	"backtester/internal/model"
	"context"
	"errors"
)

// ErrNotFound запись не найдена
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists нарушение уникальности
var ErrAlreadyExists = errors.New("already exists")

type MatchRepository interface {
	// GetMatches матчи лиги и сезона, отсортированные по времени начала
	GetMatches(ctx context.Context, league, season string) ([]model.Match, error)
	// UpsertMatches вставляет или обновляет матчи, возвращает число записанных строк
	UpsertMatches(ctx context.Context, matches []model.Match) (int, error)
	ListDatasets(ctx context.Context) ([]model.Dataset, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)
}

// ResultCache кэш результатов симуляции по хэшу запроса
type ResultCache interface {
	Get(ctx context.Context, req model.SimulationRequest) (*model.SimulationResult, bool, error)
	Set(ctx context.Context, req model.SimulationRequest, res *model.SimulationResult) error
	// Invalidate удаляет закэшированные результаты лиги и сезона
	Invalidate(ctx context.Context, league, season string) error
}

type SimulationStatsRepository interface {
	Record(req model.SimulationRequest, res *model.SimulationResult, cached bool)
	Snapshot() model.SimulationStats
}
