package service

import (
	"backtester/internal/model"
	"context"
	"io"
)

type SimulationService interface {
	Simulate(ctx context.Context, req model.SimulationRequest) (*model.SimulationResult, error)
	Sweep(ctx context.Context, req model.SweepRequest) ([]model.SweepRow, error)
	Stats() model.SimulationStats
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, user *model.User) (*model.AuthData, error)
	Refresh(ctx context.Context, data *model.AuthData) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, userID int) (*model.User, error)
}

type IngestService interface {
	// Load загружает CSV с матчами, возвращает число записанных матчей
	Load(ctx context.Context, r io.Reader) (int, error)
	LoadFile(ctx context.Context, path string) (int, error)
	Datasets(ctx context.Context) ([]model.Dataset, error)
}
