package result_cache

import (
	"backtester/internal/model"
	"backtester/internal/repository"
	"context"
)

type noopCache struct{}

// NewNoopCache кэш, который ничего не хранит. Используется, когда Redis не настроен
func NewNoopCache() repository.ResultCache {
	return noopCache{}
}

func (noopCache) Get(context.Context, model.SimulationRequest) (*model.SimulationResult, bool, error) {
	return nil, false, nil
}

func (noopCache) Set(context.Context, model.SimulationRequest, *model.SimulationResult) error {
	return nil
}

func (noopCache) Invalidate(context.Context, string, string) error {
	return nil
}
