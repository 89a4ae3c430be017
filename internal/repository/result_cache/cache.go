package result_cache

import (
	"backtester/internal/model"
	"backtester/internal/repository"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "simulation"

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache кэш результатов в Redis. Для каждой лиги и сезона
// ведётся индекс ключей, по которому работает Invalidate
func NewRedisCache(client *redis.Client, ttl time.Duration) repository.ResultCache {
	return &redisCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *redisCache) Get(ctx context.Context, req model.SimulationRequest) (*model.SimulationResult, bool, error) {
	key, err := resultKey(req)
	if err != nil {
		return nil, false, err
	}

	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var res model.SimulationResult
	if err = json.Unmarshal(b, &res); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached result: %w", err)
	}

	return &res, true, nil
}

func (c *redisCache) Set(ctx context.Context, req model.SimulationRequest, res *model.SimulationResult) error {
	key, err := resultKey(req)
	if err != nil {
		return err
	}

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	index := indexKey(req.League, req.Season)

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, index, key)
	pipe.Expire(ctx, index, c.ttl)

	_, err = pipe.Exec(ctx)
	return err
}

func (c *redisCache) Invalidate(ctx context.Context, league, season string) error {
	index := indexKey(league, season)

	keys, err := c.client.SMembers(ctx, index).Result()
	if err != nil {
		return err
	}

	pipe := c.client.TxPipeline()
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, index)

	_, err = pipe.Exec(ctx)
	return err
}

// resultKey simulation:{league}:{season}:{sha256 запроса}
func resultKey(req model.SimulationRequest) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	sum := sha256.Sum256(b)

	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, req.League, req.Season, hex.EncodeToString(sum[:])), nil
}

func indexKey(league, season string) string {
	return fmt.Sprintf("%s:index:%s:%s", keyPrefix, league, season)
}
