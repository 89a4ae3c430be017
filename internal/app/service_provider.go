package app

import (
	authAPI "backtester/internal/api/auth"
	dataAPI "backtester/internal/api/data"
	simulationAPI "backtester/internal/api/simulation"
	"backtester/internal/config"
	"backtester/internal/config/env"
	"backtester/internal/logger"
	"backtester/internal/repository"
	"backtester/internal/repository/auth_repo"
	"backtester/internal/repository/match_repo"
	"backtester/internal/repository/result_cache"
	"backtester/internal/repository/stats_repo"
	"backtester/internal/repository/user_repo"
	"backtester/internal/scheduler"
	"backtester/internal/service"
	"backtester/internal/service/auth"
	"backtester/internal/service/ingest"
	"backtester/internal/service/simulation"
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ServiceProvider struct {
	// Configs
	httpCfg  config.HTTPConfig
	pgConfig config.PGConfig
	jwtCfg   config.JWTConfig
	redisCfg config.RedisConfig
	logCfg   config.LogConfig
	simCfg   config.SimulationConfig
	dataCfg  config.DataConfig

	logger *zap.Logger

	//TXManager
	txManager trm.Manager

	// Database
	dbClient    *pgxpool.Pool
	redisClient *redis.Client

	// Auth bits
	authRepo repository.AuthRepository
	userRepo repository.UserRepository
	authServ service.AuthService
	authHand *authAPI.Handler

	// Simulation bits
	matchRepo   repository.MatchRepository
	resultCache repository.ResultCache
	statsRepo   repository.SimulationStatsRepository
	simServ     service.SimulationService
	simHand     *simulationAPI.Handler

	// Data bits
	ingestServ service.IngestService
	dataHand   *dataAPI.Handler

	scheduler *scheduler.Runner

	router chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) RedisCfg() config.RedisConfig {
	if sp.redisCfg == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisCfg = cfg
	}
	return sp.redisCfg
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) SimulationCfg() config.SimulationConfig {
	if sp.simCfg == nil {
		cfg, err := env.NewSimulationConfig()
		if err != nil {
			panic("failed to get simulation config: " + err.Error())
		}
		sp.simCfg = cfg
	}
	return sp.simCfg
}

func (sp *ServiceProvider) DataCfg() config.DataConfig {
	if sp.dataCfg == nil {
		cfg, err := env.NewDataConfig()
		if err != nil {
			panic("failed to get data config: " + err.Error())
		}
		sp.dataCfg = cfg
	}
	return sp.dataCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.logger == nil {
		l, err := logger.New(sp.LogCfg())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.logger = l
	}
	return sp.logger
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) MatchRepo(ctx context.Context) repository.MatchRepository {
	if sp.matchRepo == nil {
		sp.matchRepo = match_repo.NewMatchRepository(sp.DBClient(ctx))
	}
	return sp.matchRepo
}

// ResultCache redis, если задан REDIS_URL, иначе кэш-заглушка
func (sp *ServiceProvider) ResultCache(ctx context.Context) repository.ResultCache {
	if sp.resultCache == nil {
		cfg := sp.RedisCfg()
		if cfg.URL() == "" {
			sp.Logger().Info("result cache disabled")
			sp.resultCache = result_cache.NewNoopCache()
			return sp.resultCache
		}

		opts, err := redis.ParseURL(cfg.URL())
		if err != nil {
			panic("failed to parse redis url: " + err.Error())
		}
		client := redis.NewClient(opts)
		if err = client.Ping(ctx).Err(); err != nil {
			panic("failed to ping redis: " + err.Error())
		}

		sp.redisClient = client
		sp.resultCache = result_cache.NewRedisCache(client, cfg.TTL())
	}
	return sp.resultCache
}

func (sp *ServiceProvider) StatsRepo() repository.SimulationStatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository()
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(sp.TXManager(ctx), sp.UserRepo(ctx), sp.AuthRepo(ctx), sp.JWTCfg(), sp.Logger())
	}
	return sp.authServ
}

func (sp *ServiceProvider) SimulationService(ctx context.Context) service.SimulationService {
	if sp.simServ == nil {
		sp.simServ = simulation.NewService(sp.MatchRepo(ctx), sp.ResultCache(ctx), sp.StatsRepo(), sp.SimulationCfg(), sp.Logger())
	}
	return sp.simServ
}

func (sp *ServiceProvider) IngestService(ctx context.Context) service.IngestService {
	if sp.ingestServ == nil {
		sp.ingestServ = ingest.NewService(sp.TXManager(ctx), sp.MatchRepo(ctx), sp.ResultCache(ctx), sp.Logger())
	}
	return sp.ingestServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv:       sp.AuthService(ctx),
			RefreshTTL: sp.JWTCfg().RefreshTokenDuration(),
			Logger:     sp.Logger(),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) SimulationHandler(ctx context.Context) *simulationAPI.Handler {
	if sp.simHand == nil {
		sp.simHand = simulationAPI.NewHandler(simulationAPI.HandlerDeps{
			Serv:   sp.SimulationService(ctx),
			Logger: sp.Logger(),
		})
	}
	return sp.simHand
}

func (sp *ServiceProvider) DataHandler(ctx context.Context) *dataAPI.Handler {
	if sp.dataHand == nil {
		sp.dataHand = dataAPI.NewHandler(dataAPI.HandlerDeps{
			Serv:    sp.IngestService(ctx),
			CSVPath: sp.DataCfg().CSVPath(),
			Logger:  sp.Logger(),
		})
	}
	return sp.dataHand
}

// Scheduler фоновые задания. Перезагрузка CSV регистрируется,
// только если задан DATA_RELOAD_SCHEDULE
func (sp *ServiceProvider) Scheduler(ctx context.Context) *scheduler.Runner {
	if sp.scheduler == nil {
		runner := scheduler.New(sp.Logger(), ctx)

		if schedule := sp.DataCfg().ReloadSchedule(); schedule != "" {
			ingestServ := sp.IngestService(ctx)
			path := sp.DataCfg().CSVPath()

			_, err := runner.Add("reload-matches", schedule, func(ctx context.Context) error {
				_, err := ingestServ.LoadFile(ctx, path)
				return err
			})
			if err != nil {
				panic("failed to schedule data reload: " + err.Error())
			}
		}

		sp.scheduler = runner
	}
	return sp.scheduler
}

// Close освобождает соединения с внешними хранилищами
func (sp *ServiceProvider) Close() {
	if sp.redisClient != nil {
		if err := sp.redisClient.Close(); err != nil {
			sp.Logger().Warn("failed to close redis client", zap.Error(err))
		}
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.logger != nil {
		_ = sp.logger.Sync()
	}
}
