package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/nfl-projections/external/nflverse"
	"github.com/riskibarqy/nfl-projections/internal/config"
	"github.com/riskibarqy/nfl-projections/internal/domain/game"
	"github.com/riskibarqy/nfl-projections/internal/domain/playerweek"
	"github.com/riskibarqy/nfl-projections/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/nfl-projections/internal/infrastructure/repository/parquetstore"
	"github.com/riskibarqy/nfl-projections/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/nfl-projections/internal/observability"
	basecache "github.com/riskibarqy/nfl-projections/internal/platform/cache"
	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
	"github.com/riskibarqy/nfl-projections/internal/platform/resilience"
	"github.com/riskibarqy/nfl-projections/internal/usecase"
)

type Options struct {
	// Refresh bypasses the raw disk cache and refetches every season.
	Refresh  bool
	Postgres bool
}

// App holds the wired feature pipeline of one process.
type App struct {
	Features   *usecase.FeatureService
	Evaluation *usecase.EvaluationService
	Store      *parquetstore.Store
	Repository *postgres.FeatureRepository

	logger    *logging.Logger
	db        *sqlx.DB
	shutdowns []func(context.Context) error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger, opts Options) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{logger: logger}

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	a.shutdowns = append(a.shutdowns, shutdownTracing)

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func(context.Context) error { return stopProfiler() })

	store, err := parquetstore.NewStore(parquetstore.Config{
		DataDir:   cfg.DataDir,
		RawMaxAge: cfg.RawCacheMaxAge,
		Logger:    logger,
	})
	if err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("init parquet store: %w", err)
	}
	a.Store = store

	client := nflverse.NewClient(nflverse.ClientConfig{
		PlayerStatsURL: cfg.NflversePlayerStatsURL,
		GamesURL:       cfg.NflverseGamesURL,
		Timeout:        cfg.NflverseTimeout,
		MaxRetries:     cfg.NflverseMaxRetries,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.NflverseCircuitEnabled,
			FailureThreshold: cfg.NflverseCircuitFailureCount,
			OpenTimeout:      cfg.NflverseCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.NflverseCircuitHalfOpenMaxReq,
		},
	})

	var players playerweek.Provider = store.CachedPlayerWeeks(client.PlayerWeeks(), opts.Refresh)
	var games game.Provider = store.CachedGames(client.Games(), opts.Refresh)
	if cfg.CacheEnabled {
		players = cache.NewPlayerWeekProvider(players, basecache.NewStore[[]playerweek.Record](cfg.CacheTTL))
		games = cache.NewGameProvider(games, basecache.NewStore[[]game.Game](cfg.CacheTTL))
	}

	var featureStore usecase.FeatureStore
	if opts.Postgres {
		if !cfg.PostgresEnabled {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("%w: postgres output requested but POSTGRES_ENABLED=false", usecase.ErrInvalidInput)
		}
		db, err := openDB(ctx, cfg)
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.db = db
		a.Repository = postgres.NewFeatureRepository(db)
		featureStore = a.Repository
	}

	a.Features = usecase.NewFeatureService(players, games, store, featureStore, usecase.FeatureServiceConfig{
		RollingWindow: cfg.RollingWindow,
		MaxWorkers:    cfg.MaxWorkers,
	}, logger)
	a.Evaluation = usecase.NewEvaluationService(logger)

	return a, nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbURL := PostgresURL(cfg)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(max(cfg.MaxWorkers, 2))
	db.SetMaxIdleConns(2)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping postgres: %v", usecase.ErrDependencyUnavailable, err)
	}
	return db, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close postgres: %w", err))
		}
		a.db = nil
	}
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		if err := a.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.shutdowns = nil
	_ = a.logger.Sync()
	return errors.Join(errs...)
}
