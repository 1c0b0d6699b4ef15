package cli

import (
	"context"

	"github.com/casefort/LitIntel/internal/analysis/engine"
	"github.com/casefort/LitIntel/internal/analysis/rules"
	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/infrastructure/database/postgres"
	"github.com/casefort/LitIntel/internal/infrastructure/database/postgres/repositories"
	redisdb "github.com/casefort/LitIntel/internal/infrastructure/database/redis"
	"github.com/casefort/LitIntel/internal/infrastructure/messaging/kafka"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
	"github.com/casefort/LitIntel/internal/infrastructure/storage/minio"
)

// runtime holds the wired infrastructure behind one CLI invocation.
// Postgres is mandatory; the text store, cache and event bus are attached
// when configured and silently absent otherwise.
type runtime struct {
	logger   logging.Logger
	pool     *postgres.Pool
	redis    *redisdb.Client
	cache    *redisdb.AnalysisCache
	producer *kafka.Producer
	engine   *engine.Engine
}

// buildRuntime connects the configured infrastructure and assembles the
// analysis engine over it.
func buildRuntime(ctx context.Context, appCtx *AppContext) (*runtime, error) {
	cfg := appCtx.Config
	logger := appCtx.Logger

	pool, err := postgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	rt := &runtime{logger: logger, pool: pool}

	var texts repositories.TextStore
	if cfg.Minio.Endpoint != "" {
		client, minioErr := minio.NewClient(cfg.Minio, logger)
		if minioErr != nil {
			logger.Warn("object store unavailable, document text stays unhydrated", logging.Err(minioErr))
		} else {
			texts = minio.NewTextStore(client)
		}
	}

	if cfg.Redis.Addr != "" {
		client, redisErr := redisdb.NewClient(cfg.Redis, logger)
		if redisErr != nil {
			logger.Warn("cache unavailable, analyses will not be cached", logging.Err(redisErr))
		} else {
			rt.redis = client
			rt.cache = redisdb.NewAnalysisCache(client, nil)
		}
	}

	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) > 0 {
		producer, kafkaErr := kafka.NewProducer(cfg.Kafka, logger, nil)
		if kafkaErr != nil {
			logger.Warn("event bus unavailable, completion events will not publish", logging.Err(kafkaErr))
		} else {
			rt.producer = producer
		}
	}

	repo := repositories.NewCaseRepository(pool.Pool(), texts, logger, nil)
	snapshots := repositories.NewSnapshotRepository(pool.Pool())

	provider, err := ruleProvider(cfg.Analysis, logger)
	if err != nil {
		rt.Close()
		return nil, err
	}

	deps := engine.Dependencies{
		Repository: repo,
		Snapshots:  snapshots,
		Rules:      provider,
		Config:     cfg.Analysis,
		Logger:     logger,
	}
	if rt.producer != nil {
		deps.Publisher = rt.producer
	}

	eng, err := engine.New(deps)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.engine = eng
	return rt, nil
}

// ruleProvider loads the configured rule-table override, falling back to the
// compiled-in defaults when no path is set.
func ruleProvider(cfg config.AnalysisConfig, logger logging.Logger) (*rules.Provider, error) {
	if cfg.RulesPath == "" {
		return rules.NewProvider(nil), nil
	}
	table, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return nil, err
	}
	provider := rules.NewProvider(table)
	provider.Watch(cfg.RulesPath, logger)
	return provider, nil
}

func (r *runtime) Close() {
	if r.producer != nil {
		if err := r.producer.Close(); err != nil {
			r.logger.Warn("event bus close failed", logging.Err(err))
		}
	}
	if r.redis != nil {
		if err := r.redis.Close(); err != nil {
			r.logger.Warn("cache close failed", logging.Err(err))
		}
	}
	if r.pool != nil {
		r.pool.Close()
	}
}
