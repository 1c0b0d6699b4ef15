// Command worker is the background analysis process.  It consumes analysis
// requests from Kafka, runs the engine under a per-case lock, caches the
// sanitized result, and publishes completion events.  Case-update events
// invalidate the cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/casefort/LitIntel/internal/analysis/engine"
	"github.com/casefort/LitIntel/internal/analysis/rules"
	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/infrastructure/database/postgres"
	"github.com/casefort/LitIntel/internal/infrastructure/database/postgres/repositories"
	redisdb "github.com/casefort/LitIntel/internal/infrastructure/database/redis"
	"github.com/casefort/LitIntel/internal/infrastructure/messaging/kafka"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/prometheus"
	"github.com/casefort/LitIntel/internal/infrastructure/storage/minio"
)

const (
	analysisTimeout = 5 * time.Minute
	caseLockTTL     = 5 * time.Minute
	httpAddr        = ":9090"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: LITINTEL_* environment)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "worker: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:            cfg.Log.Level,
		Format:           cfg.Log.Format,
		OutputPaths:      cfg.Log.OutputPaths,
		ErrorOutputPaths: cfg.Log.ErrorOutputPaths,
	})
	if err != nil {
		return err
	}
	logger = logger.Named("worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics, metricsHandler := buildMetrics(cfg, logger)

	pool, err := postgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	var texts repositories.TextStore
	if cfg.Minio.Endpoint != "" {
		objectClient, minioErr := minio.NewClient(cfg.Minio, logger)
		if minioErr != nil {
			logger.Warn("object store unavailable, document text stays unhydrated", logging.Err(minioErr))
		} else {
			texts = minio.NewTextStore(objectClient)
		}
	}

	var cache *redisdb.AnalysisCache
	var lock *redisdb.CaseLock
	if cfg.Redis.Addr != "" {
		redisClient, redisErr := redisdb.NewClient(cfg.Redis, logger)
		if redisErr != nil {
			logger.Warn("cache unavailable, running without cache or case locks", logging.Err(redisErr))
		} else {
			defer redisClient.Close()
			cache = redisdb.NewAnalysisCache(redisClient, metrics)
			lock = redisdb.NewCaseLock(redisClient)
		}
	}

	producer, err := kafka.NewProducer(cfg.Kafka, logger, metrics)
	if err != nil {
		return err
	}
	defer producer.Close()

	ruleProvider := rules.NewProvider(nil)
	if cfg.Analysis.RulesPath != "" {
		table, rulesErr := rules.Load(cfg.Analysis.RulesPath)
		if rulesErr != nil {
			return rulesErr
		}
		ruleProvider = rules.NewProvider(table)
		ruleProvider.Watch(cfg.Analysis.RulesPath, logger)
	}

	eng, err := engine.New(engine.Dependencies{
		Repository: repositories.NewCaseRepository(pool.Pool(), texts, logger, metrics),
		Snapshots:  repositories.NewSnapshotRepository(pool.Pool()),
		Publisher:  producer,
		Rules:      ruleProvider,
		Config:     cfg.Analysis,
		Logger:     logger,
		Metrics:    metrics,
	})
	if err != nil {
		return err
	}

	w := &worker{
		engine: eng,
		cache:  cache,
		lock:   lock,
		logger: logger,
	}

	requests, err := kafka.NewConsumer(cfg.Kafka, kafka.TopicAnalysisRequested, w.handleRequest, producer, logger, metrics)
	if err != nil {
		return err
	}
	defer requests.Close()

	updates, err := kafka.NewConsumer(cfg.Kafka, kafka.TopicCaseUpdated, w.handleCaseUpdated, nil, logger, metrics)
	if err != nil {
		return err
	}
	defer updates.Close()

	httpServer := serveHTTP(pool, metricsHandler, logger)
	defer shutdownHTTP(httpServer, logger)

	var wg sync.WaitGroup
	for _, consumer := range []*kafka.Consumer{requests, updates} {
		wg.Add(1)
		go func(c *kafka.Consumer) {
			defer wg.Done()
			if runErr := c.Run(ctx); runErr != nil && ctx.Err() == nil {
				logger.Error("consumer stopped", logging.Err(runErr))
			}
		}(consumer)
	}

	logger.Info("worker started",
		logging.String("brokers", fmt.Sprintf("%v", cfg.Kafka.Brokers)),
		logging.String("group", cfg.Kafka.GroupID))

	<-ctx.Done()
	logger.Info("shutdown signal received, draining consumers")
	wg.Wait()
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

// buildMetrics returns engine metrics and the exposition handler.  A metrics
// failure never stops the worker; it runs unmetered instead.
func buildMetrics(cfg *config.Config, logger logging.Logger) (*prometheus.EngineMetrics, http.Handler) {
	if !cfg.Metrics.Enabled {
		return nil, nil
	}
	namespace := cfg.Metrics.Namespace
	if namespace == "" {
		namespace = "litintel"
	}
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            namespace,
		Subsystem:            "worker",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		logger.Warn("metrics disabled", logging.Err(err))
		return nil, nil
	}
	return prometheus.NewEngineMetrics(collector), collector.Handler()
}

func serveHTTP(pool *postgres.Pool, metricsHandler http.Handler, logger logging.Logger) *http.Server {
	mux := http.NewServeMux()
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.HealthCheck(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: httpAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", logging.Err(err))
		}
	}()
	return server
}

func shutdownHTTP(server *http.Server, logger logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("http shutdown incomplete", logging.Err(err))
	}
}

// worker holds the per-message handlers.
type worker struct {
	engine *engine.Engine
	cache  *redisdb.AnalysisCache
	lock   *redisdb.CaseLock
	logger logging.Logger
}

// handleRequest runs one analysis.  A case already being analysed elsewhere
// is skipped; the completed event from the other run supersedes this request.
func (w *worker) handleRequest(ctx context.Context, env *kafka.EventEnvelope) error {
	var payload kafka.AnalysisRequestedPayload
	if err := env.DecodePayload(&payload); err != nil {
		return err
	}
	if payload.CaseID == "" {
		return fmt.Errorf("analysis request has no case id")
	}

	ctx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	if w.lock != nil {
		release, ok, err := w.lock.Acquire(ctx, payload.CaseID, caseLockTTL)
		if err != nil {
			w.logger.Warn("case lock unavailable, analysing without it",
				logging.String("case_id", string(payload.CaseID)),
				logging.Err(err))
		} else if !ok {
			w.logger.Info("case already being analysed, skipping",
				logging.String("case_id", string(payload.CaseID)))
			return nil
		} else {
			defer func() {
				if releaseErr := release(context.Background()); releaseErr != nil {
					w.logger.Warn("case lock release failed", logging.Err(releaseErr))
				}
			}()
		}
	}

	result, err := w.engine.Analyze(ctx, payload.CaseID)
	if err != nil {
		return err
	}

	if w.cache != nil {
		if cacheErr := w.cache.Set(ctx, result.Analysis, 0); cacheErr != nil {
			w.logger.Warn("failed to cache analysis",
				logging.String("case_id", string(payload.CaseID)),
				logging.Err(cacheErr))
		}
	}
	return nil
}

// handleCaseUpdated drops the cached analysis for a changed case so the next
// read re-analyses against current data.
func (w *worker) handleCaseUpdated(ctx context.Context, env *kafka.EventEnvelope) error {
	if w.cache == nil {
		return nil
	}
	var payload kafka.CaseUpdatedPayload
	if err := env.DecodePayload(&payload); err != nil {
		return err
	}
	if payload.CaseID == "" {
		return nil
	}
	return w.cache.Invalidate(ctx, payload.CaseID)
}
