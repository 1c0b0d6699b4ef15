// Package postgres manages the PostgreSQL connection pool and schema
// migrations for the case-data and snapshot stores.
package postgres

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
)

// connectTimeout bounds the initial ping so a dead database fails startup
// quickly instead of hanging.
const connectTimeout = 5 * time.Second

// Pool wraps a pgx connection pool with health checking and lifecycle
// management.
type Pool struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// Connect builds a pool from cfg and verifies the database is reachable.
func Connect(ctx context.Context, cfg config.DatabaseConfig, logger logging.Logger) (*Pool, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	poolCfg, err := pgxpool.ParseConfig(DSN(cfg))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "invalid database configuration")
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to create connection pool")
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "database is unreachable")
	}

	logger.Info("connected to postgres",
		logging.String("host", cfg.Host),
		logging.Int("port", cfg.Port),
		logging.String("database", cfg.DBName))
	return &Pool{pool: pool, logger: logger}, nil
}

// Pool exposes the underlying pgx pool to the repositories.
func (p *Pool) Pool() *pgxpool.Pool { return p.pool }

// HealthCheck pings the database and logs when the pool runs hot.
func (p *Pool) HealthCheck(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "database health check failed")
	}
	stats := p.pool.Stat()
	if total := stats.TotalConns(); total > 0 {
		usage := float64(stats.AcquiredConns()) / float64(total)
		if usage > 0.8 {
			p.logger.Warn("high connection pool usage",
				logging.Int64("acquired", int64(stats.AcquiredConns())),
				logging.Int64("total", int64(total)),
				logging.Float64("usage", usage))
		}
	}
	return nil
}

// Close releases every connection.  Safe to call more than once.
func (p *Pool) Close() {
	p.pool.Close()
	p.logger.Info("closed postgres connection pool")
}

// DSN builds the connection string for cfg.
func DSN(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   cfg.DBName,
	}
	q := u.Query()
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	q.Set("sslmode", sslMode)
	u.RawQuery = q.Encode()
	return u.String()
}
