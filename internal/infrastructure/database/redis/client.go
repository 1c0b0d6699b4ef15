// Package redis provides the cache client, the analysis result cache, and
// the per-case analysis lock.
package redis

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
)

// connectTimeout bounds the startup ping.
const connectTimeout = 5 * time.Second

// Client wraps the go-redis client with key prefixing and lifecycle
// management.
type Client struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
	logger logging.Logger
}

// NewClient connects to redis and verifies the server is reachable.
func NewClient(cfg config.RedisConfig, logger logging.Logger) (*Client, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "redis is unreachable")
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "litintel"
	}
	prefix = strings.TrimSuffix(prefix, ":")

	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	logger.Info("connected to redis", logging.String("addr", cfg.Addr), logging.Int("db", cfg.DB))
	return &Client{rdb: rdb, prefix: prefix, ttl: ttl, logger: logger}, nil
}

// Key builds a namespaced key from parts.
func (c *Client) Key(parts ...string) string {
	return c.prefix + ":" + strings.Join(parts, ":")
}

// DefaultTTL is the configured expiry applied when callers pass none.
func (c *Client) DefaultTTL() time.Duration { return c.ttl }

// HealthCheck pings the server.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "redis health check failed")
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
