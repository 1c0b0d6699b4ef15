package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/casefort/LitIntel/pkg/errors"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// ErrCacheMiss is returned by Get when no analysis is cached for the case.
var ErrCacheMiss = apperrors.New(apperrors.ErrCodeNotFound, "analysis not cached")

const cacheName = "analysis"

// AnalysisCache stores the most recent analysis per case with a TTL so
// read-side callers avoid re-running the pipeline for unchanged cases.  Any
// case-data change must go through Invalidate.
type AnalysisCache struct {
	client  *Client
	metrics *prometheus.EngineMetrics
}

// NewAnalysisCache builds the cache.  metrics may be nil.
func NewAnalysisCache(client *Client, metrics *prometheus.EngineMetrics) *AnalysisCache {
	return &AnalysisCache{client: client, metrics: metrics}
}

func (c *AnalysisCache) key(caseID common.ID) string {
	return c.client.Key(cacheName, string(caseID))
}

// Get returns the cached analysis or ErrCacheMiss.
func (c *AnalysisCache) Get(ctx context.Context, caseID common.ID) (*insight.Analysis, error) {
	data, err := c.client.rdb.Get(ctx, c.key(caseID)).Bytes()
	if err != nil {
		if apperrors.Is(err, redis.Nil) {
			c.metrics.RecordCacheAccess(cacheName, false)
			return nil, ErrCacheMiss
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "analysis cache read failed")
	}

	var a insight.Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		// A corrupt entry behaves like a miss so the pipeline recomputes it.
		c.metrics.RecordCacheAccess(cacheName, false)
		_ = c.client.rdb.Del(ctx, c.key(caseID)).Err()
		return nil, ErrCacheMiss
	}
	c.metrics.RecordCacheAccess(cacheName, true)
	return &a, nil
}

// Set caches the analysis.  A non-positive ttl uses the client default.
func (c *AnalysisCache) Set(ctx context.Context, a *insight.Analysis, ttl time.Duration) error {
	if a == nil {
		return apperrors.InvalidParam("analysis must not be nil")
	}
	if ttl <= 0 {
		ttl = c.client.DefaultTTL()
	}

	data, err := json.Marshal(a)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to encode analysis for cache")
	}
	if err := c.client.rdb.Set(ctx, c.key(a.CaseID), data, ttl).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "analysis cache write failed")
	}
	return nil
}

// Invalidate drops the cached analysis for a case.
func (c *AnalysisCache) Invalidate(ctx context.Context, caseID common.ID) error {
	if err := c.client.rdb.Del(ctx, c.key(caseID)).Err(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "analysis cache invalidation failed")
	}
	return nil
}
