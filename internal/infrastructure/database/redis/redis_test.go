package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefort/LitIntel/internal/config"
	"github.com/casefort/LitIntel/internal/domain/insight"
	"github.com/casefort/LitIntel/internal/infrastructure/monitoring/logging"
	"github.com/casefort/LitIntel/pkg/types/common"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client, err := NewClient(config.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewClientUnreachable(t *testing.T) {
	_, err := NewClient(config.RedisConfig{Addr: "127.0.0.1:1"}, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestClientKeyPrefix(t *testing.T) {
	client, _ := newTestClient(t)
	assert.Equal(t, "litintel:analysis:abc", client.Key("analysis", "abc"))
}

func TestAnalysisCacheRoundTrip(t *testing.T) {
	client, _ := newTestClient(t)
	cache := NewAnalysisCache(client, nil)
	ctx := context.Background()

	caseID := common.NewID()
	a := &insight.Analysis{
		CaseID: caseID,
		Momentum: insight.CaseMomentum{
			CaseID: caseID,
			State:  insight.MomentumStrong,
			Score:  42,
		},
	}

	_, err := cache.Get(ctx, caseID)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, a, time.Minute))

	got, err := cache.Get(ctx, caseID)
	require.NoError(t, err)
	assert.Equal(t, insight.MomentumStrong, got.Momentum.State)
	assert.Equal(t, 42, got.Momentum.Score)
}

func TestAnalysisCacheExpiry(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewAnalysisCache(client, nil)
	ctx := context.Background()

	a := &insight.Analysis{CaseID: common.NewID()}
	require.NoError(t, cache.Set(ctx, a, time.Minute))

	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, a.CaseID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestAnalysisCacheInvalidate(t *testing.T) {
	client, _ := newTestClient(t)
	cache := NewAnalysisCache(client, nil)
	ctx := context.Background()

	a := &insight.Analysis{CaseID: common.NewID()}
	require.NoError(t, cache.Set(ctx, a, 0))
	require.NoError(t, cache.Invalidate(ctx, a.CaseID))

	_, err := cache.Get(ctx, a.CaseID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestAnalysisCacheCorruptEntryBehavesAsMiss(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewAnalysisCache(client, nil)
	ctx := context.Background()

	caseID := common.NewID()
	require.NoError(t, mr.Set(client.Key("analysis", string(caseID)), "{not json"))

	_, err := cache.Get(ctx, caseID)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCaseLockMutualExclusion(t *testing.T) {
	client, _ := newTestClient(t)
	lock := NewCaseLock(client)
	ctx := context.Background()
	caseID := common.NewID()

	release, ok, err := lock.Acquire(ctx, caseID, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = lock.Acquire(ctx, caseID, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second acquisition must fail while held")

	require.NoError(t, release(ctx))

	release2, ok, err := lock.Acquire(ctx, caseID, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "lock must be reacquirable after release")
	require.NoError(t, release2(ctx))
}

func TestCaseLockExpiredHolderCannotReleaseNewLock(t *testing.T) {
	client, mr := newTestClient(t)
	lock := NewCaseLock(client)
	ctx := context.Background()
	caseID := common.NewID()

	staleRelease, ok, err := lock.Acquire(ctx, caseID, time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	_, ok, err = lock.Acquire(ctx, caseID, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	// The stale holder's release must not free the new holder's lock.
	require.NoError(t, staleRelease(ctx))
	_, ok, err = lock.Acquire(ctx, caseID, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}
