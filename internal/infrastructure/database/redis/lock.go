package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/casefort/LitIntel/pkg/errors"
	"github.com/casefort/LitIntel/pkg/types/common"
)

// releaseScript deletes the lock only when the caller still holds it, so an
// expired-and-reacquired lock is never released by the previous holder.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// CaseLock serializes analysis runs per case across worker instances.  The
// lock is advisory: losing it mid-run does not abort the analysis, it only
// allows a duplicate.
type CaseLock struct {
	client *Client
}

// NewCaseLock builds the lock over a shared client.
func NewCaseLock(client *Client) *CaseLock {
	return &CaseLock{client: client}
}

// Acquire attempts to take the per-case lock for ttl.  When the lock is held
// elsewhere it returns ok=false with a nil release.  The release function is
// safe to call once, after the analysis finishes.
func (l *CaseLock) Acquire(ctx context.Context, caseID common.ID, ttl time.Duration) (release func(context.Context) error, ok bool, err error) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	key := l.client.Key("lock", "analysis", string(caseID))
	token := uuid.NewString()

	ok, err = l.client.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, apperrors.Wrap(err, apperrors.ErrCodeCacheError, "case lock acquisition failed")
	}
	if !ok {
		return nil, false, nil
	}

	release = func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client.rdb, []string{key}, token).Err(); err != nil &&
			!apperrors.Is(err, redis.Nil) {
			return apperrors.Wrap(err, apperrors.ErrCodeCacheError, "case lock release failed")
		}
		return nil
	}
	return release, true, nil
}
