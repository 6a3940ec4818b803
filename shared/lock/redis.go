package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"frontdesk/infras/otel"
	"frontdesk/shared/constant"

	"github.com/google/uuid"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const releaseTimeout = 2 * time.Second

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another holder is left alone.
var releaseScript = goRedis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client  *goRedis.Client
	otel    otel.Otel
	prefix  string
	ttl     time.Duration
	retry   time.Duration
	timeout time.Duration
}

func (r *redisLocker) Lock(ctx context.Context, key string) (unlock func(), err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelLockScopeName, constant.OtelLockScopeName+".Lock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	name := r.prefix + ":" + key
	token := uuid.NewString()

	scope.SetAttribute("lock.key", name)

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()

	for {
		acquired, err := r.client.SetNX(ctx, name, token, r.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, notAcquired(key, ctx.Err())
			}

			return nil, fmt.Errorf("failed to acquire lock %s: %w", name, err)
		}

		if acquired {
			return r.unlocker(name, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, notAcquired(key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (r *redisLocker) unlocker(name, token string) func() {
	var once sync.Once

	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
			defer cancel()

			if err := releaseScript.Run(ctx, r.client, []string{name}, token).Err(); err != nil {
				log.Error().Err(err).Str("key", name).Msg("failed to release lock")
			}
		})
	}
}
