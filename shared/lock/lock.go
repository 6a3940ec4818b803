// Package lock serializes commands that touch the same key, typically a room.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"frontdesk/config"
	"frontdesk/infras/otel"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrNotAcquired is returned when the lock could not be taken before the
// context or the configured timeout expired.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker grants exclusive sections per key. The returned unlock function is
// safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// New returns a Redis backed locker when a client is available so several
// instances sharing one database stay serialized, and an in-process locker
// otherwise.
func New(client *goRedis.Client, cfg *config.Config, otl otel.Otel) Locker {
	timeout := time.Duration(cfg.Lock.TimeoutMillis) * time.Millisecond

	if client == nil {
		log.Info().Msg("Using in-process room locks")

		return NewLocal(timeout)
	}

	log.Info().Str("prefix", cfg.Lock.Prefix).Msg("Using Redis room locks")

	return &redisLocker{
		client:  client,
		otel:    otl,
		prefix:  cfg.Lock.Prefix,
		ttl:     time.Duration(cfg.Lock.TTLMillis) * time.Millisecond,
		retry:   time.Duration(max(cfg.Lock.RetryMillis, 1)) * time.Millisecond,
		timeout: timeout,
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, timeout)
}

func notAcquired(key string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrNotAcquired, key, cause)
}
