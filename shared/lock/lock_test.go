package lock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"frontdesk/config"
	"frontdesk/infras/otel/mocks"
	"frontdesk/shared/lock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutRedisIsLocal(t *testing.T) {
	cfg := &config.Config{}
	cfg.Lock.TimeoutMillis = 100

	locker := lock.New(nil, cfg, mocks.NewOtel())

	unlock, err := locker.Lock(context.Background(), "room-101")
	require.NoError(t, err)
	unlock()
}

func TestLocalLockIsExclusivePerKey(t *testing.T) {
	locker := lock.NewLocal(0)

	var (
		inside  int32
		maxSeen int32
		wg      sync.WaitGroup
	)

	for range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			unlock, err := locker.Lock(context.Background(), "room-101")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			current := atomic.AddInt32(&inside, 1)
			for {
				seen := atomic.LoadInt32(&maxSeen)
				if current <= seen || atomic.CompareAndSwapInt32(&maxSeen, seen, current) {
					break
				}
			}

			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), maxSeen)
}

func TestLocalLockDifferentKeysDoNotBlock(t *testing.T) {
	locker := lock.NewLocal(50 * time.Millisecond)

	unlockA, err := locker.Lock(context.Background(), "room-101")
	require.NoError(t, err)
	defer unlockA()

	unlockB, err := locker.Lock(context.Background(), "room-102")
	require.NoError(t, err)
	unlockB()
}

func TestLocalLockTimesOut(t *testing.T) {
	locker := lock.NewLocal(20 * time.Millisecond)

	unlock, err := locker.Lock(context.Background(), "room-101")
	require.NoError(t, err)

	_, err = locker.Lock(context.Background(), "room-101")
	assert.ErrorIs(t, err, lock.ErrNotAcquired)

	unlock()
	unlock()

	again, err := locker.Lock(context.Background(), "room-101")
	require.NoError(t, err)
	again()
}

func TestLocalLockHonoursCancellation(t *testing.T) {
	locker := lock.NewLocal(0)

	unlock, err := locker.Lock(context.Background(), "room-101")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = locker.Lock(ctx, "room-101")
	assert.ErrorIs(t, err, lock.ErrNotAcquired)
	assert.ErrorIs(t, err, context.Canceled)
}
