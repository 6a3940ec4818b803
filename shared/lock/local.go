package lock

import (
	"context"
	"sync"
	"time"
)

type slot struct {
	ch   chan struct{}
	refs int
}

type localLocker struct {
	mu      sync.Mutex
	slots   map[string]*slot
	timeout time.Duration
}

// NewLocal returns a keyed mutex living in this process. Entries are dropped
// once no goroutine holds or waits for them.
func NewLocal(timeout time.Duration) Locker {
	return &localLocker{
		slots:   map[string]*slot{},
		timeout: timeout,
	}
}

func (l *localLocker) Lock(ctx context.Context, key string) (func(), error) {
	ctx, cancel := withTimeout(ctx, l.timeout)
	defer cancel()

	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once

		return func() {
			once.Do(func() {
				<-s.ch
				l.release(key, s)
			})
		}, nil
	case <-ctx.Done():
		l.release(key, s)

		return nil, notAcquired(key, ctx.Err())
	}
}

func (l *localLocker) release(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}
