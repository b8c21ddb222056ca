package lock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// LocalLocker serializes keys inside a single process. It is used when Redis
// is not configured and the API runs as one replica.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]chan struct{})}
}

func (l *LocalLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

// Obtain blocks until key is free or ctx is done. ttl is ignored; the lock
// is held until released.
func (l *LocalLocker) Obtain(ctx context.Context, key string, _ time.Duration) (ReleaseFunc, error) {
	ch := l.slot(key)

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s", ErrNotObtained, key)
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() { <-ch })
		return nil
	}, nil
}
