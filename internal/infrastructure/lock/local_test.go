package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_MutualExclusion(t *testing.T) {
	locker := NewLocalLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Obtain(ctx, "invoice:global:2025-12", time.Second)
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			_ = release(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestLocalLocker_Timeout(t *testing.T) {
	locker := NewLocalLocker()
	release, err := locker.Obtain(context.Background(), "k", time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Obtain(ctx, "k", time.Second)
	assert.ErrorIs(t, err, ErrNotObtained)

	require.NoError(t, release(context.Background()))
	require.NoError(t, release(context.Background()))

	release, err = locker.Obtain(context.Background(), "k", time.Second)
	require.NoError(t, err)
	_ = release(context.Background())
}

func TestLocalLocker_IndependentKeys(t *testing.T) {
	locker := NewLocalLocker()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := locker.Obtain(ctx, "india:2025-12", time.Second)
	require.NoError(t, err)
	_, err = locker.Obtain(ctx, "global:2025-12", time.Second)
	assert.NoError(t, err)
}
