package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/notifykit/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	futureString := async.Async(ctx, 42, func(_ context.Context, num int) (string, error) {
		time.Sleep(20 * time.Millisecond)
		return fmt.Sprintf("Number: %d", num), nil
	})
	futureBool := async.Async(ctx, "test", func(_ context.Context, s string) (bool, error) {
		return len(s) > 0, nil
	})

	s, err := futureString.Await()
	require.NoError(t, err)
	assert.Equal(t, "Number: 42", s)

	b, err := futureBool.Await()
	require.NoError(t, err)
	assert.True(t, b)
}

func TestAsync_ErrorPropagation(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("an error occurred in the async function")
	future := async.Async(context.Background(), 42, func(_ context.Context, _ int) (int, error) {
		return 0, expectedErr
	})

	result, err := future.Await()
	assert.ErrorIs(t, err, expectedErr)
	assert.Zero(t, result)
}

func TestAsync_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var called atomic.Bool
	future := async.Async(ctx, 1, func(_ context.Context, n int) (int, error) {
		called.Store(true)
		return n, nil
	})

	_, err := future.Await()
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called.Load())
}

func TestResolved(t *testing.T) {
	t.Parallel()

	future := async.Resolved("cached")
	assert.True(t, future.IsComplete())

	v, err := future.Await()
	require.NoError(t, err)
	assert.Equal(t, "cached", v)
}

func TestIsComplete(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	future := async.Async(context.Background(), 0, func(_ context.Context, _ int) (bool, error) {
		<-release
		return true, nil
	})

	assert.False(t, future.IsComplete())
	close(release)

	_, err := future.Await()
	require.NoError(t, err)
	assert.True(t, future.IsComplete())
}

func TestWaitAll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sleepy := func(d time.Duration, v int) *async.Future[int] {
		return async.Async(ctx, v, func(_ context.Context, n int) (int, error) {
			time.Sleep(d)
			return n, nil
		})
	}

	results, err := async.WaitAll(sleepy(30*time.Millisecond, 1), async.Resolved(2), sleepy(10*time.Millisecond, 3))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, results)

	boom := errors.New("boom")
	failing := async.Async(ctx, 0, func(_ context.Context, _ int) (int, error) { return 0, boom })
	_, err = async.WaitAll(async.Resolved(1), failing)
	assert.ErrorIs(t, err, boom)
}

func TestMap(t *testing.T) {
	t.Parallel()

	t.Run("preserves input order", func(t *testing.T) {
		t.Parallel()

		items := []int{5, 1, 4, 2, 3}
		results, err := async.Map(context.Background(), items, func(_ context.Context, n int) (string, error) {
			// Later items finish first.
			time.Sleep(time.Duration(n) * 5 * time.Millisecond)
			return fmt.Sprint(n * 10), nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"50", "10", "40", "20", "30"}, results)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		results, err := async.Map(context.Background(), nil, func(_ context.Context, n int) (int, error) {
			t.Fatal("must not be called")
			return n, nil
		})
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("runs concurrently", func(t *testing.T) {
		t.Parallel()

		var inflight, peak atomic.Int32
		items := make([]int, 10)
		_, err := async.Map(context.Background(), items, func(_ context.Context, n int) (int, error) {
			cur := inflight.Add(1)
			for {
				p := peak.Load()
				if cur <= p || peak.CompareAndSwap(p, cur) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			inflight.Add(-1)
			return n, nil
		})
		require.NoError(t, err)
		assert.Greater(t, peak.Load(), int32(1))
	})

	t.Run("returns lowest-indexed error after all complete", func(t *testing.T) {
		t.Parallel()

		first := errors.New("first")
		second := errors.New("second")
		var completed atomic.Int32
		_, err := async.Map(context.Background(), []int{0, 1, 2, 3}, func(_ context.Context, n int) (int, error) {
			defer completed.Add(1)
			switch n {
			case 1:
				time.Sleep(20 * time.Millisecond)
				return 0, first
			case 3:
				return 0, second
			}
			return n, nil
		})
		assert.ErrorIs(t, err, first)
		assert.Equal(t, int32(4), completed.Load())
	})
}
