package schedule

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialPreservesOrder(t *testing.T) {
	t.Parallel()

	var order []int
	err := ForEach(context.Background(), Sequential, 5, func(ctx context.Context, i int) error {
		order = append(order, i)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestSequentialStopsAtFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var ran []int
	err := ForEach(context.Background(), Sequential, 5, func(ctx context.Context, i int) error {
		ran = append(ran, i)
		if i == 2 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []int{0, 1, 2}, ran, "units after the failing one must not start")
}

func TestConcurrentRunsAllUnits(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	seen := make(map[int]bool)
	err := ForEach(context.Background(), Concurrent, 8, func(ctx context.Context, i int) error {
		mu.Lock()
		defer mu.Unlock()
		seen[i] = true
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, seen, 8)
}

func TestConcurrentReturnsFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	err := ForEach(context.Background(), Concurrent, 4, func(ctx context.Context, i int) error {
		if i == 1 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestForPolicy(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Sequential, ForPolicy(true))
	assert.Equal(t, Concurrent, ForPolicy(false))
	assert.Equal(t, "sequential", Sequential.String())
	assert.Equal(t, "concurrent", Concurrent.String())
}
