package rendez_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kholmatov/rendez"
)

func TestRunSucceedsWithNoTasks(t *testing.T) {
	err := rendez.Run(context.Background(), func(sp rendez.Spawner) {})
	require.NoError(t, err)
}

func TestRunFailFastReturnsFirstError(t *testing.T) {
	sentinel := errors.New("task-3 failed")

	err := rendez.Run(context.Background(), func(sp rendez.Spawner) {
		for i := 0; i < 5; i++ {
			i := i
			sp.Spawn(fmt.Sprintf("task-%d", i), func(ctx context.Context, _ rendez.Spawner) error {
				if i == 3 {
					return sentinel
				}
				<-ctx.Done()
				return ctx.Err()
			})
		}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
}

func TestRunCollectJoinsAllErrors(t *testing.T) {
	err := rendez.Run(context.Background(), func(sp rendez.Spawner) {
		for i := 0; i < 3; i++ {
			i := i
			sp.Spawn(fmt.Sprintf("task-%d", i), func(ctx context.Context, _ rendez.Spawner) error {
				return fmt.Errorf("task %d failed", i)
			})
		}
	}, rendez.WithPolicy(rendez.Collect))

	require.Error(t, err)
	out := rendez.AllTaskErrors(err)
	assert.Len(t, out, 3)
}

func TestRunWithLimitBoundsConcurrency(t *testing.T) {
	var active, maxActive atomic.Int64
	const limit = 2

	err := rendez.Run(context.Background(), func(sp rendez.Spawner) {
		for i := 0; i < 8; i++ {
			sp.Spawn("worker", func(ctx context.Context, _ rendez.Spawner) error {
				n := active.Add(1)
				for {
					old := maxActive.Load()
					if n <= old || maxActive.CompareAndSwap(old, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				active.Add(-1)
				return nil
			})
		}
	}, rendez.WithLimit(limit))

	require.NoError(t, err)
	assert.LessOrEqual(t, maxActive.Load(), int64(limit))
}

func TestRunPanicReraisesByDefault(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		pe, ok := r.(*rendez.PanicError)
		require.True(t, ok)
		assert.Contains(t, pe.Error(), "boom")
	}()

	_ = rendez.Run(context.Background(), func(sp rendez.Spawner) {
		sp.Spawn("panicker", func(ctx context.Context, _ rendez.Spawner) error {
			panic("boom")
		})
	})
}

func TestRunWithPanicAsErrorConvertsPanic(t *testing.T) {
	err := rendez.Run(context.Background(), func(sp rendez.Spawner) {
		sp.Spawn("panicker", func(ctx context.Context, _ rendez.Spawner) error {
			panic("boom")
		})
	}, rendez.WithPanicAsError())

	require.Error(t, err)
	var pe *rendez.PanicError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "boom", pe.Value)
}

func TestScopeHooksFireAroundEachTask(t *testing.T) {
	var started, done atomic.Int32

	err := rendez.Run(context.Background(), func(sp rendez.Spawner) {
		sp.Spawn("alpha", func(ctx context.Context, _ rendez.Spawner) error { return nil })
		sp.Spawn("beta", func(ctx context.Context, _ rendez.Spawner) error { return nil })
	},
		rendez.WithOnStart(func(info rendez.TaskInfo) { started.Add(1) }),
		rendez.WithOnDone(func(info rendez.TaskInfo, err error, d time.Duration) { done.Add(1) }),
	)

	require.NoError(t, err)
	assert.EqualValues(t, 2, started.Load())
	assert.EqualValues(t, 2, done.Load())
}

func TestScopeNestedSpawn(t *testing.T) {
	var leafRan atomic.Bool

	err := rendez.Run(context.Background(), func(sp rendez.Spawner) {
		sp.Spawn("parent", func(ctx context.Context, sp rendez.Spawner) error {
			sp.Spawn("child", func(ctx context.Context, _ rendez.Spawner) error {
				leafRan.Store(true)
				return nil
			})
			return nil
		})
	})

	require.NoError(t, err)
	assert.True(t, leafRan.Load())
}

func TestSpawnAfterScopeShutdownPanics(t *testing.T) {
	var runScope rendez.Spawner

	func() {
		defer func() { recover() }()
		_ = rendez.Run(context.Background(), func(sp rendez.Spawner) {
			runScope = sp
		})
	}()

	assert.Panics(t, func() {
		runScope.Spawn("late", func(context.Context, rendez.Spawner) error { return nil })
	})
}

func TestNewScopeManualLifecycle(t *testing.T) {
	sc, sp := rendez.NewScope(context.Background())
	sp.Go("work", func(ctx context.Context) error { return nil })
	require.NoError(t, sc.Wait())
	assert.EqualValues(t, 1, sc.TotalSpawned())
}

func TestScopeCancelStopsSiblings(t *testing.T) {
	ctx := context.Background()
	sc, sp := rendez.NewScope(ctx)

	blocked := make(chan struct{})
	sp.Go("blocker", func(ctx context.Context) error {
		close(blocked)
		<-ctx.Done()
		return ctx.Err()
	})

	<-blocked
	sc.Cancel(errors.New("stop everything"))
	err := sc.Wait()
	require.Error(t, err)
}
