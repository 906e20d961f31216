package rendez

import "context"

// Result holds the outcome of an asynchronous task that produces a typed
// value. Create one via [SpawnResult]. Internally it is a capacity-1
// [Chan], exercising the same buffered single-value delivery path as any
// other channel this package exposes.
type Result[T any] struct {
	ch Chan[result[T]]
}

type result[T any] struct {
	val T
	err error
}

// SpawnResult spawns a named task that returns a typed value and wraps the
// outcome in a [Result]. The task runs within the given [Scope], inheriting
// its lifecycle and error policy.
/* Example:
	r := rendez.SpawnResult(s, "compute", func(ctx context.Context) (int, error) {
    	return expensiveCalc(ctx)
	})
	val, err := r.Wait()
*/
func SpawnResult[T any](
	sp Spawner,
	name string,
	fn func(ctx context.Context) (T, error),
) *Result[T] {
	r := &Result[T]{ch: New[result[T]](1)}

	sp.Go(name, func(ctx context.Context) (err error) {
		// Publish to r.ch even if fn panics, so Wait never hangs; the
		// panic itself still propagates to the enclosing Spawn, which
		// applies the scope's usual panic handling.
		defer func() {
			if rec := recover(); rec != nil {
				_ = r.ch.Send(result[T]{err: newPanicError(rec)})
				panic(rec)
			}
		}()
		v, err := fn(ctx)
		_ = r.ch.Send(result[T]{v, err})
		return err
	})

	return r
}

// Wait blocks until the task completes.
// It does not return early on scope cancellation.
// It returns the task's value and error.
//
// Note: Since Spawner does not expose the scope's context, this Wait
// only waits for the task to complete.
func (r *Result[T]) Wait() (T, error) {
	res, _, err := r.ch.Recv()
	if err != nil {
		var zero T
		return zero, err
	}
	return res.val, res.err
}
