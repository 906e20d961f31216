package rendez

import (
	"context"
	"fmt"
)

// ForEachSlice executes fn for each item in the slice concurrently,
// using the provided options to control concurrency and error policy.
//
// This is a convenience wrapper around [Run] and [Spawner.Go]. It is
// named ForEachSlice, not ForEach, to keep it distinct from the
// channel-draining [ForEach].
//
//	err := rendez.ForEachSlice(ctx, urls, func(ctx context.Context, u string) error {
//	    return fetch(ctx, u)
//	}, rendez.WithLimit(10))
func ForEachSlice[T any](ctx context.Context, items []T, fn func(ctx context.Context, item T) error, opts ...ScopeOption) error {
	return Run(ctx, func(sp Spawner) {
		for i, item := range items {
			item := item // capture for Go < 1.22
			sp.Go(fmt.Sprintf("foreach[%d]", i), func(ctx context.Context) error {
				return fn(ctx, item)
			})
		}
	}, opts...)
}

// Map executes fn for each item concurrently and collects the results
// in the same order as the input slice. It uses [FailFast] policy by
// default; pass [WithPolicy]([Collect]) to let every task run and get
// all task errors joined. Partial results are not returned under
// either policy.
//
// On error, Map returns nil and the error. On success, it returns the
// results slice and nil.
//
//	prices, err := rendez.Map(ctx, products, func(ctx context.Context, p Product) (float64, error) {
//	    return fetchPrice(ctx, p)
//	}, rendez.WithLimit(5))
func Map[T, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T) (R, error), opts ...ScopeOption) ([]R, error) {
	results := make([]R, len(items))
	err := Run(ctx, func(sp Spawner) {
		for i, item := range items {
			i, item := i, item // capture for Go < 1.22
			sp.Go(fmt.Sprintf("map[%d]", i), func(ctx context.Context) error {
				r, err := fn(ctx, item)
				if err != nil {
					return err
				}
				results[i] = r // safe: each goroutine writes a unique index
				return nil
			})
		}
	}, opts...)
	if err != nil {
		return nil, err
	}
	return results, nil
}
