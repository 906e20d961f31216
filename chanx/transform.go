package chanx

import (
	"context"

	"github.com/kholmatov/rendez"
)

// Map transforms values from in by applying fn and sends the results
// to the returned Chan. The output Chan is closed when in is closed or
// ctx is cancelled.
func Map[T, U any](ctx context.Context, in rendez.Chan[T], fn func(T) U) rendez.Chan[U] {
	out := rendez.New[U](0)

	go func() {
		defer out.Close()
		for {
			v, ok, err := Recv(ctx, in)
			if err != nil || !ok {
				return
			}
			if err := Send(ctx, out, fn(v)); err != nil {
				return
			}
		}
	}()
	return out
}

// Filter passes values from in to the returned Chan only if fn returns
// true. The output Chan is closed when in is closed or ctx is
// cancelled.
func Filter[T any](ctx context.Context, in rendez.Chan[T], fn func(T) bool) rendez.Chan[T] {
	out := rendez.New[T](0)

	go func() {
		defer out.Close()
		for {
			v, ok, err := Recv(ctx, in)
			if err != nil || !ok {
				return
			}
			if !fn(v) {
				continue
			}
			if err := Send(ctx, out, v); err != nil {
				return
			}
		}
	}()
	return out
}
