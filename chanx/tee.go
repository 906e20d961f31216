package chanx

import (
	"context"

	"github.com/kholmatov/rendez"
)

// Tee broadcasts every value from in to n independent output Chans.
// All outputs receive every value. The output Chans are closed when
// in is closed or the context is cancelled.
//
// Warning: if any consumer is slow, it blocks the broadcast to all others.
// Use buffered consumers or [OrDone] to mitigate this.
// Tee panics if n is not positive.
func Tee[T any](ctx context.Context, in rendez.Chan[T], n int) []rendez.Chan[T] {
	if n <= 0 {
		panic("chanx: Tee requires n > 0")
	}

	outs := make([]rendez.Chan[T], n)
	for i := range outs {
		outs[i] = rendez.New[T](0)
	}

	go func() {
		defer func() {
			for _, ch := range outs {
				ch.Close()
			}
		}()
		for {
			v, ok, err := Recv(ctx, in)
			if err != nil || !ok {
				return
			}
			for _, ch := range outs {
				if err := Send(ctx, ch, v); err != nil {
					return
				}
			}
		}
	}()

	return outs
}
