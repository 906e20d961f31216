package chanx

import (
	"context"

	"github.com/kholmatov/rendez"
)

// OrDone wraps in so that draining it respects context cancellation.
// The returned Chan yields values from in until in closes or ctx is
// canceled, whichever comes first, then closes itself.
func OrDone[T any](ctx context.Context, in rendez.Chan[T]) rendez.Chan[T] {
	out := rendez.New[T](0)
	go func() {
		defer out.Close()
		for {
			v, ok, err := Recv(ctx, in)
			if err != nil || !ok {
				return
			}
			if err := Send(ctx, out, v); err != nil {
				return
			}
		}
	}()
	return out
}

// Drain reads and discards all values from ch until it closes. Use this
// to unblock a producer that is sending to ch during shutdown.
func Drain[T any](ch rendez.Chan[T]) {
	_ = rendez.ForEach(ch, func(T) {})
}
