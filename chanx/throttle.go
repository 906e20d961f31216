package chanx

import (
	"context"
	"time"

	"github.com/kholmatov/rendez"
)

// Throttle rate-limits values from in to at most n items per duration.
// It uses a token-bucket approach: n tokens are available initially,
// and one token is replenished every per/n interval. The output Chan
// is closed when in closes or ctx is cancelled.
//
// Throttle panics if n is not positive or per is not positive.
func Throttle[T any](ctx context.Context, in rendez.Chan[T], n int, per time.Duration) rendez.Chan[T] {
	if n <= 0 {
		panic("chanx: Throttle requires n > 0")
	}
	if per <= 0 {
		panic("chanx: Throttle requires per > 0")
	}

	out := rendez.New[T](0)

	go func() {
		defer out.Close()

		interval := per / time.Duration(n)
		refill := time.NewTicker(interval)
		defer refill.Stop()

		poll := time.NewTicker(pollInterval)
		defer poll.Stop()

		tokens := n // start with full bucket for initial burst
		for {
			select {
			case <-ctx.Done():
				return
			case <-refill.C:
				if tokens < n {
					tokens++
				}
			case <-poll.C:
				if tokens == 0 {
					continue
				}
				v, ok, closedEmpty, err := in.TryRecv()
				if err != nil || closedEmpty {
					return
				}
				if !ok {
					continue
				}
				tokens--
				if err := Send(ctx, out, v); err != nil {
					return
				}
			}
		}
	}()
	return out
}
