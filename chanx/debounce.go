package chanx

import (
	"context"
	"time"

	"github.com/kholmatov/rendez"
)

// Debounce emits the last value received from in after a quiet period
// of duration d. Each new value resets the timer. The output Chan is
// closed when in is closed or ctx is cancelled.
//
// Debounce panics if d <= 0.
func Debounce[T any](ctx context.Context, in rendez.Chan[T], d time.Duration) rendez.Chan[T] {
	if d <= 0 {
		panic("chanx: Debounce requires d > 0")
	}

	out := rendez.New[T](0)

	go func() {
		defer out.Close()

		poll := time.NewTicker(pollInterval)
		defer poll.Stop()

		var timer *time.Timer
		var timerC <-chan time.Time
		var latest T
		var hasValue bool

		for {
			select {
			case <-ctx.Done():
				return
			case <-timerC:
				if hasValue {
					if err := Send(ctx, out, latest); err != nil {
						return
					}
					hasValue = false
					timerC = nil
					timer = nil
				}
			case <-poll.C:
				v, ok, closedEmpty, err := in.TryRecv()
				if err != nil {
					if hasValue {
						_ = Send(ctx, out, latest)
					}
					return
				}
				if closedEmpty {
					if hasValue {
						_ = Send(ctx, out, latest)
					}
					return
				}
				if !ok {
					continue
				}
				latest = v
				hasValue = true
				if timer == nil {
					timer = time.NewTimer(d)
					timerC = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-timerC:
						default:
						}
					}
					timer.Reset(d)
					timerC = timer.C
				}
			}
		}
	}()
	return out
}
