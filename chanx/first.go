package chanx

import (
	"context"
	"time"

	"github.com/kholmatov/rendez"
)

// First returns a Chan that delivers the first value received from any
// of the input Chans, then closes. If no Chans are provided, the
// returned Chan is closed immediately. If ctx is cancelled or every
// input closes before any value arrives, the returned Chan is closed
// with no value.
//
// First polls each input Chan round-robin with [TryRecv] rather than
// a native select, since a [rendez.Chan] does not expose one.
func First[T any](ctx context.Context, chs ...rendez.Chan[T]) rendez.Chan[T] {
	out := rendez.New[T](1) // buffer 1 so the polling goroutine never blocks on send

	if len(chs) == 0 {
		out.Close()
		return out
	}

	go func() {
		defer out.Close()

		poll := time.NewTicker(pollInterval)
		defer poll.Stop()

		live := make([]bool, len(chs))
		for i := range live {
			live[i] = true
		}
		remaining := len(chs)

		for {
			select {
			case <-ctx.Done():
				return
			case <-poll.C:
				for i, ch := range chs {
					if !live[i] {
						continue
					}
					v, ok, closedEmpty, err := ch.TryRecv()
					if err != nil || closedEmpty {
						live[i] = false
						remaining--
						continue
					}
					if !ok {
						continue
					}
					_ = out.Send(v)
					return
				}
				if remaining == 0 {
					return
				}
			}
		}
	}()
	return out
}
