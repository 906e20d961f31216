package chanx

import (
	"context"
	"time"

	"github.com/kholmatov/rendez"
)

// pollInterval is how often a context-aware operation re-polls the
// underlying Chan's non-blocking screen while waiting for ctx to be
// cancelled. rendez.Chan has no select-based interruptible Send/Recv by
// design (see its package doc), so every cancellation-aware combinator
// in this package is built from that poll loop rather than a native
// select statement.
const pollInterval = 500 * time.Microsecond

// Send sends v to ch, unblocking early if ctx is canceled. It returns
// nil on successful send, ch's own error (e.g. ErrSendOnClosed) if the
// channel rejected the send, or ctx.Err() if ctx was canceled first.
func Send[T any](ctx context.Context, ch rendez.Chan[T], v T) error {
	if ok, err := ch.TrySend(v); err != nil {
		return err
	} else if ok {
		return nil
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			ok, err := ch.TrySend(v)
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
	}
}

// Recv receives a value from ch, unblocking early if ctx is canceled.
// received is false either because ch closed with nothing left to drain
// or because ctx was canceled, in which case err is ctx.Err(). Recv
// polls without parking, so a destroyed channel (the last Chan handle
// released while this call was polling) looks like a closed, drained
// one: received is false and err is nil.
func Recv[T any](ctx context.Context, ch rendez.Chan[T]) (value T, received bool, err error) {
	if v, ok, closedEmpty, err := ch.TryRecv(); err != nil {
		return v, false, err
	} else if ok {
		return v, true, nil
	} else if closedEmpty {
		return v, false, nil
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			var zero T
			return zero, false, ctx.Err()
		case <-ticker.C:
			v, ok, closedEmpty, err := ch.TryRecv()
			if err != nil {
				return v, false, err
			}
			if ok {
				return v, true, nil
			}
			if closedEmpty {
				return v, false, nil
			}
		}
	}
}
