package chanx

import (
	"context"
	"time"

	"github.com/kholmatov/rendez"
)

// Buffer collects values from in into slices of up to size elements.
// A batch is emitted when it reaches size elements or when timeout
// elapses since the first item in the current batch, whichever comes
// first. The output Chan is closed when in closes or ctx is cancelled.
// Any partial batch is flushed on close.
//
// Buffer panics if size is not positive or timeout is not positive.
func Buffer[T any](
	ctx context.Context,
	in rendez.Chan[T],
	size int,
	timeout time.Duration,
) rendez.Chan[[]T] {
	if size <= 0 {
		panic("chanx: Buffer requires size > 0")
	}
	if timeout <= 0 {
		panic("chanx: Buffer requires timeout > 0")
	}

	out := rendez.New[[]T](0)

	go func() {
		defer out.Close()

		batch := make([]T, 0, size)
		var timerC <-chan time.Time

		flush := func() bool {
			if len(batch) == 0 {
				return true
			}
			if err := Send(ctx, out, batch); err != nil {
				return false
			}
			batch = make([]T, 0, size)
			timerC = nil
			return true
		}

		poll := time.NewTicker(pollInterval)
		defer poll.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timerC:
				if !flush() {
					return
				}
			case <-poll.C:
				v, ok, closedEmpty, err := in.TryRecv()
				if err != nil {
					flush()
					return
				}
				if closedEmpty {
					flush()
					return
				}
				if !ok {
					continue
				}
				batch = append(batch, v)
				if len(batch) == 1 {
					timer := time.NewTimer(timeout)
					timerC = timer.C
				}
				if len(batch) >= size {
					if !flush() {
						return
					}
				}
			}
		}
	}()
	return out
}

// FlushReason indicates why a batch was flushed.
type FlushReason int

const (
	// FlushSize means the batch reached the configured max size.
	FlushSize FlushReason = iota
	// FlushTimeout means the timeout elapsed since the first item in the batch.
	FlushTimeout
	// FlushClose means the input Chan closed with a partial batch remaining.
	FlushClose
)

// BatchResult holds a flushed batch and the reason it was flushed.
type BatchResult[T any] struct {
	Items  []T
	Reason FlushReason
}

// BufferWithReason works like [Buffer] but includes the [FlushReason]
// with each emitted batch.
//
// BufferWithReason panics if size is not positive or timeout is not positive.
func BufferWithReason[T any](
	ctx context.Context,
	in rendez.Chan[T],
	size int,
	timeout time.Duration,
) rendez.Chan[BatchResult[T]] {
	if size <= 0 {
		panic("chanx: BufferWithReason requires size > 0")
	}
	if timeout <= 0 {
		panic("chanx: BufferWithReason requires timeout > 0")
	}

	out := rendez.New[BatchResult[T]](0)

	go func() {
		defer out.Close()

		batch := make([]T, 0, size)
		var timerC <-chan time.Time

		flush := func(reason FlushReason) bool {
			if len(batch) == 0 {
				return true
			}
			if err := Send(ctx, out, BatchResult[T]{Items: batch, Reason: reason}); err != nil {
				return false
			}
			batch = make([]T, 0, size)
			timerC = nil
			return true
		}

		poll := time.NewTicker(pollInterval)
		defer poll.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timerC:
				if !flush(FlushTimeout) {
					return
				}
			case <-poll.C:
				v, ok, closedEmpty, err := in.TryRecv()
				if err != nil {
					flush(FlushClose)
					return
				}
				if closedEmpty {
					flush(FlushClose)
					return
				}
				if !ok {
					continue
				}
				batch = append(batch, v)
				if len(batch) == 1 {
					timer := time.NewTimer(timeout)
					timerC = timer.C
				}
				if len(batch) >= size {
					if !flush(FlushSize) {
						return
					}
				}
			}
		}
	}()
	return out
}
