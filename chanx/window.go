package chanx

import (
	"context"
	"time"

	"github.com/kholmatov/rendez"
)

// WindowMode specifies whether the window is tumbling or sliding.
type WindowMode int

const (
	// Tumbling windows are non-overlapping: each item belongs to exactly one window.
	Tumbling WindowMode = iota
	// Sliding windows overlap: each emitted batch contains all items from the last duration.
	Sliding
)

// Window collects items from in into time-based windows.
// In Tumbling mode, items are collected for duration then emitted as a batch.
// In Sliding mode, each emitted batch contains all items received within the
// last duration; a new batch is emitted at each tick.
//
// Window panics if duration <= 0 or mode is unknown.
func Window[T any](
	ctx context.Context,
	in rendez.Chan[T],
	duration time.Duration,
	mode WindowMode,
) rendez.Chan[[]T] {
	if duration <= 0 {
		panic("chanx: Window requires duration > 0")
	}

	out := rendez.New[[]T](0)

	switch mode {
	case Tumbling:
		go windowTumbling(ctx, in, out, duration)
	case Sliding:
		go windowSliding(ctx, in, out, duration)
	default:
		panic("chanx: unknown WindowMode")
	}

	return out
}

func windowTumbling[T any](
	ctx context.Context,
	in rendez.Chan[T],
	out rendez.Chan[[]T],
	duration time.Duration,
) {
	defer out.Close()
	ticker := time.NewTicker(duration)
	defer ticker.Stop()

	poll := time.NewTicker(pollInterval)
	defer poll.Stop()

	var batch []T
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if len(batch) > 0 {
				if err := Send(ctx, out, batch); err != nil {
					return
				}
				batch = nil
			}
		case <-poll.C:
			v, ok, closedEmpty, err := in.TryRecv()
			if err != nil {
				if len(batch) > 0 {
					_ = Send(ctx, out, batch)
				}
				return
			}
			if closedEmpty {
				if len(batch) > 0 {
					_ = Send(ctx, out, batch)
				}
				return
			}
			if !ok {
				continue
			}
			batch = append(batch, v)
		}
	}
}

type timestamped[T any] struct {
	val  T
	when time.Time
}

func windowSliding[T any](
	ctx context.Context,
	in rendez.Chan[T],
	out rendez.Chan[[]T],
	duration time.Duration,
) {
	defer out.Close()
	ticker := time.NewTicker(duration)
	defer ticker.Stop()

	poll := time.NewTicker(pollInterval)
	defer poll.Stop()

	var items []timestamped[T]
	emit := func() {
		cutoff := time.Now().Add(-duration)
		start := 0
		for start < len(items) && items[start].when.Before(cutoff) {
			start++
		}
		items = items[start:]

		if len(items) > 0 {
			batch := make([]T, len(items))
			for i, item := range items {
				batch[i] = item.val
			}
			_ = Send(ctx, out, batch)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-duration)
			start := 0
			for start < len(items) && items[start].when.Before(cutoff) {
				start++
			}
			items = items[start:]

			if len(items) > 0 {
				batch := make([]T, len(items))
				for i, item := range items {
					batch[i] = item.val
				}
				if err := Send(ctx, out, batch); err != nil {
					return
				}
			}
		case <-poll.C:
			v, ok, closedEmpty, err := in.TryRecv()
			if err != nil {
				emit()
				return
			}
			if closedEmpty {
				emit()
				return
			}
			if !ok {
				continue
			}
			items = append(items, timestamped[T]{val: v, when: time.Now()})
		}
	}
}
