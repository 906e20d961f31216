package chanx

import (
	"context"
	"sync"

	"github.com/kholmatov/rendez"
)

// Merge combines multiple input Chans into a single output Chan
// (fan-in). The output Chan is closed when all inputs are closed or
// the context is cancelled. The order of values is non-deterministic.
//
// Every internal goroutine is tied to ctx and will exit promptly on
// cancellation.
func Merge[T any](ctx context.Context, chs ...rendez.Chan[T]) rendez.Chan[T] {
	out := rendez.New[T](0)

	var wg sync.WaitGroup
	for _, ch := range chs {
		ch := ch
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok, err := Recv(ctx, ch)
				if err != nil || !ok {
					return
				}
				if err := Send(ctx, out, v); err != nil {
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		out.Close()
	}()

	return out
}

// FanOut distributes values from in across n output Chans in
// round-robin order. Each output Chan is closed when in is closed or
// the context is cancelled.
//
// This is useful for distributing work to a fixed set of workers.
// FanOut panics if n is not positive.
func FanOut[T any](ctx context.Context, in rendez.Chan[T], n int) []rendez.Chan[T] {
	if n <= 0 {
		panic("chanx: FanOut requires n > 0")
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
		idx := 0
		for {
			v, ok, err := Recv(ctx, in)
			if err != nil || !ok {
				return
			}
			if err := Send(ctx, outs[idx%n], v); err != nil {
				return
			}
			idx++
		}
	}()

	return outs
}
