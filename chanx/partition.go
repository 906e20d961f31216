package chanx

import (
	"context"

	"github.com/kholmatov/rendez"
)

// Partition splits items from in into two Chans based on fn. Items
// for which fn returns true go to the first (match) Chan; items for
// which fn returns false go to the second (rest) Chan. Both output
// Chans are closed when in is closed or ctx is cancelled.
//
// IMPORTANT: Callers MUST consume both output Chans concurrently
// (typically in separate goroutines). If only one is read, the single
// dispatcher goroutine will block on the unconsumed Chan, causing a
// deadlock. This is the same constraint as [Tee].
//
// Partition panics if fn is nil.
func Partition[T any](
	ctx context.Context,
	in rendez.Chan[T],
	fn func(T) bool,
) (match rendez.Chan[T], rest rendez.Chan[T]) {
	if fn == nil {
		panic("chanx: Partition requires non-nil predicate")
	}
	matchCh := rendez.New[T](0)
	restCh := rendez.New[T](0)

	go func() {
		defer matchCh.Close()
		defer restCh.Close()
		for {
			v, ok, err := Recv(ctx, in)
			if err != nil || !ok {
				return
			}
			if fn(v) {
				if err := Send(ctx, matchCh, v); err != nil {
					return
				}
			} else {
				if err := Send(ctx, restCh, v); err != nil {
					return
				}
			}
		}
	}()

	return matchCh, restCh
}
