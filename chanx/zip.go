package chanx

import (
	"context"

	"github.com/kholmatov/rendez"
)

// Pair holds two values zipped together from two Chans.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip combines values from two Chans pairwise. The output Chan emits
// one Pair for each value received from both chA and chB. The output
// is closed when either input closes or ctx is cancelled.
func Zip[A, B any](ctx context.Context, chA rendez.Chan[A], chB rendez.Chan[B]) rendez.Chan[Pair[A, B]] {
	out := rendez.New[Pair[A, B]](0)

	go func() {
		defer out.Close()
		for {
			a, ok, err := Recv(ctx, chA)
			if err != nil || !ok {
				return
			}

			b, ok, err := Recv(ctx, chB)
			if err != nil || !ok {
				return
			}

			if err := Send(ctx, out, Pair[A, B]{First: a, Second: b}); err != nil {
				return
			}
		}
	}()

	return out
}
