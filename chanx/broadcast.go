package chanx

import (
	"context"

	"github.com/kholmatov/rendez"
)

// Broadcast is a buffered variant of [Tee] that reduces slow-consumer
// blocking. Each output Chan has an independent buffer of bufSize.
//
// Broadcast panics if n <= 0 or bufSize <= 0.
func Broadcast[T any](
	ctx context.Context,
	in rendez.Chan[T],
	n int,
	bufSize int,
) []rendez.Chan[T] {
	if n <= 0 {
		panic("chanx: Broadcast requires n > 0")
	}
	if bufSize <= 0 {
		panic("chanx: Broadcast requires bufSize > 0")
	}

	outs := make([]rendez.Chan[T], n)
	for i := range outs {
		outs[i] = rendez.New[T](bufSize)
	}

	go func() {
		defer func() {
			for _, ch := range outs {
				ch.Close()
			}
		}()
		for {
			v, ok, err := Recv(ctx, in)
			if err != nil || !ok {
				return
			}
			for _, ch := range outs {
				if err := Send(ctx, ch, v); err != nil {
					return
				}
			}
		}
	}()

	return outs
}
