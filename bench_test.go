package rendez_test

import (
	"context"
	"testing"

	"github.com/kholmatov/rendez"
)

// BenchmarkSendRecvBuffered measures round-trip cost on a channel with
// enough slack that Send never parks.
func BenchmarkSendRecvBuffered(b *testing.B) {
	ch := rendez.New[int](1)
	for i := 0; i < b.N; i++ {
		_ = ch.Send(i)
		_, _, _ = ch.Recv()
	}
}

// BenchmarkSendRecvRendezvous measures round-trip cost on an unbuffered
// channel, where Send and Recv must hand off across goroutines.
func BenchmarkSendRecvRendezvous(b *testing.B) {
	ch := rendez.New[int](0)
	done := make(chan struct{})
	go func() {
		for i := 0; i < b.N; i++ {
			_, _, _ = ch.Recv()
		}
		close(done)
	}()
	for i := 0; i < b.N; i++ {
		_ = ch.Send(i)
	}
	<-done
}

// BenchmarkTrySendTryRecv measures the non-blocking fast-fail screens.
func BenchmarkTrySendTryRecv(b *testing.B) {
	ch := rendez.New[int](4)
	for i := 0; i < b.N; i++ {
		_, _ = ch.TrySend(i)
		_, _, _, _ = ch.TryRecv()
	}
}

// BenchmarkForEachSlice measures ForEachSlice helper overhead.
func BenchmarkForEachSlice(b *testing.B) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}
	for i := 0; i < b.N; i++ {
		_ = rendez.ForEachSlice(context.Background(), items, func(ctx context.Context, item int) error {
			return nil
		}, rendez.WithLimit(8))
	}
}

// BenchmarkPoolSubmit measures worker pool task submission throughput.
func BenchmarkPoolSubmit(b *testing.B) {
	p := rendez.NewPool(context.Background(), 4)
	defer p.Close()
	for i := 0; i < b.N; i++ {
		_ = p.Submit(func() error { return nil })
	}
}
