package rendez_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kholmatov/rendez"
)

// TestRendezvousBlocksUntilMatched covers scenario E2: an unbuffered
// Send does not return until a matching Recv has taken the value, and
// the value observed by the receiver is exactly what was sent.
func TestRendezvousBlocksUntilMatched(t *testing.T) {
	ch := rendez.New[string](0)

	sendReturned := make(chan struct{})
	go func() {
		require.NoError(t, ch.Send("hello"))
		close(sendReturned)
	}()

	select {
	case <-sendReturned:
		t.Fatal("Send returned before a receiver arrived")
	case <-time.After(50 * time.Millisecond):
	}

	v, ok, err := ch.Recv()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", v)

	select {
	case <-sendReturned:
	case <-time.After(time.Second):
		t.Fatal("Send did not return after its value was received")
	}
}

// TestCloseReleasesParkedReceivers covers scenario E5 and property P7:
// goroutines blocked in Recv on an empty channel are released as soon
// as Close runs, each observing end-of-stream rather than hanging.
func TestCloseReleasesParkedReceivers(t *testing.T) {
	ch := rendez.New[int](0)

	const n = 8
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, ok, err := ch.Recv()
			assert.NoError(t, err)
			assert.False(t, ok)
		}()
	}

	// Give every goroutine a chance to park before closing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, ch.Close())

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not release all parked receivers")
	}
}

// TestParallelSendersAndReceiversPreserveEachValueOnce covers scenario
// E6 and property P1/P2: with multiple concurrent senders and receivers
// against one buffered channel, every sent value is received by exactly
// one receiver, with no loss or duplication.
func TestParallelSendersAndReceiversPreserveEachValueOnce(t *testing.T) {
	ch := rendez.New[int](4)

	const perSender = 50
	const senders = 5
	const total = perSender * senders

	var wg sync.WaitGroup
	wg.Add(senders)
	for s := 0; s < senders; s++ {
		base := s * perSender
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				require.NoError(t, ch.Send(base+i))
			}
		}(base)
	}

	var mu sync.Mutex
	seen := make(map[int]int, total)
	var rwg sync.WaitGroup
	const receivers = 3
	rwg.Add(receivers)
	for r := 0; r < receivers; r++ {
		go func() {
			defer rwg.Done()
			for {
				v, ok, err := ch.Recv()
				if err != nil || !ok {
					return
				}
				mu.Lock()
				seen[v]++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	require.NoError(t, ch.Close())
	rwg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, total)
	for v, count := range seen {
		assert.Equalf(t, 1, count, "value %d observed %d times", v, count)
	}
}

// TestDestroyReleasesParkedReceiver covers property P7's companion
// behavior for Release/teardown rather than Close: a receiver parked on
// a channel whose last handle is released is woken with
// ErrDestroyedDuringRecv, distinct from ordinary close.
func TestDestroyReleasesParkedReceiver(t *testing.T) {
	ch := rendez.New[int](0)
	clone := ch.Clone()

	recvErrCh := make(chan error, 1)
	go func() {
		_, _, err := clone.Recv()
		recvErrCh <- err
	}()

	time.Sleep(50 * time.Millisecond)

	ch.Release()
	clone.Release()

	select {
	case err := <-recvErrCh:
		assert.ErrorIs(t, err, rendez.ErrDestroyedDuringRecv)
	case <-time.After(time.Second):
		t.Fatal("parked Recv was not released by teardown")
	}
}

// TestDestroyReleasesParkedSender mirrors the above for a parked Send.
func TestDestroyReleasesParkedSender(t *testing.T) {
	ch := rendez.New[int](0)
	clone := ch.Clone()

	sendErrCh := make(chan error, 1)
	go func() {
		sendErrCh <- clone.Send(1)
	}()

	time.Sleep(50 * time.Millisecond)

	ch.Release()
	clone.Release()

	select {
	case err := <-sendErrCh:
		assert.ErrorIs(t, err, rendez.ErrDestroyedDuringSend)
	case <-time.After(time.Second):
		t.Fatal("parked Send was not released by teardown")
	}
}
