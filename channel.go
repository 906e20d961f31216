package rendez

import (
	"sync"
	"sync/atomic"
)

// sendWaiter is a parked sender: the value it wants delivered, and the
// handshake it is awaiting. The handshake carries no payload back to the
// sender (struct{}) — success is signaled by delivery, not by a value.
type sendWaiter[T any] struct {
	hs  *handshake[struct{}]
	val T
}

// recvWaiter is a parked receiver awaiting a delivered value.
type recvWaiter[T any] struct {
	hs *handshake[T]
}

// core is the shared state behind every Chan[T] handle: the buffer, the
// two waiter FIFOs, the closed flag, and the mutex guarding all of it.
// It is never copied; handles share a pointer to one core via Chan.
//
// closed, sendQLen and recvQLen are additionally exposed as atomics so
// the non-blocking fast-fail screens in trySendFastFail/tryRecvFastFail can run without
// taking mu; they are maintained under mu and are pure latency
// optimizations per spec §9 — a concurrent implementation may drop them
// without changing observable behavior, since the locked path below
// always re-validates.
type core[T any] struct {
	name string

	mu    sync.Mutex
	buf   ringBuffer[T]
	sendQ []*sendWaiter[T]
	recvQ []*recvWaiter[T]

	capacity int
	closed   atomic.Bool
	sendQLen atomic.Int64
	recvQLen atomic.Int64
}

func newCore[T any](capacity int, name string) *core[T] {
	c := &core[T]{capacity: capacity, name: name}
	if capacity > 0 {
		c.buf = newRingBuffer[T](capacity)
	}
	return c
}

// sendOutcome is the result of a send attempt.
type sendOutcome int

const (
	sendCompleted sendOutcome = iota
	sendWouldBlock
)

// trySendFastFail implements §4.3 step 1: a lock-free, best-effort
// screen run only for the non-blocking caller. A false negative (saying
// "might succeed" when it wouldn't) is fine — the locked path
// re-validates. This never produces a false positive WouldBlock for a
// send that would actually complete, because it only returns true when
// both the rendezvous path and the buffer path are obviously closed off.
func (c *core[T]) trySendFastFail() bool {
	if c.closed.Load() {
		return false // let the locked path raise ErrSendOnClosed precisely
	}
	if c.capacity == 0 {
		return c.recvQLen.Load() == 0
	}
	return c.buf.size() == c.capacity
}

// send implements §4.3.
func (c *core[T]) send(value T, blocking bool) (sendOutcome, error) {
	if !blocking && c.trySendFastFail() {
		return sendWouldBlock, nil
	}

	c.mu.Lock()

	if c.closed.Load() {
		c.mu.Unlock()
		return sendWouldBlock, ErrSendOnClosed
	}

	if n := len(c.recvQ); n > 0 {
		w := c.recvQ[0]
		c.recvQ = c.recvQ[1:]
		c.recvQLen.Add(-1)
		c.mu.Unlock()
		w.hs.deliver(value)
		return sendCompleted, nil
	}

	if c.capacity > 0 && !c.buf.isFull() {
		c.buf.push(value)
		c.mu.Unlock()
		return sendCompleted, nil
	}

	if !blocking {
		c.mu.Unlock()
		return sendWouldBlock, nil
	}

	hs := newHandshake[struct{}]()
	c.sendQ = append(c.sendQ, &sendWaiter[T]{hs: hs, val: value})
	c.sendQLen.Add(1)
	c.mu.Unlock()

	_, err := hs.await()
	if err != nil {
		return sendWouldBlock, err
	}
	return sendCompleted, nil
}

// recvOutcome is the result of a receive attempt.
type recvOutcome int

const (
	recvReceived recvOutcome = iota
	recvClosedEmpty
	recvWouldBlock
)

// tryRecvFastFail implements §4.4 step 1. Order matters: emptiness must
// be checked before closed, or a concurrent close that drains the
// channel can race into a spurious WouldBlock where the correct answer
// is ClosedEmpty.
func (c *core[T]) tryRecvFastFail() bool {
	var empty bool
	if c.capacity == 0 {
		empty = c.sendQLen.Load() == 0
	} else {
		empty = c.buf.size() == 0
	}
	return empty && !c.closed.Load()
}

// recv implements §4.4.
func (c *core[T]) recv(blocking bool) (T, recvOutcome, error) {
	var zero T

	if !blocking && c.tryRecvFastFail() {
		return zero, recvWouldBlock, nil
	}

	c.mu.Lock()

	if c.closed.Load() && c.buf.size() == 0 {
		c.mu.Unlock()
		return zero, recvClosedEmpty, nil
	}

	if n := len(c.sendQ); n > 0 {
		w := c.sendQ[0]
		c.sendQ = c.sendQ[1:]
		c.sendQLen.Add(-1)

		var result T
		if c.capacity == 0 {
			result = w.val
		} else {
			// By I3 the buffer is full here: steal the oldest buffered
			// value for this receiver, and park the waiter's value into
			// the slot that just freed up, preserving FIFO order.
			result = c.buf.pop()
			c.buf.push(w.val)
		}
		c.mu.Unlock()
		w.hs.deliver(struct{}{})
		return result, recvReceived, nil
	}

	if c.capacity > 0 && c.buf.size() > 0 {
		v := c.buf.pop()
		c.mu.Unlock()
		return v, recvReceived, nil
	}

	if !blocking {
		c.mu.Unlock()
		return zero, recvWouldBlock, nil
	}

	hs := newHandshake[T]()
	c.recvQ = append(c.recvQ, &recvWaiter[T]{hs: hs})
	c.recvQLen.Add(1)
	c.mu.Unlock()

	v, err := hs.await()
	if err != nil {
		if err == errClosedDuringRecv {
			return zero, recvClosedEmpty, nil
		}
		return zero, recvWouldBlock, err
	}
	return v, recvReceived, nil
}

// close implements §4.5: marks the channel closed and detaches both
// waiter queues while holding the lock, then, after releasing it,
// signals Closed... to every parked party. By I3/I5 both queues are never simultaneously
// non-empty in practice, but both are drained defensively.
func (c *core[T]) close() error {
	c.mu.Lock()
	if !c.closed.CompareAndSwap(false, true) {
		c.mu.Unlock()
		return ErrCloseOfClosed
	}

	recvQ := c.recvQ
	c.recvQ = nil
	c.recvQLen.Store(0)
	sendQ := c.sendQ
	c.sendQ = nil
	c.sendQLen.Store(0)
	c.mu.Unlock()

	for _, w := range recvQ {
		w.hs.fail(errClosedDuringRecv)
	}
	for _, w := range sendQ {
		w.hs.fail(ErrClosedDuringSend)
	}
	return nil
}

// teardown runs when the last Chan handle referencing this core is
// released. It mirrors close's waiter-release logic but signals
// Destroyed... errors instead of Closed..., per §4.6: a waiter must be
// able to tell "this ended normally" apart from "this went away while I
// was parked".
func (c *core[T]) teardown() {
	c.mu.Lock()
	c.closed.Store(true)
	recvQ := c.recvQ
	c.recvQ = nil
	c.recvQLen.Store(0)
	sendQ := c.sendQ
	c.sendQ = nil
	c.sendQLen.Store(0)
	c.mu.Unlock()

	for _, w := range recvQ {
		w.hs.fail(ErrDestroyedDuringRecv)
	}
	for _, w := range sendQ {
		w.hs.fail(ErrDestroyedDuringSend)
	}
}

// isClosed is a lock-free read, exposed for diagnostics and for the
// non-blocking screens.
func (c *core[T]) isClosed() bool { return c.closed.Load() }

// size returns the number of buffered elements, readable without the
// lock per §3.
func (c *core[T]) size() int {
	if c.capacity == 0 {
		return 0
	}
	return c.buf.size()
}
