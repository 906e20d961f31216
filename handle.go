package rendez

import (
	"fmt"
	"sync/atomic"
)

// shared is the reference-counted envelope around a core[T]. Every Chan
// handle aliases the same *shared; Clone bumps the count, Release drops
// it, and the last Release tears the core down.
type shared[T any] struct {
	core *core[T]
	refs atomic.Int64
}

// Chan is a typed, optionally-buffered FIFO conduit shared by any number
// of goroutines. The zero Chan is not usable; construct one with New.
//
// Copying a Chan by value aliases the same underlying channel — Chan
// itself is just a handle, analogous to a pointer. To give a goroutine
// its own accounting of when the channel is no longer needed, use
// Clone and Release rather than relying on garbage collection: Release
// wakes any goroutine parked in a blocking Send or Recv on this channel
// with a Destroyed... error once the last handle is released.
type Chan[T any] struct {
	s *shared[T]
}

// New constructs a channel with the given capacity. A capacity of zero
// means unbuffered (rendezvous): a Send only completes once a matching
// Recv has taken the value. New panics if capacity is negative.
func New[T any](capacity int, opts ...Option) Chan[T] {
	if capacity < 0 {
		panic("rendez: New requires capacity >= 0")
	}
	var cfg chanConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &shared[T]{core: newCore[T](capacity, cfg.name)}
	s.refs.Store(1)
	return Chan[T]{s: s}
}

// Option configures a Chan at construction. See WithName.
type Option func(*chanConfig)

type chanConfig struct {
	name string
}

// WithName attaches a diagnostic name to a channel, included in its
// String() representation. Purely cosmetic; does not affect behavior.
func WithName(name string) Option {
	return func(c *chanConfig) { c.name = name }
}

// Clone returns a new handle sharing this channel's underlying state.
// Each Clone must eventually be balanced by a Release; failing to
// Release a handle delays teardown but causes no other harm, since
// teardown only matters to parked waiters.
func (c Chan[T]) Clone() Chan[T] {
	c.s.refs.Add(1)
	return Chan[T]{s: c.s}
}

// Release drops this handle's claim on the underlying channel. Once the
// last handle is released, any goroutine still parked in a blocking
// Send or Recv is woken with ErrDestroyedDuringSend or
// ErrDestroyedDuringRecv. Release is idempotent only in the sense that
// calling it on a handle that has already had its share counted once
// more than once is a caller bug; Chan does not guard against
// double-Release the way Close guards against double-close, since the
// two handles are indistinguishable once aliased.
func (c Chan[T]) Release() {
	if c.s.refs.Add(-1) == 0 {
		c.s.core.teardown()
	}
}

// Send blocks until value is delivered to a waiting receiver or
// buffered, or the channel is closed or destroyed while parked.
// Returns ErrSendOnClosed if the channel was already closed.
func (c Chan[T]) Send(value T) error {
	_, err := c.s.core.send(value, true)
	return err
}

// TrySend attempts to send value without blocking. It reports whether
// the value was accepted. ok is false either because no receiver or
// buffer slot was immediately available (WouldBlock) or because the
// channel is closed, in which case err is ErrSendOnClosed.
func (c Chan[T]) TrySend(value T) (ok bool, err error) {
	outcome, err := c.s.core.send(value, false)
	if err != nil {
		return false, err
	}
	return outcome == sendCompleted, nil
}

// Recv blocks until a value is available or the channel is closed and
// drained. received is false only in the latter case, in which the
// returned value is T's zero value and must not be interpreted as data.
// Recv returns ErrDestroyedDuringRecv if the channel's last handle is
// released while this call is parked.
func (c Chan[T]) Recv() (value T, received bool, err error) {
	v, outcome, err := c.s.core.recv(true)
	if err != nil {
		return v, false, err
	}
	return v, outcome == recvReceived, nil
}

// TryRecv attempts to receive without blocking. received is false if no
// value was immediately available (WouldBlock) or the channel is closed
// and empty (ClosedEmpty); the two are distinguished by closedEmpty so
// that non-blocking callers can tell "check back later" from "this
// channel is finished" without examining err. TryRecv never parks, so
// it never receives ErrDestroyedDuringRecv: on a channel whose last
// handle was released it reports closedEmpty, and err is nil.
func (c Chan[T]) TryRecv() (value T, received bool, closedEmpty bool, err error) {
	v, outcome, err := c.s.core.recv(false)
	if err != nil {
		return v, false, false, err
	}
	switch outcome {
	case recvReceived:
		return v, true, false, nil
	case recvClosedEmpty:
		return v, false, true, nil
	default:
		return v, false, false, nil
	}
}

// Close marks the channel as no longer accepting sends and wakes every
// parked party: receivers observe ordinary end-of-stream (received ==
// false), senders observe ErrClosedDuringSend. Close returns
// ErrCloseOfClosed if the channel was already closed — Close is
// deliberately not idempotent, since a double close is almost always a
// caller bug worth surfacing.
func (c Chan[T]) Close() error {
	return c.s.core.close()
}

// Closed reports whether Close has been called. Safe to call from any
// goroutine without synchronization beyond what Chan already provides.
func (c Chan[T]) Closed() bool {
	return c.s.core.isClosed()
}

// Len returns the number of elements currently buffered. Always 0 for
// an unbuffered (capacity-0) channel. The value may be stale by the
// time the caller observes it in concurrent use.
func (c Chan[T]) Len() int {
	return c.s.core.size()
}

// Cap returns the channel's fixed capacity, as given to New.
func (c Chan[T]) Cap() int {
	return c.s.core.capacity
}

// String renders the channel's diagnostic name, if one was set via
// WithName, alongside its capacity and current length.
func (c Chan[T]) String() string {
	name := c.s.core.name
	if name == "" {
		name = "chan"
	}
	return fmt.Sprintf("%s[len=%d cap=%d]", name, c.Len(), c.Cap())
}
