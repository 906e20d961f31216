// Package rendez provides a thread-safe, typed communication channel:
// an optionally-buffered FIFO conduit through which goroutines exchange
// values with built-in synchronization, independent of Go's native
// `chan` keyword.
//
// # Construction
//
// [New] creates a channel. A capacity of zero is unbuffered (rendezvous):
// [Chan.Send] only completes once a matching [Chan.Recv] has taken the
// value. A positive capacity gives bounded producer/consumer buffering.
//
//	ch := rendez.New[int](0)
//	go func() { _ = ch.Send(7) }()
//	v, ok, err := ch.Recv() // v == 7, ok == true
//
// # Blocking and Non-Blocking Operations
//
// [Chan.Send] and [Chan.Recv] block until they can complete, the channel
// is closed, or the channel is destroyed (see Shared Ownership below).
// [Chan.TrySend] and [Chan.TryRecv] are the non-blocking counterparts:
// they report immediately whether the operation would have blocked,
// rather than parking the caller. They are the building blocks for
// composing a multi-way poll; this package does not itself provide a
// composite multi-channel selector.
//
// # Closing
//
// [Chan.Close] marks the channel as no longer accepting sends and wakes
// every parked party: receivers see ordinary end-of-stream ([Chan.Recv]
// returns received == false), parked senders see [ErrClosedDuringSend].
// Close is not idempotent — a second [Chan.Close] returns
// [ErrCloseOfClosed], since a double close is almost always a caller
// bug worth surfacing rather than silencing.
//
// # Shared Ownership
//
// [Chan] is a handle, not the channel itself: copying one by value
// aliases the same underlying state. [Chan.Clone] and [Chan.Release]
// give explicit reference-counted lifecycle control for handles passed
// across goroutine boundaries; once the last handle is released, any
// goroutine still parked in [Chan.Send] or [Chan.Recv] is woken with
// [ErrDestroyedDuringSend] or [ErrDestroyedDuringRecv] — distinct from
// the Closed... errors, so a waiter can tell "this channel ended
// normally" apart from "this channel went away out from under me".
//
// # Draining
//
// [ForEach] and [Range] repeatedly receive until the channel reports
// closed-and-empty:
//
//	err := rendez.ForEach(ch, func(v int) {
//	    fmt.Println(v)
//	})
//
// # Channel Utilities
//
// The [github.com/kholmatov/rendez/chanx] subpackage layers context-aware
// combinators on top of [Chan]: fan-in/fan-out (Merge, FanOut, Tee,
// Broadcast), transformation (Map, Filter), rate limiting (Throttle),
// batching (Buffer, BufferWithReason, SendBatch, RecvBatch), timing
// (Debounce, Window), combining (First), and cancellation-aware send/recv
// (Send, Recv, OrDone, Drain).
//
// # Structured Concurrency
//
// The execution-context runtime that drives goroutines is outside this
// package's remit (the channel has no opinion on who sends or receives),
// but [Scope], [Run], and [Pool] are carried over from this module's
// ancestry as the orchestration layer this package's own tests and
// benchmarks use to coordinate many concurrent senders and receivers
// against a single [Chan]. [Semaphore] and [Result] are built directly
// atop [Chan], demonstrating it as a general-purpose building block
// beyond message passing.
package rendez
