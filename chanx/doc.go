// Package chanx provides context-aware combinators layered on top of
// [github.com/kholmatov/rendez.Chan].
//
// rendez.Chan deliberately has no composite, select-based way to wait on
// several channels or a context at once. chanx fills that gap by
// polling each Chan's non-blocking TrySend/TryRecv screen on a short
// interval and racing that against ctx.Done(), rather than a native
// select statement:
//
//   - [Send] and [Recv]: context-aware send and receive over a Chan.
//   - [SendBatch] and [RecvBatch]: send or receive multiple values in one
//     call, stopping early on cancellation or channel close.
//   - [Merge]: fan-in that combines multiple Chans into one.
//   - [FanOut]: distributes values from one Chan across N workers.
//   - [Tee] and [Broadcast]: broadcast every value to N output Chans.
//   - [Map] and [Filter]: transform or select values in a pipeline.
//   - [Zip] and [Partition]: combine or split paired/conditional streams.
//   - [Throttle], [Debounce], [Window]: rate- and time-shape a stream.
//   - [First]: returns the first value from any of several Chans.
//   - [OrDone]: wraps a Chan so iterating it respects context cancellation.
//   - [Drain]: discards remaining values to unblock a producer.
//
// Every function that spawns a goroutine ties it to a context.Context,
// so it terminates when the context is canceled even if nothing ever
// consumes its output.
package chanx
