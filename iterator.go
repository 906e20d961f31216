package rendez

// ForEach repeatedly receives from c and invokes fn with each value,
// until c reports closed-and-empty or Recv returns an error (the
// channel was destroyed while this call was parked, in which case err
// is non-nil and the loop stops). This is the primary drain surface;
// prefer it over constructing an Iterator by hand.
func ForEach[T any](c Chan[T], fn func(T)) error {
	for {
		v, ok, err := c.Recv()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		fn(v)
	}
}

// Iterator is a forward, single-pass view over a channel's remaining
// values. It is not restartable: once Next returns false, the Iterator
// is permanently exhausted, whether because the channel closed or
// because it was destroyed (in which case Err reports why).
//
// Equality is defined only between an end-sentinel state and itself;
// comparing two live iterators is undefined. This is sufficient for the
// range-style usage pattern below and is not meant as a general-purpose
// comparable value.
type Iterator[T any] struct {
	ch   Chan[T]
	val  T
	err  error
	done bool
}

// Range returns an Iterator that drains c. Typical use:
//
//	it := rendez.Range(ch)
//	for it.Next() {
//	    process(it.Value())
//	}
//	if err := it.Err(); err != nil {
//	    // channel was destroyed mid-iteration
//	}
func Range[T any](c Chan[T]) *Iterator[T] {
	return &Iterator[T]{ch: c}
}

// Next advances the iterator, blocking until a value is available or
// the channel is closed and drained. It returns false when iteration is
// over, whether cleanly (channel closed) or due to an error (check
// Err).
func (it *Iterator[T]) Next() bool {
	if it.done {
		return false
	}
	v, ok, err := it.ch.Recv()
	if err != nil {
		it.err = err
		it.done = true
		return false
	}
	if !ok {
		it.done = true
		return false
	}
	it.val = v
	return true
}

// Value returns the value produced by the most recent successful call
// to Next. Calling it before a successful Next, or after Next returned
// false, yields T's zero value.
func (it *Iterator[T]) Value() T {
	return it.val
}

// Err returns the error that ended iteration, if any. A clean close
// (the common case) leaves Err nil.
func (it *Iterator[T]) Err() error {
	return it.err
}
