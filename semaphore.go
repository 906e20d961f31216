package rendez

import (
	"context"
	"sync/atomic"
	"time"
)

// Semaphore is a counting semaphore for bounding concurrency, built
// directly on [Chan]: a bounded channel pre-loaded with n tokens is a
// semaphore, with Acquire taking a token (Recv) and Release returning
// one (Send).
type Semaphore struct {
	tokens   Chan[struct{}]
	cap      int
	acquired atomic.Int64
}

// NewSemaphore creates a semaphore with the given capacity.
// Panics if n <= 0.
func NewSemaphore(n int) *Semaphore {
	if n <= 0 {
		panic("rendez: NewSemaphore requires n > 0")
	}
	tokens := New[struct{}](n)
	for i := 0; i < n; i++ {
		_ = tokens.Send(struct{}{})
	}
	return &Semaphore{tokens: tokens, cap: n}
}

// pollBackoff is the interval at which a context-aware Acquire re-polls
// TryAcquire while waiting for ctx to be cancelled, since the underlying
// Chan has no select-based interruptible receive.
const pollBackoff = 500 * time.Microsecond

// Acquire blocks until a slot is available or ctx is cancelled.
// Returns ctx.Err() on cancellation, nil on success.
func (s *Semaphore) Acquire(ctx context.Context) error {
	if s.TryAcquire() {
		return nil
	}
	ticker := time.NewTicker(pollBackoff)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.TryAcquire() {
				return nil
			}
		}
	}
}

// TryAcquire attempts to acquire a slot without blocking.
// Returns true if acquired, false otherwise.
func (s *Semaphore) TryAcquire() bool {
	_, ok, _, err := s.tokens.TryRecv()
	if err != nil || !ok {
		return false
	}
	s.acquired.Add(1)
	return true
}

// Release releases a slot. Panics if more slots are released than acquired.
func (s *Semaphore) Release() {
	if s.acquired.Add(-1) < 0 {
		s.acquired.Add(1) // undo
		panic("rendez: Semaphore.Release called without matching Acquire")
	}
	if err := s.tokens.Send(struct{}{}); err != nil {
		panic("rendez: Semaphore token channel closed unexpectedly: " + err.Error())
	}
}

// Available returns the number of available slots.
// The value may be stale in concurrent contexts.
func (s *Semaphore) Available() int {
	return s.tokens.Len()
}
