package rendez

import "errors"

// Sentinel errors returned by Chan operations. Callers compare against
// these with errors.Is.
var (
	// ErrSendOnClosed is returned by Send and TrySend when the channel
	// was already closed at the time of the call. Sending on a closed
	// channel is a programming error.
	ErrSendOnClosed = errors.New("rendez: send on closed channel")

	// ErrCloseOfClosed is returned by Close when the channel was already
	// closed. Close is not idempotent by design: a second Close is a
	// programming error, not a no-op.
	ErrCloseOfClosed = errors.New("rendez: close of closed channel")

	// ErrClosedDuringSend is returned to a blocked Send when another
	// party closes the channel while it was parked.
	ErrClosedDuringSend = errors.New("rendez: channel closed while send was blocked")

	// errClosedDuringRecv never escapes to a caller: the recv protocol
	// translates it into the ordinary ClosedEmpty outcome (ok == false).
	errClosedDuringRecv = errors.New("rendez: channel closed while recv was blocked")

	// ErrDestroyedDuringSend is returned to a blocked Send when the
	// channel's last handle is released while the send was parked.
	ErrDestroyedDuringSend = errors.New("rendez: channel destroyed while send was blocked")

	// ErrDestroyedDuringRecv is returned to a blocked Recv when the
	// channel's last handle is released while the recv was parked.
	ErrDestroyedDuringRecv = errors.New("rendez: channel destroyed while recv was blocked")
)
