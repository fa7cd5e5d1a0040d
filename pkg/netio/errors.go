package netio

import "errors"

// Sentinel errors surfaced on Conn.Err(), one var per case.
var (
	// ErrConnClosed is the sticky error for a clean peer-initiated close
	// (read returned EOF).
	ErrConnClosed = errors.New("netio: connection closed by peer")

	// ErrOutboxFull means the outbound queue filled faster than the
	// writer goroutine could drain it — treated as a dead peer.
	ErrOutboxFull = errors.New("netio: outbound queue full")

	// ErrFlushTimeout is returned by FlushBlocking when the outbound
	// queue did not drain before the deadline.
	ErrFlushTimeout = errors.New("netio: flush timed out")
)
