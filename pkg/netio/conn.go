// Package netio implements the connection buffer: one reader goroutine and
// one writer goroutine per net.Conn, exposing the non-blocking,
// line-framed read/write contract as channel operations instead of a
// descriptor the caller must poll. This is the Go-idiomatic redesign of a
// single-threaded "pump(events)" connection buffer: no caller ever blocks
// on I/O except FlushBlocking at shutdown, and every externally observable
// invariant (frame atomicity, sticky-error-implies-disconnected, enqueue
// ordering) is preserved.
package netio

import (
	"bufio"
	"io"
	"net"
	"time"
)

const (
	outboxCapacity = 256
	frameDelim     = '\n'
)

// Conn wraps one net.Conn. Frames() delivers inbound bytes split after each
// LF, delimiter included, in arrival order; a well-formed frame ends in
// CRLF, and wire.Parse rejects anything else, including a trailing
// fragment delivered when the peer closes mid-line. Err() fires at most
// once, with the sticky error that ended the connection (not at all after
// a plain Unbind). Enqueue never blocks the caller; Unbind tears both
// goroutines down.
type Conn struct {
	raw net.Conn

	frames chan []byte
	errc   chan error
	outbox chan []byte

	readerDone chan struct{}
	writerDone chan struct{}
	unbound    chan struct{}
}

// Bind starts the reader and writer goroutines over conn and returns the
// bound Conn. The caller owns conn; Unbind closes it.
func Bind(conn net.Conn) *Conn {
	c := &Conn{
		raw:        conn,
		frames:     make(chan []byte, 64),
		errc:       make(chan error, 1),
		outbox:     make(chan []byte, outboxCapacity),
		readerDone: make(chan struct{}),
		writerDone: make(chan struct{}),
		unbound:    make(chan struct{}),
	}

	go c.readLoop()
	go c.writeLoop()

	return c
}

// Frames returns the channel of complete inbound frames. It is closed once
// the connection's sticky error fires or the Conn is unbound.
func (c *Conn) Frames() <-chan []byte {
	return c.frames
}

// Err returns the channel the sticky connection error is delivered on. It
// fires at most once.
func (c *Conn) Err() <-chan error {
	return c.errc
}

// Enqueue appends b to the outbound queue, draining asynchronously via the
// writer goroutine. It never blocks: if the queue is full (a wildly
// backed-up peer), the connection is treated as broken and the sticky
// error fires, matching the "unbounded in principle, bounded in practice"
// backpressure note — a queue this deep can only mean a dead peer.
func (c *Conn) Enqueue(b []byte) {
	select {
	case c.outbox <- b:
	default:
		c.fail(ErrOutboxFull)
	}
}

// Pending reports whether Enqueue'd data is still waiting for the writer
// goroutine to pick it up. It does not guarantee bytes have left the OS
// socket buffer — only that the outbound queue itself is empty — which is
// enough to implement the non-blocking "is_writing()" check used to
// gate a candidate's disconnect once its rejection message has drained.
func (c *Conn) Pending() bool {
	return len(c.outbox) > 0
}

// Unbind closes the underlying descriptor and stops both goroutines. Safe
// to call more than once.
func (c *Conn) Unbind() {
	select {
	case <-c.unbound:
		return
	default:
		close(c.unbound)
	}

	_ = c.raw.Close()
}

// FlushBlocking closes the outbound queue (no further Enqueue calls are
// valid afterward) and blocks until the writer goroutine has drained it,
// used only at Shutdown to guarantee final-message delivery before closing
// sockets.
func (c *Conn) FlushBlocking(timeout time.Duration) error {
	close(c.outbox)

	select {
	case <-c.writerDone:
		return nil
	case <-time.After(timeout):
		return ErrFlushTimeout
	}
}

func (c *Conn) readLoop() {
	defer close(c.readerDone)
	defer close(c.frames)

	r := bufio.NewReader(c.raw)
	for {
		line, err := r.ReadBytes(frameDelim)
		if len(line) > 0 {
			select {
			case c.frames <- line:
			case <-c.unbound:
				return
			}
		}

		if err != nil {
			if err == io.EOF {
				c.fail(ErrConnClosed)
			} else {
				c.fail(err)
			}

			return
		}
	}
}

func (c *Conn) writeLoop() {
	defer close(c.writerDone)

	for {
		select {
		case b, ok := <-c.outbox:
			if !ok {
				return
			}

			if _, err := c.raw.Write(b); err != nil {
				c.fail(err)
				return
			}
		case <-c.unbound:
			return
		}
	}
}

func (c *Conn) fail(err error) {
	select {
	case c.errc <- err:
	default:
	}

	c.Unbind()
}
