package room

import (
	"kierki-server/pkg/netio"
	"kierki-server/pkg/seat"
	"kierki-server/pkg/table"
)

// eventKind tags the union of things the run loop can react to. Every
// state mutation in the engine happens in response to one of these,
// consumed from the single events channel inside Dealer.Run — the
// Go-idiomatic replacement for safePoll's "pump every descriptor, then
// advance" cycle.
type eventKind int

const (
	eventNewConn eventKind = iota
	eventCandidateFrame
	eventCandidateErr
	eventSeatFrame
	eventSeatErr
	eventTick
)

type event struct {
	kind eventKind

	conn *netio.Conn // for eventNewConn

	candidate *table.Candidate // for eventCandidateFrame/eventCandidateErr

	seat     seat.Seat    // for eventSeatFrame/eventSeatErr
	seatConn *netio.Conn  // the Conn this event originated from, for stale-goroutine detection after reseat
	frame    []byte
	err      error
}

// watchCandidate forwards a candidate connection's first frame, or its
// terminal error if it closes before sending one, onto the shared events
// channel. The first frame settles the candidate (seated, rejected or
// disconnected), so it stops there: once seated, later frames and the
// error belong to watchSeat alone.
func watchCandidate(c *table.Candidate, events chan<- event) {
	if frame, ok := <-c.Conn.Frames(); ok {
		events <- event{kind: eventCandidateFrame, candidate: c, frame: frame}
		return
	}

	if err, ok := <-c.Conn.Err(); ok {
		events <- event{kind: eventCandidateErr, candidate: c, err: err}
	}
}

// watchSeat forwards a seated connection's frames and terminal error. The
// conn pointer is carried on every event so the run loop can discard
// stale events from a connection a reseat has already superseded.
func watchSeat(s seat.Seat, conn *netio.Conn, events chan<- event) {
	for frame := range conn.Frames() {
		events <- event{kind: eventSeatFrame, seat: s, seatConn: conn, frame: frame}
	}

	if err, ok := <-conn.Err(); ok {
		events <- event{kind: eventSeatErr, seat: s, seatConn: conn, err: err}
	}
}
