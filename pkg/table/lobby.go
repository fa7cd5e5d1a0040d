package table

import (
	"time"

	"kierki-server/pkg/netio"
	"kierki-server/pkg/seat"
	"kierki-server/pkg/token"
)

// correlationIDLength is the size of a Candidate's log-only correlation
// tag; short enough to scan in a log line, long enough not to collide
// across one session's worth of connections.
const correlationIDLength = 8

// DefaultCandidateCapacity is the bounded descriptor-table capacity for
// unseated candidates.
const DefaultCandidateCapacity = 8

// Option configures a Lobby at construction time using the functional
// options pattern.
type Option func(*Lobby)

// WithCapacity overrides the default candidate capacity.
func WithCapacity(k int) Option {
	return func(l *Lobby) {
		l.capacity = k
	}
}

// Lobby is the admission subsystem: the four seats plus the bounded set of
// unseated candidates working through the IAM handshake. All of its
// methods are called exclusively from the single Dealer run-loop goroutine:
// no locking is needed here.
type Lobby struct {
	players  [4]*Player
	capacity int
	timeout  time.Duration

	candidates   []*Candidate
	connectOrder []seat.Seat
}

// NewLobby returns a Lobby with all four seats unbound.
func NewLobby(timeout time.Duration, opts ...Option) *Lobby {
	l := &Lobby{
		capacity: DefaultCandidateCapacity,
		timeout:  timeout,
	}

	for _, opt := range opts {
		opt(l)
	}

	for i, s := range seat.All {
		l.players[i] = &Player{Seat: s}
	}

	return l
}

// Player returns the seat's Player record (always non-nil; Conn may be nil).
func (l *Lobby) Player(s seat.Seat) *Player {
	return l.players[s.Index()]
}

// Players returns the four seats in cyclic order.
func (l *Lobby) Players() [4]*Player {
	return l.players
}

// AllSeated reports whether every seat currently has a bound connection.
func (l *Lobby) AllSeated() bool {
	for _, p := range l.players {
		if !p.Bound() {
			return false
		}
	}

	return true
}

// OccupiedSeats returns the currently bound seats, ordered by when each
// was first seen connected (the BUSY grammar's "first-seen at server"
// order), oldest first.
func (l *Lobby) OccupiedSeats() []seat.Seat {
	out := make([]seat.Seat, 0, len(l.connectOrder))
	for _, s := range l.connectOrder {
		if l.Player(s).Bound() {
			out = append(out, s)
		}
	}

	return out
}

// AddCandidate admits a freshly accepted connection as a candidate in
// state AwaitingIAM. It returns ok=false if the candidate table is full,
// in which case the caller must close conn immediately.
func (l *Lobby) AddCandidate(conn *netio.Conn, now time.Time) (*Candidate, bool) {
	if len(l.candidates) >= l.capacity {
		return nil, false
	}

	id, err := token.Generate(correlationIDLength)
	if err != nil {
		// crypto/rand failing means the host's entropy source is broken;
		// a missing correlation tag is not worth refusing the connection
		// over, so fall back to an empty one rather than erroring out.
		id = ""
	}

	c := &Candidate{Conn: conn, State: AwaitingIAM, ConnectedAt: now, CorrelationID: id}
	l.candidates = append(l.candidates, c)

	return c, true
}

// RemoveCandidate removes c from the candidate table. Safe to call even
// if c is not present.
func (l *Lobby) RemoveCandidate(c *Candidate) {
	for i, cand := range l.candidates {
		if cand == c {
			l.candidates = append(l.candidates[:i], l.candidates[i+1:]...)
			return
		}
	}
}

// Candidates returns the current candidate table.
func (l *Lobby) Candidates() []*Candidate {
	return l.candidates
}

// ExpiredAwaitingIAM returns candidates still awaiting IAM whose deadline
// (ConnectedAt + timeout) has passed as of now. Deadlines are absolute:
// arrival exactly at the deadline is accepted, strictly after is not
// at the boundary, so the comparison is strict '>'.
func (l *Lobby) ExpiredAwaitingIAM(now time.Time) []*Candidate {
	var expired []*Candidate
	for _, c := range l.candidates {
		if c.State == AwaitingIAM && now.Sub(c.ConnectedAt) > l.timeout {
			expired = append(expired, c)
		}
	}

	return expired
}

// Reject transitions a candidate to Rejecting after BUSY has been
// enqueued to it; the caller disconnects it once its outbound buffer
// drains.
func (l *Lobby) Reject(c *Candidate) {
	c.State = Rejecting
}

// Seat migrates a candidate's connection into the named seat, removing
// the candidate from the candidate table. The caller must have already
// checked the seat is unbound: a seat transitions only empty -> bound
// via seating.
func (l *Lobby) Seat(c *Candidate, s seat.Seat) *Player {
	p := l.Player(s)
	p.Conn = c.Conn
	l.RemoveCandidate(c)
	l.recordConnectOrder(s)

	return p
}

// recordConnectOrder appends s the first time it is ever seated, so a
// reseat after a disconnect does not add a duplicate entry: connectOrder
// tracks first-seen order, not every seating event.
func (l *Lobby) recordConnectOrder(s seat.Seat) {
	for _, seen := range l.connectOrder {
		if seen == s {
			return
		}
	}

	l.connectOrder = append(l.connectOrder, s)
}

// Unseat clears a player's connection, marking the seat empty again.
func (l *Lobby) Unseat(s seat.Seat) {
	l.Player(s).Conn = nil
}
