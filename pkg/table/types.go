// Package table holds the seated-player and candidate bookkeeping for one
// game session: the admission subsystem (Lobby) and the deal/trick state
// (GameState) the room's Dealer advances. The name is kept from the
// poker-bankroll package of the same name; the domain here is
// seating and card play, not chip stacks.
package table

import (
	"time"

	"kierki-server/pkg/deck"
	"kierki-server/pkg/netio"
	"kierki-server/pkg/seat"
)

// PlayerStats tracks one seat's progress through the current deal plus its
// running total across the session.
type PlayerStats struct {
	DealPoints   int
	TotalPoints  int
	Hand         deck.Hand
	TricksTaken  []Taken
	DealType     deck.DealType
}

// Player is a seated position. Its Conn cycles nil -> bound -> nil ->
// bound across reconnects; the seat identity itself never changes.
type Player struct {
	Seat          seat.Seat
	Conn          *netio.Conn
	LastRequestAt time.Time
	Stats         PlayerStats
}

// Bound reports whether the player currently has a live connection.
func (p *Player) Bound() bool {
	return p.Conn != nil
}

// CandidateState is where an unseated connection sits in the IAM handshake.
type CandidateState int

const (
	// AwaitingIAM is the initial state: waiting for an IAM frame before
	// the connection's deadline expires.
	AwaitingIAM CandidateState = iota
	// Rejecting means BUSY has been enqueued and the candidate is only
	// waiting for its outbound buffer to drain before disconnecting.
	Rejecting
)

// Candidate is a connected socket that has not yet been seated.
type Candidate struct {
	Conn        *netio.Conn
	State       CandidateState
	ConnectedAt time.Time

	// CorrelationID is a short random tag used only in log lines, so a
	// candidate's admission, rejection, or disconnect can be followed
	// across log entries without printing the underlying socket address.
	CorrelationID string
}

// Taken is one completed trick: the four cards as played, in seat-play
// order starting from that trick's leader, and the winning seat.
type Taken struct {
	TrickNumber int
	Cards       [4]deck.Card
	Winner      seat.Seat
}

// DealConfig is the fixed configuration of one deal: its scoring type, the
// seat that leads the first trick, and each seat's original 13-card hand.
// Hands here never change after StartDeal — PlayerStats.Hand is the
// mutable residual hand; DealConfig.Hands is what replay-on-reseat sends.
type DealConfig struct {
	Type      deck.DealType
	FirstSeat seat.Seat
	Hands     map[seat.Seat]deck.Hand
}

// PlayedCard is one card on the table during the current trick, tagged
// with the seat that played it — needed so TAKEN's per-seat ordering and
// the leading suit can be reconstructed without assuming the slice index
// encodes the seat.
type PlayedCard struct {
	Card deck.Card
	Seat seat.Seat
}

// GameState is the live state of the deal in progress.
type GameState struct {
	Deal            *DealConfig
	TrickNumber     int
	LeaderSeat      seat.Seat
	CardsOnTable    []PlayedCard
	CurrentPlayer   seat.Seat
	History         []Taken
}

// LeadingSuit returns the suit of the first card played this trick, and
// false if no card has been played yet.
func (gs *GameState) LeadingSuit() (deck.Suit, bool) {
	if len(gs.CardsOnTable) == 0 {
		return 0, false
	}

	return gs.CardsOnTable[0].Card.Suit, true
}
