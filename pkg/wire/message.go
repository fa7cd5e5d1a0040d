// Package wire implements the bit-exact Kierki wire protocol: parsing and
// rendering of the eight message kinds exchanged between server and
// client, each terminated by CRLF.
package wire

import (
	"kierki-server/pkg/deck"
	"kierki-server/pkg/seat"
)

// Kind identifies which of the eight message grammars a Message carries.
type Kind int

// The eight message kinds.
const (
	KindIAM Kind = iota + 1
	KindBusy
	KindDeal
	KindTrick
	KindWrong
	KindTaken
	KindScore
	KindTotal
)

func (k Kind) String() string {
	switch k {
	case KindIAM:
		return "IAM"
	case KindBusy:
		return "BUSY"
	case KindDeal:
		return "DEAL"
	case KindTrick:
		return "TRICK"
	case KindWrong:
		return "WRONG"
	case KindTaken:
		return "TAKEN"
	case KindScore:
		return "SCORE"
	case KindTotal:
		return "TOTAL"
	default:
		return "UNKNOWN"
	}
}

// IAMPayload is the handshake a candidate sends to claim a seat.
type IAMPayload struct {
	Seat seat.Seat
}

// BusyPayload lists the seats already occupied, sent to a rejected
// candidate. Order is first-seen at the server.
type BusyPayload struct {
	Seats []seat.Seat
}

// DealPayload announces a new deal to a seat: its type, the first-to-play
// seat, and that seat's 13 cards.
type DealPayload struct {
	Type      deck.DealType
	FirstSeat seat.Seat
	Cards     [13]deck.Card
}

// TrickPayload carries a trick request (server -> client, 0..3 cards
// already on the table) or a trick response (client -> server, exactly 1
// card). Parse does not distinguish direction; callers interpret
// len(Cards) in context.
type TrickPayload struct {
	TrickNumber int
	Cards       []deck.Card
}

// WrongPayload rejects an illegal or malformed play for the named trick.
type WrongPayload struct {
	TrickNumber int
}

// TakenPayload announces a completed trick: the four cards as played and
// the winning seat.
type TakenPayload struct {
	TrickNumber int
	Cards       [4]deck.Card
	Winner      seat.Seat
}

// SeatScore is one (seat, points) pair within a SCORE or TOTAL message.
type SeatScore struct {
	Seat   seat.Seat
	Points int
}

// ScorePayload carries four (seat, points) pairs. The same shape is used
// for both SCORE and TOTAL; Message.Kind distinguishes them.
type ScorePayload struct {
	Scores [4]SeatScore
}

// Message is a closed, tagged union over the eight wire message kinds.
// Exactly one payload field is populated, matching Kind — no dynamic
// dispatch is used; callers switch on Kind.
type Message struct {
	Kind Kind

	IAM   IAMPayload
	Busy  BusyPayload
	Deal  DealPayload
	Trick TrickPayload
	Wrong WrongPayload
	Taken TakenPayload
	Score ScorePayload
	Total ScorePayload
}
