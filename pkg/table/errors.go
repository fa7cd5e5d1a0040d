package table

import "errors"

// Sentinel errors for semantic rule violations, one var per case. I/O and syntax
// errors are not sentineled here: they are unrecoverable per-connection
// conditions handled by disconnecting, never by bubbling a typed error to
// a caller that could retry.
var (
	// ErrNotPlayersTurn is returned when a seat other than CurrentPlayer
	// attempts a play.
	ErrNotPlayersTurn = errors.New("table: not player's turn")

	// ErrCardNotInHand is returned when the named card is not in the
	// player's current hand.
	ErrCardNotInHand = errors.New("table: card is not in player's hand")

	// ErrMustFollowSuit is returned when the player has a card of the
	// leading suit but played off-suit.
	ErrMustFollowSuit = errors.New("table: player holds the leading suit and must follow it")

	// ErrWrongTrickNumber is returned when a TRICK response names a trick
	// other than the one currently open.
	ErrWrongTrickNumber = errors.New("table: trick number does not match the open trick")

	// ErrWrongCardCount is returned when a TRICK response carries a card
	// count other than exactly one.
	ErrWrongCardCount = errors.New("table: trick response must carry exactly one card")
)
