package table

import (
	"kierki-server/pkg/deck"
	"kierki-server/pkg/seat"
)

// Legal checks whether playing card from hand is allowed given the
// trick's leading suit. anyLead is true when the trick has not yet begun
// (no leading suit constraint applies). Grounded in
// bourre.Game.canPlayerPlayCard's must-follow-suit shape, simplified to
// Kierki's no-trump, strict-must-follow rule (no trump exceptions).
func Legal(hand deck.Hand, c deck.Card, leadSuit deck.Suit, anyLead bool) error {
	if !hand.Has(c) {
		return ErrCardNotInHand
	}

	if anyLead || c.Suit == leadSuit {
		return nil
	}

	if hand.HasSuit(leadSuit) {
		return ErrMustFollowSuit
	}

	return nil
}

// TrickWinner returns the seat holding the highest-ranked card of the
// leading suit. There is no trump suit in Kierki.
func TrickWinner(cards []PlayedCard, leadSuit deck.Suit) seat.Seat {
	winner := cards[0]
	for _, pc := range cards[1:] {
		if pc.Card.Suit == leadSuit && (winner.Card.Suit != leadSuit || pc.Card.Rank > winner.Card.Rank) {
			winner = pc
		}
	}

	return winner.Seat
}
