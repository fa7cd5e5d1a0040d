package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kierki-server/pkg/deck"
	"kierki-server/pkg/seat"
)

func mustCard(t *testing.T, tok string) deck.Card {
	t.Helper()
	c, ok := deck.CardFromToken(tok)
	if !ok {
		t.Fatalf("bad card token %q", tok)
	}

	return c
}

func TestLegal_anyLead(t *testing.T) {
	hand := deck.Hand{mustCard(t, "2C"), mustCard(t, "3H")}
	assert.NoError(t, Legal(hand, mustCard(t, "3H"), 0, true))
}

func TestLegal_followsSuit(t *testing.T) {
	hand := deck.Hand{mustCard(t, "2C"), mustCard(t, "3H")}
	assert.NoError(t, Legal(hand, mustCard(t, "2C"), deck.Clubs, false))
}

func TestLegal_mustFollowSuit(t *testing.T) {
	hand := deck.Hand{mustCard(t, "2C"), mustCard(t, "3H")}
	err := Legal(hand, mustCard(t, "3H"), deck.Clubs, false)
	assert.ErrorIs(t, err, ErrMustFollowSuit)
}

func TestLegal_offSuitAllowedWhenVoid(t *testing.T) {
	hand := deck.Hand{mustCard(t, "3H")}
	assert.NoError(t, Legal(hand, mustCard(t, "3H"), deck.Clubs, false))
}

func TestLegal_cardNotInHand(t *testing.T) {
	hand := deck.Hand{mustCard(t, "2C")}
	err := Legal(hand, mustCard(t, "3H"), 0, true)
	assert.ErrorIs(t, err, ErrCardNotInHand)
}

func TestTrickWinner_highestOfLeadingSuit(t *testing.T) {
	cards := []PlayedCard{
		{Card: mustCard(t, "2C"), Seat: seat.North},
		{Card: mustCard(t, "3C"), Seat: seat.East},
		{Card: mustCard(t, "AC"), Seat: seat.South},
		{Card: mustCard(t, "5C"), Seat: seat.West},
	}

	assert.Equal(t, seat.South, TrickWinner(cards, deck.Clubs))
}

func TestTrickWinner_offSuitCardsIgnored(t *testing.T) {
	cards := []PlayedCard{
		{Card: mustCard(t, "2H"), Seat: seat.North},
		{Card: mustCard(t, "AC"), Seat: seat.East},
		{Card: mustCard(t, "5H"), Seat: seat.South},
		{Card: mustCard(t, "KC"), Seat: seat.West},
	}

	assert.Equal(t, seat.South, TrickWinner(cards, deck.Hearts))
}
