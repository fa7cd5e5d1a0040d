package wire

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"kierki-server/pkg/deck"
	"kierki-server/pkg/seat"
)

func goldenOpts() goldie.Option {
	return goldie.WithFixtureDir("testdata/golden")
}

func allClubs() [13]deck.Card {
	tokens := []string{"2C", "3C", "4C", "5C", "6C", "7C", "8C", "9C", "10C", "JC", "QC", "KC", "AC"}

	var out [13]deck.Card
	for i, tok := range tokens {
		c, ok := deck.CardFromToken(tok)
		if !ok {
			panic("bad test fixture token " + tok)
		}

		out[i] = c
	}

	return out
}

func card(tok string) deck.Card {
	c, ok := deck.CardFromToken(tok)
	if !ok {
		panic("bad test fixture token " + tok)
	}

	return c
}

func TestRender_golden(t *testing.T) {
	cases := map[string]Message{
		"iam": {Kind: KindIAM, IAM: IAMPayload{Seat: seat.North}},
		"busy": {Kind: KindBusy, Busy: BusyPayload{
			Seats: []seat.Seat{seat.North, seat.East, seat.South, seat.West},
		}},
		"deal": {Kind: KindDeal, Deal: DealPayload{
			Type:      deck.NoTricks,
			FirstSeat: seat.North,
			Cards:     allClubs(),
		}},
		"trick_request_with_cards": {Kind: KindTrick, Trick: TrickPayload{
			TrickNumber: 5,
			Cards:       []deck.Card{card("2C"), card("3C")},
		}},
		"trick_request_empty": {Kind: KindTrick, Trick: TrickPayload{TrickNumber: 1}},
		"wrong":                {Kind: KindWrong, Wrong: WrongPayload{TrickNumber: 3}},
		"taken": {Kind: KindTaken, Taken: TakenPayload{
			TrickNumber: 1,
			Cards:       [4]deck.Card{card("2C"), card("3C"), card("AC"), card("5C")},
			Winner:      seat.South,
		}},
		"score": {Kind: KindScore, Score: ScorePayload{Scores: [4]SeatScore{
			{Seat: seat.North, Points: 10},
			{Seat: seat.East, Points: 20},
			{Seat: seat.South, Points: 0},
			{Seat: seat.West, Points: 5},
		}}},
		"total": {Kind: KindTotal, Total: ScorePayload{Scores: [4]SeatScore{
			{Seat: seat.North, Points: 100},
			{Seat: seat.East, Points: 200},
			{Seat: seat.South, Points: 0},
			{Seat: seat.West, Points: 50},
		}}},
	}

	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			g := goldie.New(t, goldenOpts())
			g.Assert(t, name, Render(msg))
		})
	}
}
