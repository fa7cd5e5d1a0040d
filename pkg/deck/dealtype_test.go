package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDealType(t *testing.T) {
	for b := byte('1'); b <= '7'; b++ {
		dt, ok := ParseDealType(b)
		assert.True(t, ok)
		assert.Equal(t, DealType(b-'0'), dt)
	}

	_, ok := ParseDealType('0')
	assert.False(t, ok)

	_, ok = ParseDealType('8')
	assert.False(t, ok)
}

func TestDealType_Byte(t *testing.T) {
	assert.Equal(t, byte('1'), NoTricks.Byte())
	assert.Equal(t, byte('7'), Robber.Byte())
}

func cardsOf(tokens ...string) [4]Card {
	var out [4]Card
	for i, tok := range tokens {
		out[i] = mustCard(tok)
	}

	return out
}

func TestDealType_TrickPoints(t *testing.T) {
	trick := cardsOf("2C", "3C", "AC", "5C")

	assert.Equal(t, 1, NoTricks.TrickPoints(trick, 1))

	heartsTrick := cardsOf("2H", "3C", "AH", "5C")
	assert.Equal(t, 2, NoHearts.TrickPoints(heartsTrick, 1))

	queensTrick := cardsOf("QC", "QD", "2C", "5C")
	assert.Equal(t, 10, NoQueens.TrickPoints(queensTrick, 1))

	facesTrick := cardsOf("KC", "JD", "QC", "5C")
	assert.Equal(t, 4, NoKingsJacks.TrickPoints(facesTrick, 1))

	kohTrick := cardsOf("KH", "2C", "3C", "5C")
	assert.Equal(t, 18, NoKingOfHearts.TrickPoints(kohTrick, 1))
	assert.Equal(t, 0, NoKingOfHearts.TrickPoints(trick, 1))

	assert.Equal(t, 10, No7AndLastTrick.TrickPoints(trick, 7))
	assert.Equal(t, 10, No7AndLastTrick.TrickPoints(trick, 13))
	assert.Equal(t, 0, No7AndLastTrick.TrickPoints(trick, 6))
}

func TestDealType_TrickPoints_Robber(t *testing.T) {
	// king of hearts + a queen + a jack, on trick 13: every rule fires
	trick := cardsOf("KH", "QC", "JD", "2C")

	want := NoTricks.TrickPoints(trick, 13) +
		NoHearts.TrickPoints(trick, 13) +
		NoQueens.TrickPoints(trick, 13) +
		NoKingsJacks.TrickPoints(trick, 13) +
		NoKingOfHearts.TrickPoints(trick, 13) +
		No7AndLastTrick.TrickPoints(trick, 13)

	assert.Equal(t, want, Robber.TrickPoints(trick, 13))
	assert.Equal(t, 1+1+5+4+18+10, Robber.TrickPoints(trick, 13))
}

func TestDealType_Valid(t *testing.T) {
	assert.True(t, Robber.Valid())
	assert.False(t, DealType(0).Valid())
	assert.False(t, DealType(8).Valid())
}
