package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand_Has(t *testing.T) {
	hand := Hand{mustCard("2C"), mustCard("3C"), mustCard("4D")}
	assert.True(t, hand.Has(mustCard("3C")))
	assert.False(t, hand.Has(mustCard("3S")))
}

func TestHand_HasSuit(t *testing.T) {
	hand := Hand{mustCard("2C"), mustCard("4D")}
	assert.True(t, hand.HasSuit(Clubs))
	assert.False(t, hand.HasSuit(Hearts))
}

func TestHand_Remove(t *testing.T) {
	hand := Hand{mustCard("2C"), mustCard("3C"), mustCard("4D")}
	assert.True(t, hand.Remove(mustCard("3C")))
	assert.Equal(t, Hand{mustCard("2C"), mustCard("4D")}, hand)
	assert.False(t, hand.Remove(mustCard("3C")))
}

func TestHand_Add(t *testing.T) {
	h := make(Hand, 0)
	h.Add(mustCard("AS"))
	h.Add(mustCard("3C"))
	assert.Equal(t, Hand{mustCard("AS"), mustCard("3C")}, h)
}

func TestHand_Sorted(t *testing.T) {
	h := Hand{mustCard("AS"), mustCard("2C"), mustCard("KC")}
	sorted := h.Sorted()
	assert.Equal(t, Hand{mustCard("2C"), mustCard("KC"), mustCard("AS")}, sorted)
	// original is untouched
	assert.Equal(t, Hand{mustCard("AS"), mustCard("2C"), mustCard("KC")}, h)
}

func TestHand_String(t *testing.T) {
	h := Hand{mustCard("AS"), mustCard("2C")}
	assert.Equal(t, "2CAS", h.String())
}

func TestHand_Clone(t *testing.T) {
	h := Hand{mustCard("2C")}
	clone := h.Clone()
	clone.Add(mustCard("3C"))
	assert.Equal(t, 1, len(h))
	assert.Equal(t, 2, len(clone))
}
