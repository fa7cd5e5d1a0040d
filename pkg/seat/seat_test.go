package seat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for _, s := range All {
		got, ok := Parse(byte(s))
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}

	_, ok := Parse('X')
	assert.False(t, ok)
}

func TestSeat_Next(t *testing.T) {
	assert.Equal(t, East, North.Next())
	assert.Equal(t, South, East.Next())
	assert.Equal(t, West, South.Next())
	assert.Equal(t, North, West.Next())
}

func TestSeat_Index(t *testing.T) {
	assert.Equal(t, 0, North.Index())
	assert.Equal(t, 1, East.Index())
	assert.Equal(t, 2, South.Index())
	assert.Equal(t, 3, West.Index())
}

func TestSeat_String(t *testing.T) {
	assert.Equal(t, "N", North.String())
	assert.Equal(t, "Seat(88)", Seat('X').String())
}
