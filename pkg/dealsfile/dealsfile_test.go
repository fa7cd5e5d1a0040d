package dealsfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kierki-server/pkg/deck"
	"kierki-server/pkg/seat"
)

const oneClubRecord = "2C3C4C5C6C7C8C9C10CJCQCKCAC"

func record(dealType byte, firstSeat byte) string {
	return string(rune(dealType)) + string(rune(firstSeat)) + "\n" +
		oneClubRecord + "\n" +
		oneClubRecord + "\n" +
		oneClubRecord + "\n" +
		oneClubRecord + "\n"
}

func TestParse_singleRecord(t *testing.T) {
	deals, err := parse(strings.NewReader(record('1', 'N')))
	require.NoError(t, err)
	require.Len(t, deals, 1)

	d := deals[0]
	assert.Equal(t, deck.NoTricks, d.Type)
	assert.Equal(t, seat.North, d.FirstSeat)
	assert.Len(t, d.Hands[seat.North], 13)
	assert.Len(t, d.Hands[seat.West], 13)
}

func TestParse_multipleRecords(t *testing.T) {
	input := record('1', 'N') + record('2', 'E')
	deals, err := parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, deals, 2)
	assert.Equal(t, deck.NoHearts, deals[1].Type)
	assert.Equal(t, seat.East, deals[1].FirstSeat)
}

func TestParse_trailingBlankLineEndsList(t *testing.T) {
	input := record('1', 'N') + "\n"
	deals, err := parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, deals, 1)
}

func TestParse_shortFinalRecordIsNotAnError(t *testing.T) {
	input := record('1', 'N') + "3S\n" + oneClubRecord + "\n"
	deals, err := parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, deals, 1)
}

func TestParse_emptyFileYieldsNoDeals(t *testing.T) {
	deals, err := parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, deals)
}

func TestParse_invalidDealTypeIsAnError(t *testing.T) {
	_, err := parse(strings.NewReader("8N\n" + oneClubRecord + "\n" + oneClubRecord + "\n" + oneClubRecord + "\n" + oneClubRecord + "\n"))
	assert.Error(t, err)
}

func TestMeta_missingSidecarIsNotAnError(t *testing.T) {
	m, err := LoadMeta("/nonexistent/path/does-not-exist.deals")
	require.NoError(t, err)
	assert.Equal(t, "", m.Label(0))
}
