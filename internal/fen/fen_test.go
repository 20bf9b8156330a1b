package fen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStartPosition(t *testing.T) {
	t.Parallel()

	b, ok := Parse([]byte("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"))
	require.True(t, ok)

	assert.Equal(t, "rnbqkbnr", string(b[0:8]))
	assert.Equal(t, "pppppppp", string(b[8:16]))
	for i := 16; i < 48; i++ {
		assert.EqualValues(t, ' ', b[i], "square %d should be empty", i)
	}
	assert.Equal(t, "PPPPPPPP", string(b[48:56]))
	assert.Equal(t, "RNBQKBNR", string(b[56:64]))
}

func TestParseEmptyBoard(t *testing.T) {
	t.Parallel()

	b, ok := Parse([]byte("8/8/8/8/8/8/8/8 w - - 0 1"))
	require.True(t, ok)
	for i, c := range b {
		assert.EqualValues(t, ' ', c, "square %d", i)
	}
}

func TestParseMidgamePosition(t *testing.T) {
	t.Parallel()

	// After 1. e4 c5: mixed digits and pieces inside a rank.
	b, ok := Parse([]byte("rnbqkbnr/pp1ppppp/8/2p5/4P4/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2"))
	assert.False(t, ok, "rank with nine squares must be rejected")

	b, ok = Parse([]byte("rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2"))
	require.True(t, ok)
	assert.EqualValues(t, 'p', b[3*8+2], "black pawn on c5")
	assert.EqualValues(t, 'P', b[4*8+4], "white pawn on e4")
	assert.EqualValues(t, ' ', b[6*8+4], "e2 vacated")
}

func TestParsePlacementOnlyInput(t *testing.T) {
	t.Parallel()

	// No trailing fields at all is still a complete placement.
	_, ok := Parse([]byte("8/8/8/8/8/8/8/8"))
	assert.True(t, ok)
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		label string
		input string
	}{
		{"empty", ""},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1"},
		{"nine ranks", "8/8/8/8/8/8/8/8/8 w - - 0 1"},
		{"short rank", "7/8/8/8/8/8/8/8 w - - 0 1"},
		{"overfull rank", "p8/8/8/8/8/8/8/8 w - - 0 1"},
		{"zero digit", "0/8/8/8/8/8/8/8 w - - 0 1"},
		{"nine digit", "9/8/8/8/8/8/8/8 w - - 0 1"},
		{"bad piece letter", "x7/8/8/8/8/8/8/8 w - - 0 1"},
		{"truncated placement", "rnbqkbnr/pppppppp"},
		{"double slash", "8//8/8/8/8/8/8/8 w - - 0 1"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.label, func(t *testing.T) {
			t.Parallel()
			_, ok := Parse([]byte(c.input))
			assert.False(t, ok)
		})
	}
}
