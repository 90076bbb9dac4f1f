package walk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadingTurns(t *testing.T) {
	t.Run("Right cycles clockwise", func(t *testing.T) {
		assert.Equal(t, South, East.Right())
		assert.Equal(t, West, South.Right())
		assert.Equal(t, North, West.Right())
		assert.Equal(t, East, North.Right())
	})

	t.Run("Left cycles counter-clockwise", func(t *testing.T) {
		assert.Equal(t, North, East.Left())
		assert.Equal(t, West, North.Left())
		assert.Equal(t, South, West.Left())
		assert.Equal(t, East, South.Left())
	})

	t.Run("Turns are inverse", func(t *testing.T) {
		for _, h := range []Heading{North, East, South, West} {
			assert.Equal(t, h, h.Left().Right())
			assert.Equal(t, h.Opposite(), h.Right().Right())
			assert.Equal(t, h, Straight.Apply(h))
			assert.Equal(t, h.Left(), TurnLeft.Apply(h))
			assert.Equal(t, h.Right(), TurnRight.Apply(h))
		}
	})
}

func TestHeadingOffsetsAndGlyphs(t *testing.T) {
	assert.Equal(t, Position{0, -1}, North.Offset())
	assert.Equal(t, Position{1, 0}, East.Offset())
	assert.Equal(t, Position{0, 1}, South.Offset())
	assert.Equal(t, Position{-1, 0}, West.Offset())
	assert.Equal(t, "↑→↓←", string([]rune{North.Glyph(), East.Glyph(), South.Glyph(), West.Glyph()}))
	assert.Equal(t, "West", West.String())
}

func TestParseHeading(t *testing.T) {
	for in, want := range map[string]Heading{"north": North, "E": East, " South ": South, "w": West} {
		got, err := ParseHeading(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseHeading("up")
	assert.ErrorIs(t, err, ErrUnknownHeading)
}
