package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeter(t *testing.T) {
	tests := []struct {
		fraction float64
		want     string
	}{
		{0, "░░░░"},
		{0.5, "██░░"},
		{1, "████"},
		{1.7, "████"},
		{-1, "░░░░"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Meter(tt.fraction, 4), "fraction %v", tt.fraction)
	}
	assert.Empty(t, Meter(0.5, 0))
}

func TestShadeLevel(t *testing.T) {
	assert.Equal(t, ' ', ShadeLevel(0))
	assert.Equal(t, '█', ShadeLevel(1))
	assert.Equal(t, '▒', ShadeLevel(0.5))
}

func TestWidthAndTruncate(t *testing.T) {
	assert.Equal(t, 3, Width("abc"))
	assert.Equal(t, 2, Width("🍌"))
	assert.Equal(t, "abc…", Truncate("abcdefgh", 4))
	assert.Equal(t, "abc", Truncate("abc", 4))
}

func TestStyleSequence(t *testing.T) {
	assert.Equal(t, "\033[0m", StylePlain.Sequence())
	assert.Equal(t, "\033[0;1;31m", Foreground(ColorRed).WithBold().Sequence())
	assert.Equal(t, "\033[0;7m", StyleReverse.Sequence())
	assert.Equal(t, "\033[0;2;90m", Style{Fg: ColorGray, Dim: true}.Sequence())
}

func TestClampSize(t *testing.T) {
	w, h, col, row := ClampSize(200, 50, 100, 30)
	assert.Equal(t, []int{100, 30, 50, 10}, []int{w, h, col, row})

	w, h, col, row = ClampSize(80, 24, 100, 30)
	assert.Equal(t, []int{80, 24, 0, 0}, []int{w, h, col, row})
}

func TestChunkWriterFlushesInChunks(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)

	cw.MoveCursor(1, 1)
	cw.WriteString(strings.Repeat("x", 3*maxChunkSize))
	assert.Positive(t, cw.Len())
	require.NoError(t, cw.Flush())

	assert.Zero(t, cw.Len())
	assert.True(t, strings.HasPrefix(out.String(), "\033[2;3H"))
	assert.Equal(t, 3*maxChunkSize, strings.Count(out.String(), "x"))
}
