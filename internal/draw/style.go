package draw

import (
	"strconv"
	"strings"
)

// Color is an ANSI foreground color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorGray
)

// sgr returns the SGR parameter for the color.
func (c Color) sgr() int {
	switch c {
	case ColorRed:
		return 31
	case ColorGreen:
		return 32
	case ColorYellow:
		return 33
	case ColorBlue:
		return 34
	case ColorMagenta:
		return 35
	case ColorCyan:
		return 36
	case ColorWhite:
		return 37
	case ColorGray:
		return 90
	default:
		return 39
	}
}

// Style is the look of a cell.
type Style struct {
	Fg      Color
	Bold    bool
	Dim     bool
	Reverse bool
}

// Common styles.
var (
	StylePlain   = Style{}
	StyleBold    = Style{Bold: true}
	StyleDim     = Style{Dim: true}
	StyleReverse = Style{Reverse: true}
)

// Foreground returns a plain style in the given color.
func Foreground(c Color) Style {
	return Style{Fg: c}
}

// WithBold returns a copy of s with bold set.
func (s Style) WithBold() Style {
	s.Bold = true
	return s
}

// WithReverse returns a copy of s with reverse video set.
func (s Style) WithReverse() Style {
	s.Reverse = true
	return s
}

// Sequence returns the escape sequence selecting the style. Every sequence
// starts with a reset, so styles never leak into each other.
func (s Style) Sequence() string {
	var b strings.Builder
	b.WriteString("\033[0")
	if s.Bold {
		b.WriteString(";1")
	}
	if s.Dim {
		b.WriteString(";2")
	}
	if s.Reverse {
		b.WriteString(";7")
	}
	if s.Fg != ColorDefault {
		b.WriteByte(';')
		b.WriteString(strconv.Itoa(s.Fg.sgr()))
	}
	b.WriteByte('m')
	return b.String()
}

// ResetStyle restores the terminal's default rendition.
const ResetStyle = "\033[0m"
