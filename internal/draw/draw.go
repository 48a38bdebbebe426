// Package draw renders styled text cells to ANSI terminals.
package draw

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Shade characters from lightest to darkest.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	idx := int(intensity * float64(len(Shades)-1))
	return Shades[idx]
}

// Meter returns a bar of width cells filled to fraction, with a shaded
// partial cell at the boundary.
func Meter(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	fraction = max(0, min(1, fraction))
	filled := fraction * float64(width)
	full := int(filled)

	var b strings.Builder
	b.WriteString(strings.Repeat(string(Shades[len(Shades)-1]), full))
	if full < width {
		partial := ShadeLevel(filled - float64(full))
		if partial == Shades[0] {
			partial = Shades[1]
		}
		b.WriteRune(partial)
		b.WriteString(strings.Repeat(string(Shades[1]), width-full-1))
	}
	return b.String()
}

// Width returns the number of terminal cells s occupies.
func Width(s string) int {
	return uniseg.StringWidth(s)
}

// Truncate shortens s to at most w cells, ending it with an ellipsis when
// anything was cut.
func Truncate(s string, w int) string {
	return runewidth.Truncate(s, w, "…")
}
