// Package object holds the drawable pieces of the conveyor screen.
package object

import (
	"math"
	"time"

	"github.com/tomz197/assemblyline/internal/draw"
	"github.com/tomz197/assemblyline/internal/game"
)

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta time.Duration // Real time since the last frame
	Now   time.Duration // Game time
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas
	Belt   Belt          // Conveyor area on the canvas
	Now    time.Duration // Game time
}

// Belt is the inner area of the conveyor in 0-based canvas cells.
type Belt struct {
	Col    int
	Row    int
	Width  int
	Height int
}

// Cell maps a conveyor position to the canvas cell where a glyph of
// glyphWidth cells starts. Progress runs left to right; the lane offset
// runs top to bottom.
func (b Belt) Cell(pos game.Position, glyphWidth int) (col, row int) {
	span := max(b.Width-glyphWidth, 0)
	col = b.Col + int(math.Round(pos.Progress*float64(span)))
	row = b.Row + int(pos.Lane*float64(b.Height))
	row = min(max(row, b.Row), b.Row+b.Height-1)
	return col, row
}

// Object is a drawable and updatable screen entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object onto ctx.Canvas.
	Draw(ctx DrawContext) error
}

// Destructible is implemented by objects that can be marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// ShouldRenderBlink returns true if an object with remainingTime left on
// its blink window should be drawn this frame.
// Returns true always if remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
