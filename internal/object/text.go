package object

import "github.com/tomz197/assemblyline/internal/draw"

// Text is a simple drawable text object.
// Coordinates are 0-based canvas cells.
type Text struct {
	X     int
	Y     int
	Value string
	Style draw.Style
}

// Draw writes the text at its position.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	ctx.Canvas.Put(max(t.X, 0), max(t.Y, 0), t.Value, t.Style)
	return nil
}

// Update is a no-op for static text.
func (t Text) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

var _ Object = Text{}
