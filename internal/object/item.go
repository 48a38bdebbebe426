package object

import (
	"github.com/tomz197/assemblyline/internal/draw"
	"github.com/tomz197/assemblyline/internal/game"
)

// warnProgress is the travelled fraction after which an item blinks.
const warnProgress = 0.8

// Item is the sprite of an item on the conveyor.
type Item struct {
	game.ConveyorItem
	Selected  bool
	destroyed bool
}

// NewItem creates the sprite for a spawned item.
func NewItem(it game.ConveyorItem) *Item {
	return &Item{ConveyorItem: it}
}

// Update removes the sprite once it was marked destroyed.
func (i *Item) Update(ctx UpdateContext) (bool, error) {
	return i.destroyed, nil
}

// Draw places the glyph along the belt. Items close to the end blink, and
// the selected item is drawn in reverse video with a marker below it.
func (i *Item) Draw(ctx DrawContext) error {
	if i.destroyed {
		return nil
	}
	progress := i.Progress(ctx.Now)
	glyphWidth := draw.Width(i.Glyph)
	col, row := ctx.Belt.Cell(game.Position{Lane: i.LaneOffset, Progress: progress}, glyphWidth)

	left := (1 - progress) * i.TravelSeconds()
	if progress >= warnProgress && !i.Selected && !ShouldRenderBlink(left, 4) {
		return nil
	}

	style := draw.StylePlain
	if i.Selected {
		style = draw.StyleReverse
	}
	ctx.Canvas.Put(col, row, i.Glyph, style)
	if i.Selected && row+1 < ctx.Belt.Row+ctx.Belt.Height {
		ctx.Canvas.Put(col, row+1, "^", draw.Foreground(ColorSelected))
	}
	return nil
}

// MarkDestroyed marks the sprite for removal.
func (i *Item) MarkDestroyed() {
	i.destroyed = true
}

// IsDestroyed reports whether the sprite was marked for removal.
func (i *Item) IsDestroyed() bool {
	return i.destroyed
}

var (
	_ Object       = (*Item)(nil)
	_ Destructible = (*Item)(nil)
)
