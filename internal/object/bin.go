package object

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/assemblyline/internal/draw"
	"github.com/tomz197/assemblyline/internal/game"
)

// binFlash is how long a bin lights up after receiving an item.
const binFlash = 300 * time.Millisecond

// BinWidth is the width of a bin box in cells.
const BinWidth = 16

// Bin is one of the three sorting bins below the conveyor.
type Bin struct {
	Category game.Category
	Key      rune
	Col      int // 0-based canvas position of the box
	Row      int

	flash   time.Duration // Remaining
	correct bool
}

// NewBins creates the bins in bin order with their sort keys.
func NewBins() []*Bin {
	keys := map[game.Category]rune{
		game.CategoryFruit:     'F',
		game.CategoryTech:      'T',
		game.CategoryDefective: 'X',
	}
	bins := make([]*Bin, 0, len(game.Categories))
	for _, c := range game.Categories {
		bins = append(bins, &Bin{Category: c, Key: keys[c]})
	}
	return bins
}

// Flash lights the bin up in the color of the sort result.
func (b *Bin) Flash(correct bool) {
	b.flash = binFlash
	b.correct = correct
}

// Flashing reports whether the bin is lit.
func (b *Bin) Flashing() bool {
	return b.flash > 0
}

// Label is the caption inside the bin box.
func (b *Bin) Label() string {
	return fmt.Sprintf("[%c] %s", b.Key, strings.ToUpper(b.Category.String()[:1])+b.Category.String()[1:])
}

// Update fades the flash. Bins are never removed.
func (b *Bin) Update(ctx UpdateContext) (bool, error) {
	if b.flash > 0 {
		b.flash -= ctx.Delta
	}
	return false, nil
}

// Draw draws the bin box with its caption.
func (b *Bin) Draw(ctx DrawContext) error {
	style := draw.StyleDim
	if b.flash > 0 {
		if b.correct {
			style = draw.Foreground(ColorCorrect).WithBold()
		} else {
			style = draw.Foreground(ColorIncorrect).WithBold()
		}
	}
	ctx.Canvas.Box(b.Col, b.Row, BinWidth, 3, style)
	label := b.Label()
	ctx.Canvas.Put(b.Col+(BinWidth-draw.Width(label))/2, b.Row+1, label, style.WithBold())
	return nil
}

var _ Object = (*Bin)(nil)
