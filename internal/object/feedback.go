package object

import (
	"fmt"
	"time"

	"github.com/tomz197/assemblyline/internal/draw"
	"github.com/tomz197/assemblyline/internal/game"
)

// FeedbackLifetime is how long a feedback label stays on screen.
const FeedbackLifetime = time.Second

// feedbackRise is how many rows a label floats up over its lifetime.
const feedbackRise = 2

// Palette of the conveyor screen.
const (
	ColorCorrect   = draw.ColorGreen
	ColorIncorrect = draw.ColorRed
	ColorMissed    = draw.ColorYellow
	ColorSelected  = draw.ColorCyan
)

// Feedback is a floating label shown where an item left the conveyor.
type Feedback struct {
	Kind     game.FeedbackKind
	Label    string
	Position game.Position
	Lifetime time.Duration // Remaining
}

// NewFeedback creates a label for a feedback signal.
func NewFeedback(fb game.Feedback) *Feedback {
	return &Feedback{
		Kind:     fb.Kind,
		Label:    FeedbackLabel(fb),
		Position: fb.Position,
		Lifetime: FeedbackLifetime,
	}
}

// FeedbackLabel formats the points of a feedback signal.
func FeedbackLabel(fb game.Feedback) string {
	switch fb.Kind {
	case game.FeedbackMissed:
		return fmt.Sprintf("MISS %d", fb.Points)
	case game.FeedbackCorrect:
		return fmt.Sprintf("%+d", fb.Points)
	default:
		return fmt.Sprintf("✗ %+d", fb.Points)
	}
}

// FeedbackColor returns the label color for a feedback kind.
func FeedbackColor(k game.FeedbackKind) draw.Color {
	switch k {
	case game.FeedbackCorrect:
		return ColorCorrect
	case game.FeedbackIncorrect:
		return ColorIncorrect
	default:
		return ColorMissed
	}
}

// Update ages the label. Returns true once it has expired.
func (f *Feedback) Update(ctx UpdateContext) (bool, error) {
	f.Lifetime -= ctx.Delta
	return f.Lifetime <= 0, nil
}

// Draw writes the label, rising and dimming as it ages.
func (f *Feedback) Draw(ctx DrawContext) error {
	if f.Lifetime <= 0 {
		return nil
	}
	age := 1 - float64(f.Lifetime)/float64(FeedbackLifetime)
	col, row := ctx.Belt.Cell(f.Position, draw.Width(f.Label))
	row -= int(age * feedbackRise)
	if row < ctx.Belt.Row {
		row = ctx.Belt.Row
	}

	style := draw.Foreground(FeedbackColor(f.Kind)).WithBold()
	if age > 0.6 {
		style = draw.Foreground(FeedbackColor(f.Kind))
		style.Dim = true
	}
	ctx.Canvas.Put(col, row, f.Label, style)
	return nil
}

var _ Object = (*Feedback)(nil)
