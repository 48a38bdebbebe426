package loop

import (
	"github.com/tomz197/assemblyline/internal/game"
	"github.com/tomz197/assemblyline/internal/object"
)

// Renderer keeps the terminal view of one session: item sprites, floating
// feedback, bins and the HUD counters. The session calls it synchronously
// from the frame loop; the frame loop draws it.
type Renderer struct {
	items   map[string]*object.Item
	objects []object.Object // Items and feedback in insertion order
	bins    []*object.Bin

	score      int
	lives      int
	powerUps   []game.PowerUpStatus
	gameOver   bool
	finalScore int
}

var _ game.Renderer = (*Renderer)(nil)

// NewRenderer creates an empty view.
func NewRenderer() *Renderer {
	return &Renderer{
		items: make(map[string]*object.Item),
		bins:  object.NewBins(),
	}
}

// ShowItem adds a sprite for a spawned item.
func (r *Renderer) ShowItem(item game.ConveyorItem) {
	sprite := object.NewItem(item)
	r.items[item.ID] = sprite
	r.objects = append(r.objects, sprite)
}

// RemoveItem marks the item's sprite for removal on the next update.
func (r *Renderer) RemoveItem(id string) {
	sprite, ok := r.items[id]
	if !ok {
		return
	}
	sprite.MarkDestroyed()
	delete(r.items, id)
}

// ShowFeedback adds a floating label.
func (r *Renderer) ShowFeedback(fb game.Feedback) {
	r.objects = append(r.objects, object.NewFeedback(fb))
}

func (r *Renderer) UpdateScore(score int) { r.score = score }
func (r *Renderer) UpdateLives(lives int) { r.lives = lives }

func (r *Renderer) UpdatePowerUps(states []game.PowerUpStatus) {
	r.powerUps = states
}

// ShowGameOver records the final score for the game over screen.
func (r *Renderer) ShowGameOver(finalScore int) {
	r.gameOver = true
	r.finalScore = finalScore
}

// Reset forgets the previous game's feedback and result.
func (r *Renderer) Reset() {
	for _, obj := range r.objects {
		if d, ok := obj.(object.Destructible); ok {
			d.MarkDestroyed()
		}
	}
	clear(r.items)
	r.objects = r.objects[:0]
	r.gameOver = false
	r.finalScore = 0
}

// Select highlights the sprite of id and clears every other highlight.
func (r *Renderer) Select(id string) {
	for itemID, sprite := range r.items {
		sprite.Selected = itemID == id
	}
}

// Bin returns the bin of a category.
func (r *Renderer) Bin(c game.Category) *object.Bin {
	for _, b := range r.bins {
		if b.Category == c {
			return b
		}
	}
	return nil
}

// Update ages every object and drops the ones that are done.
func (r *Renderer) Update(ctx object.UpdateContext) error {
	kept := r.objects[:0]
	for _, obj := range r.objects {
		remove, err := obj.Update(ctx)
		if err != nil {
			return err
		}
		if !remove {
			kept = append(kept, obj)
		}
	}
	clear(r.objects[len(kept):])
	r.objects = kept

	for _, b := range r.bins {
		if _, err := b.Update(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Draw draws items, then feedback on top of them, then the bins.
func (r *Renderer) Draw(ctx object.DrawContext) error {
	for _, obj := range r.objects {
		if _, ok := obj.(*object.Item); !ok {
			continue
		}
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	for _, obj := range r.objects {
		if _, ok := obj.(*object.Item); ok {
			continue
		}
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	for _, b := range r.bins {
		if err := b.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Objects returns the number of live sprites and labels.
func (r *Renderer) Objects() int {
	return len(r.objects)
}

// Score returns the last score shown.
func (r *Renderer) Score() int { return r.score }

// Lives returns the last lives count shown.
func (r *Renderer) Lives() int { return r.lives }

// PowerUps returns the last power-up states shown.
func (r *Renderer) PowerUps() []game.PowerUpStatus { return r.powerUps }

// GameOver reports whether the game over signal arrived, and the final score.
func (r *Renderer) GameOver() (bool, int) { return r.gameOver, r.finalScore }
