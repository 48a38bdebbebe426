package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/tomz197/assemblyline/internal/schedule"
)

// Outcome describes a resolved sort attempt.
type Outcome struct {
	Item    ConveyorItem
	Bin     Category
	Correct bool
	Points  int // Configured delta, before clamping
	Score   int // Score after the delta
}

// Resolver decides sort attempts and applies their score.
// It never touches lives: only the miss path does.
type Resolver struct {
	registry *Registry
	sched    *schedule.Scheduler
	powerUps *PowerUpController
	scoring  Scoring
	renderer Renderer
	audio    AudioPlayer
	logger   *log.Logger

	addScore func(delta int) int
}

// Resolve sorts the item into bin. The item is removed before anything else,
// so an item resolves at most once; a second attempt returns ErrUnknownItem.
func (r *Resolver) Resolve(id string, bin Category) (Outcome, error) {
	item, err := r.registry.Remove(id)
	if err != nil {
		return Outcome{}, fmt.Errorf("resolve: %w", err)
	}
	r.sched.Cancel(missKey(id))
	r.renderer.RemoveItem(id)

	out := Outcome{
		Item:    item,
		Bin:     bin,
		Correct: item.Category == bin,
	}
	pos := item.PositionAt(r.sched.Now())

	if out.Correct {
		points := r.scoring.CorrectSort
		if item.Category == CategoryDefective {
			points = r.scoring.DefectiveSort
		}
		if r.powerUps.IsActive(PowerUpBonus) {
			points *= r.scoring.BonusMultiplier
		}
		out.Points = points
		out.Score = r.addScore(points)
		r.renderer.ShowFeedback(Feedback{Kind: FeedbackCorrect, Points: points, Position: pos})
		r.audio.Play(SoundCorrectSort)
	} else {
		out.Points = r.scoring.IncorrectSort
		out.Score = r.addScore(out.Points)
		r.renderer.ShowFeedback(Feedback{Kind: FeedbackIncorrect, Points: out.Points, Position: pos})
		r.audio.Play(SoundIncorrectSort)
	}

	r.logger.Debug("item sorted", "id", id, "category", item.Category, "bin", bin, "correct", out.Correct, "points", out.Points)
	return out, nil
}
