package game

import (
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/assemblyline/internal/schedule"
)

const spawnKey schedule.Key = "spawn"

func missKey(id string) schedule.Key {
	return schedule.Key("miss:" + id)
}

// NewItemID returns a collision-resistant identifier: a UUIDv7 carries a
// millisecond timestamp followed by random bits.
func NewItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Spawner places new items on the conveyor once per spawn interval.
type Spawner struct {
	rng      *rand.Rand
	newID    func() string
	sched    *schedule.Scheduler
	registry *Registry
	powerUps *PowerUpController
	renderer Renderer
	logger   *log.Logger

	profile    Profile
	slowFactor float64
	laneMargin float64
	seq        uint64

	live   func() bool     // Session running and unpaused
	onMiss func(id string) // Miss path, armed per item
}

// Start arms the repeating spawn tick for the given profile.
func (s *Spawner) Start(p Profile) {
	s.profile = p
	// SpawnInterval is validated with the config
	_ = s.sched.Every(spawnKey, p.SpawnInterval, func() {
		if s.live() {
			s.Tick()
		}
	})
}

// Stop cancels the spawn tick.
func (s *Spawner) Stop() {
	s.sched.Cancel(spawnKey)
}

// Running reports whether the spawn tick is armed.
func (s *Spawner) Running() bool {
	return s.sched.Pending(spawnKey)
}

// DrawCategory picks a category with the fixed 10/45/45 split.
func (s *Spawner) DrawCategory() Category {
	return categoryFor(s.rng.Float64())
}

// Tick spawns one item, arms its miss timeout and possibly offers a power-up.
func (s *Spawner) Tick() ConveyorItem {
	category := s.DrawCategory()
	variants := Variants(category)
	v := variants[s.rng.IntN(len(variants))]

	travel := s.profile.ItemSpeed
	if s.powerUps.IsActive(PowerUpSlow) {
		travel = time.Duration(float64(travel) * s.slowFactor)
	}

	s.seq++
	item := ConveyorItem{
		ID:             s.newID(),
		Category:       category,
		Name:           v.Name,
		Glyph:          v.Glyph,
		LaneOffset:     s.laneMargin + s.rng.Float64()*(1-2*s.laneMargin),
		TravelDuration: travel,
		SpawnedAt:      s.sched.Now(),
		Seq:            s.seq,
	}
	if err := s.place(item); err != nil {
		s.logger.Warn("dropping spawned item", "id", item.ID, "err", err)
		return ConveyorItem{}
	}
	s.logger.Debug("spawned item", "id", item.ID, "category", category, "name", v.Name, "travel", travel)

	if s.rng.Float64() < s.profile.PowerUpChance {
		if k, ok := s.powerUps.Offer(); ok {
			s.logger.Debug("power-up offered", "kind", k)
		}
	}
	return item
}

// place registers an item and arms its miss timeout.
func (s *Spawner) place(item ConveyorItem) error {
	if err := s.registry.Add(item); err != nil {
		return err
	}
	id := item.ID
	s.sched.After(missKey(id), item.TravelDuration, func() { s.onMiss(id) })
	s.renderer.ShowItem(item)
	return nil
}
