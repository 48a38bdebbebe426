package game

import (
	"fmt"
	"time"
)

// ConveyorItem is an item travelling along the conveyor.
type ConveyorItem struct {
	ID             string
	Category       Category
	Name           string
	Glyph          string
	LaneOffset     float64       // Position across the lane, in [0,1)
	TravelDuration time.Duration // Time from spawn to the miss boundary
	SpawnedAt      time.Duration // Game time of the spawn
	Seq            uint64        // Spawn order
}

// TravelSeconds returns the travel duration in seconds.
func (it ConveyorItem) TravelSeconds() float64 {
	return it.TravelDuration.Seconds()
}

// Progress returns the travelled fraction of the conveyor at game time now,
// clamped to [0,1].
func (it ConveyorItem) Progress(now time.Duration) float64 {
	if it.TravelDuration <= 0 {
		return 1
	}
	p := float64(now-it.SpawnedAt) / float64(it.TravelDuration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Position locates an item on the conveyor for feedback rendering.
type Position struct {
	Lane     float64 // Lane offset in [0,1)
	Progress float64 // Travelled fraction in [0,1]
}

// PositionAt returns the item's position at game time now.
func (it ConveyorItem) PositionAt(now time.Duration) Position {
	return Position{Lane: it.LaneOffset, Progress: it.Progress(now)}
}

// Registry is the authoritative list of in-flight items, kept in spawn order.
type Registry struct {
	items []ConveyorItem
	index map[string]int // id -> position in items
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Add registers a new item. IDs must be unique.
func (r *Registry) Add(it ConveyorItem) error {
	if _, ok := r.index[it.ID]; ok {
		return fmt.Errorf("duplicate item id %q", it.ID)
	}
	r.index[it.ID] = len(r.items)
	r.items = append(r.items, it)
	return nil
}

// Get looks up an item by id.
func (r *Registry) Get(id string) (ConveyorItem, bool) {
	i, ok := r.index[id]
	if !ok {
		return ConveyorItem{}, false
	}
	return r.items[i], true
}

// Contains reports whether id is still in flight.
func (r *Registry) Contains(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Remove takes an item out of the registry. Removal happens at most once:
// a second call for the same id returns ErrUnknownItem.
func (r *Registry) Remove(id string) (ConveyorItem, error) {
	i, ok := r.index[id]
	if !ok {
		return ConveyorItem{}, fmt.Errorf("remove %q: %w", id, ErrUnknownItem)
	}
	it := r.items[i]
	copy(r.items[i:], r.items[i+1:])
	r.items[len(r.items)-1] = ConveyorItem{}
	r.items = r.items[:len(r.items)-1]
	delete(r.index, id)
	for j := i; j < len(r.items); j++ {
		r.index[r.items[j].ID] = j
	}
	return it, nil
}

// Oldest returns the earliest spawned item still in flight.
func (r *Registry) Oldest() (ConveyorItem, bool) {
	if len(r.items) == 0 {
		return ConveyorItem{}, false
	}
	return r.items[0], true
}

// Items returns a copy of the in-flight items in spawn order.
func (r *Registry) Items() []ConveyorItem {
	out := make([]ConveyorItem, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of in-flight items.
func (r *Registry) Len() int {
	return len(r.items)
}

// Clear drops every item.
func (r *Registry) Clear() {
	clear(r.items)
	r.items = r.items[:0]
	clear(r.index)
}
