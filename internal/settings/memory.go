package settings

import (
	"context"
	"sync"
)

// Memory keeps settings in process memory. It is used when the SQLite store
// cannot be opened.
type Memory struct {
	mu      sync.Mutex
	players map[string]record
}

type record struct {
	settings Settings
	best     int
}

var _ Repository = (*Memory)(nil)

// NewMemory creates an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{players: make(map[string]record)}
}

// Load returns the player's settings, or Defaults.
func (m *Memory) Load(_ context.Context, player string) (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.players[player]
	if !ok {
		return Defaults(), nil
	}
	return r.settings, nil
}

// Save stores the player's settings.
func (m *Memory) Save(_ context.Context, player string, s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.players[player]
	r.settings = s
	m.players[player] = r
	return nil
}

// RecordScore keeps the best score of the player and returns it.
func (m *Memory) RecordScore(_ context.Context, player string, score int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.players[player]
	if !ok {
		r.settings = Defaults()
	}
	r.best = max(r.best, score)
	m.players[player] = r
	return r.best, nil
}
