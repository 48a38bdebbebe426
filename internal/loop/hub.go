package loop

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"

	"github.com/tomz197/assemblyline/internal/metrics"
)

// EventType identifies a hub event.
type EventType int

const (
	EventServerShutdown EventType = iota
)

// Event is sent from the hub to a client.
type Event struct {
	Type EventType
}

// Handle is a client's registration with the hub.
type Handle struct {
	ID     int
	Player string
	Events chan Event
}

// Hub tracks the connected clients of a server so it can announce a
// shutdown and wait for them to leave. Every client owns its own game
// session; the hub shares nothing else.
type Hub struct {
	mu      sync.RWMutex
	clients map[int]*Handle
	nextID  int
	closing bool
	clock   clockwork.Clock
	metrics *metrics.Metrics
	logger  *log.Logger
}

// NewHub creates an empty hub. A nil metrics disables the live-session gauge.
func NewHub(clock clockwork.Clock, m *metrics.Metrics, logger *log.Logger) *Hub {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients: make(map[int]*Handle),
		nextID:  1,
		clock:   clock,
		metrics: m,
		logger:  logger,
	}
}

// Register adds a client. A client joining during shutdown is told right away.
func (h *Hub) Register(player string) *Handle {
	h.mu.Lock()
	handle := &Handle{
		ID:     h.nextID,
		Player: player,
		Events: make(chan Event, 16),
	}
	h.nextID++
	h.clients[handle.ID] = handle
	if h.closing {
		handle.Events <- Event{Type: EventServerShutdown}
	}
	count := len(h.clients)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.ActiveSessions.Inc()
	}
	h.logger.Debug("client registered", "id", handle.ID, "player", player, "clients", count)
	return handle
}

// Unregister removes a client. Unknown IDs are ignored.
func (h *Hub) Unregister(id int) {
	h.mu.Lock()
	_, ok := h.clients[id]
	delete(h.clients, id)
	count := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}
	if h.metrics != nil {
		h.metrics.ActiveSessions.Dec()
	}
	h.logger.Debug("client unregistered", "id", id, "clients", count)
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Shutdown notifies all connected clients and waits for them to disconnect,
// up to timeout. Reports whether every client left in time.
func (h *Hub) Shutdown(timeout time.Duration) bool {
	h.mu.Lock()
	h.closing = true
	for _, handle := range h.clients {
		select {
		case handle.Events <- Event{Type: EventServerShutdown}:
		default:
		}
	}
	notified := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("notified clients of shutdown", "clients", notified)

	deadline := h.clock.After(timeout)
	ticker := h.clock.NewTicker(shutdownPollPeriod)
	defer ticker.Stop()

	for {
		if h.Count() == 0 {
			return true
		}
		select {
		case <-deadline:
			h.logger.Warn("shutdown timeout with clients still connected", "clients", h.Count())
			return false
		case <-ticker.Chan():
		}
	}
}
