// Package metrics exposes Prometheus metrics for hosted game sessions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomz197/assemblyline/internal/game"
)

const namespace = "assemblyline"

// Game results recorded in GamesTotal.
const (
	ResultOver      = "over"
	ResultAbandoned = "abandoned"
)

// Metrics holds the game metrics of one process.
type Metrics struct {
	SortsTotal        *prometheus.CounterVec
	MissedItemsTotal  prometheus.Counter
	GamesTotal        *prometheus.CounterVec
	PowerUpsActivated *prometheus.CounterVec
	ActiveSessions    prometheus.Gauge
	FinalScore        prometheus.Histogram
}

// NewRegistry creates a registry with Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// Handler serves the metrics of reg in the Prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// New creates and registers the game metrics on the given registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SortsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sorts_total",
			Help:      "Total number of sort attempts, by outcome.",
		}, []string{"outcome"}),
		MissedItemsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missed_items_total",
			Help:      "Total number of items that reached the end of the conveyor.",
		}),
		GamesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_total",
			Help:      "Total number of finished games, by result.",
		}, []string{"result"}),
		PowerUpsActivated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "powerups_activated_total",
			Help:      "Total number of power-up activations, by kind.",
		}, []string{"kind"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of connected players.",
		}),
		FinalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "final_score",
			Help:      "Score of games that ended by losing every life.",
			Buckets:   []float64{0, 25, 50, 100, 200, 400, 800, 1600},
		}),
	}

	reg.MustRegister(
		m.SortsTotal,
		m.MissedItemsTotal,
		m.GamesTotal,
		m.PowerUpsActivated,
		m.ActiveSessions,
		m.FinalScore,
	)
	return m
}

// Abandoned records a game left before it was over.
func (m *Metrics) Abandoned() {
	m.GamesTotal.WithLabelValues(ResultAbandoned).Inc()
}

// Renderer counts the signals of one session on their way to the real
// renderer.
type Renderer struct {
	game.Renderer
	m      *Metrics
	active map[game.PowerUpKind]bool
}

// NewRenderer decorates next. A nil Metrics returns next unchanged.
func NewRenderer(next game.Renderer, m *Metrics) game.Renderer {
	if m == nil {
		return next
	}
	return &Renderer{Renderer: next, m: m, active: make(map[game.PowerUpKind]bool)}
}

func (r *Renderer) ShowFeedback(fb game.Feedback) {
	switch fb.Kind {
	case game.FeedbackCorrect, game.FeedbackIncorrect:
		r.m.SortsTotal.WithLabelValues(fb.Kind.String()).Inc()
	case game.FeedbackMissed:
		r.m.MissedItemsTotal.Inc()
	}
	r.Renderer.ShowFeedback(fb)
}

func (r *Renderer) UpdatePowerUps(states []game.PowerUpStatus) {
	for _, st := range states {
		if st.State.Active && !r.active[st.Kind] {
			r.m.PowerUpsActivated.WithLabelValues(st.Kind.String()).Inc()
		}
		r.active[st.Kind] = st.State.Active
	}
	r.Renderer.UpdatePowerUps(states)
}

func (r *Renderer) ShowGameOver(finalScore int) {
	r.m.GamesTotal.WithLabelValues(ResultOver).Inc()
	r.m.FinalScore.Observe(float64(finalScore))
	r.Renderer.ShowGameOver(finalScore)
}
