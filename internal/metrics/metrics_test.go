package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/assemblyline/internal/game"
)

type countingRenderer struct {
	game.NopRenderer
	feedback  int
	powerUps  int
	gameOvers int
}

func (c *countingRenderer) ShowFeedback(game.Feedback)          { c.feedback++ }
func (c *countingRenderer) UpdatePowerUps([]game.PowerUpStatus) { c.powerUps++ }
func (c *countingRenderer) ShowGameOver(int)                    { c.gameOvers++ }

func TestNewRegistersEveryMetric(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.SortsTotal.WithLabelValues("correct")
	m.GamesTotal.WithLabelValues(ResultOver)
	m.PowerUpsActivated.WithLabelValues("bonus")

	families, err := reg.Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"assemblyline_sorts_total",
		"assemblyline_missed_items_total",
		"assemblyline_games_total",
		"assemblyline_powerups_activated_total",
		"assemblyline_active_sessions",
		"assemblyline_final_score",
	}, names)
}

func TestRendererCountsFeedback(t *testing.T) {
	m := New(prometheus.NewRegistry())
	next := &countingRenderer{}
	r := NewRenderer(next, m)

	r.ShowFeedback(game.Feedback{Kind: game.FeedbackCorrect, Points: 10})
	r.ShowFeedback(game.Feedback{Kind: game.FeedbackCorrect, Points: 15})
	r.ShowFeedback(game.Feedback{Kind: game.FeedbackIncorrect, Points: -10})
	r.ShowFeedback(game.Feedback{Kind: game.FeedbackMissed, Points: -5})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SortsTotal.WithLabelValues("correct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SortsTotal.WithLabelValues("incorrect")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MissedItemsTotal))
	assert.Equal(t, 4, next.feedback)
}

func TestRendererCountsActivationsOnce(t *testing.T) {
	m := New(prometheus.NewRegistry())
	next := &countingRenderer{}
	r := NewRenderer(next, m)

	idle := game.PowerUpStatus{Kind: game.PowerUpBonus}
	active := game.PowerUpStatus{Kind: game.PowerUpBonus, State: game.PowerUpState{Active: true, OnCooldown: true}}
	cooling := game.PowerUpStatus{Kind: game.PowerUpBonus, State: game.PowerUpState{OnCooldown: true}}

	r.UpdatePowerUps([]game.PowerUpStatus{idle})
	r.UpdatePowerUps([]game.PowerUpStatus{active})
	r.UpdatePowerUps([]game.PowerUpStatus{active})
	r.UpdatePowerUps([]game.PowerUpStatus{cooling})
	r.UpdatePowerUps([]game.PowerUpStatus{active})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PowerUpsActivated.WithLabelValues("bonus")))
	assert.Equal(t, 5, next.powerUps)
}

func TestRendererRecordsGameOver(t *testing.T) {
	m := New(prometheus.NewRegistry())
	next := &countingRenderer{}
	r := NewRenderer(next, m)

	r.ShowGameOver(120)
	m.Abandoned()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesTotal.WithLabelValues(ResultOver)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GamesTotal.WithLabelValues(ResultAbandoned)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.FinalScore))
	assert.Equal(t, 1, next.gameOvers)
}

func TestNewRendererWithoutMetrics(t *testing.T) {
	next := &countingRenderer{}
	assert.Same(t, next, NewRenderer(next, nil))
}

func TestHandlerServesGameMetrics(t *testing.T) {
	reg := NewRegistry()
	m := New(reg)
	m.MissedItemsTotal.Inc()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "assemblyline_missed_items_total 1")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
