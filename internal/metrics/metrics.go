package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of the catalogue.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	OutfitsActive   prometheus.Gauge
	Transitions     *prometheus.CounterVec
	Saves           prometheus.Counter
	PersistFailures *prometheus.CounterVec
	RestoreDropped  prometheus.Counter
	Rejected        *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		OutfitsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "omara_outfits_active",
			Help: "Number of occupied outfit slots",
		}),
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "omara_transitions_total",
			Help: "Screen transitions, by target screen",
		}, []string{"screen"}),
		Saves: f.NewCounter(prometheus.CounterOpts{
			Name: "omara_saves_total",
			Help: "Successful saves of the outfit list",
		}),
		PersistFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "omara_persist_failures_total",
			Help: "Failed saves and loads of the outfit list",
		}, []string{"op"}),
		RestoreDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "omara_restore_dropped_total",
			Help: "Stored outfits dropped on startup because the pool was full",
		}),
		Rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "omara_rejected_events_total",
			Help: "Events rejected by the coordinator, by reason",
		}, []string{"reason"}),
	}
}

// SetOutfitsActive records the number of occupied slots.
func (m *Metrics) SetOutfitsActive(n int) {
	if m == nil {
		return
	}
	m.OutfitsActive.Set(float64(n))
}

// Transition counts a move to screen.
func (m *Metrics) Transition(screen string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(screen).Inc()
}

// Saved counts a successful save.
func (m *Metrics) Saved() {
	if m == nil {
		return
	}
	m.Saves.Inc()
}

// PersistFailed counts a failed save or load.
func (m *Metrics) PersistFailed(op string) {
	if m == nil {
		return
	}
	m.PersistFailures.WithLabelValues(op).Inc()
}

// Dropped counts outfits dropped on restore.
func (m *Metrics) Dropped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RestoreDropped.Add(float64(n))
}

// Reject counts an event the coordinator refused.
func (m *Metrics) Reject(reason string) {
	if m == nil {
		return
	}
	m.Rejected.WithLabelValues(reason).Inc()
}
