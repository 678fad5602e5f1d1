package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecord(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SetOutfitsActive(3)
	m.Transition("browse")
	m.Transition("browse")
	m.Saved()
	m.PersistFailed("save")
	m.Dropped(2)
	m.Dropped(0)
	m.Reject("pool_exhausted")

	if got := testutil.ToFloat64(m.OutfitsActive); got != 3 {
		t.Errorf("outfits active = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.Transitions.WithLabelValues("browse")); got != 2 {
		t.Errorf("browse transitions = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Saves); got != 1 {
		t.Errorf("saves = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.PersistFailures.WithLabelValues("save")); got != 1 {
		t.Errorf("save failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RestoreDropped); got != 2 {
		t.Errorf("dropped = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Rejected.WithLabelValues("pool_exhausted")); got != 1 {
		t.Errorf("rejected = %v, want 1", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.SetOutfitsActive(1)
	m.Transition("form")
	m.Saved()
	m.PersistFailed("load")
	m.Dropped(1)
	m.Reject("validation")
}
