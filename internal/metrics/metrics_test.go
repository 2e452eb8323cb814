package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.EventsTotal.WithLabelValues("click").Inc()
	m.LabelPassesTotal.WithLabelValues("published").Inc()
	m.RenderDuration.Observe(1.5)
	m.ViewsActive.Set(2)
	m.ThrottledTotal.Inc()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(w.Body)

	for _, want := range []string{
		`salesmap_events_total{type="click"} 1`,
		`salesmap_label_passes_total{outcome="published"} 1`,
		`salesmap_render_duration_ms_count 1`,
		`salesmap_views_active 2`,
		`salesmap_events_throttled_total 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("expected %q in metrics output", want)
		}
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ThrottledTotal.Inc()

	w := httptest.NewRecorder()
	b.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if strings.Contains(w.Body.String(), "salesmap_events_throttled_total 1") {
		t.Error("expected a fresh registry per New")
	}
}
