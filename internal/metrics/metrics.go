// Package metrics exposes prometheus instruments for the map server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the collectors registered on one registry.
type Metrics struct {
	Registry         *prometheus.Registry
	EventsTotal      *prometheus.CounterVec
	LabelPassesTotal *prometheus.CounterVec
	RenderDuration   prometheus.Histogram
	ViewsActive      prometheus.Gauge
	ThrottledTotal   prometheus.Counter
}

// New creates and registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		EventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salesmap_events_total",
			Help: "Map interaction events dispatched, by type",
		}, []string{"type"}),
		LabelPassesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "salesmap_label_passes_total",
			Help: "Label placement passes, by outcome",
		}, []string{"outcome"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "salesmap_render_duration_ms",
			Help:    "SVG render duration in milliseconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 50},
		}),
		ViewsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "salesmap_views_active",
			Help: "Mounted map views",
		}),
		ThrottledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "salesmap_events_throttled_total",
			Help: "Events rejected by the rate limiter",
		}),
	}
	m.Registry.MustRegister(m.EventsTotal, m.LabelPassesTotal, m.RenderDuration, m.ViewsActive, m.ThrottledTotal)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
