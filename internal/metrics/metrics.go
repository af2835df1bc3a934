// SPDX-License-Identifier: MIT

// Package metrics exposes transform timings and publishing counters in the
// Prometheus text format. Each Stats owns its registry so tests and multiple
// servers never collide on the global one.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "spectra"

// Stats is an attached Prometheus registry.
type Stats struct {
	registry  *prometheus.Registry
	durations *prometheus.HistogramVec
	frames    *prometheus.CounterVec
	viewers   prometheus.Gauge
}

// New creates a Stats with its own registry.
func New() *Stats {
	s := &Stats{
		registry: prometheus.NewRegistry(),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of transforms and scenario runs.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10), // 10us .. ~2.6s
		}, []string{"operation"}),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_published_total",
			Help:      "Frames published over UDP or WebSocket.",
		}, []string{"transport"}),
		viewers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_viewers",
			Help:      "Connected WebSocket viewers.",
		}),
	}
	s.registry.MustRegister(s.durations, s.frames, s.viewers)
	return s
}

// ObserveDuration records d for operation. It matches timing.Observer.
func (s *Stats) ObserveDuration(operation string, d time.Duration) {
	s.durations.WithLabelValues(operation).Observe(d.Seconds())
}

// FrameSent counts one frame published through transport.
func (s *Stats) FrameSent(transport string) {
	s.frames.WithLabelValues(transport).Inc()
}

// SetViewers sets the current WebSocket viewer count.
func (s *Stats) SetViewers(n int) {
	s.viewers.Set(float64(n))
}

// Handler serves the registry on /metrics.
func (s *Stats) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}
