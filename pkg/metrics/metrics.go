// Package metrics provides prometheus metrics for builds and the dev server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Build outcomes used as the "status" label.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds all docsite metrics on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	BuildsTotal   *prometheus.CounterVec
	BuildDuration prometheus.Histogram
	PagesRendered prometheus.Gauge
	FilesWritten  *prometheus.CounterVec
	BrokenLinks   prometheus.Gauge
	Warnings      prometheus.Gauge
	ReloadClients prometheus.Gauge
	ReloadsTotal  prometheus.Counter
}

// New creates metrics under the given namespace.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		BuildsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Site builds by outcome.",
		}, []string{"status"}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Wall time of a full site build.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		PagesRendered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pages_rendered",
			Help:      "Routes rendered by the last build.",
		}),
		FilesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Output files by action (written, skipped, removed).",
		}, []string{"action"}),
		BrokenLinks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "broken_links",
			Help:      "Broken links found by the last build.",
		}),
		Warnings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "warnings",
			Help:      "Warnings reported by the last build.",
		}),
		ReloadClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reload_clients",
			Help:      "Connected live-reload clients.",
		}),
		ReloadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reloads_total",
			Help:      "Live-reload broadcasts sent.",
		}),
	}

	m.registry.MustRegister(
		m.BuildsTotal,
		m.BuildDuration,
		m.PagesRendered,
		m.FilesWritten,
		m.BrokenLinks,
		m.Warnings,
		m.ReloadClients,
		m.ReloadsTotal,
	)
	return m
}

// BuildStats is the subset of a build result the metrics care about.
type BuildStats struct {
	Pages       int
	Written     int
	Skipped     int
	Removed     int
	BrokenLinks int
	Warnings    int
	Duration    time.Duration
}

// ObserveBuild records a finished build. A nil receiver is a no-op so callers
// can run without metrics.
func (m *Metrics) ObserveBuild(stats BuildStats, err error) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	m.BuildsTotal.WithLabelValues(status).Inc()
	m.BuildDuration.Observe(stats.Duration.Seconds())
	m.BrokenLinks.Set(float64(stats.BrokenLinks))
	m.Warnings.Set(float64(stats.Warnings))
	if err != nil {
		return
	}
	m.PagesRendered.Set(float64(stats.Pages))
	m.FilesWritten.WithLabelValues("written").Add(float64(stats.Written))
	m.FilesWritten.WithLabelValues("skipped").Add(float64(stats.Skipped))
	m.FilesWritten.WithLabelValues("removed").Add(float64(stats.Removed))
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SetReloadClients records the number of connected live-reload clients.
func (m *Metrics) SetReloadClients(n int) {
	if m == nil {
		return
	}
	m.ReloadClients.Set(float64(n))
}

// ObserveReload counts a live-reload broadcast.
func (m *Metrics) ObserveReload() {
	if m == nil {
		return
	}
	m.ReloadsTotal.Inc()
}
