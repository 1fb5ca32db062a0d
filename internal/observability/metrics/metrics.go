// Package metrics exposes tagging workflow counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Alma-hanif/infinitag/internal/core/ports/driven"
)

var _ driven.MetricsRecorder = (*TaggingMetrics)(nil)

const namespace = "infinitag"

// TaggingMetrics records workflow events on a private registry.
type TaggingMetrics struct {
	registry *prometheus.Registry

	keywordsMerged   *prometheus.CounterVec
	keywordsRemoved  prometheus.Counter
	persistTotal     *prometheus.CounterVec
	persistDuration  prometheus.Histogram
	taggingSubmitted *prometheus.CounterVec
	refreshTotal     *prometheus.CounterVec
	documentsLoaded  prometheus.Gauge
}

// NewTaggingMetrics creates the collectors and registers them.
func NewTaggingMetrics() *TaggingMetrics {
	registry := prometheus.NewRegistry()

	keywordsMerged := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "keywords",
			Name:      "merged_total",
			Help:      "Keyword merge attempts by outcome.",
		},
		[]string{"outcome"},
	)
	keywordsRemoved := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "keywords",
			Name:      "removed_total",
			Help:      "Keywords removed from documents.",
		},
	)
	persistTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "persist_total",
			Help:      "Keyword persistence calls by result.",
		},
		[]string{"result"},
	)
	persistDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "persist_duration_seconds",
			Help:      "Keyword persistence duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	taggingSubmitted := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tagging",
			Name:      "submissions_total",
			Help:      "Tagging submissions by method and reply status (0 for transport errors).",
		},
		[]string{"method", "status"},
	)
	refreshTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "refresh_total",
			Help:      "Document refreshes by result.",
		},
		[]string{"result"},
	)
	documentsLoaded := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "loaded",
			Help:      "Documents returned by the last successful refresh.",
		},
	)

	registry.MustRegister(
		keywordsMerged,
		keywordsRemoved,
		persistTotal,
		persistDuration,
		taggingSubmitted,
		refreshTotal,
		documentsLoaded,
	)

	return &TaggingMetrics{
		registry:         registry,
		keywordsMerged:   keywordsMerged,
		keywordsRemoved:  keywordsRemoved,
		persistTotal:     persistTotal,
		persistDuration:  persistDuration,
		taggingSubmitted: taggingSubmitted,
		refreshTotal:     refreshTotal,
		documentsLoaded:  documentsLoaded,
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *TaggingMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *TaggingMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *TaggingMetrics) KeywordMerged(outcome string) {
	m.keywordsMerged.WithLabelValues(outcome).Inc()
}

func (m *TaggingMetrics) KeywordRemoved() {
	m.keywordsRemoved.Inc()
}

func (m *TaggingMetrics) PersistObserved(ok bool, elapsed time.Duration) {
	m.persistTotal.WithLabelValues(result(ok)).Inc()
	m.persistDuration.Observe(elapsed.Seconds())
}

func (m *TaggingMetrics) TaggingSubmitted(method string, status int) {
	m.taggingSubmitted.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

func (m *TaggingMetrics) RefreshObserved(ok bool, rows int) {
	m.refreshTotal.WithLabelValues(result(ok)).Inc()
	if ok {
		m.documentsLoaded.Set(float64(rows))
	}
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
