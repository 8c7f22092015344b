// Package observability exposes Prometheus metrics for the filter subsystem.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spatial_filter_sessions_total",
			Help: "Filter sessions started, by mode.",
		},
		[]string{"mode"},
	)

	objectsExaminedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spatial_filter_objects_examined_total",
			Help: "Objects presented by the host traversal, by situation.",
		},
		[]string{"situation"},
	)

	objectsMatchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spatial_filter_objects_matched_total",
			Help: "Feature blobs that matched the query rectangle.",
		},
	)

	objectsOmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spatial_filter_objects_omitted_total",
			Help: "Feature blobs omitted from the transfer.",
		},
	)

	indexLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spatial_filter_index_lookups_total",
			Help: "Spatial index lookups, by outcome.",
		},
		[]string{"outcome"},
	)

	indexLookupSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spatial_filter_index_lookup_duration_seconds",
			Help:    "Latency of spatial index lookups in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.000005, 4, 10), // 5us to ~1.3s
		},
	)

	buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "spatial_filter_build_info",
			Help: "Build information for the binary.",
		},
		[]string{"version"},
	)
)

func IncSession(mode string) {
	sessionsTotal.WithLabelValues(mode).Inc()
}

func IncExamined(situation string) {
	objectsExaminedTotal.WithLabelValues(situation).Inc()
}

func IncMatched() { objectsMatchedTotal.Inc() }
func IncOmitted() { objectsOmittedTotal.Inc() }

func ObserveLookup(outcome string, seconds float64) {
	indexLookupsTotal.WithLabelValues(outcome).Inc()
	indexLookupSeconds.Observe(seconds)
}

func ExposeBuildInfo(version string) {
	if version == "" {
		version = "dev"
	}
	buildInfo.WithLabelValues(version).Set(1)
}
