// Package metrics exposes Prometheus instrumentation for the query path.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// QueriesTotal counts completed queries by outcome
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "census_report",
		Name:      "queries_total",
		Help:      "Completed queries by outcome.",
	}, []string{"outcome"})

	// QueryDuration observes end-to-end query latency
	QueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "census_report",
		Name:      "query_duration_seconds",
		Help:      "End-to-end query latency.",
		Buckets:   prometheus.DefBuckets,
	})

	// OutputRows observes the grouped table size per query
	OutputRows = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "census_report",
		Name:      "query_output_rows",
		Help:      "Grouped rows produced per query.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	})
)

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
