// Package metrics exposes the gateway's Prometheus collectors and the
// standalone server that publishes them.
package metrics

import (
	"time"

	"github.com/likecoin/likerid-ens-gateway/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.MetricsNamespace,
			Name:      "queries_total",
			Help:      "resolver queries by record type and hit/miss result",
		},
		[]string{"function", "result"},
	)

	profileFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.MetricsNamespace,
			Name:      "profile_fetch_total",
			Help:      "identity service lookups by outcome",
		},
		[]string{"outcome"},
	)

	profileFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: common.MetricsNamespace,
			Name:      "profile_fetch_duration_seconds",
			Help:      "identity service request latency",
			Buckets:   prometheus.DefBuckets,
		},
	)

	requestsFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.MetricsNamespace,
			Name:      "requests_failed_total",
			Help:      "gateway requests rejected before signing",
		},
		[]string{"reason"},
	)

	registry = prometheus.NewRegistry()
)

func init() {
	registry.MustRegister(
		queriesTotal,
		profileFetchTotal,
		profileFetchDuration,
		requestsFailedTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

func IncQuery(function string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	queriesTotal.WithLabelValues(function, result).Inc()
}

func ObserveProfileFetch(outcome string, took time.Duration) {
	profileFetchTotal.WithLabelValues(outcome).Inc()
	profileFetchDuration.Observe(took.Seconds())
}

func IncRequestFailed(reason string) {
	requestsFailedTotal.WithLabelValues(reason).Inc()
}
