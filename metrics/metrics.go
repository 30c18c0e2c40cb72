// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	UpstreamAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toumei",
			Name:      "upstream_attempts_total",
			Help:      "Fallback attempts against upstream candidates.",
		},
		[]string{"class", "candidate", "outcome"},
	)
	ExhaustedChains = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toumei",
			Name:      "fallback_exhausted_total",
			Help:      "Fallback chains in which every candidate failed.",
		},
		[]string{"class"},
	)
	ProxyRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toumei",
			Name:      "proxy_requests_total",
			Help:      "Reverse proxied requests by target token and outcome.",
		},
		[]string{"token", "outcome"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "toumei",
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "toumei",
			Name:      "http_request_duration_seconds",
			Help:      "Inbound HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(UpstreamAttempts, ExhaustedChains, ProxyRequests, HTTPRequests, HTTPDuration)
}
