// Package metrics holds the Prometheus collectors for the catalog API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aniverse_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"route", "method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aniverse_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Source backend
	SourceQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "aniverse_source_query_duration_seconds",
			Help:    "Duration of source backend reads",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	SourceQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aniverse_source_query_errors_total",
			Help: "Failed source backend reads",
		},
		[]string{"backend", "operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "aniverse_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	StoreUp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aniverse_store_up",
			Help: "Whether the last relational store probe succeeded",
		},
	)

	StaticDocumentEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "aniverse_static_document_entries",
			Help: "Records loaded from the static fallback document",
		},
	)
)
