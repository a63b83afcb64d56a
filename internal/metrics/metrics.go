// Package metrics exposes the service's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts inbound HTTP requests by route and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aurora_tts_requests_total",
		Help: "Inbound HTTP requests by route and status code.",
	}, []string{"route", "status"})

	// UpstreamErrorsTotal counts non-success responses from the synthesis
	// provider, including timeouts and network failures.
	UpstreamErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aurora_tts_upstream_errors_total",
		Help: "Failed upstream synthesis calls.",
	})

	// StreamedBytesTotal counts audio bytes relayed to callers.
	StreamedBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aurora_tts_streamed_bytes_total",
		Help: "Audio bytes relayed to callers.",
	})
)
