// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

/*
Each Metrics value owns its registry instead of using the global default
one, so several servers (or tests) in one process never collide on
registration.

  - Created: polls, choices and votes written, labelled by kind.
  - Rejected: eligibility failures by operation and reason
    (not_found, duplicate, expired, no_choices, validation).
  - ResultDuration: time spent computing a poll result.
  - CacheLookups: result cache hits and misses.
  - RequestDuration: HTTP latency by route and status code.
*/

type Metrics struct {
	Registry        *prometheus.Registry
	Created         *prometheus.CounterVec
	Rejected        *prometheus.CounterVec
	ResultDuration  prometheus.Histogram
	CacheLookups    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Created: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_created_total",
				Help:      "Total number of polls, choices and votes created",
			},
			[]string{"kind"},
		),
		Rejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_rejected_total",
				Help:      "Total number of operations rejected by eligibility rules",
			},
			[]string{"operation", "reason"},
		),
		ResultDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "result_computation_seconds",
				Help:      "Histogram of poll result computation times",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10), // 1ms to ~0.5s
			},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "result_cache_lookups_total",
				Help:      "Result cache lookups by outcome",
			},
			[]string{"outcome"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of HTTP request durations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "status"},
		),
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// The recorders below are nil-safe so callers can run without metrics.

func (m *Metrics) ObserveCreated(kind string) {
	if m == nil {
		return
	}
	m.Created.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveRejected(operation, reason string) {
	if m == nil {
		return
	}
	m.Rejected.WithLabelValues(operation, reason).Inc()
}

func (m *Metrics) ObserveResult(d time.Duration) {
	if m == nil {
		return
	}
	m.ResultDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.CacheLookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}
