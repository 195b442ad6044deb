// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics provides Prometheus metrics for conversions and the
// virtual file trees built from them.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smalifs"

// Conversion results.
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultCancelled = "cancelled"
)

var (
	conversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Total number of converter runs",
		},
		[]string{"result"},
	)

	conversionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Converter run duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	indexedNodes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "indexed_nodes",
			Help:      "Number of nodes per indexed tree",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	indexCancelledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_cancelled_total",
			Help:      "Total number of indexing walks stopped by cancellation",
		},
	)

	materializedBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "materialized_bytes_total",
			Help:      "Total bytes copied into temporary input files",
		},
	)

	openFilesystems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_filesystems",
			Help:      "Number of currently open virtual file systems",
		},
	)
)

// RecordConversion records a converter run with the given result.
func RecordConversion(result string, duration time.Duration) {
	conversionsTotal.WithLabelValues(result).Inc()
	conversionDuration.Observe(duration.Seconds())
}

// RecordIndex records the size of an indexed tree.
func RecordIndex(nodes int, cancelled bool) {
	indexedNodes.Observe(float64(nodes))

	if cancelled {
		indexCancelledTotal.Inc()
	}
}

// AddMaterializedBytes adds the number of bytes copied into temporary input
// files.
func AddMaterializedBytes(n int64) {
	materializedBytes.Add(float64(n))
}

// FilesystemOpened increments the number of open file systems.
func FilesystemOpened() {
	openFilesystems.Inc()
}

// FilesystemClosed decrements the number of open file systems.
func FilesystemClosed() {
	openFilesystems.Dec()
}

// Handler returns the HTTP handler serving all registered metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
