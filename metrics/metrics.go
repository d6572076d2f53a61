// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movienight_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movienight_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movienight_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	// Store
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movienight_store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movienight_store_operation_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"operation"},
	)

	// Voting
	SlatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movienight_slates_total",
			Help: "Slate submissions by outcome (accepted or the error kind)",
		},
		[]string{"outcome"},
	)

	SlateSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "movienight_slate_size",
			Help:    "Number of ranked movies per accepted slate",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		},
	)

	TallyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "movienight_tally_duration_seconds",
			Help:    "Time spent computing session results, including store reads",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, route string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreOp records the duration of one store call and whether it failed
func RecordStoreOp(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}

// RecordSlate counts a slate submission. size is only observed for accepted slates.
func RecordSlate(outcome string, size int) {
	SlatesTotal.WithLabelValues(outcome).Inc()
	if outcome == "accepted" {
		SlateSize.Observe(float64(size))
	}
}

// RecordTally records how long a results computation took
func RecordTally(duration time.Duration) {
	TallyDuration.Observe(duration.Seconds())
}
