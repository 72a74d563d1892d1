/*
 * Copyright 2025 The Halgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package metrics implements prometheus metrics and exposes the metrics HTTP listener
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricNamespace   = "halgate"
	frontendSubsystem = "frontend"
	cacheSubsystem    = "cache"
)

// Default histogram buckets used by halgate
var defaultBuckets = []float64{0.05, 0.1, 0.5, 1, 5, 10, 20}

// FrontendRequestStatus is a Counter of front end requests that have been processed with their status
var FrontendRequestStatus *prometheus.CounterVec

// FrontendRequestDuration is a histogram that tracks the time it takes to process a request
var FrontendRequestDuration *prometheus.HistogramVec

// CacheObjectOperations is a Counter of response-cache operations by operation and status
var CacheObjectOperations *prometheus.CounterVec

func init() {

	FrontendRequestStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "requests_total",
			Help:      "Count of front end requests handled by halgate",
		},
		[]string{"method", "path", "http_status"},
	)

	FrontendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "requests_duration_seconds",
			Help:      "Histogram of front end request durations handled by halgate",
			Buckets:   defaultBuckets,
		},
		[]string{"method", "path"},
	)

	CacheObjectOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "operation_objects_total",
			Help:      "Count of response-cache operations performed by halgate",
		},
		[]string{"cache_name", "operation", "status"},
	)

	prometheus.MustRegister(FrontendRequestStatus)
	prometheus.MustRegister(FrontendRequestDuration)
	prometheus.MustRegister(CacheObjectOperations)
}

// ListenAndServe starts the metrics listener on the provided address
func ListenAndServe(address string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(address, mux)
}
