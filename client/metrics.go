// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package client

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// MetricRequestDurationSeconds records the full time of a manage API
	// call, retries and backoff included.
	MetricRequestDurationSeconds = "request_duration_seconds"
)

var HistogramRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "taboo_client",
		Name:      MetricRequestDurationSeconds,
		Help:      "Duration of manage API requests, by path and outcome.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{
		"path",
		"outcome",
	},
)

func init() {
	prometheus.MustRegister(HistogramRequestDuration)
}

func observeRequest(path string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	HistogramRequestDuration.WithLabelValues(path, outcome).Observe(time.Since(start).Seconds())
}
