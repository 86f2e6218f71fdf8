// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ingest

import "github.com/prometheus/client_golang/prometheus"

const (
	MetricLinesRead       = "lines_read_total"
	MetricRecordsAttached = "records_attached_total"
	MetricRecordsSkipped  = "records_skipped_total"
	MetricAttachErrors    = "attach_errors_total"
)

var CounterLinesRead = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "ingester",
		Name:      MetricLinesRead,
		Help:      "Lines read from the source.",
	},
)

var CounterRecordsAttached = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "ingester",
		Name:      MetricRecordsAttached,
		Help:      "Records the index accepted.",
	},
)

var CounterRecordsSkipped = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "ingester",
		Name:      MetricRecordsSkipped,
		Help:      "Malformed lines skipped.",
	},
)

var CounterAttachErrors = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "ingester",
		Name:      MetricAttachErrors,
		Help:      "Attach calls that failed.",
	},
)

func init() {
	prometheus.MustRegister(CounterLinesRead)
	prometheus.MustRegister(CounterRecordsAttached)
	prometheus.MustRegister(CounterRecordsSkipped)
	prometheus.MustRegister(CounterAttachErrors)
}
