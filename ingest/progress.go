// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ingest

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/featurebasedb/taboo/logger"
)

// ProgressTracker tracks the number of attached records. It may be read
// from other goroutines while a Driver runs.
type ProgressTracker struct {
	progress uint64
}

// proceed is called after a record is attached.
func (t *ProgressTracker) proceed() {
	atomic.AddUint64(&t.progress, 1)
}

// Check the number of records that have been attached so far.
func (t *ProgressTracker) Check() uint64 {
	return atomic.LoadUint64(&t.progress)
}

// Report logs the running total every interval until ctx is done. Nothing
// is logged for an interval without progress.
func (t *ProgressTracker) Report(ctx context.Context, interval time.Duration, log logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var last uint64
	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := t.Check()
			if n == last {
				continue
			}
			elapsed := time.Since(start)
			log.Infof("attached %d records in %s (%.0f/s)", n, elapsed.Round(time.Second), float64(n)/elapsed.Seconds())
			last = n
		}
	}
}
