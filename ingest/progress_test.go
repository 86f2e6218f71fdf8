// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ingest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/featurebasedb/taboo/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestProgressTrackerReport(t *testing.T) {
	defer goleak.VerifyNone(t)

	tracker := &ProgressTracker{}
	log := logger.NewBufferLogger()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		tracker.Report(ctx, 5*time.Millisecond, log)
	}()

	for i := 0; i < 3; i++ {
		tracker.proceed()
	}
	assert.Equal(t, uint64(3), tracker.Check())
	assert.Eventually(t, func() bool {
		return strings.Contains(log.String(), "attached 3 records")
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Report did not return after cancel")
	}
}

func TestProgressTrackerQuietWithoutProgress(t *testing.T) {
	defer goleak.VerifyNone(t)

	log := logger.NewBufferLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	(&ProgressTracker{}).Report(ctx, 5*time.Millisecond, log)
	assert.Empty(t, log.String())
}
