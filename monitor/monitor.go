// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0

// Package monitor reports loader failures to Sentry. It is off unless a DSN
// is configured.
package monitor

import (
	"context"
	"flag"
	"fmt"
	"time"

	sentry "github.com/getsentry/sentry-go"
)

const (
	LevelError = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

const flushTimeout = 2 * time.Second

var isOn bool

// InitErrorMonitor initializes Sentry for the given DSN. An empty DSN leaves
// the monitor off.
func InitErrorMonitor(dsn, version string) error {
	if dsn == "" || isTest() {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		AttachStacktrace: true,
		TracesSampleRate: 1,
		Release:          version,
	})
	if err != nil {
		return fmt.Errorf("sentry.Init: %w", err)
	}
	isOn = true
	return nil
}

// CaptureMessage sends a message to Sentry.
func CaptureMessage(message string) {
	if !isOn {
		return
	}
	sentry.CaptureMessage(message)
}

// CaptureException sends an error-level log message to Sentry. Lower levels
// are dropped.
func CaptureException(level int, format string, v ...interface{}) {
	if !isOn || level > LevelError {
		return
	}
	sentry.CaptureException(fmt.Errorf(format, v...))
}

// CaptureError sends err to Sentry.
func CaptureError(err error) {
	if !isOn || err == nil {
		return
	}
	sentry.CaptureException(err)
}

// Flush waits for buffered events to be delivered.
func Flush() {
	if !isOn {
		return
	}
	sentry.Flush(flushTimeout)
}

// IsOn returns true if the monitor is enabled.
func IsOn() bool {
	return isOn
}

// isTest returns true if execution is part of test
func isTest() bool {
	return flag.Lookup("test.v") != nil
}

// Wrappers around Sentry's span to minimize exposure of sentry elsewhere in the codebase and for single-responsibility
func StartSpan(ctx context.Context, txType, txName string) *sentry.Span {
	if !isOn {
		return &sentry.Span{}
	}
	return sentry.StartSpan(ctx, txType, sentry.TransactionName(txName))
}

func Finish(span *sentry.Span) {
	if !isOn {
		return
	}
	span.Finish()
}
