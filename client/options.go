// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package client

import (
	"time"

	"github.com/featurebasedb/taboo/logger"
	"github.com/pkg/errors"
)

const (
	DefaultTimeout      = 30 * time.Second
	DefaultRetryWaitMin = 1 * time.Second
	DefaultRetryWaitMax = 30 * time.Second
)

// ClientOptions control how the client connects, signs and retries.
type ClientOptions struct {
	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration

	// Retries is the number of extra attempts made for a request that
	// failed with a transport error, a 429 or a 5xx status. Zero sends
	// every request exactly once.
	Retries      int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// RateLimit caps requests per second; zero means unlimited.
	RateLimit float64

	SignDelimiter string
	SignHyphen    string

	upsert *bool
	logger logger.Logger
}

func (co *ClientOptions) addOptions(options ...ClientOption) error {
	for _, option := range options {
		err := option(co)
		if err != nil {
			return err
		}
	}
	return nil
}

func (co *ClientOptions) withDefaults() (updated *ClientOptions) {
	// copy options so the original is not updated
	updated = &ClientOptions{}
	*updated = *co
	if updated.Timeout <= 0 {
		updated.Timeout = DefaultTimeout
	}
	if updated.RetryWaitMin <= 0 {
		updated.RetryWaitMin = DefaultRetryWaitMin
	}
	if updated.RetryWaitMax <= 0 {
		updated.RetryWaitMax = DefaultRetryWaitMax
	}
	if updated.RetryWaitMax < updated.RetryWaitMin {
		updated.RetryWaitMax = updated.RetryWaitMin
	}
	if updated.SignDelimiter == "" {
		updated.SignDelimiter = DefaultSignDelimiter
	}
	if updated.SignHyphen == "" {
		updated.SignHyphen = DefaultSignHyphen
	}
	if updated.upsert == nil {
		upsert := true
		updated.upsert = &upsert
	}
	if updated.logger == nil {
		updated.logger = logger.NopLogger
	}
	return
}

// ClientOption is used when creating a Client struct.
type ClientOption func(options *ClientOptions) error

// OptClientTimeout is the maximum time a single attempt may take.
func OptClientTimeout(timeout time.Duration) ClientOption {
	return func(options *ClientOptions) error {
		options.Timeout = timeout
		return nil
	}
}

// OptClientRetries sets the number of times a failed request is retried.
func OptClientRetries(retries int) ClientOption {
	return func(options *ClientOptions) error {
		if retries < 0 {
			return errors.New("retries must be non-negative")
		}
		options.Retries = retries
		return nil
	}
}

// OptClientRetryWait sets the bounds of the exponential backoff between
// retries.
func OptClientRetryWait(min, max time.Duration) ClientOption {
	return func(options *ClientOptions) error {
		options.RetryWaitMin = min
		options.RetryWaitMax = max
		return nil
	}
}

// OptClientRateLimit caps the number of requests per second.
func OptClientRateLimit(perSecond float64) ClientOption {
	return func(options *ClientOptions) error {
		if perSecond < 0 {
			return errors.New("rate limit must be non-negative")
		}
		options.RateLimit = perSecond
		return nil
	}
}

// OptClientUpsert controls whether attaching an existing item id replaces
// the stored item. The server default, and ours, is true.
func OptClientUpsert(upsert bool) ClientOption {
	return func(options *ClientOptions) error {
		options.upsert = &upsert
		return nil
	}
}

// OptClientSignDelimiter must match the server's sign-delimiter setting.
func OptClientSignDelimiter(delimiter string) ClientOption {
	return func(options *ClientOptions) error {
		options.SignDelimiter = delimiter
		return nil
	}
}

// OptClientSignHyphen must match the server's sign-hyphen setting.
func OptClientSignHyphen(hyphen string) ClientOption {
	return func(options *ClientOptions) error {
		options.SignHyphen = hyphen
		return nil
	}
}

func OptClientLogger(l logger.Logger) ClientOption {
	return func(options *ClientOptions) error {
		options.logger = l
		return nil
	}
}
