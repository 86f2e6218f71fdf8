// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ctl

import (
	"time"

	"github.com/featurebasedb/taboo/client"
	"github.com/featurebasedb/taboo/ingest"
	"github.com/featurebasedb/taboo/toml"
)

// AttachConfig holds every setting of one load run. Field tags double as
// flag names, environment variable suffixes (TABOO_RETRY_WAIT_MIN) and
// config file keys.
type AttachConfig struct {
	// File is the source to load: a path, "-" for stdin, or an http(s) URL.
	File string `toml:"file"`

	// Limit caps the number of records processed; 0 disables the cap.
	Limit int `toml:"limit"`

	// SkipMalformed skips lines that do not parse instead of stopping.
	SkipMalformed bool `toml:"skip-malformed"`

	// DryRun parses and logs every record without contacting the server.
	DryRun bool `toml:"dry-run"`

	// Manage API of the taboo server.
	Host   string `toml:"host"`
	Port   int    `toml:"port"`
	Key    string `toml:"key"`
	Secret string `toml:"secret"`

	Upsert        bool          `toml:"upsert"`
	Timeout       toml.Duration `toml:"timeout"`
	Retries       int           `toml:"retries"`
	RetryWaitMin  toml.Duration `toml:"retry-wait-min"`
	RetryWaitMax  toml.Duration `toml:"retry-wait-max"`
	Rate          float64       `toml:"rate"`
	SignDelimiter string        `toml:"sign-delimiter"`
	SignHyphen    string        `toml:"sign-hyphen"`

	// Stats is the address to serve Prometheus metrics on while loading.
	Stats            string        `toml:"stats"`
	ProgressInterval toml.Duration `toml:"progress-interval"`

	LogPath   string `toml:"log-path"`
	Verbose   bool   `toml:"verbose"`
	SentryDSN string `toml:"sentry-dsn"`
}

// NewAttachConfig returns the default configuration.
func NewAttachConfig() AttachConfig {
	return AttachConfig{
		Limit:            ingest.DefaultLimit,
		Host:             "127.0.0.1",
		Port:             client.DefaultPort,
		Upsert:           true,
		Timeout:          toml.Duration(client.DefaultTimeout),
		RetryWaitMin:     toml.Duration(client.DefaultRetryWaitMin),
		RetryWaitMax:     toml.Duration(client.DefaultRetryWaitMax),
		SignDelimiter:    client.DefaultSignDelimiter,
		SignHyphen:       client.DefaultSignHyphen,
		ProgressInterval: toml.Duration(10 * time.Second),
	}
}

// clientOptions translates the config into options for client.NewClient.
func (c *AttachConfig) clientOptions() []client.ClientOption {
	opts := []client.ClientOption{
		client.OptClientTimeout(time.Duration(c.Timeout)),
		client.OptClientRetries(c.Retries),
		client.OptClientRetryWait(time.Duration(c.RetryWaitMin), time.Duration(c.RetryWaitMax)),
		client.OptClientUpsert(c.Upsert),
		client.OptClientSignDelimiter(c.SignDelimiter),
		client.OptClientSignHyphen(c.SignHyphen),
	}
	if c.Rate > 0 {
		opts = append(opts, client.OptClientRateLimit(c.Rate))
	}
	return opts
}
