// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"io"

	"github.com/featurebasedb/taboo/ctl"
	"github.com/spf13/cobra"
)

// newAttachCommand loads a tab-separated file through the manage API.
func newAttachCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	attacher := ctl.NewAttachCommand(stdin, stdout, stderr)
	cfg := &attacher.Config
	attachCmd := &cobra.Command{
		Use:   "attach [file]",
		Short: "Attach every item of a tab-separated file to its prefixes.",
		Long: `Reads a tab-separated file one line at a time and attaches each item to its
prefixes, stopping after --limit records. Each line holds

	ACCOUNT_ID	ID	NAME	PREFIX1	PREFIX2	[AVATAR]

ID is a decimal integer. NAME and the two prefix columns become the item's
prefixes; empty ones are left out. The avatar column is optional.

The file may be a path, "-" for stdin, or an http(s) URL. Names ending in
.gz, .zst, .zstd or .lz4 are decompressed.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.File = args[0]
			}
			return attacher.Run(cmd.Context())
		},
	}

	flags := attachCmd.Flags()
	flags.StringVarP(&cfg.File, "file", "f", cfg.File, "File to load: a path, - for stdin, or an http(s) URL.")
	flags.IntVarP(&cfg.Limit, "limit", "n", cfg.Limit, "Maximum number of records to process; 0 for no limit.")
	flags.BoolVar(&cfg.SkipMalformed, "skip-malformed", cfg.SkipMalformed, "Log and skip lines that do not parse instead of stopping.")
	flags.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Log each attach call instead of sending it.")

	flags.StringVar(&cfg.Host, "host", cfg.Host, "Host of the taboo manage API, optionally with an http:// or https:// scheme.")
	flags.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Port of the taboo manage API.")
	flags.StringVarP(&cfg.Key, "key", "k", cfg.Key, "Manage API key.")
	flags.StringVarP(&cfg.Secret, "secret", "s", cfg.Secret, "Manage API secret used to sign requests.")
	flags.BoolVar(&cfg.Upsert, "upsert", cfg.Upsert, "Replace items that already exist.")
	flags.Var(&cfg.Timeout, "timeout", "Timeout of a single attach request.")
	flags.IntVar(&cfg.Retries, "retries", cfg.Retries, "Times a failed attach request is retried.")
	flags.Var(&cfg.RetryWaitMin, "retry-wait-min", "Minimum wait before a retry.")
	flags.Var(&cfg.RetryWaitMax, "retry-wait-max", "Maximum wait before a retry.")
	flags.Float64Var(&cfg.Rate, "rate", cfg.Rate, "Maximum attach requests per second; 0 for no limit.")
	flags.StringVar(&cfg.SignDelimiter, "sign-delimiter", cfg.SignDelimiter, "Separator between the parts of a request signature.")
	flags.StringVar(&cfg.SignHyphen, "sign-hyphen", cfg.SignHyphen, "Separator between a parameter's name and value in a request signature.")

	flags.StringVar(&cfg.Stats, "stats", cfg.Stats, "Address to serve Prometheus metrics on while loading, e.g. :9093.")
	flags.Var(&cfg.ProgressInterval, "progress-interval", "How often to log progress; 0 disables it.")
	flags.StringVar(&cfg.LogPath, "log-path", cfg.LogPath, "Log file; reopened on SIGHUP. Defaults to stderr.")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Enable debug logging.")
	flags.StringVar(&cfg.SentryDSN, "sentry-dsn", cfg.SentryDSN, "Sentry DSN to report errors to.")

	return attachCmd
}
