// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ingest

import (
	"context"
	"io"

	"github.com/featurebasedb/taboo"
	"github.com/featurebasedb/taboo/logger"
	"github.com/pkg/errors"
)

// DefaultLimit is the number of records processed per run unless configured
// otherwise.
const DefaultLimit = 100000

// Stats summarizes a run.
type Stats struct {
	// Read is the number of lines taken from the source.
	Read int
	// Processed is the number of parsed lines handed to the attacher,
	// whether or not the attach call succeeded.
	Processed int
	// Attached is the number of successful attach calls.
	Attached int
	// Skipped is the number of malformed lines passed over.
	Skipped int
	// Limited is set when the run stopped at Limit rather than at the end
	// of the input.
	Limited bool
}

// Driver reads lines one at a time, parses each into an item and its
// prefixes, and attaches it before reading the next line.
type Driver struct {
	Lines    LineReader
	Attacher taboo.Attacher

	// Limit caps the number of processed lines. The cap is checked before
	// each read, so exactly Limit lines are processed when the input is
	// longer, and nothing past them is read. Zero or less means no cap.
	Limit int

	// SkipMalformed logs and skips lines that do not parse. Skipped lines
	// do not count toward Limit. When false, the first such line ends the
	// run with its error.
	SkipMalformed bool

	Progress *ProgressTracker
	Log      logger.Logger
}

// Run processes lines until the input is exhausted, Limit is reached, ctx
// is done, or an error occurs. The returned Stats are valid in every case.
// Errors carry the 1-based number of the line that caused them; parse and
// attach failures keep their taboo error codes.
func (d *Driver) Run(ctx context.Context) (Stats, error) {
	log := d.Log
	if log == nil {
		log = logger.NopLogger
	}
	var st Stats
	for {
		if d.Limit > 0 && st.Processed >= d.Limit {
			st.Limited = true
			log.Infof("reached limit of %d records, stopping", d.Limit)
			return st, nil
		}
		if err := ctx.Err(); err != nil {
			return st, errors.Wrapf(err, "stopped after %d lines", st.Read)
		}

		line, err := d.Lines.Line()
		if err == io.EOF {
			return st, nil
		} else if err != nil {
			return st, errors.Wrapf(err, "reading line %d", st.Read+1)
		}
		st.Read++
		CounterLinesRead.Inc()

		item, prefixes, err := taboo.ParseRecord(line)
		if err != nil {
			if d.SkipMalformed {
				st.Skipped++
				CounterRecordsSkipped.Inc()
				log.Warnf("skipping line %d: %v", st.Read, err)
				continue
			}
			return st, errors.Wrapf(err, "line %d", st.Read)
		}

		st.Processed++
		if err := d.Attacher.Attach(ctx, prefixes, item); err != nil {
			CounterAttachErrors.Inc()
			return st, errors.Wrapf(err, "line %d", st.Read)
		}
		st.Attached++
		CounterRecordsAttached.Inc()
		if d.Progress != nil {
			d.Progress.proceed()
		}
		log.Debugf("line %d: attached item %d under %d prefixes", st.Read, item.ID, len(prefixes))
	}
}
