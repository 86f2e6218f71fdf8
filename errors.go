// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package taboo

import (
	"fmt"

	"github.com/featurebasedb/taboo/errors"
)

const (
	// ErrOpen means the source could not be opened. Nothing was attached.
	ErrOpen errors.Code = "SourceOpen"

	// ErrParse means a source line does not have the record shape.
	ErrParse errors.Code = "RecordParse"

	// ErrAttach means the taboo service did not accept an attach call.
	ErrAttach errors.Code = "Attach"

	// ErrAttachExhausted means an attach call kept failing after every
	// configured retry.
	ErrAttachExhausted errors.Code = "AttachExhausted"
)

// The following are helper functions for constructing coded errors containing
// relevant information about the specific error.

func NewErrOpen(name string, err error) error {
	return errors.WithCode(err, ErrOpen, fmt.Sprintf("opening source '%s'", name))
}

func NewErrParse(line string, format string, args ...interface{}) error {
	return errors.New(
		ErrParse,
		fmt.Sprintf("parsing record %q: ", truncate(line, 80))+fmt.Sprintf(format, args...),
	)
}

// NewErrAttach wraps a transport error from an attach call.
func NewErrAttach(item *Item, err error) error {
	return errors.WithCode(err, ErrAttach, fmt.Sprintf("attaching item %d", item.ID))
}

// NewErrAttachRejected reports an attach call the service answered with a
// non-zero result code.
func NewErrAttachRejected(item *Item, code int, desc string) error {
	return errors.New(
		ErrAttach,
		fmt.Sprintf("attaching item %d: rejected with code %d: %s", item.ID, code, desc),
	)
}

func NewErrAttachExhausted(item *Item, attempts int, err error) error {
	return errors.WithCode(err, ErrAttachExhausted,
		fmt.Sprintf("attaching item %d: giving up after %d attempt(s)", item.ID, attempts))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
