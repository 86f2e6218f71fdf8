// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package errors_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/featurebasedb/taboo/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	t.Run("Is", func(t *testing.T) {
		uncoded := newUncoded("uncoded error")
		snf := newErrSourceNotFound("data.tsv")
		bad := newErrBadLine(3)
		snfCustom := errors.New(errSourceNotFound, "custom source message")
		wrapped := errors.WithCode(io.ErrUnexpectedEOF, errBadLine, "reading line")

		tests := []struct {
			err    error
			target errors.Code
			exp    bool
		}{
			{
				err:    uncoded,
				target: errUncoded,
				exp:    true,
			},
			{
				err:    uncoded,
				target: errSourceNotFound,
				exp:    false,
			},
			{
				err:    snf,
				target: errSourceNotFound,
				exp:    true,
			},
			{
				err:    snf,
				target: errBadLine,
				exp:    false,
			},
			{
				err:    errors.Wrap(bad, "with message"),
				target: errBadLine,
				exp:    true,
			},
			{
				err:    snfCustom,
				target: errSourceNotFound,
				exp:    true,
			},
			{
				err:    errors.Wrap(wrapped, "outer"),
				target: errBadLine,
				exp:    true,
			},
			{
				err:    io.EOF,
				target: errBadLine,
				exp:    false,
			},
		}

		for i, test := range tests {
			t.Run(fmt.Sprintf("test-%d", i), func(t *testing.T) {
				got := errors.Is(test.err, test.target)
				assert.Equal(t, test.exp, got)
			})
		}
	})

	t.Run("WithCode", func(t *testing.T) {
		err := errors.WithCode(io.ErrUnexpectedEOF, errBadLine, "reading line")
		assert.Equal(t, "reading line: unexpected EOF", err.Error())
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Equal(t, errBadLine, errors.CodeOf(errors.Wrap(err, "outer")))

		assert.Nil(t, errors.WithCode(nil, errBadLine, "nothing"))
	})

	t.Run("CodeOf", func(t *testing.T) {
		assert.Equal(t, errors.Code(""), errors.CodeOf(io.EOF))
		assert.Equal(t, errSourceNotFound, errors.CodeOf(newErrSourceNotFound("x")))
	})
}

// Test error codes.

const (
	errUncoded        errors.Code = "Uncoded"
	errSourceNotFound errors.Code = "SourceNotFound"
	errBadLine        errors.Code = "BadLine"
)

func newUncoded(message string) error {
	return errors.New(
		errUncoded,
		message,
	)
}

func newErrSourceNotFound(name string) error {
	return errors.New(
		errSourceNotFound,
		"source not found: "+name,
	)
}

func newErrBadLine(n int) error {
	return errors.New(
		errBadLine,
		fmt.Sprintf("bad line %d", n),
	)
}
