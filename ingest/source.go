// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ingest

import (
	"bufio"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/featurebasedb/taboo"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// StdinName is the source name that reads from standard input.
const StdinName = "-"

const readBufferSize = 1 << 16

// LineReader yields source lines one at a time, without their terminator,
// and io.EOF once the input is exhausted.
type LineReader interface {
	Line() (string, error)
}

// Source streams the lines of a local file, standard input or an http(s)
// URL. Compressed input is recognized by its extension: ".gz" is gunzipped,
// ".zst" and ".zstd" are zstd-decoded, ".lz4" is read as an lz4 frame. Only
// one buffer of input is held in memory at a time.
type Source struct {
	name    string
	r       *bufio.Reader
	closers []io.Closer
}

// OpenSource opens name for reading. Failures are coded taboo.ErrOpen.
func OpenSource(name string, stdin io.Reader) (*Source, error) {
	s := &Source{name: name}

	var content io.Reader
	switch {
	case name == StdinName:
		if stdin == nil {
			stdin = os.Stdin
		}
		content = stdin
	case isURL(name):
		resp, err := http.Get(name)
		if err != nil {
			return nil, taboo.NewErrOpen(name, errors.Wrap(err, "getting via http"))
		}
		if resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, taboo.NewErrOpen(name, errors.Errorf("got status %d via http.Get", resp.StatusCode))
		}
		s.closers = append(s.closers, resp.Body)
		content = resp.Body
	default:
		f, err := os.Open(name)
		if err != nil {
			return nil, taboo.NewErrOpen(name, errors.Wrap(err, "opening file"))
		}
		s.closers = append(s.closers, f)
		content = f
	}

	content, err := s.decompress(content)
	if err != nil {
		s.Close()
		return nil, taboo.NewErrOpen(name, err)
	}
	s.r = bufio.NewReaderSize(content, readBufferSize)
	return s, nil
}

func (s *Source) decompress(r io.Reader) (io.Reader, error) {
	lower := strings.ToLower(s.name)
	if isURL(s.name) {
		if i := strings.IndexAny(lower, "?#"); i >= 0 {
			lower = lower[:i]
		}
	}
	switch {
	case strings.HasSuffix(lower, ".gz"):
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "reading gzip header")
		}
		s.closers = append(s.closers, zr)
		return zr, nil
	case strings.HasSuffix(lower, ".zst") || strings.HasSuffix(lower, ".zstd"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "creating zstd decoder")
		}
		rc := zr.IOReadCloser()
		s.closers = append(s.closers, rc)
		return rc, nil
	case strings.HasSuffix(lower, ".lz4"):
		return lz4.NewReader(r), nil
	}
	return r, nil
}

func isURL(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

// Name returns the name the source was opened with.
func (s *Source) Name() string {
	return s.name
}

// Line returns the next line without its "\n" or "\r\n" terminator. A last
// line without a terminator is returned like any other.
func (s *Source) Line() (string, error) {
	line, err := s.r.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", io.EOF
		}
	} else if err != nil {
		return "", errors.Wrapf(err, "reading '%s'", s.name)
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

// Close releases everything the source opened, innermost reader first. It
// is safe to call more than once.
func (s *Source) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}
