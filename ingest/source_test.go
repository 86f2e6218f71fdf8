// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package ingest_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/featurebasedb/taboo"
	"github.com/featurebasedb/taboo/errors"
	"github.com/featurebasedb/taboo/ingest"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceData = "u1\t1\ta\tb\tc\r\nu2\t2\ta\tb\tc\tav.png\n\nu3\t3\ta\tb\tc"

var sourceLines = []string{
	"u1\t1\ta\tb\tc",
	"u2\t2\ta\tb\tc\tav.png",
	"",
	"u3\t3\ta\tb\tc",
}

func readAll(t *testing.T, src ingest.LineReader) []string {
	t.Helper()
	var got []string
	for {
		line, err := src.Line()
		if err == io.EOF {
			return got
		}
		require.NoError(t, err)
		got = append(got, line)
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestSourcePlainFile(t *testing.T) {
	src, err := ingest.OpenSource(writeFile(t, "data.tsv", []byte(sourceData)), nil)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, sourceLines, readAll(t, src))
	// EOF is sticky.
	_, err = src.Line()
	assert.Equal(t, io.EOF, err)
	assert.NoError(t, src.Close())
	assert.NoError(t, src.Close())
}

func TestSourceCompressed(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte(sourceData))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var zst bytes.Buffer
	enc, err := zstd.NewWriter(&zst)
	require.NoError(t, err)
	_, err = enc.Write([]byte(sourceData))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	var lz bytes.Buffer
	lw := lz4.NewWriter(&lz)
	_, err = lw.Write([]byte(sourceData))
	require.NoError(t, err)
	require.NoError(t, lw.Close())

	for name, data := range map[string][]byte{
		"data.tsv.gz":   gz.Bytes(),
		"data.tsv.GZ":   gz.Bytes(),
		"data.tsv.zst":  zst.Bytes(),
		"data.tsv.zstd": zst.Bytes(),
		"data.tsv.lz4":  lz.Bytes(),
	} {
		t.Run(name, func(t *testing.T) {
			src, err := ingest.OpenSource(writeFile(t, name, data), nil)
			require.NoError(t, err)
			defer src.Close()
			assert.Equal(t, sourceLines, readAll(t, src))
		})
	}
}

func TestSourceStdin(t *testing.T) {
	src, err := ingest.OpenSource(ingest.StdinName, strings.NewReader(sourceData))
	require.NoError(t, err)
	defer src.Close()
	assert.Equal(t, ingest.StdinName, src.Name())
	assert.Equal(t, sourceLines, readAll(t, src))
}

func TestSourceHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data.tsv" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, sourceData)
	}))
	defer srv.Close()

	src, err := ingest.OpenSource(srv.URL+"/data.tsv", nil)
	require.NoError(t, err)
	defer src.Close()
	assert.Equal(t, sourceLines, readAll(t, src))

	_, err = ingest.OpenSource(srv.URL+"/missing.tsv", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, taboo.ErrOpen))
	assert.Contains(t, err.Error(), "got status 404")
}

func TestSourceOpenErrors(t *testing.T) {
	_, err := ingest.OpenSource(filepath.Join(t.TempDir(), "missing.tsv"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, taboo.ErrOpen))
	assert.ErrorIs(t, err, os.ErrNotExist)

	// not actually gzip.
	_, err = ingest.OpenSource(writeFile(t, "bad.gz", []byte("plain text")), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, taboo.ErrOpen))
}

func TestSourceLongLines(t *testing.T) {
	long := strings.Repeat("x", 3*(1<<16))
	src, err := ingest.OpenSource(ingest.StdinName, strings.NewReader("a\t1\t"+long+"\t\t\nb\t2\tn\t\t\n"))
	require.NoError(t, err)
	got := readAll(t, src)
	require.Len(t, got, 2)
	assert.Equal(t, "a\t1\t"+long+"\t\t", got[0])
}
