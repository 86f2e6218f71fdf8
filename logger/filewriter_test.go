// Copyright 2022 Molecula Corp. (DBA FeatureBase).
// SPDX-License-Identifier: Apache-2.0
package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reopening always appends to what is already in the file.
func TestFileWriterReopenAppends(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "loader.log")
	require.NoError(t, os.WriteFile(fname, []byte("line0\n"), 0600))

	f, err := NewFileWriter(fname)
	require.NoError(t, err)
	assert.Equal(t, fname, f.Name())

	_, err = f.Write([]byte("line1\n"))
	require.NoError(t, err)
	require.NoError(t, f.Reopen())
	_, err = f.Write([]byte("line2\n"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Equal(t, "line0\nline1\nline2\n", string(out))
}

// After the file is renamed away (log rotation), Reopen starts a new file
// under the original name.
func TestFileWriterReopenAfterRename(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "loader.log")

	f, err := NewFileWriter(fname)
	require.NoError(t, err)
	_, err = f.Write([]byte("line1\n"))
	require.NoError(t, err)

	require.NoError(t, os.Rename(fname, fname+".1"))
	_, err = f.Write([]byte("after1\n"))
	require.NoError(t, err)

	require.NoError(t, f.Reopen())
	_, err = f.Write([]byte("line2\n"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Equal(t, "line2\n", string(out))

	rotated, err := os.ReadFile(fname + ".1")
	require.NoError(t, err)
	assert.Equal(t, "line1\nafter1\n", string(rotated))
}

func TestFileWriterClosed(t *testing.T) {
	f, err := NewFileWriter(filepath.Join(t.TempDir(), "loader.log"))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, f.Close())

	_, err = f.Write([]byte("x"))
	assert.ErrorIs(t, err, os.ErrClosed)
}
