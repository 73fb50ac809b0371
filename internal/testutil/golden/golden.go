// SPDX-License-Identifier: AGPL-3.0-or-later

// Package golden compares generated documents against files under testdata/.
// Run the tests with -update to rewrite the expected output.
package golden

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Update rewrites golden files instead of comparing against them.
var Update = flag.Bool("update", false, "update golden files")

// TestdataDir returns the testdata directory next to the calling test file.
func TestdataDir(t *testing.T) string {
	t.Helper()
	return callerTestdata(t, 2)
}

func callerTestdata(t *testing.T, skip int) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(skip)
	if !ok {
		t.Fatalf("runtime.Caller failed")
	}
	return filepath.Join(filepath.Dir(filename), "testdata")
}

// Read returns the content of testdataDir/<name>.golden, or "" if absent.
func Read(t *testing.T, testdataDir, name string) string {
	t.Helper()
	safeName(t, name)

	path := filepath.Join(testdataDir, name+".golden")
	data, err := os.ReadFile(path) //nolint:gosec // testdata path controlled by test
	if errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	require.NoError(t, err, "read golden %s", path)
	return string(data)
}

// Write stores content as testdataDir/<name>.golden.
func Write(t *testing.T, testdataDir, name, content string) {
	t.Helper()
	safeName(t, name)

	require.NoError(t, os.MkdirAll(testdataDir, 0o750))
	path := filepath.Join(testdataDir, name+".golden")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "write golden %s", path)
}

// Assert compares got with the named golden file of the calling package,
// rewriting the file first when -update is set.
func Assert(t *testing.T, name, got string) {
	t.Helper()
	dir := callerTestdata(t, 2)
	if *Update {
		Write(t, dir, name, got)
	}
	want := Read(t, dir, name)
	require.NotEmpty(t, want, "golden file %s.golden is missing; run with -update", name)
	require.Equal(t, want, got)
}

func safeName(t *testing.T, name string) {
	t.Helper()
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		t.Fatalf("invalid golden name %q", name)
	}
}
