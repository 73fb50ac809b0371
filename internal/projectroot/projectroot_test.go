// SPDX-License-Identifier: AGPL-3.0-or-later
package projectroot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "bidstools.toml"), nil, 0o644))
	nested := filepath.Join(root, "docs", "source")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := Find(nested)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, want, gotResolved)
}

func TestFind_GitMarker(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	got, err := Find(root)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindOrCwd_NoMarker(t *testing.T) {
	// t.TempDir may live below a repository; only assert the fallback contract.
	dir := t.TempDir()
	got, err := FindOrCwd(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
