// SPDX-License-Identifier: AGPL-3.0-or-later
package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterFiles(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		opts     FilterOptions
		expected []string
	}{
		{
			name:  "extension filter",
			paths: []string{"a.yaml", "b.md", "c/d.yaml"},
			opts: FilterOptions{
				IncludeExtensions: []string{".yaml"},
			},
			expected: []string{"a.yaml", "c/d.yaml"},
		},
		{
			name:  "top level only",
			paths: []string{"one.ipynb", "nested/two.ipynb", "three.md"},
			opts: FilterOptions{
				IncludeExtensions: []string{".ipynb"},
				TopLevelOnly:      true,
			},
			expected: []string{"one.ipynb"},
		},
		{
			name:     "extension is exact",
			paths:    []string{"z.yaml", "a.yml", "b.yaml.bak", "c/.yaml"},
			opts:     FilterOptions{IncludeExtensions: []string{".yaml"}},
			expected: []string{"c/.yaml", "z.yaml"},
		},
		{
			name:     "no matches",
			paths:    []string{"a.md"},
			opts:     FilterOptions{IncludeExtensions: []string{".ipynb"}},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterFiles(tt.paths, tt.opts)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestScanner(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	for _, rel := range []string{"objects/modality.yaml", "rules/files/raw/func.yaml", "README.md"} {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}

	s := New(dir)
	files, err := s.Files(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"README.md", "objects/modality.yaml", "rules/files/raw/func.yaml"}, files)

	yamls, err := s.FilesFiltered(ctx, FilterOptions{IncludeExtensions: []string{".yaml"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"objects/modality.yaml", "rules/files/raw/func.yaml"}, yamls)

	// Cached: files added later are not seen by the same instance.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "late.yaml"), []byte("x"), 0o644))
	again, err := s.Files(ctx)
	require.NoError(t, err)
	assert.Len(t, again, 3)
}

func TestScanner_MissingRoot(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing"))
	_, err := s.Files(context.Background())
	assert.Error(t, err)
}
