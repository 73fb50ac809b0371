// SPDX-License-Identifier: AGPL-3.0-or-later
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
)

// Scanner lists the files below a root directory.
type Scanner struct {
	root string

	mu        sync.Mutex
	fileCache []string
}

// New creates a new Scanner for the given root directory.
func New(root string) *Scanner {
	return &Scanner{
		root: root,
	}
}

// Files returns every regular file below the root as slash-separated paths
// relative to it, caching the result for the instance lifetime.
func (s *Scanner) Files(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fileCache != nil {
		return s.fileCache, nil
	}

	files := []string{}
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", s.root, err)
	}

	s.fileCache = files
	return s.fileCache, nil
}

// FilesFiltered returns files matching the filter options.
func (s *Scanner) FilesFiltered(ctx context.Context, opts FilterOptions) ([]string, error) {
	all, err := s.Files(ctx)
	if err != nil {
		return nil, err
	}
	return FilterFiles(all, opts), nil
}
