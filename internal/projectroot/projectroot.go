// SPDX-License-Identifier: AGPL-3.0-or-later

// Package projectroot locates the repository the tools operate on.
package projectroot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no marker is found up to the filesystem root.
var ErrNotFound = errors.New("project root not found")

// Markers identify a project root, in order of precedence within a directory.
var Markers = []string{"bidstools.toml", ".git"}

// Find walks up from start and returns the first directory containing one of Markers.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}
	for {
		for _, m := range Markers {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: searched upward from %s", ErrNotFound, start)
		}
		dir = parent
	}
}

// FindOrCwd returns Find(start), falling back to start itself when no marker exists.
func FindOrCwd(start string) (string, error) {
	root, err := Find(start)
	if errors.Is(err, ErrNotFound) {
		return filepath.Abs(start)
	}
	return root, err
}
