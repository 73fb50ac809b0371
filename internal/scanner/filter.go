// SPDX-License-Identifier: AGPL-3.0-or-later
package scanner

import (
	"path"
	"slices"
	"strings"
)

// FilterOptions selects files from a scan.
type FilterOptions struct {
	// IncludeExtensions keeps only files with one of these extensions
	// (e.g. ".yaml"). Empty keeps every file.
	IncludeExtensions []string

	// TopLevelOnly drops files inside subdirectories of the root.
	TopLevelOnly bool
}

func (o FilterOptions) match(p string) bool {
	if o.TopLevelOnly && strings.Contains(p, "/") {
		return false
	}
	return len(o.IncludeExtensions) == 0 || slices.Contains(o.IncludeExtensions, path.Ext(p))
}

// FilterFiles returns the slash-separated paths matching opts, sorted.
func FilterFiles(paths []string, opts FilterOptions) []string {
	var out []string
	for _, p := range paths {
		if opts.match(p) {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	return out
}
