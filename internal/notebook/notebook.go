// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notebook converts Octave Jupyter notebooks into MATLAB scripts.
package notebook

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	goslug "github.com/gosimple/slug"

	"github.com/bids-standard/bidstools/internal/fsutil"
	"github.com/bids-standard/bidstools/internal/scanner"
)

// Notebook is the subset of the nbformat document that is converted.
type Notebook struct {
	Cells []Cell `json:"cells"`
}

// Cell is one notebook cell.
type Cell struct {
	CellType string `json:"cell_type"`
	Source   Source `json:"source"`
}

// Source holds the lines of a cell. nbformat allows either a list of lines
// or a single string; both decode into lines that keep their newlines.
type Source []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Source) UnmarshalJSON(data []byte) error {
	var lines []string
	if err := json.Unmarshal(data, &lines); err == nil {
		*s = lines
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("cell source must be a string or a list of strings: %w", err)
	}
	lines = strings.SplitAfter(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	*s = lines
	return nil
}

// slugMu guards the package-level options of gosimple/slug.
var slugMu sync.Mutex

// caseSlug slugs s without lowercasing it.
func caseSlug(s string) string {
	slugMu.Lock()
	defer slugMu.Unlock()
	prev := goslug.Lowercase
	goslug.Lowercase = false
	defer func() { goslug.Lowercase = prev }()
	return goslug.MakeLang(s, "en")
}

// ScriptName returns the MATLAB script file name for a notebook file name.
// MATLAB identifiers cannot contain dashes, so the slug uses underscores.
// Case is kept so existing scripts are regenerated in place.
func ScriptName(notebookFile string) string {
	stem := strings.TrimSuffix(filepath.Base(notebookFile), filepath.Ext(notebookFile))
	name := caseSlug(stem)
	if name == "" {
		name = stem
	}
	return strings.ReplaceAll(name, "-", "_") + ".m"
}

// Render returns the MATLAB script for nb. Markdown cells become comments,
// code cells become %% sections; bare URLs in code cells are commented out.
func Render(nb *Notebook) string {
	var b strings.Builder
	for _, cell := range nb.Cells {
		switch cell.CellType {
		case "markdown":
			for _, line := range cell.Source {
				b.WriteString("% " + line)
			}
			b.WriteString("\n\n")
		case "code":
			b.WriteString("%%\n\n")
			for _, line := range cell.Source {
				if strings.HasPrefix(line, "https://") {
					b.WriteString("% " + line)
				} else {
					b.WriteString(line)
				}
			}
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// Convert writes the script for the notebook at path next to it and returns
// the script path.
func Convert(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading notebook: %w", err)
	}
	var nb Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}

	out := filepath.Join(filepath.Dir(path), ScriptName(path))
	if err := fsutil.WriteFile(out, []byte(Render(&nb))); err != nil {
		return "", err
	}
	return out, nil
}

// ConvertDir converts every notebook directly inside dir and returns the
// written script paths in order.
func ConvertDir(ctx context.Context, dir string) ([]string, error) {
	files, err := scanner.New(dir).FilesFiltered(ctx, scanner.FilterOptions{
		IncludeExtensions: []string{".ipynb"},
		TopLevelOnly:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing notebooks: %w", err)
	}

	outs := make([]string, 0, len(files))
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return outs, err
		}
		out, err := Convert(filepath.Join(dir, rel))
		if err != nil {
			return outs, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}
