// SPDX-License-Identifier: AGPL-3.0-or-later

// Package devdoc generates the reStructuredText index of the toolbox functions
// consumed by sphinxcontrib-matlabdomain.
package devdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bids-standard/bidstools/internal/fsutil"
)

// Header opens every generated document.
const Header = `.. AUTOMATICALLY GENERATED

.. _dev_doc:

developer documentation
***********************
`

// DefaultIgnoreDirs are package folders left out of the developer docs.
var DefaultIgnoreDirs = []string{"+util", "+transformers_list"}

// Generator renders one autofunction entry per MATLAB file below SourceDir.
type Generator struct {
	// SourceDir is the +bids package folder.
	SourceDir string
	OutFile   string

	// IgnoreDirs are top-level folder names of SourceDir to skip.
	IgnoreDirs []string
	// IgnoreFiles are file stems to skip anywhere.
	IgnoreFiles []string
}

// Generate renders the document and writes it to OutFile.
func (g *Generator) Generate() error {
	content, err := g.Render()
	if err != nil {
		return err
	}
	if err := fsutil.WriteFile(g.OutFile, []byte(content)); err != nil {
		return fmt.Errorf("writing %s: %w", g.OutFile, err)
	}
	return nil
}

// Render returns the document without writing it.
func (g *Generator) Render() (string, error) {
	var b strings.Builder
	b.WriteString(Header)

	subdirs, err := sortedSubdirs(g.SourceDir)
	if err != nil {
		return "", err
	}
	for _, name := range subdirs {
		if slices.Contains(g.IgnoreDirs, name) {
			continue
		}
		if err := g.renderDir(&b, filepath.Join(g.SourceDir, name), ""); err != nil {
			return "", err
		}
	}

	b.WriteString("\n")
	return b.String(), nil
}

// renderDir writes the section of dir and then recurses into its subfolders.
// parent is empty for top-level package folders.
func (g *Generator) renderDir(b *strings.Builder, dir, parent string) error {
	name := filepath.Base(dir)

	stems, err := matlabStems(dir)
	if err != nil {
		return err
	}
	if len(stems) > 0 {
		b.WriteString(title(name, parent))
	}
	for _, stem := range stems {
		if slices.Contains(g.IgnoreFiles, stem) {
			continue
		}
		fmt.Fprintf(b, ".. _%s:\n", stem)
		fmt.Fprintf(b, ".. autofunction:: %s\n", qualifiedName(name, parent, stem))
	}

	subdirs, err := sortedSubdirs(dir)
	if err != nil {
		return err
	}
	for _, sub := range subdirs {
		if err := g.renderDir(b, filepath.Join(dir, sub), name); err != nil {
			return err
		}
	}
	return nil
}

func title(name, parent string) string {
	text := name
	if parent != "" {
		text = parent + " " + name
	}
	return fmt.Sprintf("\n\n.. _%s:\n\n%s\n%s\n", text, text, strings.Repeat("=", len(text)))
}

func qualifiedName(name, parent, stem string) string {
	if parent == "" {
		return fmt.Sprintf("+bids.%s.%s", name, stem)
	}
	return fmt.Sprintf("src.%s.%s.%s", parent, name, stem)
}

func matlabStems(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var stems []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".m" {
			continue
		}
		stems = append(stems, strings.TrimSuffix(e.Name(), ".m"))
	}
	sort.Strings(stems)
	return stems, nil
}

func sortedSubdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
