// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the optional bidstools.toml project configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bids-standard/bidstools/internal/changelog"
	"github.com/bids-standard/bidstools/internal/devdoc"
	"github.com/bids-standard/bidstools/internal/dummy"
)

// FileName is the configuration file looked up at the project root.
const FileName = "bidstools.toml"

// Config represents the project configuration. Every path is relative to the
// project root unless absolute.
type Config struct {
	Dummy     DummyConfig     `toml:"dummy"`
	Schema    SchemaConfig    `toml:"schema"`
	Changelog ChangelogConfig `toml:"changelog"`
	Docs      DocsConfig      `toml:"docs"`
	Paper     PaperConfig     `toml:"paper"`
	Notebooks NotebooksConfig `toml:"notebooks"`
	Run       RunConfig       `toml:"run"`
}

// DummyConfig configures the dummy dataset generator.
type DummyConfig struct {
	OutputDir          string   `toml:"output_dir"`
	Subjects           []string `toml:"subjects"`
	Sessions           []string `toml:"sessions"`
	AnatSession        string   `toml:"anat_session"`
	EchoTime1          float64  `toml:"echo_time_1"`
	EchoTime2          float64  `toml:"echo_time_2"`
	Jobs               int      `toml:"jobs"`
	DatasetDescription bool     `toml:"dataset_description"`
}

// SchemaConfig configures the schema conversion.
type SchemaConfig struct {
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`
}

// ChangelogConfig configures the changelog link rewriting.
type ChangelogConfig struct {
	Path       string `toml:"path"`
	Repository string `toml:"repository"`
}

// DocsConfig configures the developer documentation index.
type DocsConfig struct {
	SourceDir   string   `toml:"source_dir"`
	OutputFile  string   `toml:"output_file"`
	IgnoreDirs  []string `toml:"ignore_dirs"`
	IgnoreFiles []string `toml:"ignore_files"`
}

// PaperConfig configures the paper metadata extraction.
type PaperConfig struct {
	CitationFile string `toml:"citation_file"`
	OutputFile   string `toml:"output_file"`
	FirstAuthor  string `toml:"first_author"`
	SortAuthors  bool   `toml:"sort_authors"`
}

// NotebooksConfig configures the notebook conversion.
type NotebooksConfig struct {
	Dir string `toml:"dir"`
}

// RunConfig configures the task runner.
type RunConfig struct {
	StateDir string `toml:"state_dir"`
}

// Default returns the configuration matching the bids-matlab repository layout.
func Default() *Config {
	d := dummy.DefaultConfig()
	return &Config{
		Dummy: DummyConfig{
			OutputDir:          d.Root,
			Subjects:           d.Subjects,
			Sessions:           d.Sessions,
			AnatSession:        d.AnatSession,
			EchoTime1:          d.EchoTime1,
			EchoTime2:          d.EchoTime2,
			Jobs:               d.Jobs,
			DatasetDescription: d.DatasetDescription,
		},
		Schema: SchemaConfig{
			InputDir:  "bids-specification/src/schema",
			OutputDir: "schema",
		},
		Changelog: ChangelogConfig{
			Path:       "docs/source/changelog.md",
			Repository: changelog.DefaultRepository,
		},
		Docs: DocsConfig{
			SourceDir:  "+bids",
			OutputFile: "docs/source/dev_doc.rst",
			IgnoreDirs: slices.Clone(devdoc.DefaultIgnoreDirs),
		},
		Paper: PaperConfig{
			CitationFile: "CITATION.cff",
			OutputFile:   "docs/paper/metadata.yml",
			FirstAuthor:  "Gau",
			SortAuthors:  true,
		},
		Notebooks: NotebooksConfig{
			Dir: "demos/notebooks",
		},
		Run: RunConfig{
			StateDir: ".bidstools/run",
		},
	}
}

// Load loads the configuration from root/bidstools.toml.
// Returns a default config if the file doesn't exist.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path on top of Default.
// Keys the configuration does not know are reported as an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Resolve returns path anchored at root when it is relative.
func Resolve(root, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// Generator converts the dummy section into a generator configuration
// with its output directory anchored at root.
func (d DummyConfig) Generator(root string) dummy.Config {
	return dummy.Config{
		Root:               Resolve(root, d.OutputDir),
		Subjects:           d.Subjects,
		Sessions:           d.Sessions,
		AnatSession:        d.AnatSession,
		EchoTime1:          d.EchoTime1,
		EchoTime2:          d.EchoTime2,
		Jobs:               d.Jobs,
		DatasetDescription: d.DatasetDescription,
	}
}
