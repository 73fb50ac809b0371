// SPDX-License-Identifier: AGPL-3.0-or-later
package devdoc_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bids-standard/bidstools/internal/devdoc"
	"github.com/bids-standard/bidstools/internal/testutil/golden"
)

func writeTree(t *testing.T, root string, files []string) {
	t.Helper()
	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("function out = f()\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func TestGenerator_Generate_Golden(t *testing.T) {
	// 1. Build a fake +bids package
	src := filepath.Join(t.TempDir(), "+bids")
	writeTree(t, src, []string{
		"layout.m",
		"+internal/parse_filename.m",
		"+internal/return_file_index.m",
		"+internal/README.md",
		"+schema/+private/load_schema.m",
		"+util/jsondecode.m",
		"+report/report.m",
		"+report/ignored_helper.m",
	})

	// 2. Generate
	out := filepath.Join(t.TempDir(), "docs", "dev_doc.rst")
	gen := &devdoc.Generator{
		SourceDir:   src,
		OutFile:     out,
		IgnoreDirs:  devdoc.DefaultIgnoreDirs,
		IgnoreFiles: []string{"ignored_helper"},
	}
	if err := gen.Generate(); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}

	// 3. Compare with golden
	golden.Assert(t, "dev_doc", string(got))
}

func TestGenerator_MissingSource(t *testing.T) {
	gen := &devdoc.Generator{SourceDir: filepath.Join(t.TempDir(), "missing"), OutFile: filepath.Join(t.TempDir(), "x.rst")}
	if err := gen.Generate(); err == nil {
		t.Fatal("expected error for missing source directory")
	}
}
