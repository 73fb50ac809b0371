// SPDX-License-Identifier: AGPL-3.0-or-later

// Package schemaconv converts the BIDS schema YAML sources into JSON files.
package schemaconv

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bids-standard/bidstools/internal/fsutil"
	"github.com/bids-standard/bidstools/internal/scanner"
)

// Converter mirrors every *.yaml file below InputDir as *.json below OutputDir.
type Converter struct {
	InputDir  string
	OutputDir string
	Logger    *slog.Logger
}

// Convert walks InputDir and writes one JSON file per YAML file.
// It returns the number of files converted.
func (c *Converter) Convert(ctx context.Context) (int, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	files, err := scanner.New(c.InputDir).FilesFiltered(ctx, scanner.FilterOptions{
		IncludeExtensions: []string{".yaml"},
	})
	if err != nil {
		return 0, fmt.Errorf("listing schema files: %w", err)
	}
	if err := fsutil.EnsureDir(c.OutputDir); err != nil {
		return 0, err
	}

	for i, rel := range files {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		in := filepath.Join(c.InputDir, filepath.FromSlash(rel))
		out := filepath.Join(c.OutputDir, filepath.FromSlash(strings.TrimSuffix(rel, ".yaml")+".json"))

		logger.Info("converting schema file", "file", in)
		if err := convertFile(in, out); err != nil {
			return i, err
		}
	}
	return len(files), nil
}

func convertFile(in, out string) error {
	src, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", in, err)
	}
	data, err := ToJSON(src)
	if err != nil {
		return fmt.Errorf("converting %s: %w", in, err)
	}
	return fsutil.WriteFile(out, data)
}

// ToJSON converts the first YAML document in src to indented JSON,
// preserving mapping key order.
func ToJSON(src []byte) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	return encode(&doc)
}
