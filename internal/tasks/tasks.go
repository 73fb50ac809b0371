// SPDX-License-Identifier: AGPL-3.0-or-later
package tasks

import (
	"context"
	"fmt"

	"github.com/bids-standard/bidstools/internal/changelog"
	"github.com/bids-standard/bidstools/internal/citation"
	"github.com/bids-standard/bidstools/internal/config"
	"github.com/bids-standard/bidstools/internal/devdoc"
	"github.com/bids-standard/bidstools/internal/dummy"
	"github.com/bids-standard/bidstools/internal/notebook"
	"github.com/bids-standard/bidstools/internal/runner"
	"github.com/bids-standard/bidstools/internal/schemaconv"
)

// Schema converts the BIDS schema sources to JSON.
type Schema struct{ id string }

func NewSchema() runner.Task { return &Schema{id: "schema"} }

func (s *Schema) ID() string { return s.id }

func (s *Schema) Run(ctx context.Context, deps *runner.Deps) runner.TaskResult {
	in := config.Resolve(deps.Root, deps.Config.Schema.InputDir)
	if res, skip := skipIfMissing(s.id, in); skip {
		return res
	}
	c := &schemaconv.Converter{
		InputDir:  in,
		OutputDir: config.Resolve(deps.Root, deps.Config.Schema.OutputDir),
		Logger:    deps.Logger,
	}
	n, err := c.Convert(ctx)
	if err != nil {
		return fail(s.id, exitIO, err)
	}
	return pass(s.id, fmt.Sprintf("Converted %d schema files", n))
}

// Dummy generates the dummy BIDS dataset used by the test suite.
type Dummy struct{ id string }

func NewDummy() runner.Task { return &Dummy{id: "dummy"} }

func (s *Dummy) ID() string { return s.id }

func (s *Dummy) Run(ctx context.Context, deps *runner.Deps) runner.TaskResult {
	cfg := deps.Config.Dummy.Generator(deps.Root)
	if err := cfg.Validate(); err != nil {
		return fail(s.id, exitConfig, err)
	}
	sum, err := dummy.New(cfg, deps.Logger).Generate(ctx)
	if err != nil {
		return fail(s.id, exitIO, err)
	}
	return pass(s.id, fmt.Sprintf("Wrote %d files to %s", sum.Files, sum.Root))
}

// Changelog links mentions and pull requests in the changelog.
type Changelog struct{ id string }

func NewChangelog() runner.Task { return &Changelog{id: "changelog"} }

func (s *Changelog) ID() string { return s.id }

func (s *Changelog) Run(ctx context.Context, deps *runner.Deps) runner.TaskResult {
	path := config.Resolve(deps.Root, deps.Config.Changelog.Path)
	if res, skip := skipIfMissing(s.id, path); skip {
		return res
	}
	r := &changelog.Rewriter{Repository: deps.Config.Changelog.Repository}
	if err := r.RewriteFile(path); err != nil {
		return fail(s.id, exitIO, err)
	}
	return pass(s.id, "")
}

// Docs regenerates the developer documentation index.
type Docs struct{ id string }

func NewDocs() runner.Task { return &Docs{id: "docs"} }

func (s *Docs) ID() string { return s.id }

func (s *Docs) Run(ctx context.Context, deps *runner.Deps) runner.TaskResult {
	cfg := deps.Config.Docs
	src := config.Resolve(deps.Root, cfg.SourceDir)
	if res, skip := skipIfMissing(s.id, src); skip {
		return res
	}
	g := &devdoc.Generator{
		SourceDir:   src,
		OutFile:     config.Resolve(deps.Root, cfg.OutputFile),
		IgnoreDirs:  cfg.IgnoreDirs,
		IgnoreFiles: cfg.IgnoreFiles,
	}
	if err := g.Generate(); err != nil {
		return fail(s.id, exitIO, err)
	}
	return pass(s.id, "")
}

// Paper derives the paper front matter from CITATION.cff.
type Paper struct{ id string }

func NewPaper() runner.Task { return &Paper{id: "paper"} }

func (s *Paper) ID() string { return s.id }

func (s *Paper) Run(ctx context.Context, deps *runner.Deps) runner.TaskResult {
	cfg := deps.Config.Paper
	path := config.Resolve(deps.Root, cfg.CitationFile)
	if res, skip := skipIfMissing(s.id, path); skip {
		return res
	}
	c, err := citation.Load(path)
	if err != nil {
		return fail(s.id, exitIO, err)
	}
	m, err := citation.BuildMetadata(c, citation.Options{
		FirstAuthor:        cfg.FirstAuthor,
		SortAlphabetically: cfg.SortAuthors,
	})
	if err != nil {
		return fail(s.id, exitFailure, err)
	}
	if err := citation.WriteMetadata(config.Resolve(deps.Root, cfg.OutputFile), m); err != nil {
		return fail(s.id, exitIO, err)
	}
	return pass(s.id, fmt.Sprintf("Listed %d authors", len(m.Authors)))
}

// Notebooks converts the demo notebooks into MATLAB scripts.
type Notebooks struct{ id string }

func NewNotebooks() runner.Task { return &Notebooks{id: "notebooks"} }

func (s *Notebooks) ID() string { return s.id }

func (s *Notebooks) Run(ctx context.Context, deps *runner.Deps) runner.TaskResult {
	dir := config.Resolve(deps.Root, deps.Config.Notebooks.Dir)
	if res, skip := skipIfMissing(s.id, dir); skip {
		return res
	}
	outs, err := notebook.ConvertDir(ctx, dir)
	if err != nil {
		return fail(s.id, exitIO, err)
	}
	return pass(s.id, fmt.Sprintf("Converted %d notebooks", len(outs)))
}
