// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dummy synthesizes a small BIDS dataset made of zero-byte data
// placeholders, events tables and JSON sidecars. It is a test fixture
// builder: the output is fully determined by Config.
package dummy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/bids-standard/bidstools/internal/bids"
	"github.com/bids-standard/bidstools/internal/fsutil"
)

// Generator writes the dummy dataset described by Config.
type Generator struct {
	Config Config
	Logger *slog.Logger

	files atomic.Int64
}

// Summary reports what a generation pass produced.
type Summary struct {
	Root     string
	Subjects int
	Sessions int
	Files    int64
}

// PhaseDiffSidecar is the metadata written next to each phase-difference map.
type PhaseDiffSidecar struct {
	EchoTime1   float64 `json:"EchoTime1"`
	EchoTime2   float64 `json:"EchoTime2"`
	IntendedFor string  `json:"IntendedFor"`
}

// DatasetDescription is the minimal dataset_description.json content.
type DatasetDescription struct {
	Name        string `json:"Name"`
	BIDSVersion string `json:"BIDSVersion"`
}

// BIDSVersion is written to dataset_description.json.
const BIDSVersion = "1.8.0"

// New returns a generator for cfg.
func New(cfg Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Generator{Config: cfg, Logger: logger}
}

// Generate runs one generation pass. Every (subject, session) pair and every
// subject's anatomical scan is an independent unit touching a disjoint
// subtree; up to Config.Jobs units run at once. The first failure cancels
// the remaining units and is returned. Partial output is left in place.
func (g *Generator) Generate(ctx context.Context) (Summary, error) {
	cfg := g.Config
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	if g.Logger == nil {
		g.Logger = slog.New(slog.DiscardHandler)
	}
	g.files.Store(0)

	if err := fsutil.EnsureDir(cfg.Root); err != nil {
		return Summary{}, err
	}
	if cfg.DatasetDescription {
		if err := g.writeDatasetDescription(); err != nil {
			return Summary{}, err
		}
	}

	limit := cfg.Jobs
	if limit < 1 {
		limit = 1
	}
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(limit)

	for _, subject := range cfg.Subjects {
		for _, session := range cfg.Sessions {
			grp.Go(func() error {
				return g.emitSession(gctx, subject, session)
			})
		}
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return g.emitAnat(subject)
		})
	}

	if err := grp.Wait(); err != nil {
		return Summary{}, err
	}

	sum := Summary{
		Root:     cfg.Root,
		Subjects: len(cfg.Subjects),
		Sessions: len(cfg.Sessions),
		Files:    g.files.Load(),
	}
	g.Logger.Info("dummy dataset created", "root", cfg.Root, "files", sum.Files)
	return sum, nil
}

// emitSession runs the per-session emitters in reference order.
func (g *Generator) emitSession(ctx context.Context, subject, session string) error {
	for _, task := range []Task{VisMotion(), VisLocalizer(), Rest()} {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.emitTask(subject, session, task); err != nil {
			return fmt.Errorf("task %s for sub-%s ses-%s: %w", task.Name, subject, session, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := g.emitFieldMaps(subject, session); err != nil {
		return fmt.Errorf("field maps for sub-%s ses-%s: %w", subject, session, err)
	}
	g.Logger.Debug("session generated", "subject", subject, "session", session)
	return nil
}

// emitTask touches one bold placeholder per run and writes its events table.
func (g *Generator) emitTask(subject, session string, task Task) error {
	root := g.Config.Root
	for i, run := range task.Runs {
		bold := task.Bold(subject, session, run)
		if i == 0 {
			if err := fsutil.EnsureDir(bold.Dir(root, bids.ModalityFunc)); err != nil {
				return err
			}
		}
		if err := g.touch(bold.Path(root, bids.ModalityFunc)); err != nil {
			return err
		}
		if run.Events == nil {
			continue
		}
		events := bold.With("events", ".tsv")
		if err := g.write(events.Path(root, bids.ModalityFunc), EncodeEvents(run.Events)); err != nil {
			return err
		}
	}
	return nil
}

// emitFieldMaps writes phase-difference and magnitude placeholders for each
// target plus a sidecar whose IntendedFor names that target.
func (g *Generator) emitFieldMaps(subject, session string) error {
	root := g.Config.Root
	targets := fieldMapTargets(subject, session)

	base := bids.Entities{Subject: subject, Session: session, Extension: ".nii"}
	if err := fsutil.EnsureDir(base.Dir(root, bids.ModalityFmap)); err != nil {
		return err
	}

	for _, suffix := range fieldMapSuffixes {
		for i := range targets {
			fmap := base
			fmap.Run = i + 1
			fmap.Suffix = suffix
			if err := g.touch(fmap.Path(root, bids.ModalityFmap)); err != nil {
				return err
			}
		}
	}

	for i, target := range targets {
		sidecar := PhaseDiffSidecar{
			EchoTime1:   g.Config.EchoTime1,
			EchoTime2:   g.Config.EchoTime2,
			IntendedFor: target.RelPath(bids.ModalityFunc),
		}
		data, err := encodeJSON(sidecar)
		if err != nil {
			return err
		}
		fmap := base.With("phasediff", ".json")
		fmap.Run = i + 1
		if err := g.write(fmap.Path(root, bids.ModalityFmap), data); err != nil {
			return err
		}
	}
	return nil
}

// emitAnat touches the T1w placeholder filed under the fixed anatomical session.
func (g *Generator) emitAnat(subject string) error {
	anat := bids.Entities{
		Subject:   subject,
		Session:   g.Config.AnatSession,
		Suffix:    "T1w",
		Extension: ".nii",
	}
	if err := fsutil.EnsureDir(anat.Dir(g.Config.Root, bids.ModalityAnat)); err != nil {
		return fmt.Errorf("anat for sub-%s: %w", subject, err)
	}
	if err := g.touch(anat.Path(g.Config.Root, bids.ModalityAnat)); err != nil {
		return fmt.Errorf("anat for sub-%s: %w", subject, err)
	}
	return nil
}

func (g *Generator) writeDatasetDescription() error {
	data, err := encodeJSON(DatasetDescription{Name: "dummy", BIDSVersion: BIDSVersion})
	if err != nil {
		return err
	}
	return g.write(filepath.Join(g.Config.Root, "dataset_description.json"), data)
}

func (g *Generator) touch(path string) error {
	if err := fsutil.Touch(path); err != nil {
		return err
	}
	g.files.Add(1)
	return nil
}

func (g *Generator) write(path string, data []byte) error {
	if err := fsutil.WriteFile(path, data); err != nil {
		return err
	}
	g.files.Add(1)
	return nil
}

func encodeJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding sidecar: %w", err)
	}
	return append(data, '\n'), nil
}
