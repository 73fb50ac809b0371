// SPDX-License-Identifier: AGPL-3.0-or-later
package runner

import (
	"context"
	"io"
	"log/slog"

	"github.com/bids-standard/bidstools/internal/config"
)

// Deps contains dependencies injected into tasks.
type Deps struct {
	// Root is the project root every configured path is anchored at.
	Root   string
	Config *config.Config
	Logger *slog.Logger
	Out    io.Writer
}

// Task is one repository maintenance step.
type Task interface {
	// ID returns the unique identifier (e.g. "dummy").
	ID() string

	// Run executes the task.
	Run(ctx context.Context, deps *Deps) TaskResult
}
