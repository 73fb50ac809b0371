// SPDX-License-Identifier: AGPL-3.0-or-later
package tasks

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bids-standard/bidstools/internal/config"
	"github.com/bids-standard/bidstools/internal/logging"
	"github.com/bids-standard/bidstools/internal/runner"
)

func newDeps(t *testing.T) *runner.Deps {
	t.Helper()
	return &runner.Deps{
		Root:   t.TempDir(),
		Config: config.Default(),
		Logger: logging.Discard(),
		Out:    &bytes.Buffer{},
	}
}

func TestRegistry_Order(t *testing.T) {
	assert.Equal(t, []string{"schema", "dummy", "changelog", "docs", "paper", "notebooks"}, IDs())
}

func TestTasks_SkipWhenInputsMissing(t *testing.T) {
	deps := newDeps(t)
	for _, task := range []runner.Task{NewSchema(), NewChangelog(), NewDocs(), NewPaper(), NewNotebooks()} {
		res := task.Run(context.Background(), deps)
		assert.Equal(t, runner.StatusSkip, res.Status, task.ID())
	}
}

func TestDummy_Run(t *testing.T) {
	deps := newDeps(t)
	res := NewDummy().Run(context.Background(), deps)

	require.Equal(t, runner.StatusPass, res.Status, res.Note)
	assert.DirExists(t, filepath.Join(deps.Root, "tests", "data", "dummy", "raw", "sub-ctrl01", "ses-02", "fmap"))
}

func TestDummy_InvalidConfig(t *testing.T) {
	deps := newDeps(t)
	deps.Config.Dummy.Subjects = nil

	res := NewDummy().Run(context.Background(), deps)
	assert.Equal(t, runner.StatusFail, res.Status)
	assert.Equal(t, exitConfig, res.ExitCode)
}

func TestPaper_FirstAuthorMissing(t *testing.T) {
	deps := newDeps(t)
	cff := "authors:\n  - given-names: Ada\n    family-names: Lovelace\n"
	require.NoError(t, os.WriteFile(filepath.Join(deps.Root, "CITATION.cff"), []byte(cff), 0o644))

	res := NewPaper().Run(context.Background(), deps)
	assert.Equal(t, runner.StatusFail, res.Status)
	assert.Contains(t, res.Note, "Gau")
}

func TestRunAll_WithRunner(t *testing.T) {
	deps := newDeps(t)
	store := runner.NewStateStore(filepath.Join(deps.Root, ".bidstools", "run"))

	r := runner.NewRunner(Registry, store, deps)
	require.NoError(t, r.RunAll(context.Background()))

	last, err := store.ReadLastRun()
	require.NoError(t, err)
	assert.Equal(t, IDs(), last.Tasks)
}
