// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks adapts each repository utility to the runner.Task interface.
package tasks

import (
	"fmt"

	"github.com/bids-standard/bidstools/internal/fsutil"
	"github.com/bids-standard/bidstools/internal/runner"
)

// Exit codes recorded in task results.
const (
	exitFailure = 1
	exitConfig  = 2
	exitIO      = 4
)

// Registry defines the canonical order of tasks.
var Registry = []runner.Task{
	NewSchema(),
	NewDummy(),
	NewChangelog(),
	NewDocs(),
	NewPaper(),
	NewNotebooks(),
}

// IDs returns the registered task IDs in canonical order.
func IDs() []string {
	ids := make([]string, 0, len(Registry))
	for _, t := range Registry {
		ids = append(ids, t.ID())
	}
	return ids
}

func pass(id, note string) runner.TaskResult {
	return runner.TaskResult{Task: id, Status: runner.StatusPass, Note: note}
}

func fail(id string, code int, err error) runner.TaskResult {
	return runner.TaskResult{Task: id, Status: runner.StatusFail, ExitCode: code, Note: err.Error()}
}

// skipIfMissing returns a skip result when path does not exist.
func skipIfMissing(id, path string) (runner.TaskResult, bool) {
	ok, err := fsutil.Exists(path)
	if err != nil {
		return fail(id, exitIO, err), true
	}
	if !ok {
		return runner.TaskResult{
			Task:   id,
			Status: runner.StatusSkip,
			Note:   fmt.Sprintf("%s not found", path),
		}, true
	}
	return runner.TaskResult{}, false
}
