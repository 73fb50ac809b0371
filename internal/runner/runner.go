// SPDX-License-Identifier: AGPL-3.0-or-later
package runner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Runner manages the execution of tasks.
type Runner struct {
	tasks []Task
	store *StateStore
	deps  *Deps
}

// NewRunner creates a new runner with the given tasks and dependencies.
func NewRunner(tasks []Task, store *StateStore, deps *Deps) *Runner {
	return &Runner{
		tasks: tasks,
		store: store,
		deps:  deps,
	}
}

// RunAll executes all tasks in order.
// It continues execution even if a task fails, accumulating failures.
// Returns an error if ANY task failed.
func (r *Runner) RunAll(ctx context.Context) error {
	return r.executeSequence(ctx, r.tasks)
}

// Resume re-runs only the tasks that failed in the last run.
// Nothing failed (or nothing ran) is a successful no-op.
func (r *Runner) Resume(ctx context.Context) error {
	failed, err := r.store.LoadFailedTasks()
	if err != nil {
		return fmt.Errorf("loading failed tasks: %w", err)
	}
	if len(failed) == 0 {
		return nil
	}

	toRun := []Task{}
	for _, id := range failed {
		if task := r.findTask(id); task != nil {
			toRun = append(toRun, task)
		}
	}
	return r.executeSequence(ctx, toRun)
}

// RunList executes a specific list of task IDs.
func (r *Runner) RunList(ctx context.Context, taskIDs []string) error {
	var toRun []Task
	for _, id := range taskIDs {
		t := r.findTask(id)
		if t == nil {
			return fmt.Errorf("task not found: %s", id)
		}
		toRun = append(toRun, t)
	}
	return r.executeSequence(ctx, toRun)
}

func (r *Runner) findTask(id string) Task {
	for _, t := range r.tasks {
		if t.ID() == id {
			return t
		}
	}
	return nil
}

func (r *Runner) out() io.Writer {
	if r.deps != nil && r.deps.Out != nil {
		return r.deps.Out
	}
	return io.Discard
}

// executeSequence runs a sequence of tasks, updating state.
// It returns error if ANY task failed.
func (r *Runner) executeSequence(ctx context.Context, tasks []Task) error {
	out := r.out()
	var failed []string
	var names []string

	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}

		id := task.ID()
		names = append(names, id)

		rule := strings.Repeat("━", 40)
		fmt.Fprintf(out, "\n%s\nTASK: %s\n%s\n\n", rule, id, rule)

		start := time.Now()
		res := task.Run(ctx, r.deps)
		res.Task = id
		elapsed := time.Since(start).Round(time.Millisecond)

		if err := r.store.WriteTaskResult(res); err != nil {
			return fmt.Errorf("writing result for %s: %w", id, err)
		}

		switch res.Status {
		case StatusSkip:
			fmt.Fprintf(out, "SKIP: %s\n", id)
		case StatusPass:
			fmt.Fprintf(out, "PASS: %s (%s)\n", id, elapsed)
		default:
			failed = append(failed, id)
			fmt.Fprintf(out, "FAIL: %s (exit %d)\n", id, res.ExitCode)
		}
		if res.Note != "" {
			fmt.Fprintln(out, res.Note)
		}
	}

	lastRun := LastRun{
		Status: string(StatusPass),
		Tasks:  names,
		Failed: failed,
	}
	if len(failed) > 0 {
		lastRun.Status = string(StatusFail)
	}
	if err := r.store.WriteLastRun(lastRun); err != nil {
		return fmt.Errorf("writing last run: %w", err)
	}

	if len(failed) > 0 {
		return fmt.Errorf("run failed: %v", failed)
	}
	return nil
}
