// SPDX-License-Identifier: AGPL-3.0-or-later
package runner

// TaskStatus represents the outcome of a task execution.
type TaskStatus string

const (
	StatusPass TaskStatus = "pass"
	StatusFail TaskStatus = "fail"
	StatusSkip TaskStatus = "skip"
)

// TaskResult represents the result of a single task execution.
// Stored as <state dir>/tasks/<task>.json.
type TaskResult struct {
	Task     string     `json:"task"`
	Status   TaskStatus `json:"status"`
	ExitCode int        `json:"exit_code"`
	Note     string     `json:"note,omitempty"`
}

// LastRun represents the summary of the last execution.
// Stored as <state dir>/last-run.json.
type LastRun struct {
	Status string   `json:"status"` // "pass" or "fail"
	Tasks  []string `json:"tasks"`  // Ordered list of tasks run
	Failed []string `json:"failed"` // List of failed tasks
}
