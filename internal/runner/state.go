// SPDX-License-Identifier: AGPL-3.0-or-later
package runner

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bids-standard/bidstools/internal/fsutil"
)

// StateStore persists run results below a base directory:
//
//	<base>/last-run.json
//	<base>/tasks/<task>.json
type StateStore struct {
	baseDir string
}

// NewStateStore creates a store at the given base directory (e.g. .bidstools/run).
func NewStateStore(baseDir string) *StateStore {
	return &StateStore{baseDir: baseDir}
}

// Dir returns the base directory.
func (s *StateStore) Dir() string { return s.baseDir }

func (s *StateStore) lastRunPath() string {
	return filepath.Join(s.baseDir, "last-run.json")
}

func (s *StateStore) taskPath(taskID string) string {
	return filepath.Join(s.baseDir, "tasks", taskID+".json")
}

// ReadLastRun loads the last execution summary, or nil if nothing ran yet.
func (s *StateStore) ReadLastRun() (*LastRun, error) {
	var last LastRun
	ok, err := readJSON(s.lastRunPath(), &last)
	if !ok || err != nil {
		return nil, err
	}
	return &last, nil
}

// ReadTask loads the stored result of a task, or nil if it never ran.
func (s *StateStore) ReadTask(taskID string) (*TaskResult, error) {
	var res TaskResult
	ok, err := readJSON(s.taskPath(taskID), &res)
	if !ok || err != nil {
		return nil, err
	}
	return &res, nil
}

// WriteLastRun saves the execution summary.
func (s *StateStore) WriteLastRun(last LastRun) error {
	return writeJSON(s.lastRunPath(), last)
}

// WriteTaskResult saves a task's result.
func (s *StateStore) WriteTaskResult(res TaskResult) error {
	return writeJSON(s.taskPath(res.Task), res)
}

// Reset clears the state directory.
func (s *StateStore) Reset() error {
	return os.RemoveAll(s.baseDir)
}

// LoadFailedTasks returns the tasks that failed in the last run.
func (s *StateStore) LoadFailedTasks() ([]string, error) {
	last, err := s.ReadLastRun()
	if err != nil || last == nil {
		return nil, err
	}
	return last.Failed, nil
}

// readJSON decodes path into v. A missing file reports ok=false without error.
func readJSON(path string, v any) (ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return fsutil.WriteFile(path, buf.Bytes())
}
