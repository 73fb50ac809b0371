// SPDX-License-Identifier: AGPL-3.0-or-later

// Package bids builds BIDS-compliant relative paths from filename entities.
package bids

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// Modality directories used below a session directory.
const (
	ModalityFunc = "func"
	ModalityFmap = "fmap"
	ModalityAnat = "anat"
)

// ErrInvalidLabel is returned when an entity label cannot appear in a BIDS filename.
var ErrInvalidLabel = errors.New("invalid entity label")

// Entities is the set of filename entities understood by the naming policy.
// Empty labels and a zero Run are treated as absent.
type Entities struct {
	Subject     string
	Session     string
	Task        string
	Acquisition string
	Direction   string
	Run         int
	Suffix      string
	Extension   string
}

// Filename renders the entities in the fixed order
// sub, ses, task, acq, dir, run, suffix, extension.
func (e Entities) Filename() string {
	parts := make([]string, 0, 7)
	parts = append(parts, "sub-"+e.Subject)
	if e.Session != "" {
		parts = append(parts, "ses-"+e.Session)
	}
	if e.Task != "" {
		parts = append(parts, "task-"+e.Task)
	}
	if e.Acquisition != "" {
		parts = append(parts, "acq-"+e.Acquisition)
	}
	if e.Direction != "" {
		parts = append(parts, "dir-"+e.Direction)
	}
	if e.Run > 0 {
		parts = append(parts, "run-"+strconv.Itoa(e.Run))
	}
	if e.Suffix != "" {
		parts = append(parts, e.Suffix)
	}
	return strings.Join(parts, "_") + e.Extension
}

// With returns a copy of e with a different suffix and extension.
// Sidecars and events files share every other entity with their data file.
func (e Entities) With(suffix, ext string) Entities {
	e.Suffix = suffix
	e.Extension = ext
	return e
}

// Dir returns root/sub-<s>/ses-<x>/<modality>.
func (e Entities) Dir(root, modality string) string {
	return filepath.Join(root, "sub-"+e.Subject, "ses-"+e.Session, modality)
}

// Path returns the full path of the file below root.
func (e Entities) Path(root, modality string) string {
	return filepath.Join(e.Dir(root, modality), e.Filename())
}

// RelPath returns ses-<x>/<modality>/<filename>, the form used by IntendedFor.
// It always uses forward slashes.
func (e Entities) RelPath(modality string) string {
	return path.Join("ses-"+e.Session, modality, e.Filename())
}

// Validate reports labels that would corrupt the filename structure.
func (e Entities) Validate() error {
	if e.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidLabel)
	}
	labels := []struct {
		key, value string
	}{
		{"sub", e.Subject},
		{"ses", e.Session},
		{"task", e.Task},
		{"acq", e.Acquisition},
		{"dir", e.Direction},
	}
	for _, l := range labels {
		if strings.ContainsAny(l.value, "_-/\\ \t\n") {
			return fmt.Errorf("%w: %s-%q", ErrInvalidLabel, l.key, l.value)
		}
	}
	if e.Run < 0 {
		return fmt.Errorf("%w: run %d", ErrInvalidLabel, e.Run)
	}
	return nil
}
