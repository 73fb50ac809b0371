// SPDX-License-Identifier: AGPL-3.0-or-later
package dummy

import "github.com/bids-standard/bidstools/internal/bids"

// Task describes the functional files emitted for one task in every session.
type Task struct {
	Name string
	Runs []Run
}

// Run is one functional acquisition of a task.
type Run struct {
	// Index is rendered as the run entity; 0 leaves it out of the filename.
	Index       int
	Acquisition string
	Direction   string

	// Events is written next to the bold file; nil means no events table.
	Events []Event
}

// Bold returns the entities of the bold placeholder for r.
func (t Task) Bold(subject, session string, r Run) bids.Entities {
	return bids.Entities{
		Subject:     subject,
		Session:     session,
		Task:        t.Name,
		Acquisition: r.Acquisition,
		Direction:   r.Direction,
		Run:         r.Index,
		Suffix:      "bold",
		Extension:   ".nii",
	}
}

// VisMotion has two runs with distinct event schedules plus two extra
// acquisitions that exercise the acq and dir entities.
func VisMotion() Task {
	return Task{
		Name: "vismotion",
		Runs: []Run{
			{Index: 1, Events: []Event{
				{Onset: 2, Duration: 2, TrialType: "VisMotUp"},
				{Onset: 4, Duration: 2, TrialType: "VisMotDown"},
			}},
			{Index: 2, Events: []Event{
				{Onset: 3, Duration: 2, TrialType: "VisMotDown"},
				{Onset: 6, Duration: 2, TrialType: "VisMotUp"},
			}},
			{Index: 1, Acquisition: "1p60mm"},
			{Index: 1, Acquisition: "1p60mm", Direction: "PA"},
		},
	}
}

// VisLocalizer is a single block-design run without a run entity.
func VisLocalizer() Task {
	return Task{
		Name: "vislocalizer",
		Runs: []Run{
			{Events: []Event{
				{Onset: 2, Duration: 15, TrialType: "VisMot"},
				{Onset: 25, Duration: 15, TrialType: "VisStat"},
			}},
		},
	}
}

// Rest is a single resting-state run; it has no trial structure.
func Rest() Task {
	return Task{
		Name: "rest",
		Runs: []Run{{}},
	}
}

// fieldMapTargets returns, per field-map run, the bold file it corrects.
// Run 1 corrects the localizer and run 2 the first vismotion run.
func fieldMapTargets(subject, session string) []bids.Entities {
	loc := VisLocalizer()
	mot := VisMotion()
	return []bids.Entities{
		loc.Bold(subject, session, loc.Runs[0]),
		mot.Bold(subject, session, mot.Runs[0]),
	}
}

var fieldMapSuffixes = []string{"phasediff", "magnitude1", "magnitude2"}
