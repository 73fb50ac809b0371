// SPDX-License-Identifier: AGPL-3.0-or-later
package bids

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntities_Filename(t *testing.T) {
	tests := []struct {
		name string
		e    Entities
		want string
	}{
		{
			name: "task without run",
			e:    Entities{Subject: "01", Session: "02", Task: "rest", Suffix: "bold", Extension: ".nii"},
			want: "sub-01_ses-02_task-rest_bold.nii",
		},
		{
			name: "run is not padded",
			e:    Entities{Subject: "ctrl01", Session: "01", Task: "vismotion", Run: 2, Suffix: "events", Extension: ".tsv"},
			want: "sub-ctrl01_ses-01_task-vismotion_run-2_events.tsv",
		},
		{
			name: "all entities in fixed order",
			e: Entities{
				Extension:   ".nii",
				Suffix:      "bold",
				Run:         1,
				Direction:   "PA",
				Acquisition: "1p60mm",
				Task:        "vismotion",
				Session:     "01",
				Subject:     "blind01",
			},
			want: "sub-blind01_ses-01_task-vismotion_acq-1p60mm_dir-PA_run-1_bold.nii",
		},
		{
			name: "field map without task",
			e:    Entities{Subject: "01", Session: "01", Run: 2, Suffix: "magnitude1", Extension: ".nii"},
			want: "sub-01_ses-01_run-2_magnitude1.nii",
		},
		{
			name: "anatomical",
			e:    Entities{Subject: "01", Session: "01", Suffix: "T1w", Extension: ".nii"},
			want: "sub-01_ses-01_T1w.nii",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.e.Filename())
		})
	}
}

func TestEntities_Paths(t *testing.T) {
	e := Entities{Subject: "01", Session: "02", Task: "rest", Suffix: "bold", Extension: ".nii"}

	assert.Equal(t, filepath.Join("root", "sub-01", "ses-02", "func"), e.Dir("root", ModalityFunc))
	assert.Equal(t, filepath.Join("root", "sub-01", "ses-02", "func", "sub-01_ses-02_task-rest_bold.nii"), e.Path("root", ModalityFunc))
	assert.Equal(t, "ses-02/func/sub-01_ses-02_task-rest_bold.nii", e.RelPath(ModalityFunc))
	assert.Equal(t, "sub-01_ses-02_task-rest_events.tsv", e.With("events", ".tsv").Filename())
}

func TestEntities_Validate(t *testing.T) {
	valid := Entities{Subject: "ctrl01", Session: "01", Acquisition: "1p60mm"}
	assert.NoError(t, valid.Validate())

	bad := []Entities{
		{},
		{Subject: "a_b"},
		{Subject: "01", Session: "0-1"},
		{Subject: "01", Task: "vis motion"},
		{Subject: "01", Run: -1},
	}
	for _, e := range bad {
		err := e.Validate()
		assert.True(t, errors.Is(err, ErrInvalidLabel), "expected invalid label for %+v, got %v", e, err)
	}
}
