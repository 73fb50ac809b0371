// SPDX-License-Identifier: AGPL-3.0-or-later
package dummy

import (
	"errors"
	"fmt"

	"github.com/bids-standard/bidstools/internal/bids"
)

// Config carries every value the generator and its emitters depend on.
type Config struct {
	// Root is the dataset directory; sub-<id> trees are created below it.
	Root string

	Subjects []string
	Sessions []string

	// AnatSession is the session label the single anatomical scan is filed under.
	AnatSession string

	// Echo times written to every phase-difference sidecar, in seconds.
	EchoTime1 float64
	EchoTime2 float64

	// Jobs bounds the number of (subject, session) units generated at once.
	// Values below 2 run the units sequentially in reference order.
	Jobs int

	// DatasetDescription writes a minimal dataset_description.json at Root.
	DatasetDescription bool
}

// DefaultConfig returns the fixture used by the bids-matlab test suite.
func DefaultConfig() Config {
	return Config{
		Root:               "tests/data/dummy/raw",
		Subjects:           []string{"ctrl01", "blind01", "01"},
		Sessions:           []string{"01", "02"},
		AnatSession:        "01",
		EchoTime1:          0.006,
		EchoTime2:          0.00746,
		Jobs:               1,
		DatasetDescription: true,
	}
}

// Validate checks that every label can be rendered into a filename.
func (c Config) Validate() error {
	if c.Root == "" {
		return errors.New("dummy: root directory is required")
	}
	if len(c.Subjects) == 0 {
		return errors.New("dummy: at least one subject is required")
	}
	if len(c.Sessions) == 0 {
		return errors.New("dummy: at least one session is required")
	}
	if c.Jobs < 0 {
		return fmt.Errorf("dummy: jobs must not be negative, got %d", c.Jobs)
	}
	if c.EchoTime1 <= 0 || c.EchoTime2 <= 0 {
		return fmt.Errorf("dummy: echo times must be positive, got %v and %v", c.EchoTime1, c.EchoTime2)
	}

	if c.AnatSession == "" {
		return fmt.Errorf("dummy: %w: anatomical session is required", bids.ErrInvalidLabel)
	}

	seen := make(map[string]bool, len(c.Subjects))
	for _, sub := range c.Subjects {
		if seen[sub] {
			return fmt.Errorf("dummy: duplicate subject %q", sub)
		}
		seen[sub] = true
		if err := (bids.Entities{Subject: sub, Session: c.AnatSession}).Validate(); err != nil {
			return fmt.Errorf("dummy: %w", err)
		}
	}
	seenSes := make(map[string]bool, len(c.Sessions))
	for _, ses := range c.Sessions {
		if ses == "" {
			return fmt.Errorf("dummy: %w: empty session label", bids.ErrInvalidLabel)
		}
		if seenSes[ses] {
			return fmt.Errorf("dummy: duplicate session %q", ses)
		}
		seenSes[ses] = true
		if err := (bids.Entities{Subject: c.Subjects[0], Session: ses}).Validate(); err != nil {
			return fmt.Errorf("dummy: %w", err)
		}
	}
	return nil
}
