// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bids-standard/bidstools/cmd/bidstools/internal/clierr"
	"github.com/bids-standard/bidstools/internal/config"
	"github.com/bids-standard/bidstools/internal/dummy"
)

// NewDummyCommand returns the `bidstools dummy` command.
func NewDummyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dummy",
		Short: "Generate the dummy BIDS dataset used by the test suite",
		Long: `Creates zero-byte data placeholders, events tables and field-map sidecars
for every subject and session. Re-running overwrites the same files.`,
		Args: cobra.NoArgs,
		RunE: runDummy,
	}

	f := cmd.Flags()
	f.String("output", "", "dataset root directory (default from config: tests/data/dummy/raw)")
	f.StringSlice("subjects", nil, "subject labels")
	f.StringSlice("sessions", nil, "session labels")
	f.String("anat-session", "", "session label the anatomical scan is filed under")
	f.Int("jobs", 0, "number of subject/session pairs generated concurrently")
	f.Bool("no-dataset-description", false, "do not write dataset_description.json")

	return cmd
}

func runDummy(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	if err := applyDummyFlags(cmd.Flags(), &e.cfg.Dummy); err != nil {
		return clierr.Wrap(clierr.ExitUsage, "reading flags", err)
	}

	cfg := e.cfg.Dummy.Generator(e.root)
	if err := cfg.Validate(); err != nil {
		return clierr.Wrap(clierr.ExitUsage, "invalid dummy configuration", err)
	}

	sum, err := dummy.New(cfg, e.logger).Generate(cmd.Context())
	if err != nil {
		return clierr.Wrapf(clierr.ExitIO, err, "generating dummy dataset at %s", cfg.Root)
	}

	_, _ = fmt.Fprintf(e.out.Writer(), "Dummy BIDS dataset created at: %s %s\n",
		e.out.Path(sum.Root),
		e.out.Muted(fmt.Sprintf("(%d subjects, %d sessions, %d files)", sum.Subjects, sum.Sessions, sum.Files)))
	return nil
}

// applyDummyFlags overrides configuration values with flags set explicitly.
func applyDummyFlags(f *pflag.FlagSet, d *config.DummyConfig) error {
	var err error
	if f.Changed("output") {
		if d.OutputDir, err = f.GetString("output"); err != nil {
			return err
		}
	}
	if f.Changed("subjects") {
		if d.Subjects, err = f.GetStringSlice("subjects"); err != nil {
			return err
		}
	}
	if f.Changed("sessions") {
		if d.Sessions, err = f.GetStringSlice("sessions"); err != nil {
			return err
		}
	}
	if f.Changed("anat-session") {
		if d.AnatSession, err = f.GetString("anat-session"); err != nil {
			return err
		}
	}
	if f.Changed("jobs") {
		if d.Jobs, err = f.GetInt("jobs"); err != nil {
			return err
		}
	}
	if f.Changed("no-dataset-description") {
		skip, err := f.GetBool("no-dataset-description")
		if err != nil {
			return err
		}
		d.DatasetDescription = !skip
	}
	return nil
}
