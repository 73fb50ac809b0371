// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bids-standard/bidstools/cmd/bidstools/internal/clierr"
	"github.com/bids-standard/bidstools/internal/notebook"
)

// NewNotebooksCommand returns the `bidstools notebooks` command.
func NewNotebooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notebooks",
		Short: "Convert Octave notebooks to MATLAB scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = e.cfg.Notebooks.Dir
			}

			outs, err := notebook.ConvertDir(cmd.Context(), e.path(dir))
			if err != nil {
				return clierr.Wrapf(clierr.ExitIO, err, "converting notebooks in %s", dir)
			}
			for _, out := range outs {
				_, _ = fmt.Fprintln(e.out.Writer(), e.out.Path(out))
			}
			return nil
		},
	}
	cmd.Flags().String("dir", "", "notebook directory (default from config: demos/notebooks)")
	return cmd
}
