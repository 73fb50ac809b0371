// SPDX-License-Identifier: AGPL-3.0-or-later

/*
bidstools - repository utilities for the bids-matlab toolbox.
It generates the dummy BIDS dataset used by the test suite, converts the BIDS
schema to JSON and maintains the documentation sources.

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the bidstools root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("BIDSTOOLS_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	cmd := &cobra.Command{
		Use:           "bidstools",
		Short:         "bidstools - repository utilities for bids-matlab",
		Long:          "bidstools generates test fixtures, converts the BIDS schema and maintains documentation sources for bids-matlab.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().String("config", "", "path to bidstools.toml (default: <root>/bidstools.toml)")
	cmd.PersistentFlags().String("root", "", "project root (default: nearest directory with bidstools.toml or .git)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of bidstools",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bidstools version %s\n", version)
		},
	})

	cmd.AddCommand(NewDummyCommand())
	cmd.AddCommand(NewSchemaCommand())
	cmd.AddCommand(NewChangelogCommand())
	cmd.AddCommand(NewDocsCommand())
	cmd.AddCommand(NewPaperCommand())
	cmd.AddCommand(NewNotebooksCommand())
	cmd.AddCommand(NewRunCommand())

	return cmd
}
