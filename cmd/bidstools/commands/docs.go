// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bids-standard/bidstools/cmd/bidstools/internal/clierr"
	"github.com/bids-standard/bidstools/internal/devdoc"
)

// NewDocsCommand returns the `bidstools docs` command.
func NewDocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate the developer documentation index",
		Long:  "Writes one autofunction entry per MATLAB function of the +bids package to a reStructuredText file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			src, _ := cmd.Flags().GetString("source")
			out, _ := cmd.Flags().GetString("output")
			if src == "" {
				src = e.cfg.Docs.SourceDir
			}
			if out == "" {
				out = e.cfg.Docs.OutputFile
			}

			g := &devdoc.Generator{
				SourceDir:   e.path(src),
				OutFile:     e.path(out),
				IgnoreDirs:  e.cfg.Docs.IgnoreDirs,
				IgnoreFiles: e.cfg.Docs.IgnoreFiles,
			}
			if err := g.Generate(); err != nil {
				return clierr.Wrapf(clierr.ExitIO, err, "generating developer docs from %s", g.SourceDir)
			}
			_, _ = fmt.Fprintf(e.out.Writer(), "Wrote %s\n", e.out.Path(g.OutFile))
			return nil
		},
	}
	cmd.Flags().String("source", "", "MATLAB package directory (default from config: +bids)")
	cmd.Flags().String("output", "", "output file (default from config: docs/source/dev_doc.rst)")
	return cmd
}
