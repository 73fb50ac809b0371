// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bids-standard/bidstools/cmd/bidstools/internal/clierr"
	"github.com/bids-standard/bidstools/internal/schemaconv"
)

// NewSchemaCommand returns the `bidstools schema` command.
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Convert the BIDS schema YAML files to JSON",
		Long:  "Walks the bids-specification schema sources and mirrors every YAML file as JSON, keeping key order.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			in, _ := cmd.Flags().GetString("input")
			out, _ := cmd.Flags().GetString("output")
			if in == "" {
				in = e.cfg.Schema.InputDir
			}
			if out == "" {
				out = e.cfg.Schema.OutputDir
			}

			c := &schemaconv.Converter{
				InputDir:  e.path(in),
				OutputDir: e.path(out),
				Logger:    e.logger,
			}
			n, err := c.Convert(cmd.Context())
			if err != nil {
				return clierr.Wrap(clierr.ExitIO, "converting schema", err)
			}
			_, _ = fmt.Fprintf(e.out.Writer(), "Converted %s schema files to %s\n",
				e.out.Bold(fmt.Sprint(n)), e.out.Path(c.OutputDir))
			return nil
		},
	}
	cmd.Flags().String("input", "", "schema source directory (default from config: bids-specification/src/schema)")
	cmd.Flags().String("output", "", "JSON output directory (default from config: schema)")
	return cmd
}
