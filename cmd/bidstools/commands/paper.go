// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bids-standard/bidstools/cmd/bidstools/internal/clierr"
	"github.com/bids-standard/bidstools/internal/citation"
)

// NewPaperCommand returns the `bidstools paper` command.
func NewPaperCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paper",
		Short: "Derive the paper front matter from CITATION.cff",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			cfg := e.cfg.Paper
			f := cmd.Flags()
			if v, _ := f.GetString("citation"); v != "" {
				cfg.CitationFile = v
			}
			if v, _ := f.GetString("output"); v != "" {
				cfg.OutputFile = v
			}
			if f.Changed("first-author") {
				cfg.FirstAuthor, _ = f.GetString("first-author")
			}
			if noSort, _ := f.GetBool("no-sort"); noSort {
				cfg.SortAuthors = false
			}

			c, err := citation.Load(e.path(cfg.CitationFile))
			if err != nil {
				return clierr.Wrap(clierr.ExitIO, "loading citation", err)
			}
			m, err := citation.BuildMetadata(c, citation.Options{
				FirstAuthor:        cfg.FirstAuthor,
				SortAlphabetically: cfg.SortAuthors,
			})
			if errors.Is(err, citation.ErrFirstAuthorMissing) {
				return clierr.Wrap(clierr.ExitUsage, "building metadata", err)
			}
			if err != nil {
				return clierr.Wrap(clierr.ExitFailure, "building metadata", err)
			}

			out := e.path(cfg.OutputFile)
			if err := citation.WriteMetadata(out, m); err != nil {
				return clierr.Wrap(clierr.ExitIO, "writing metadata", err)
			}
			for _, a := range m.Authors {
				e.logger.Debug("author", "name", a.Name, "affiliation", a.Affiliation)
			}
			_, _ = fmt.Fprintf(e.out.Writer(), "Wrote %s %s\n", e.out.Path(out),
				e.out.Muted(fmt.Sprintf("(%d authors, %d affiliations)", len(m.Authors), len(m.Affiliations))))
			return nil
		},
	}
	cmd.Flags().String("citation", "", "citation file (default from config: CITATION.cff)")
	cmd.Flags().String("output", "", "metadata output file (default from config: docs/paper/metadata.yml)")
	cmd.Flags().String("first-author", "", "family name listed first")
	cmd.Flags().Bool("no-sort", false, "keep the citation author order instead of sorting alphabetically")
	return cmd
}
