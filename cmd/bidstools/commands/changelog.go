// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bids-standard/bidstools/cmd/bidstools/internal/clierr"
	"github.com/bids-standard/bidstools/internal/changelog"
)

// NewChangelogCommand returns the `bidstools changelog` command.
func NewChangelogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Link GitHub usernames and pull request numbers in the changelog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("file")
			repo, _ := cmd.Flags().GetString("repo")
			if path == "" {
				path = e.cfg.Changelog.Path
			}
			if repo == "" {
				repo = e.cfg.Changelog.Repository
			}
			path = e.path(path)

			r := &changelog.Rewriter{Repository: repo}
			if err := r.RewriteFile(path); err != nil {
				return clierr.Wrapf(clierr.ExitIO, err, "rewriting %s", path)
			}
			e.logger.Debug("changelog rewritten", "path", path, "repository", repo)
			_, _ = fmt.Fprintf(e.out.Writer(), "Updated %s\n", e.out.Path(path))
			return nil
		},
	}
	cmd.Flags().String("file", "", "changelog path (default from config: docs/source/changelog.md)")
	cmd.Flags().String("repo", "", "owner/name used in pull request links")
	return cmd
}
