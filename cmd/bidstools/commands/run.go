// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bids-standard/bidstools/cmd/bidstools/internal/clierr"
	"github.com/bids-standard/bidstools/internal/runner"
	"github.com/bids-standard/bidstools/internal/tasks"
)

// NewRunCommand returns the `bidstools run` command tree.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <task...>",
		Short: "Run repository tasks in order and record their results",
		Long: `Runs the repository tasks (schema, dummy, changelog, docs, paper, notebooks).
Results are kept under .bidstools/run so failed tasks can be resumed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			r, err := setupRunner(cmd)
			if err != nil {
				return err
			}
			return runErr(r.RunList(cmd.Context(), args))
		},
	}
	cmd.PersistentFlags().Bool("json", false, "output results as JSON")
	cmd.PersistentFlags().String("state-dir", "", "directory storing run state (default from config: .bidstools/run)")

	cmd.AddCommand(newRunListCmd())
	cmd.AddCommand(newRunAllCmd())
	cmd.AddCommand(newRunResumeCmd())
	cmd.AddCommand(newRunReportCmd())
	cmd.AddCommand(newRunResetCmd())
	return cmd
}

func resolveStateStore(cmd *cobra.Command, e *env) *runner.StateStore {
	dir, _ := cmd.Flags().GetString("state-dir")
	if dir == "" {
		dir = e.cfg.Run.StateDir
	}
	return runner.NewStateStore(e.path(dir))
}

func setupRunner(cmd *cobra.Command) (*runner.Runner, error) {
	e, err := loadEnv(cmd)
	if err != nil {
		return nil, err
	}
	deps := &runner.Deps{
		Root:   e.root,
		Config: e.cfg,
		Logger: e.logger,
		Out:    e.out.Writer(),
	}
	return runner.NewRunner(tasks.Registry, resolveStateStore(cmd, e), deps), nil
}

func runErr(err error) error {
	if err == nil {
		return nil
	}
	return clierr.Wrap(clierr.ExitFailure, "run", err)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRunListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := tasks.IDs()
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return encodeJSON(cmd.OutOrStdout(), map[string][]string{"tasks": ids})
			}
			for _, id := range ids {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

func newRunAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Run every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := setupRunner(cmd)
			if err != nil {
				return err
			}
			return runErr(r.RunAll(cmd.Context()))
		},
	}
}

func newRunResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Re-run the tasks that failed last time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := setupRunner(cmd)
			if err != nil {
				return err
			}
			return runErr(r.Resume(cmd.Context()))
		},
	}
}

func newRunResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear run state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if err := resolveStateStore(cmd, e).Reset(); err != nil {
				return clierr.Wrap(clierr.ExitIO, "clearing run state", err)
			}
			return nil
		},
	}
}

func newRunReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show last run status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			store := resolveStateStore(cmd, e)
			last, err := store.ReadLastRun()
			if err != nil {
				return clierr.Wrap(clierr.ExitIO, "reading run state", err)
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return encodeJSON(e.out.Writer(), last)
			}

			w := e.out.Writer()
			if last == nil {
				_, _ = fmt.Fprintln(w, "No run state found.")
				return nil
			}
			_, _ = fmt.Fprintf(w, "Status: %s\n", e.out.Bold(last.Status))
			for _, id := range last.Tasks {
				res, err := store.ReadTask(id)
				if err != nil {
					return clierr.Wrap(clierr.ExitIO, "reading run state", err)
				}
				if res == nil {
					continue
				}
				line := fmt.Sprintf("  %s %s", res.Status, e.out.Path(id))
				if res.Note != "" {
					line += " " + e.out.Muted(res.Note)
				}
				_, _ = fmt.Fprintln(w, line)
			}
			if len(last.Failed) == 0 {
				_, _ = fmt.Fprintln(w, "All passed.")
			}
			return nil
		},
	}
}
