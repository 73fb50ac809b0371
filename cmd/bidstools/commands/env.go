// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bids-standard/bidstools/cmd/bidstools/internal/clierr"
	"github.com/bids-standard/bidstools/internal/config"
	"github.com/bids-standard/bidstools/internal/logging"
	"github.com/bids-standard/bidstools/internal/projectroot"
	"github.com/bids-standard/bidstools/internal/ui"
)

// env is what every command needs: the project root, the loaded
// configuration, a logger and a printer for user-facing output.
type env struct {
	root   string
	cfg    *config.Config
	logger *slog.Logger
	out    *ui.Printer
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	flags := cmd.Flags()

	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitUsage, "reading --verbose", err)
	}
	rootFlag, err := flags.GetString("root")
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitUsage, "reading --root", err)
	}
	configFlag, err := flags.GetString("config")
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitUsage, "reading --config", err)
	}

	var root string
	if rootFlag != "" {
		root, err = filepath.Abs(rootFlag)
	} else {
		root, err = projectroot.FindOrCwd(".")
	}
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitUsage, "finding project root", err)
	}

	var cfg *config.Config
	if configFlag != "" {
		cfg, err = config.LoadFrom(configFlag)
	} else {
		cfg, err = config.Load(root)
	}
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitUsage, "loading configuration", err)
	}

	return &env{
		root:   root,
		cfg:    cfg,
		logger: logging.New(cmd.ErrOrStderr(), verbose),
		out:    ui.NewPrinter(cmd.OutOrStdout()),
	}, nil
}

// path anchors a configured path at the project root.
func (e *env) path(p string) string {
	return config.Resolve(e.root, p)
}
