// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cli implements shelfctl, an offline runner for the library view.

shelfctl reads a shelf snapshot from a YAML file and runs the same filter and
sort pass the API serves on /library/view, printing a table or JSON. It needs
no database and is used to inspect exports and reproduce ordering reports.
*/
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the shelfctl root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "shelfctl",
		Short: "Inspect Shelfy library snapshots offline",
		Long: `Run the Shelfy library view over a YAML snapshot.

shelfctl provides tools to:
- Filter and sort series, volumes and orphans like the API does
- List the tags used across a shelf`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log diagnostics to stderr")

	cmd.AddCommand(NewViewCommand(opts))
	cmd.AddCommand(NewTagsCommand(opts))

	return cmd
}

// logger writes JSON diagnostics to the command's error stream.
func (opts *RootOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "shelfctl"))
}
