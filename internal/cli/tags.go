// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewTagsCommand creates the tags command.
func NewTagsCommand(root *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List the tags used in a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := LoadSnapshot(file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			tags := snapshot.Tags()
			root.logger(cmd).Debug("tags_counted", "distinct", len(tags))

			table := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(table, "TAG\tSERIES")
			for _, tag := range tags {
				fmt.Fprintf(table, "%s\t%d\n", tag.Tag, tag.Count)
			}
			return table.Flush()
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `snapshot YAML file ("-" for stdin)`)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
