// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/shelfy/internal/core/browse"
	"github.com/taibuivan/shelfy/internal/core/library"
	"github.com/taibuivan/shelfy/internal/core/view"
	"github.com/taibuivan/shelfy/pkg/pointer"
	"github.com/taibuivan/shelfy/pkg/query"
)

// viewOptions holds the flags of the view command.
type viewOptions struct {
	file        string
	scope       string
	sort        string
	dir         string
	search      string
	seriesType  string
	status      string
	ownership   string
	reading     string
	cover       string
	isbn        string
	includeTags []string
	excludeTags []string
	members     []string
	json        bool
}

// filter builds the filter snapshot. --members with no IDs is distinct from
// omitting the flag: it selects an empty collection.
func (opts *viewOptions) filter(membersSet bool) view.Filter {
	filter := view.Filter{
		Search:      opts.search,
		Type:        library.SeriesType(strings.ToLower(opts.seriesType)),
		Status:      library.SeriesStatus(strings.ToLower(opts.status)),
		Ownership:   library.Ownership(strings.ToLower(opts.ownership)),
		Reading:     library.ReadingStatus(strings.ToLower(opts.reading)),
		Cover:       view.ParseCompleteness(opts.cover),
		ISBN:        view.ParseCompleteness(opts.isbn),
		IncludeTags: query.Strings(opts.includeTags),
		ExcludeTags: query.Strings(opts.excludeTags),
	}
	if membersSet {
		filter.ActiveCollection = view.NewMembership(query.Strings(opts.members)...)
	}
	return filter.Normalize()
}

// NewViewCommand creates the view command.
func NewViewCommand(root *RootOptions) *cobra.Command {
	opts := &viewOptions{}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Filter and sort a snapshot",
		Long: `Run one library view pass over a YAML snapshot.

Examples:
  shelfctl view --file shelf.yaml
  shelfctl view --file shelf.yaml --scope volumes --sort rating --dir desc
  shelfctl view --file shelf.yaml --reading unread --include-tags seinen
  shelfctl view --file - --scope orphans --json < shelf.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := root.logger(cmd)

			snapshot, err := LoadSnapshot(opts.file, cmd.InOrStdin())
			if err != nil {
				return err
			}

			filter := opts.filter(cmd.Flags().Changed("members"))
			sort := view.Sort{
				Field:     view.ParseSortField(opts.sort),
				Direction: view.ParseDirection(opts.dir),
			}
			scope := browse.ParseScope(opts.scope)

			startTime := time.Now()
			result := view.AssembleSnapshot(snapshot, filter, sort)

			logger.Debug("view_assembled",
				slog.String("scope", string(scope)),
				slog.String("sort", string(result.Sort.Field)),
				slog.String("direction", string(result.Sort.Direction)),
				slog.Duration("elapsed", time.Since(startTime)),
			)

			if opts.json {
				return writeJSON(cmd.OutOrStdout(), scope, result)
			}
			return writeTable(cmd.OutOrStdout(), scope, result)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", `snapshot YAML file ("-" for stdin)`)
	flags.StringVar(&opts.scope, "scope", string(browse.ScopeSeries), "series, volumes or orphans")
	flags.StringVar(&opts.sort, "sort", string(view.SortTitle), "sort field")
	flags.StringVar(&opts.dir, "dir", string(view.Ascending), "asc or desc")
	flags.StringVarP(&opts.search, "search", "q", "", "substring search")
	flags.StringVar(&opts.seriesType, "type", view.All, "series type")
	flags.StringVar(&opts.status, "status", view.All, "publication status")
	flags.StringVar(&opts.ownership, "ownership", view.All, "owned, wishlist or digital")
	flags.StringVar(&opts.reading, "reading", view.All, "reading status")
	flags.StringVar(&opts.cover, "cover", view.All, "has or missing")
	flags.StringVar(&opts.isbn, "isbn", view.All, "has or missing")
	flags.StringSliceVar(&opts.includeTags, "include-tags", nil, "tags that must all be present")
	flags.StringSliceVar(&opts.excludeTags, "exclude-tags", nil, "tags that must be absent")
	flags.StringSliceVar(&opts.members, "members", nil, "restrict to these volume IDs")
	flags.BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// # Output

type jsonOutput struct {
	Scope  browse.Scope `json:"scope"`
	Sort   view.Sort    `json:"sort"`
	Counts view.Counts  `json:"counts"`
	Items  any          `json:"items"`
}

func writeJSON(writer io.Writer, scope browse.Scope, result view.Result) error {
	output := jsonOutput{Scope: scope, Sort: result.Sort, Counts: result.Counts}

	switch scope {
	case browse.ScopeVolumes:
		output.Items = browse.PairItems(result.SortedPairs)
	case browse.ScopeOrphans:
		output.Items = result.SortedOrphans
	default:
		output.Items = result.SortedSeries
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func writeTable(writer io.Writer, scope browse.Scope, result view.Result) error {
	table := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)

	switch scope {
	case browse.ScopeVolumes:
		fmt.Fprintln(table, "SERIES\t#\tTITLE\tOWNERSHIP\tREADING\tRATING")
		for _, pair := range result.SortedPairs {
			fmt.Fprintf(table, "%s\t%d\t%s\t%s\t%s\t%s\n",
				pair.Series.Title, pair.Volume.Number, dash(pointer.Val(pair.Volume.Title)),
				pair.Volume.Ownership, pair.Volume.Reading, rating(pair.Volume.Rating))
		}
	case browse.ScopeOrphans:
		fmt.Fprintln(table, "TITLE\tOWNERSHIP\tREADING\tRATING")
		for _, volume := range result.SortedOrphans {
			fmt.Fprintf(table, "%s\t%s\t%s\t%s\n",
				dash(pointer.Val(volume.Title)), volume.Ownership, volume.Reading, rating(volume.Rating))
		}
	default:
		fmt.Fprintln(table, "TITLE\tAUTHOR\tTYPE\tSTATUS\tVOLUMES\tTAGS")
		for _, series := range result.SortedSeries {
			fmt.Fprintf(table, "%s\t%s\t%s\t%s\t%d\t%s\n",
				series.Title, dash(pointer.Val(series.Author)),
				dash(string(pointer.Val(series.Type))), dash(string(pointer.Val(series.Status))),
				len(series.Volumes), dash(strings.Join(series.Tags, ", ")))
		}
	}

	if err := table.Flush(); err != nil {
		return err
	}

	counts := result.Counts
	_, err := fmt.Fprintf(writer, "\n%d/%d series, %d/%d volumes, %d/%d orphans\n",
		counts.Series, counts.TotalSeries, counts.Volumes, counts.TotalVolumes, counts.Orphans, counts.TotalOrphans)
	return err
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func rating(value *float64) string {
	if value == nil {
		return "-"
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
