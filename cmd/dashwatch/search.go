package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryllundy/gitlab-dashwatch-sub001/search"
	"github.com/daryllundy/gitlab-dashwatch-sub001/testutil"
)

func newSearchCmd(configPath *string) *cobra.Command {
	var (
		count    int
		minStars int
		sortBy   string
		desc     bool
		page     int
		perPage  int
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run a query over a generated corpus",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dw, err := newDashwatch(*configPath)
			if err != nil {
				return err
			}
			defer dw.Close()

			ctx := cmd.Context()
			dw.UpdateSearchIndex(ctx, testutil.Records(count, 1))

			q := search.Query{Page: page, PerPage: perPage}
			if len(args) == 1 {
				q.Text = args[0]
			}
			if minStars > 0 {
				q.Filters.Stars = search.IntRange{Min: &minStars}
			}
			if sortBy != "" {
				q.Sort.Field = search.SortField(sortBy)
				if desc {
					q.Sort.Direction = search.SortDesc
				}
			}

			res, err := dw.Search(ctx, q)
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 50, "number of records to generate")
	cmd.Flags().IntVar(&minStars, "min-stars", 0, "minimum star count")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort field (name, star_count, ...)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 10, "page size")
	return cmd
}

func newStatsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics from the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			dw, err := newDashwatch(*configPath)
			if err != nil {
				return err
			}
			defer dw.Close()

			stats := dw.CacheStats()
			fmt.Printf("entries:      %d\n", stats.TotalEntries)
			fmt.Printf("memory:       %d bytes\n", stats.MemoryUsage)
			fmt.Printf("hit rate:     %.2f\n", stats.HitRate)
			fmt.Printf("miss rate:    %.2f\n", stats.MissRate)
			return nil
		},
	}
}
