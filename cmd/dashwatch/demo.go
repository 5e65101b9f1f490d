package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	dashwatch "github.com/daryllundy/gitlab-dashwatch-sub001"
	"github.com/daryllundy/gitlab-dashwatch-sub001/search"
	"github.com/daryllundy/gitlab-dashwatch-sub001/testutil"
)

func newDashwatch(configPath string) (*dashwatch.Dashwatch, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	store, err := cfg.openStore()
	if err != nil {
		return nil, err
	}
	return dashwatch.New(
		dashwatch.WithStore(store),
		dashwatch.WithCacheConfig(cfg.cacheConfig()),
		dashwatch.WithSearchOptions(cfg.searchOptions()),
		dashwatch.WithLogger(dashwatch.NewTextLogger(slog.LevelWarn)),
	)
}

func newDemoCmd(configPath *string) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Load generated records and run a sample query",
		RunE: func(cmd *cobra.Command, args []string) error {
			dw, err := newDashwatch(*configPath)
			if err != nil {
				return err
			}
			defer dw.Close()

			ctx := cmd.Context()
			records := testutil.Records(count, 1)
			loaded := dw.CacheWarmup(ctx, 1, "project", records)
			dw.UpdateSearchIndex(ctx, records)

			fmt.Printf("warmed cache with %d records, indexed %d\n", loaded, len(records))

			res, err := dw.Search(ctx, search.Query{Text: "api", PerPage: 5})
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 50, "number of records to generate")
	return cmd
}

func printResult(res *search.Result) {
	fmt.Printf("%d matches in %s\n", res.TotalCount, res.Took)
	for _, rec := range res.Records {
		fmt.Printf("  %-24s stars=%-3d %s\n", rec.Name, rec.StarCount, rec.Visibility)
	}
	if len(res.Suggestions) > 0 {
		fmt.Printf("related: %v\n", res.Suggestions)
	}
	for bucket, n := range res.Facets.ByActivity {
		fmt.Printf("  activity %-14q %d\n", string(bucket), n)
	}
}
