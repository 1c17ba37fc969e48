package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/locker/internal/catalog"
	"github.com/abelbrown/locker/internal/config"
	"github.com/abelbrown/locker/internal/filter"
	"github.com/abelbrown/locker/internal/history"
	"github.com/abelbrown/locker/internal/store"
)

func newSearchCmd() *cobra.Command {
	var (
		facets filterFlags
		limit  int
		asJSON bool
		noSave bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Print the items matching a query and filters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliLogging()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			res, st, hist, err := loadCatalogAndHistory(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			matches := filter.Apply(res.Items, facets.criteria(query))

			if !noSave && strings.TrimSpace(query) != "" {
				if _, err := hist.Add(query); err != nil {
					fmt.Fprintf(os.Stderr, "warning: search not saved: %v\n", err)
				}
			}

			shown := matches
			if limit > 0 && len(shown) > limit {
				shown = shown[:limit]
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(shown)
			}
			printItems(shown)
			fmt.Printf("\n%d of %d items match", len(matches), len(res.Items))
			if res.Skipped > 0 {
				fmt.Printf(" (%d malformed entries skipped)", res.Skipped)
			}
			fmt.Println()
			return nil
		},
	}

	facets.register(cmd.Flags())
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum items to print (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print items as JSON")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the query in recent searches")
	return cmd
}

// loadCatalogAndHistory fetches the catalog while the store and recent
// searches are opened.
func loadCatalogAndHistory(ctx context.Context, cfg *config.Config) (catalog.Result, *store.Store, *history.History, error) {
	var (
		res  catalog.Result
		st   *store.Store
		hist *history.History
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res, err = newClient(cfg).Catalog(gctx)
		if err != nil {
			return fmt.Errorf("fetch catalog: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		st, hist, err = openHistory(cfg)
		return err
	})

	if err := g.Wait(); err != nil {
		if st != nil {
			st.Close()
		}
		return catalog.Result{}, nil, nil, err
	}
	return res, st, hist, nil
}

// printItems writes one item per line: rarity, name, category, set.
func printItems(items []catalog.Item) {
	for _, it := range items {
		line := fmt.Sprintf("%-13s %-32s %-16s",
			strings.ToUpper(it.Rarity),
			truncate(it.Name, 32),
			filter.Label(filter.Categories, it.Category))
		if it.Set != "" {
			line += "  " + it.Set
		}
		fmt.Println(strings.TrimRight(line, " "))
	}
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
