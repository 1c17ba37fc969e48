package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abelbrown/locker/internal/catalog"
	"github.com/abelbrown/locker/internal/filter"
	"github.com/abelbrown/locker/internal/surprise"
)

func newRandomCmd() *cobra.Command {
	var (
		facets filterFlags
		seed   int64
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "random [query]",
		Short: "Pick a random item among the matches",
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

			res, err := newClient(cfg).Catalog(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch catalog: %w", err)
			}
			matches := filter.Apply(res.Items, facets.criteria(query))
			if len(matches) == 0 {
				return fmt.Errorf("no items match")
			}

			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			picks := surprise.Sequence(rand.New(rand.NewSource(seed)), len(matches), cfg.Surprise.Picks)

			if !quiet {
				for _, idx := range picks[:len(picks)-1] {
					fmt.Fprintf(os.Stderr, "\r\033[K  %s", matches[idx].Name)
					time.Sleep(cfg.Surprise.Interval)
				}
				fmt.Fprint(os.Stderr, "\r\033[K")
			}

			pick := matches[picks[len(picks)-1]]
			fmt.Println("Random find!")
			printItems([]catalog.Item{pick})
			if pick.Description != "" {
				fmt.Println("  " + pick.Description)
			}
			return nil
		},
	}

	facets.register(cmd.Flags())
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 for time-based)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "skip the shuffle")
	return cmd
}
