package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abelbrown/locker/internal/history"
	"github.com/abelbrown/locker/internal/logging"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [filter]",
		Short: "List recent searches, newest first",
		Long:  "List recent searches, newest first. With a filter, only fuzzy matches are listed, best first.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliLogging()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, hist, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			var entries []string
			if len(args) == 1 {
				entries = hist.Suggest(args[0])
			} else {
				entries = hist.List()
			}
			if len(entries) == 0 {
				fmt.Println("No recent searches.")
				return nil
			}
			for i, q := range entries {
				fmt.Printf("%d. %s\n", i+1, q)
			}

			e, ok, err := st.Entry(history.Key)
			if err != nil {
				logging.Warn("read history timestamp", "error", err)
			} else if ok {
				fmt.Printf("\nLast saved %s\n", e.Updated.Local().Format(time.DateTime))
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget every recent search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliLogging()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, hist, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := hist.Clear(); err != nil {
				return err
			}
			fmt.Println("Recent searches cleared.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <query>",
		Short: "Forget one recent search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliLogging()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, hist, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			before := len(hist.List())
			list, err := hist.Remove(args[0])
			if err != nil {
				return err
			}
			if len(list) == before {
				return fmt.Errorf("%q is not a recent search", args[0])
			}
			return nil
		},
	})
	return cmd
}
