package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/abelbrown/locker/internal/coord"
	"github.com/abelbrown/locker/internal/events"
	"github.com/abelbrown/locker/internal/logging"
	"github.com/abelbrown/locker/internal/surprise"
	"github.com/abelbrown/locker/internal/ui"
)

// ringSize is how many events the debug overlay keeps.
const ringSize = 256

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "locker",
		Short:         "Browse the game cosmetics catalog",
		Long:          "locker fetches the cosmetics catalog and lets you search, filter and page through it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.locker/config.json)")
	root.PersistentFlags().String("base-url", "", "catalog API base URL")
	root.PersistentFlags().String("language", "", "catalog language")
	root.PersistentFlags().String("data-dir", "", "directory for the database and logs")
	bindFlag(root, "api.base_url", "base-url")
	bindFlag(root, "api.language", "language")
	bindFlag(root, "data_dir", "data-dir")

	root.AddCommand(newSearchCmd(), newRandomCmd(), newHistoryCmd(), newConfigCmd())
	return root
}

// runTUI runs the interactive browser.
func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Init(cfg.DataDir); err != nil {
		return err
	}
	defer logging.Close()

	st, hist, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	eventPath := filepath.Join(cfg.DataDir, "events.jsonl")
	eventFile, err := os.OpenFile(eventPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer eventFile.Close()

	journal := events.NewJournal(eventFile)
	ring := events.NewRing(ringSize)
	journal.Attach(ring)
	journal.Record(events.KindStartup, logging.Version)
	logging.Info("session started", "session", journal.SessionID())
	defer func() {
		journal.Record(events.KindShutdown, "")
		journal.Close()
		if n := journal.Dropped(); n > 0 {
			logging.Warn("event journal dropped events", "count", n)
		}
	}()

	client := newClient(cfg)
	coordinator := coord.NewCoordinator(hist, cfg.History.Debounce, journal)

	app := ui.NewApp(ui.AppConfig{
		FetchCatalog:   client.Catalog,
		FetchSet:       client.Set,
		LoadHistory:    coordinator.Load,
		QueueSearch:    coordinator.Queue,
		RemoveSearch:   coordinator.Remove,
		ClearSearches:  coordinator.Clear,
		PageSize:       cfg.Reveal.PageSize,
		Cooldown:       cfg.Reveal.Cooldown,
		Proximity:      cfg.Reveal.Proximity,
		SlowAfter:      cfg.Fetch.SlowAfter,
		RetryCountdown: cfg.Retry.Countdown,
		AutoRetry:      cfg.Retry.Auto,
		Surprise: surprise.Options{
			Picks:    cfg.Surprise.Picks,
			Interval: cfg.Surprise.Interval,
		},
		Journal: journal,
		Ring:    ring,
	})

	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	coordinator.Start(program)

	_, err = program.Run()

	// a query typed just before quitting is still saved
	coordinator.Stop()

	if err != nil {
		logging.Error("program exited", "error", err)
		return err
	}
	return nil
}
