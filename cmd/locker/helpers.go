package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/abelbrown/locker/internal/config"
	"github.com/abelbrown/locker/internal/fetch"
	"github.com/abelbrown/locker/internal/filter"
	"github.com/abelbrown/locker/internal/history"
	"github.com/abelbrown/locker/internal/logging"
	"github.com/abelbrown/locker/internal/store"
)

// v holds defaults, environment overrides and bound flags.
var v = config.New()

// cfgFile is the --config flag; empty means ~/.locker/config.json.
var cfgFile string

// loadConfig resolves the configuration and creates the data directory.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return cfg, nil
}

// cliLogging sends warnings to stderr for the non-interactive commands.
func cliLogging() {
	logging.InitWriter(os.Stderr, log.WarnLevel)
}

// openHistory opens the store and loads the recent searches. A corrupt list
// is logged and replaced by an empty one.
func openHistory(cfg *config.Config) (*store.Store, *history.History, error) {
	st, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	h, err := history.Load(st)
	if err != nil {
		logging.Warn("recent searches reset", "error", err)
	}
	return st, h, nil
}

// newClient builds the catalog client from cfg.
func newClient(cfg *config.Config) *fetch.Client {
	return fetch.NewClient(fetch.Options{
		BaseURL:       cfg.API.BaseURL,
		Language:      cfg.API.Language,
		Timeout:       cfg.API.Timeout,
		RatePerSecond: cfg.API.RatePerSecond,
	})
}

// filterFlags holds the facet flags shared by search and random.
type filterFlags struct {
	category string
	rarity   string
	season   string
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.category, "category", "c", filter.All, "item category (outfit, pickaxe, backpack, emote, ...)")
	fs.StringVarP(&f.rarity, "rarity", "r", filter.All, "item rarity (common, rare, epic, legendary, ...)")
	fs.StringVarP(&f.season, "season", "s", filter.All, "introduction text, e.g. \"chapter 2\"")
}

func (f *filterFlags) criteria(query string) filter.Criteria {
	return filter.Criteria{
		Query:    query,
		Category: f.category,
		Rarity:   f.rarity,
		Season:   f.season,
	}
}

// bindFlag ties a persistent flag to a config key.
func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("bind %s: %v", flag, err))
	}
}
