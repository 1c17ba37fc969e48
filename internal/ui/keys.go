package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the browser's key bindings.
type KeyMap struct {
	Up, Down     key.Binding
	Top, Bottom  key.Binding
	Open         key.Binding
	Search       key.Binding
	Category     key.Binding
	CategoryBack key.Binding
	Rarity       key.Binding
	RarityBack   key.Binding
	Season       key.Binding
	SeasonBack   key.Binding
	Reset        key.Binding
	Surprise     key.Binding
	Set          key.Binding
	Retry        key.Binding
	Help         key.Binding
	Close        key.Binding
	Quit         key.Binding
	Debug        key.Binding

	// search box
	DeleteSuggestion key.Binding
	ClearSuggestions key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:         key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Top:          key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		Bottom:       key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Search:       key.NewBinding(key.WithKeys("/", "ctrl+k"), key.WithHelp("/", "search")),
		Category:     key.NewBinding(key.WithKeys("tab", "c"), key.WithHelp("tab", "category")),
		CategoryBack: key.NewBinding(key.WithKeys("shift+tab", "C"), key.WithHelp("shift+tab", "prev category")),
		Rarity:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "rarity")),
		RarityBack:   key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "prev rarity")),
		Season:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "season")),
		SeasonBack:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "prev season")),
		Reset:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear filters")),
		Surprise:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "surprise me")),
		Set:          key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "view set")),
		Retry:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Debug:        key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "event log")),

		DeleteSuggestion: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "forget search")),
		ClearSuggestions: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear searches")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Open, k.Search, k.Category, k.Surprise, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.Open},
		{k.Search, k.DeleteSuggestion, k.ClearSuggestions, k.Reset},
		{k.Category, k.CategoryBack, k.Rarity, k.RarityBack, k.Season, k.SeasonBack},
		{k.Surprise, k.Set, k.Retry, k.Debug, k.Help, k.Close, k.Quit},
	}
}
