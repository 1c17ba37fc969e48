// Package state holds the browser's UI state as a plain value and the
// reducer that moves it from one event to the next.
//
// State carries no behavior beyond Reduce. The UI keeps one State and
// replaces it on every event, so any snapshot can be logged or compared.
package state

import (
	"fmt"
	"strings"

	"github.com/abelbrown/locker/internal/catalog"
	"github.com/abelbrown/locker/internal/filter"
)

// MaxRecentlyViewed bounds the recently viewed list.
const MaxRecentlyViewed = 10

// Dialog identifies the modal pane on screen, if any.
type Dialog int

const (
	DialogNone Dialog = iota
	DialogDetails
	DialogSet
	DialogRandom
	DialogHelp
)

var dialogNames = []string{"none", "details", "set", "random", "help"}

func (d Dialog) String() string {
	if d < 0 || int(d) >= len(dialogNames) {
		return fmt.Sprintf("dialog(%d)", int(d))
	}
	return dialogNames[d]
}

// MarshalText encodes the dialog by name.
func (d Dialog) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a dialog name.
func (d *Dialog) UnmarshalText(b []byte) error {
	name := strings.ToLower(string(b))
	for i, n := range dialogNames {
		if n == name {
			*d = Dialog(i)
			return nil
		}
	}
	return fmt.Errorf("unknown dialog %q", b)
}

// Facet names a filter dimension for cycling.
type Facet int

const (
	FacetCategory Facet = iota
	FacetRarity
	FacetSeason
)

// State is the complete UI state apart from fetched data.
type State struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Rarity   string `json:"rarity"`
	Season   string `json:"season"`

	DropdownOpen bool `json:"dropdownOpen"`

	Dialog   Dialog        `json:"dialog"`
	Selected *catalog.Item `json:"selected,omitempty"`
	SetName  string        `json:"setName,omitempty"`

	RecentlyViewed []catalog.Item `json:"recentlyViewed"`
}

// Initial returns the state at startup: no query, every facet on "all".
func Initial() State {
	return State{
		Category:       filter.All,
		Rarity:         filter.All,
		Season:         filter.All,
		RecentlyViewed: []catalog.Item{},
	}
}

// Criteria returns the filter criteria the state describes.
func (s State) Criteria() filter.Criteria {
	return filter.Criteria{
		Query:    s.Query,
		Category: s.Category,
		Rarity:   s.Rarity,
		Season:   s.Season,
	}
}

// Event is anything Reduce accepts.
type Event interface {
	apply(State) State
}

// Reduce returns the state after e. s is not modified.
func Reduce(s State, e Event) State {
	if e == nil {
		return s
	}
	return e.apply(s)
}

// SetQuery replaces the search text.
type SetQuery struct{ Query string }

func (e SetQuery) apply(s State) State {
	s.Query = e.Query
	return s
}

// SetCategory selects a category; empty means all.
type SetCategory struct{ Value string }

func (e SetCategory) apply(s State) State {
	s.Category = orAll(e.Value)
	return s
}

// SetRarity selects a rarity; empty means all.
type SetRarity struct{ Value string }

func (e SetRarity) apply(s State) State {
	s.Rarity = orAll(e.Value)
	return s
}

// SetSeason selects a season; empty means all.
type SetSeason struct{ Value string }

func (e SetSeason) apply(s State) State {
	s.Season = orAll(e.Value)
	return s
}

// CycleFacet steps a facet through its option list, wrapping around.
type CycleFacet struct {
	Facet Facet
	Step  int
}

func (e CycleFacet) apply(s State) State {
	switch e.Facet {
	case FacetCategory:
		s.Category = filter.Next(filter.Categories, s.Category, e.Step)
	case FacetRarity:
		s.Rarity = filter.Next(filter.Rarities, s.Rarity, e.Step)
	case FacetSeason:
		s.Season = filter.Next(filter.Seasons, s.Season, e.Step)
	}
	return s
}

// ResetFilters clears the query and every facet.
type ResetFilters struct{}

func (ResetFilters) apply(s State) State {
	s.Query = ""
	s.Category = filter.All
	s.Rarity = filter.All
	s.Season = filter.All
	return s
}

// ShowDropdown opens the recent-search dropdown.
type ShowDropdown struct{}

func (ShowDropdown) apply(s State) State {
	s.DropdownOpen = true
	return s
}

// HideDropdown closes the recent-search dropdown.
type HideDropdown struct{}

func (HideDropdown) apply(s State) State {
	s.DropdownOpen = false
	return s
}

// OpenDetails shows an item and records it as viewed.
type OpenDetails struct{ Item catalog.Item }

func (e OpenDetails) apply(s State) State {
	item := e.Item
	s.Dialog = DialogDetails
	s.Selected = &item
	s.DropdownOpen = false
	return ViewItem{Item: e.Item}.apply(s)
}

// OpenSet shows every item of a named set.
type OpenSet struct{ Name string }

func (e OpenSet) apply(s State) State {
	if strings.TrimSpace(e.Name) == "" {
		return s
	}
	s.Dialog = DialogSet
	s.SetName = e.Name
	s.DropdownOpen = false
	return s
}

// OpenRandom shows the settled pick of a shuffle.
type OpenRandom struct{ Item catalog.Item }

func (e OpenRandom) apply(s State) State {
	item := e.Item
	s.Dialog = DialogRandom
	s.Selected = &item
	s.DropdownOpen = false
	return s
}

// OpenHelp shows the key bindings.
type OpenHelp struct{}

func (OpenHelp) apply(s State) State {
	s.Dialog = DialogHelp
	s.DropdownOpen = false
	return s
}

// CloseDialog dismisses whatever dialog is open.
type CloseDialog struct{}

func (CloseDialog) apply(s State) State {
	s.Dialog = DialogNone
	s.Selected = nil
	s.SetName = ""
	return s
}

// ViewItem moves an item to the front of the recently viewed list.
type ViewItem struct{ Item catalog.Item }

func (e ViewItem) apply(s State) State {
	viewed := make([]catalog.Item, 0, MaxRecentlyViewed)
	viewed = append(viewed, e.Item)
	for _, it := range s.RecentlyViewed {
		if len(viewed) == MaxRecentlyViewed {
			break
		}
		if it.ID != e.Item.ID {
			viewed = append(viewed, it)
		}
	}
	s.RecentlyViewed = viewed
	return s
}

func orAll(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return filter.All
	}
	return v
}
