// Package filter provides the pure catalog filter.
// Apply is simple: []Item in, []Item out. No side effects.
package filter

import (
	"strings"

	"github.com/abelbrown/locker/internal/catalog"
)

// All is the selector value that disables a facet.
const All = "all"

// Criteria narrows a catalog. Facets are ANDed together.
// The zero value matches everything.
type Criteria struct {
	Query    string // substring of the item name
	Category string // exact item category, or "all"
	Rarity   string // exact item rarity, or "all"
	Season   string // substring of the introduction text, or "all"
}

// Default returns criteria with every facet set to "all".
func Default() Criteria {
	return Criteria{Category: All, Rarity: All, Season: All}
}

// normalized lowercases every field and maps empty facets to "all".
func (c Criteria) normalized() Criteria {
	n := Criteria{
		Query:    strings.ToLower(c.Query),
		Category: strings.ToLower(strings.TrimSpace(c.Category)),
		Rarity:   strings.ToLower(strings.TrimSpace(c.Rarity)),
		Season:   strings.ToLower(strings.TrimSpace(c.Season)),
	}
	if n.Category == "" {
		n.Category = All
	}
	if n.Rarity == "" {
		n.Rarity = All
	}
	if n.Season == "" {
		n.Season = All
	}
	return n
}

// IsZero reports whether the criteria match everything.
func (c Criteria) IsZero() bool {
	return c.normalized() == Criteria{Category: All, Rarity: All, Season: All}
}

func (c Criteria) matches(item catalog.Item) bool {
	if !strings.Contains(strings.ToLower(item.Name), c.Query) {
		return false
	}
	if c.Category != All && strings.ToLower(item.Category) != c.Category {
		return false
	}
	if c.Rarity != All && strings.ToLower(item.Rarity) != c.Rarity {
		return false
	}
	if c.Season != All && !strings.Contains(strings.ToLower(item.Introduction), c.Season) {
		return false
	}
	return true
}

// Apply returns the items matching c, in input order.
// Never returns nil.
func Apply(items []catalog.Item, c Criteria) []catalog.Item {
	if len(items) == 0 {
		return []catalog.Item{}
	}

	n := c.normalized()
	result := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		if n.matches(item) {
			result = append(result, item)
		}
	}
	return result
}
