package filter

import "strings"

// Option is one selectable value of a facet.
type Option struct {
	Value string
	Label string
}

// Categories are the category tabs, in display order.
var Categories = []Option{
	{All, "All"},
	{"outfit", "Outfits"},
	{"pickaxe", "Pickaxes"},
	{"backpack", "Back Blings"},
	{"emote", "Emotes"},
	{"loadingscreen", "Loading Screens"},
	{"wrap", "Wraps"},
}

// Rarities are the rarity chips, in display order.
var Rarities = []Option{
	{All, "All Rarities"},
	{"common", "Common"},
	{"uncommon", "Uncommon"},
	{"rare", "Rare"},
	{"epic", "Epic"},
	{"legendary", "Legendary"},
	{"mythic", "Mythic"},
	{"gaminglegends", "Gaming Legends"},
	{"marvel", "Marvel"},
	{"starwars", "Star Wars"},
	{"dc", "DC"},
	{"dark", "Dark"},
	{"frozen", "Frozen"},
	{"lava", "Lava"},
	{"shadow", "Shadow"},
	{"icon", "Icon"},
}

// Seasons are the era chips. Values match against introduction text.
var Seasons = []Option{
	{All, "All Seasons"},
	{"chapter 1", "Chapter 1"},
	{"chapter 2", "Chapter 2"},
	{"chapter 3", "Chapter 3"},
	{"chapter 4", "Chapter 4"},
	{"chapter 5", "Chapter 5"},
}

// Next returns the option step places after value, wrapping around. step
// may be negative. Unknown values count as "all", so stepping forward from
// one gives the first real option and stepping back gives the last.
func Next(opts []Option, value string, step int) string {
	if len(opts) == 0 {
		return value
	}
	idx := indexOf(opts, value)
	if idx < 0 {
		idx = 0
	}
	n := len(opts)
	return opts[((idx+step)%n+n)%n].Value
}

// Label returns the display label for value, or value itself.
func Label(opts []Option, value string) string {
	if i := indexOf(opts, value); i >= 0 {
		return opts[i].Label
	}
	return value
}

func indexOf(opts []Option, value string) int {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		value = All
	}
	for i, o := range opts {
		if o.Value == value {
			return i
		}
	}
	return -1
}
