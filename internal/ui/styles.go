package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorWarning   = lipgloss.Color("214") // Amber
)

// rarityColors follows the rarity chips of the web catalog.
var rarityColors = map[string]lipgloss.Color{
	"common":        lipgloss.Color("245"),
	"uncommon":      lipgloss.Color("77"),
	"rare":          lipgloss.Color("39"),
	"epic":          lipgloss.Color("135"),
	"legendary":     lipgloss.Color("208"),
	"mythic":        lipgloss.Color("220"),
	"gaminglegends": lipgloss.Color("63"),
	"marvel":        lipgloss.Color("196"),
	"starwars":      lipgloss.Color("226"),
	"dc":            lipgloss.Color("27"),
	"dark":          lipgloss.Color("91"),
	"frozen":        lipgloss.Color("51"),
	"lava":          lipgloss.Color("202"),
	"shadow":        lipgloss.Color("238"),
	"icon":          lipgloss.Color("43"),
}

// RarityColor returns the display color for a rarity value.
func RarityColor(rarity string) lipgloss.Color {
	if c, ok := rarityColors[strings.ToLower(rarity)]; ok {
		return c
	}
	return colorSecondary
}

// SelectedItem style for the currently highlighted item.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected items.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// RarityBadge style for the rarity column. Foreground is set per item.
var RarityBadge = lipgloss.NewStyle().
	Bold(true)

// MetaItem style for category and introduction text.
var MetaItem = lipgloss.NewStyle().
	Foreground(colorMuted)

// Title style for the app header.
var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// NoticeStyle for non-fatal notices such as a slow fetch.
var NoticeStyle = lipgloss.NewStyle().
	Foreground(colorWarning).
	Padding(0, 1)

// FilterBar style for the search bar.
var FilterBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// FilterBarCount style for the filtered count.
var FilterBarCount = lipgloss.NewStyle().
	Foreground(colorSecondary)

// FacetLabel style for facet names in the facet bar.
var FacetLabel = lipgloss.NewStyle().
	Foreground(colorSecondary)

// FacetActive style for a facet set to something other than "all".
var FacetActive = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// DropdownBox style for the recent-search dropdown.
var DropdownBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// DropdownSelected style for the highlighted suggestion.
var DropdownSelected = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// DialogBox style for modal panes.
var DialogBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 2)

// DialogTitle style for the heading of a modal pane.
var DialogTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// DialogField style for field names in the details pane.
var DialogField = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Width(14)
