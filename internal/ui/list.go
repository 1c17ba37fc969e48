package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/locker/internal/catalog"
	"github.com/abelbrown/locker/internal/filter"
)

// scrollTopAfter is the cursor row past which the "g:top" hint appears.
const scrollTopAfter = 25

// RenderList renders the revealed items from offset, one per line, in at
// most height lines.
func RenderList(items []catalog.Item, cursor, offset, width, height int) string {
	if height < 1 {
		height = 1
	}
	if offset < 0 {
		offset = 0
	}

	var b strings.Builder
	for i := offset; i < len(items) && i < offset+height; i++ {
		b.WriteString(renderItemLine(items[i], i == cursor, width))
		b.WriteString("\n")
	}
	return b.String()
}

// calcScrollOffset returns the offset that keeps cursor on screen while
// moving as little as possible from the current offset.
func calcScrollOffset(cursor, current, height, total int) int {
	if total == 0 || height < 1 {
		return 0
	}
	switch {
	case cursor < current:
		current = cursor
	case cursor >= current+height:
		current = cursor - height + 1
	}
	maxOffset := max(total-height, 0)
	return max(min(current, maxOffset), 0)
}

// renderItemLine renders a single item line: rarity, name, category.
func renderItemLine(item catalog.Item, selected bool, width int) string {
	rarity := fmt.Sprintf("%-13s", truncate(strings.ToUpper(item.Rarity), 13))
	category := truncate(filter.Label(filter.Categories, item.Category), 16)

	// 2 for item padding, 2 for the separating spaces
	nameWidth := max(width-13-utf8.RuneCountInString(category)-4, 12)
	name := fmt.Sprintf("%-*s", nameWidth, truncate(item.Name, nameWidth))

	if selected {
		return SelectedItem.Render(rarity + " " + name + " " + category)
	}
	return NormalItem.Render(
		RarityBadge.Foreground(RarityColor(item.Rarity)).Render(rarity) + " " + name + " " + MetaItem.Render(category),
	)
}

// truncate shortens s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string([]rune(s)[:n-1]) + "…"
}

// RenderSearchBar renders the search input with the filtered count.
func RenderSearchBar(input string, filtered, total, width int) string {
	count := FilterBarCount.Render(fmt.Sprintf(" %d/%d", filtered, total))
	content := input + count
	padding := width - lipgloss.Width(content) - 2
	if padding < 0 {
		padding = 0
	}
	return FilterBar.Width(width).Render(content + strings.Repeat(" ", padding))
}

// RenderFacetBar shows the active category, rarity and season.
func RenderFacetBar(c filter.Criteria, width int) string {
	part := func(name string, opts []filter.Option, value string) string {
		label := filter.Label(opts, value)
		style := FacetLabel
		if v := strings.ToLower(value); v != "" && v != filter.All {
			style = FacetActive
		}
		return FacetLabel.Render(name+": ") + style.Render(label)
	}
	bar := strings.Join([]string{
		part("Category", filter.Categories, c.Category),
		part("Rarity", filter.Rarities, c.Rarity),
		part("Season", filter.Seasons, c.Season),
	}, "   ")
	if !c.IsZero() {
		bar += "   " + StatusBarKey.Render("x") + StatusBarText.Render(":reset")
	}
	return lipgloss.NewStyle().Width(width).Padding(0, 1).Render(bar)
}

// RenderDropdown renders the recent-search suggestions under the search bar.
func RenderDropdown(entries []string, selected, width int) string {
	if len(entries) == 0 {
		return ""
	}
	lines := []string{StatusBarText.Render("Recent searches")}
	for i, e := range entries {
		if i == selected {
			lines = append(lines, DropdownSelected.Render("› "+e))
		} else {
			lines = append(lines, "  "+e)
		}
	}
	lines = append(lines, StatusBarText.Render("ctrl+d forget · ctrl+x clear all"))
	return DropdownBox.Width(min(width-2, 48)).Render(strings.Join(lines, "\n"))
}

// RenderRecentlyViewed lists the last viewed item names on one line.
func RenderRecentlyViewed(items []catalog.Item, width int) string {
	if len(items) == 0 {
		return ""
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	line := "Recently viewed: " + strings.Join(names, ", ")
	return MetaItem.Padding(0, 1).Render(truncate(line, max(width-2, 1)))
}

// StatusInfo is everything the status bar shows.
type StatusInfo struct {
	Cursor    int
	Revealed  int
	Filtered  int
	Loading   bool
	Expanding bool
	Shuffling string
}

// RenderStatusBar renders the bottom status bar with key hints and position.
func RenderStatusBar(s StatusInfo, width int) string {
	var left string
	switch {
	case s.Loading:
		left = " Loading... "
	case s.Shuffling != "":
		left = " Shuffling: " + s.Shuffling + " "
	case s.Filtered == 0:
		left = " 0/0 "
	default:
		left = fmt.Sprintf(" %d/%d", s.Cursor+1, s.Filtered)
		if s.Revealed < s.Filtered {
			left += fmt.Sprintf(" (%d shown)", s.Revealed)
		}
		left += " "
	}
	if s.Expanding {
		left += StatusBarText.Render("loading more… ")
	}

	keys := []string{
		StatusBarKey.Render("j/k") + StatusBarText.Render(":nav"),
		StatusBarKey.Render("Enter") + StatusBarText.Render(":details"),
		StatusBarKey.Render("/") + StatusBarText.Render(":search"),
		StatusBarKey.Render("tab") + StatusBarText.Render(":category"),
		StatusBarKey.Render("p") + StatusBarText.Render(":surprise"),
	}
	if s.Cursor > scrollTopAfter {
		keys = append(keys, StatusBarKey.Render("g")+StatusBarText.Render(":top"))
	}
	keys = append(keys,
		StatusBarKey.Render("?")+StatusBarText.Render(":help"),
		StatusBarKey.Render("q")+StatusBarText.Render(":quit"),
	)
	keyHints := strings.Join(keys, " ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(keyHints)
	if padding < 0 {
		padding = 0
	}
	return StatusBar.Width(width).Render(left + strings.Repeat(" ", padding) + keyHints)
}
