package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/locker/internal/catalog"
	"github.com/abelbrown/locker/internal/filter"
)

func dialogWidth(width int) int {
	return max(min(72, width-4), 30)
}

func field(name, value string) string {
	if value == "" {
		value = MetaItem.Render("—")
	}
	return DialogField.Render(name) + value
}

// RenderDetails renders the item details pane.
func RenderDetails(item catalog.Item, width int) string {
	w := dialogWidth(width)
	inner := w - 6

	rarity := lipgloss.NewStyle().Foreground(RarityColor(item.Rarity)).Bold(true).
		Render(filter.Label(filter.Rarities, item.Rarity))

	lines := []string{
		DialogTitle.Render(item.Name),
		"",
	}
	if item.Description != "" {
		lines = append(lines, lipgloss.NewStyle().Width(inner).Render(item.Description), "")
	}
	lines = append(lines,
		field("Rarity", rarity),
		field("Type", filter.Label(filter.Categories, item.Category)),
		field("Set", item.Set),
		field("Series", item.Series),
		field("Introduced", item.Introduction),
		field("Image", truncate(item.Image(), inner-14)),
		"",
	)

	hints := []string{StatusBarKey.Render("esc") + StatusBarText.Render(":close")}
	if item.Set != "" {
		hints = append(hints, StatusBarKey.Render("o")+StatusBarText.Render(":view set"))
	}
	lines = append(lines, strings.Join(hints, "  "))

	return DialogBox.Width(w).Render(strings.Join(lines, "\n"))
}

// SetView is what the set pane shows.
type SetView struct {
	Name    string
	Items   []catalog.Item
	Cursor  int
	Loading bool
	Spinner string
	Err     error
}

// RenderSet renders the set pane listing every item of one set.
func RenderSet(v SetView, width, height int) string {
	w := dialogWidth(width)
	lines := []string{DialogTitle.Render("Set: " + v.Name), ""}

	switch {
	case v.Loading:
		lines = append(lines, v.Spinner+" Loading set items...")
	case v.Err != nil:
		lines = append(lines, ErrorStyle.Render("Failed to load set: "+v.Err.Error()))
	case len(v.Items) == 0:
		lines = append(lines, MetaItem.Render("No items in this set."))
	default:
		rows := max(height-10, 3)
		offset := calcScrollOffset(v.Cursor, 0, rows, len(v.Items))
		lines = append(lines, strings.TrimRight(RenderList(v.Items, v.Cursor, offset, w-6, rows), "\n"))
	}

	lines = append(lines, "",
		StatusBarKey.Render("enter")+StatusBarText.Render(":details")+"  "+
			StatusBarKey.Render("esc")+StatusBarText.Render(":close"))
	return DialogBox.Width(w).Render(strings.Join(lines, "\n"))
}

// RenderRandom renders the "random find" pane for a settled pick.
func RenderRandom(item catalog.Item, width int) string {
	w := dialogWidth(width)
	rarity := lipgloss.NewStyle().Foreground(RarityColor(item.Rarity)).Bold(true).
		Render(filter.Label(filter.Rarities, item.Rarity))

	lines := []string{
		DialogTitle.Render("Random Find!"),
		"",
		DialogTitle.Render(item.Name),
		rarity + MetaItem.Render(" · "+filter.Label(filter.Categories, item.Category)),
		"",
		StatusBarKey.Render("enter") + StatusBarText.Render(":view details") + "  " +
			StatusBarKey.Render("p") + StatusBarText.Render(":try another") + "  " +
			StatusBarKey.Render("esc") + StatusBarText.Render(":close"),
	}
	return DialogBox.Width(w).Render(strings.Join(lines, "\n"))
}

// RenderHelp renders every key binding. The box sizes to the columns.
func RenderHelp(h help.Model, keys KeyMap) string {
	h.ShowAll = true
	h.Width = 0
	return DialogBox.Render(DialogTitle.Render("Keys") + "\n\n" + h.View(keys))
}
