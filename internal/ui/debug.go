package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/locker/internal/events"
)

// DebugPanel style for the event overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(1, 2)

// DebugHeaderStyle style for overlay section headings.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)

// debugPanelChrome is the number of lines DebugPanel's border and padding take.
const debugPanelChrome = 4

// debugOverlay renders journal counters and the latest events.
// Returns "" without a ring.
func debugOverlay(ring *events.Ring, now time.Time, width, height int) string {
	if ring == nil {
		return ""
	}

	counts := ring.Counts()

	var lines []string
	lines = append(lines, DebugHeaderStyle.Render("Session"))
	lines = append(lines, fmt.Sprintf("  Fetches:  %d started, %d complete, %d errors, %d stale",
		counts[events.KindFetchStart], counts[events.KindFetchComplete], counts[events.KindFetchError], counts[events.KindFetchStale]))
	lines = append(lines, fmt.Sprintf("  Sets:     %d fetched, %d errors",
		counts[events.KindSetFetch], counts[events.KindSetError]))
	lines = append(lines, fmt.Sprintf("  Reveal:   %d expansions, %d filters",
		counts[events.KindRevealGrow], counts[events.KindFilter]))
	lines = append(lines, fmt.Sprintf("  Buffer:   %d / %d events", ring.Len(), ring.Cap()))
	lines = append(lines, "")

	lines = append(lines, DebugHeaderStyle.Render("Recent Events"))
	for _, e := range ring.Last(20) {
		line := fmt.Sprintf("  %6s  %-16s", formatAge(now.Sub(e.Time)), string(e.Kind))
		if e.Count > 0 {
			line += fmt.Sprintf("  n=%d", e.Count)
		}
		if e.Query != "" {
			line += "  q=" + truncate(e.Query, 20)
		}
		if e.Msg != "" {
			line += "  " + truncate(e.Msg, 30)
		}
		if e.Err != "" {
			line += "  ERR:" + truncate(e.Err, 30)
		}
		if rid := e.RequestID; rid != "" {
			if len(rid) > 8 {
				rid = rid[:8]
			}
			line += "  rid:" + rid
		}
		lines = append(lines, line)
	}

	maxHeight := max(height-debugPanelChrome, 1)
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}

	panelWidth := max(min(84, width-4), 20)
	return DebugPanel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

// formatAge formats a duration as a compact human string.
// Negative durations from clock skew clamp to "0ms".
func formatAge(d time.Duration) string {
	if d < 0 {
		return "0ms"
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}
