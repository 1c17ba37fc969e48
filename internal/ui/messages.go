// Package ui provides the Bubble Tea TUI for locker.
package ui

import "github.com/abelbrown/locker/internal/catalog"

// CatalogLoaded is sent when a catalog fetch finishes.
// Results whose RequestID is not the current one are dropped.
type CatalogLoaded struct {
	RequestID string
	Items     []catalog.Item
	Skipped   int
	Err       error
}

// FetchSlow is sent when a fetch has been pending for the slow threshold.
type FetchSlow struct {
	RequestID string
}

// RetryTick counts down the error state once per second.
type RetryTick struct {
	RequestID string
}

// ExpandSettled ends a reveal expansion after its cooldown.
type ExpandSettled struct {
	Gen uint64
}

// HistoryUpdated carries the recent-search list after a load or write.
type HistoryUpdated struct {
	Entries []string
	Err     error
}

// SetLoaded is sent when the items of a set have been fetched.
type SetLoaded struct {
	RequestID string
	Name      string
	Items     []catalog.Item
	Err       error
}

// ScrollFrame advances the scroll spring by one frame.
type ScrollFrame struct{}
