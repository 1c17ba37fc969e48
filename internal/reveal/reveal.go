// Package reveal exposes a growing prefix of a filtered list.
//
// The controller starts with one page revealed and grows by a page each
// time the consumer reports it is near the end of the window, at most once
// per cooldown. Replacing the list resets the window.
package reveal

import "time"

// Defaults used when Options leaves a field zero.
const (
	DefaultPageSize = 20
	DefaultCooldown = 300 * time.Millisecond
)

// Options configures a Controller.
type Options struct {
	PageSize int
	Cooldown time.Duration
	Now      func() time.Time // defaults to time.Now
}

// Controller holds the reveal window for one list at a time.
// It is not safe for concurrent use; the UI loop owns it.
type Controller[T any] struct {
	pageSize int
	cooldown time.Duration
	now      func() time.Time

	items      []T
	revealed   int
	expanding  bool
	lastExpand time.Time
	gen        uint64
}

// New creates an empty controller.
func New[T any](opts Options) *Controller[T] {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Cooldown < 0 {
		opts.Cooldown = 0
	} else if opts.Cooldown == 0 {
		opts.Cooldown = DefaultCooldown
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller[T]{
		pageSize: opts.PageSize,
		cooldown: opts.Cooldown,
		now:      opts.Now,
	}
}

// Reset replaces the list and reveals the first page.
// Any pending expansion is dropped.
func (c *Controller[T]) Reset(items []T) {
	c.items = items
	c.revealed = min(c.pageSize, len(items))
	c.expanding = false
	c.lastExpand = time.Time{}
	c.gen++
}

// NotifyProximity grows the window by one page when more items remain and
// the cooldown since the last expansion has passed. Reports whether it grew.
func (c *Controller[T]) NotifyProximity() bool {
	if !c.HasMore() {
		return false
	}
	now := c.now()
	if !c.lastExpand.IsZero() && now.Sub(c.lastExpand) < c.cooldown {
		return false
	}

	c.revealed = min(c.revealed+c.pageSize, len(c.items))
	c.expanding = true
	c.lastExpand = now
	c.gen++
	return true
}

// Settle ends the expansion started at generation gen.
// Settles for an older generation are ignored.
func (c *Controller[T]) Settle(gen uint64) {
	if gen != c.gen {
		return
	}
	c.expanding = false
}

// Generation changes on every Reset and every expansion.
func (c *Controller[T]) Generation() uint64 { return c.gen }

// Cooldown returns the minimum gap between expansions.
func (c *Controller[T]) Cooldown() time.Duration { return c.cooldown }

// PageSize returns the number of items revealed per expansion.
func (c *Controller[T]) PageSize() int { return c.pageSize }

// VisiblePrefix returns the revealed head of the list.
func (c *Controller[T]) VisiblePrefix() []T {
	if c.revealed == 0 {
		return []T{}
	}
	return c.items[:c.revealed:c.revealed]
}

// HasMore reports whether unrevealed items remain.
func (c *Controller[T]) HasMore() bool { return c.revealed < len(c.items) }

// IsExpanding is true from an expansion until it settles or the cooldown
// runs out. It is display feedback only.
func (c *Controller[T]) IsExpanding() bool {
	if !c.expanding {
		return false
	}
	return c.now().Sub(c.lastExpand) < c.cooldown
}

// Revealed returns the length of the visible prefix.
func (c *Controller[T]) Revealed() int { return c.revealed }

// Len returns the length of the full list.
func (c *Controller[T]) Len() int { return len(c.items) }

// Near reports whether index is within threshold rows of the last revealed row.
func (c *Controller[T]) Near(index, threshold int) bool {
	if c.revealed == 0 || index < 0 {
		return false
	}
	return c.revealed-1-index <= threshold
}
