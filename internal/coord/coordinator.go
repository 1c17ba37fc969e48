// Package coord runs the recent-search writes behind the TUI.
package coord

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/locker/internal/events"
	"github.com/abelbrown/locker/internal/history"
	"github.com/abelbrown/locker/internal/logging"
	"github.com/abelbrown/locker/internal/schedule"
	"github.com/abelbrown/locker/internal/ui"
)

// saveKey is the scheduler key for the pending recent-search write.
const saveKey = history.Key

// DefaultDebounce is the pause after typing before a query is saved.
const DefaultDebounce = time.Second

// sender delivers messages to the UI. *tea.Program satisfies it.
type sender interface {
	Send(msg tea.Msg)
}

// Coordinator owns the history writes. Queued saves are debounced so only
// the query the user paused on is stored.
type Coordinator struct {
	hist     *history.History
	sched    *schedule.Scheduler
	journal  *events.Journal
	debounce time.Duration

	mu      sync.Mutex
	program sender
}

// NewCoordinator creates a Coordinator. journal may be nil.
func NewCoordinator(h *history.History, debounce time.Duration, journal *events.Journal) *Coordinator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Coordinator{
		hist:     h,
		sched:    schedule.NewScheduler(),
		journal:  journal,
		debounce: debounce,
	}
}

// Start attaches the program that receives HistoryUpdated messages.
func (c *Coordinator) Start(program sender) {
	c.mu.Lock()
	c.program = program
	c.mu.Unlock()
}

func (c *Coordinator) send(msg tea.Msg) {
	c.mu.Lock()
	p := c.program
	c.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Load returns a command reporting the stored list.
func (c *Coordinator) Load() tea.Cmd {
	return func() tea.Msg {
		return ui.HistoryUpdated{Entries: c.hist.List()}
	}
}

// Queue schedules q to be saved after the debounce. A later Queue replaces
// a pending one. The result arrives as a HistoryUpdated message.
// Only arms a timer, so Update may call it directly.
func (c *Coordinator) Queue(q string) {
	c.sched.Schedule(saveKey, c.debounce, func() {
		c.send(c.save(q))
	})
}

// Pending reports whether a save is waiting for its debounce.
func (c *Coordinator) Pending() bool {
	return c.sched.Pending(saveKey)
}

func (c *Coordinator) save(q string) ui.HistoryUpdated {
	list, err := c.hist.Add(q)
	if err != nil {
		logging.Warn("recent search not saved", "query", q, "error", err)
		c.journal.Fail(events.KindHistorySave, "", err)
		return ui.HistoryUpdated{Entries: list, Err: err}
	}
	c.journal.Emit(events.Event{Kind: events.KindHistorySave, Query: q, Count: len(list)})
	return ui.HistoryUpdated{Entries: list}
}

// Remove returns a command deleting q from the list. A pending save is
// dropped first so it cannot bring q back.
func (c *Coordinator) Remove(q string) tea.Cmd {
	return func() tea.Msg {
		c.sched.Cancel(saveKey)
		list, err := c.hist.Remove(q)
		if err != nil {
			logging.Warn("recent search not removed", "query", q, "error", err)
		}
		return ui.HistoryUpdated{Entries: list, Err: err}
	}
}

// Clear returns a command wiping the list.
func (c *Coordinator) Clear() tea.Cmd {
	return func() tea.Msg {
		c.sched.Cancel(saveKey)
		if err := c.hist.Clear(); err != nil {
			logging.Warn("recent searches not cleared", "error", err)
			return ui.HistoryUpdated{Entries: c.hist.List(), Err: err}
		}
		return ui.HistoryUpdated{Entries: []string{}}
	}
}

// Stop writes a pending save immediately and shuts the scheduler down.
// Call after the program has exited.
func (c *Coordinator) Stop() {
	c.Start(nil)
	c.sched.Flush(saveKey)
	c.sched.Stop()
}
