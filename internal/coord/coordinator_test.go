package coord

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/locker/internal/history"
	"github.com/abelbrown/locker/internal/store"
	"github.com/abelbrown/locker/internal/ui"
)

// mockProgram records the messages sent to it.
type mockProgram struct {
	mu   sync.Mutex
	msgs []tea.Msg
	got  chan struct{}
}

func newMockProgram() *mockProgram {
	return &mockProgram{got: make(chan struct{}, 16)}
}

func (m *mockProgram) Send(msg tea.Msg) {
	m.mu.Lock()
	m.msgs = append(m.msgs, msg)
	m.mu.Unlock()
	m.got <- struct{}{}
}

func (m *mockProgram) messages() []tea.Msg {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.msgs)
}

func (m *mockProgram) wait(t *testing.T) {
	t.Helper()
	select {
	case <-m.got:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a message")
	}
}

// failingKV rejects every write.
type failingKV struct{}

func (failingKV) Get(string) (string, bool, error) { return "", false, nil }
func (failingKV) Set(string, string) error         { return errors.New("disk full") }
func (failingKV) Delete(string) error              { return errors.New("disk full") }

func newHistory(t *testing.T) (*history.History, *store.Store) {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	h, err := history.Load(s)
	if err != nil {
		t.Fatalf("failed to load history: %v", err)
	}
	return h, s
}

func TestQueueDebouncesToLastQuery(t *testing.T) {
	h, s := newHistory(t)
	c := NewCoordinator(h, 20*time.Millisecond, nil)
	defer c.Stop()

	p := newMockProgram()
	c.Start(p)

	for _, q := range []string{"r", "re", "rea", "reaper"} {
		c.Queue(q)
	}
	p.wait(t)

	msgs := p.messages()
	if len(msgs) != 1 {
		t.Fatalf("expected one save, got %d", len(msgs))
	}
	upd, ok := msgs[0].(ui.HistoryUpdated)
	if !ok {
		t.Fatalf("expected HistoryUpdated, got %T", msgs[0])
	}
	if upd.Err != nil || !slices.Equal(upd.Entries, []string{"reaper"}) {
		t.Errorf("unexpected update %+v", upd)
	}

	raw, ok, err := s.Get(history.Key)
	if err != nil || !ok {
		t.Fatalf("expected stored list, ok=%v err=%v", ok, err)
	}
	if raw != `["reaper"]` {
		t.Errorf("stored %s, want [\"reaper\"]", raw)
	}
}

func TestQueueMarksPending(t *testing.T) {
	h, _ := newHistory(t)
	c := NewCoordinator(h, time.Hour, nil)
	defer c.Stop()

	c.Queue("drift")
	if !c.Pending() {
		t.Error("save should be pending")
	}
}

// Keystrokes sent in one burst through a running program must save the
// query typed last, not whichever queue call happened to run last.
func TestProgramBurstSavesLastQuery(t *testing.T) {
	h, _ := newHistory(t)
	c := NewCoordinator(h, 30*time.Millisecond, nil)

	app := ui.NewApp(ui.AppConfig{QueueSearch: c.Queue, SlowAfter: -1})
	p := tea.NewProgram(app, tea.WithInput(nil), tea.WithOutput(io.Discard), tea.WithoutRenderer())
	c.Start(p)

	done := make(chan error, 1)
	go func() {
		_, err := p.Run()
		done <- err
	}()

	p.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	for _, r := range "reaper" {
		p.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	deadline := time.After(2 * time.Second)
	for {
		if list := h.List(); len(list) > 0 && list[0] == "reaper" && !c.Pending() {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("saved %v, want reaper first", h.List())
		case <-time.After(5 * time.Millisecond):
		}
	}

	p.Quit()
	if err := <-done; err != nil {
		t.Fatalf("program failed: %v", err)
	}
	c.Stop()

	if list := h.List(); list[0] != "reaper" {
		t.Errorf("saved %v after stop, want reaper first", list)
	}
}

func TestStopFlushesPendingSave(t *testing.T) {
	h, _ := newHistory(t)
	c := NewCoordinator(h, time.Hour, nil)

	c.Queue("peely")
	c.Stop()

	if got := h.List(); !slices.Equal(got, []string{"peely"}) {
		t.Errorf("pending save lost on stop, list %v", got)
	}
	if c.Pending() {
		t.Error("nothing should be pending after stop")
	}
}

func TestRemoveCancelsPendingSave(t *testing.T) {
	h, _ := newHistory(t)
	if _, err := h.Add("jonesy"); err != nil {
		t.Fatal(err)
	}
	c := NewCoordinator(h, time.Hour, nil)
	defer c.Stop()

	c.Queue("fishstick")
	msg := c.Remove("jonesy")()

	upd := msg.(ui.HistoryUpdated)
	if upd.Err != nil || len(upd.Entries) != 0 {
		t.Errorf("unexpected update %+v", upd)
	}
	if c.Pending() {
		t.Error("remove should drop the pending save")
	}
}

func TestClear(t *testing.T) {
	h, s := newHistory(t)
	for _, q := range []string{"a", "b"} {
		if _, err := h.Add(q); err != nil {
			t.Fatal(err)
		}
	}
	c := NewCoordinator(h, time.Hour, nil)
	defer c.Stop()

	upd := c.Clear()().(ui.HistoryUpdated)
	if upd.Err != nil || len(upd.Entries) != 0 {
		t.Errorf("unexpected update %+v", upd)
	}
	if _, ok, _ := s.Get(history.Key); ok {
		t.Error("key should be deleted")
	}
}

func TestLoad(t *testing.T) {
	h, _ := newHistory(t)
	if _, err := h.Add("midas"); err != nil {
		t.Fatal(err)
	}
	c := NewCoordinator(h, 0, nil)
	defer c.Stop()

	upd := c.Load()().(ui.HistoryUpdated)
	if !slices.Equal(upd.Entries, []string{"midas"}) {
		t.Errorf("unexpected entries %v", upd.Entries)
	}
}

func TestSaveFailureReported(t *testing.T) {
	h, err := history.Load(failingKV{})
	if err != nil {
		t.Fatal(err)
	}
	c := NewCoordinator(h, time.Millisecond, nil)
	defer c.Stop()

	p := newMockProgram()
	c.Start(p)
	c.Queue("raven")
	p.wait(t)

	upd := p.messages()[0].(ui.HistoryUpdated)
	if upd.Err == nil {
		t.Error("expected the write error to be reported")
	}
	if len(upd.Entries) != 0 {
		t.Errorf("failed write should keep the old list, got %v", upd.Entries)
	}
}
