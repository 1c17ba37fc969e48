package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/abelbrown/locker/internal/catalog"
	"github.com/abelbrown/locker/internal/logging"
	"github.com/abelbrown/locker/internal/state"
	"github.com/abelbrown/locker/internal/surprise"
)

// mockCmd tracks calls into the App's injected functions.
type mockCmd struct {
	mu       sync.Mutex
	ctxs     []context.Context
	results  [][]catalog.Item
	err      error
	setCalls []string
	queued   []string
	removed  []string
	cleared  int
}

func (m *mockCmd) fetchCatalog(ctx context.Context) (catalog.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctxs = append(m.ctxs, ctx)
	if m.err != nil {
		return catalog.Result{}, m.err
	}
	var items []catalog.Item
	if len(m.results) > 0 {
		items = m.results[0]
		m.results = m.results[1:]
	}
	return catalog.Result{Items: items}, nil
}

func (m *mockCmd) fetchSet(ctx context.Context, name string) (catalog.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls = append(m.setCalls, name)
	return catalog.Result{Items: []catalog.Item{
		{ID: "s1", Name: "Set Piece One", Category: "outfit", Rarity: "epic", Set: name},
		{ID: "s2", Name: "Set Piece Two", Category: "pickaxe", Rarity: "epic", Set: name},
	}}, nil
}

func (m *mockCmd) queueSearch(q string) {
	m.queued = append(m.queued, q)
}

func (m *mockCmd) removeSearch(q string) tea.Cmd {
	m.removed = append(m.removed, q)
	return nil
}

func (m *mockCmd) clearSearches() tea.Cmd {
	m.cleared++
	return nil
}

// fakeClock is a settable time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestApp(mock *mockCmd, clock *fakeClock) App {
	return NewApp(AppConfig{
		FetchCatalog:  mock.fetchCatalog,
		FetchSet:      mock.fetchSet,
		QueueSearch:   mock.queueSearch,
		RemoveSearch:  mock.removeSearch,
		ClearSearches: mock.clearSearches,
		PageSize:      20,
		Cooldown:      300 * time.Millisecond,
		SlowAfter:     -1, // no slow timer in tests
		AutoRetry:     true,
		Now:           clock.Now,
		Surprise: surprise.Options{
			Picks: 3,
			Rand:  rand.New(rand.NewSource(7)),
			Tick: func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
				return func() tea.Msg { return fn(time.Time{}) }
			},
		},
	})
}

// runCmds executes cmd and any batched commands, collecting their messages.
func runCmds(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmds(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findCatalogLoaded(t *testing.T, msgs []tea.Msg) CatalogLoaded {
	t.Helper()
	for _, m := range msgs {
		if cl, ok := m.(CatalogLoaded); ok {
			return cl
		}
	}
	t.Fatalf("no CatalogLoaded among %d messages", len(msgs))
	return CatalogLoaded{}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, a App, msgs ...tea.Msg) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var model tea.Model
		model, cmd = a.Update(msg)
		a = model.(App)
	}
	return a, cmd
}

func makeItems(n int) []catalog.Item {
	items := make([]catalog.Item, n)
	categories := []string{"outfit", "pickaxe", "emote"}
	rarities := []string{"common", "rare", "epic"}
	for i := range items {
		items[i] = catalog.Item{
			ID:           fmt.Sprintf("id-%02d", i),
			Name:         fmt.Sprintf("Item %02d", i),
			Category:     categories[i%3],
			Rarity:       rarities[i%3],
			Introduction: "Introduced in Chapter 2, Season 1.",
			Set:          "Test Set",
		}
	}
	return items
}

// loadedApp returns an app that has received items for its first fetch.
func loadedApp(t *testing.T, items []catalog.Item) (App, *mockCmd, *fakeClock) {
	t.Helper()
	mock := &mockCmd{}
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	app := newTestApp(mock, clock)
	app, _ = press(t, app,
		tea.WindowSizeMsg{Width: 100, Height: 30},
		CatalogLoaded{RequestID: app.RequestID(), Items: items},
	)
	return app, mock, clock
}

func TestAppInitStartsFetch(t *testing.T) {
	mock := &mockCmd{results: [][]catalog.Item{makeItems(3)}}
	app := newTestApp(mock, &fakeClock{})

	if !app.Loading() {
		t.Error("app should be loading before the first result")
	}
	cmd := app.Init()
	if cmd == nil {
		t.Fatal("Init should return a command")
	}

	loaded := findCatalogLoaded(t, runCmds(cmd))
	if loaded.RequestID != app.RequestID() {
		t.Errorf("result carries request %q, want %q", loaded.RequestID, app.RequestID())
	}
	if len(mock.ctxs) != 1 {
		t.Fatalf("expected one fetch, got %d", len(mock.ctxs))
	}

	app, _ = press(t, app, loaded)
	if app.Loading() || len(app.Filtered()) != 3 {
		t.Errorf("loaded app: loading=%v filtered=%d", app.Loading(), len(app.Filtered()))
	}
	if mock.ctxs[0].Err() == nil {
		t.Error("finished fetch context should be released")
	}
}

func TestAppInitNilFetch(t *testing.T) {
	app := NewApp(AppConfig{})
	if app.Loading() {
		t.Error("app without a fetch function should not be loading")
	}
	if app.Init() != nil {
		t.Error("Init should return nil with nothing to do")
	}
}

func TestStaleResultIsDropped(t *testing.T) {
	first := []catalog.Item{{ID: "old", Name: "Old Item", Category: "outfit", Rarity: "rare"}}
	second := []catalog.Item{{ID: "new", Name: "New Item", Category: "outfit", Rarity: "rare"}}
	mock := &mockCmd{results: [][]catalog.Item{first, second}}
	app := newTestApp(mock, &fakeClock{})

	stale := findCatalogLoaded(t, runCmds(app.Init()))

	// retry supersedes the first fetch
	app, cmd := press(t, app, keyRunes("r"))
	fresh := findCatalogLoaded(t, runCmds(cmd))

	if mock.ctxs[0].Err() != context.Canceled {
		t.Errorf("superseded fetch context should be cancelled, got %v", mock.ctxs[0].Err())
	}
	if fresh.RequestID == stale.RequestID {
		t.Fatal("retry should issue a new request ID")
	}

	// stale result arriving first must not be applied
	app, _ = press(t, app, stale)
	if len(app.Items()) != 0 || !app.Loading() {
		t.Errorf("stale result applied: items=%d loading=%v", len(app.Items()), app.Loading())
	}

	app, _ = press(t, app, fresh)
	if len(app.Items()) != 1 || app.Items()[0].ID != "new" {
		t.Fatalf("fresh result not applied: %v", app.Items())
	}

	// and arriving last must not overwrite
	app, _ = press(t, app, stale)
	if app.Items()[0].ID != "new" {
		t.Errorf("stale result overwrote fresh data: %v", app.Items())
	}
}

func TestFetchErrorCountdownAutoRetry(t *testing.T) {
	mock := &mockCmd{}
	app := newTestApp(mock, &fakeClock{})
	rid := app.RequestID()

	app, cmd := press(t, app, CatalogLoaded{RequestID: rid, Err: errors.New("HTTP error! status: 503")})
	if app.Err() == nil {
		t.Fatal("error should be surfaced")
	}
	if cmd == nil {
		t.Error("error should start the countdown")
	}
	if app.RetryIn() != 15 {
		t.Errorf("countdown starts at %d, want 15", app.RetryIn())
	}

	for i := 0; i < 14; i++ {
		app, _ = press(t, app, RetryTick{RequestID: rid})
	}
	if app.RetryIn() != 1 || app.RequestID() != rid {
		t.Fatalf("after 14 ticks: retryIn=%d rid changed=%v", app.RetryIn(), app.RequestID() != rid)
	}

	app, cmd = press(t, app, RetryTick{RequestID: rid})
	if app.RequestID() == rid {
		t.Fatal("countdown reaching zero should retry")
	}
	if !app.Loading() || app.Err() != nil {
		t.Errorf("retry state: loading=%v err=%v", app.Loading(), app.Err())
	}
	findCatalogLoaded(t, runCmds(cmd))
}

func TestFetchErrorCountdownWithoutAutoRetry(t *testing.T) {
	app := NewApp(AppConfig{
		FetchCatalog:   (&mockCmd{}).fetchCatalog,
		RetryCountdown: 2 * time.Second,
		SlowAfter:      -1,
	})
	rid := app.RequestID()

	app, _ = press(t, app,
		CatalogLoaded{RequestID: rid, Err: errors.New("boom")},
		RetryTick{RequestID: rid},
		RetryTick{RequestID: rid},
		RetryTick{RequestID: rid},
	)
	if app.RetryIn() != 0 || app.RequestID() != rid || app.Err() == nil {
		t.Errorf("countdown should only be cosmetic: retryIn=%d err=%v", app.RetryIn(), app.Err())
	}
}

func TestRetryTickForOldRequestIgnored(t *testing.T) {
	app := newTestApp(&mockCmd{}, &fakeClock{})
	rid := app.RequestID()
	app, _ = press(t, app, CatalogLoaded{RequestID: rid, Err: errors.New("boom")})

	app, _ = press(t, app, RetryTick{RequestID: "someone-else"})
	if app.RetryIn() != 15 {
		t.Errorf("foreign tick changed countdown to %d", app.RetryIn())
	}
}

func TestCancelledFetchNotShown(t *testing.T) {
	app := newTestApp(&mockCmd{}, &fakeClock{})
	app, _ = press(t, app, CatalogLoaded{RequestID: app.RequestID(), Err: context.Canceled})
	if app.Err() != nil {
		t.Errorf("cancellation should not surface as an error: %v", app.Err())
	}
}

func TestFetchSlowNotice(t *testing.T) {
	app := newTestApp(&mockCmd{}, &fakeClock{})
	app, _ = press(t, app, tea.WindowSizeMsg{Width: 100, Height: 30})

	app, _ = press(t, app, FetchSlow{RequestID: "other"})
	if app.Slow() {
		t.Error("slow notice for a foreign request")
	}

	app, _ = press(t, app, FetchSlow{RequestID: app.RequestID()})
	if !app.Slow() {
		t.Fatal("slow notice not shown")
	}
	if !strings.Contains(app.View(), "longer than expected") {
		t.Error("view should show the slow notice")
	}

	app, _ = press(t, app, CatalogLoaded{RequestID: app.RequestID(), Items: makeItems(2)})
	if app.Slow() {
		t.Error("slow notice should clear once loaded")
	}
}

func TestNegativeSlowAfterSkipsTimer(t *testing.T) {
	tests := []struct {
		name string
		slow time.Duration
		want int
	}{
		{"disabled", -time.Second, 2},
		{"default", 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewApp(AppConfig{FetchCatalog: (&mockCmd{}).fetchCatalog, SlowAfter: tt.slow})
			batch, ok := app.Init()().(tea.BatchMsg)
			if !ok {
				t.Fatal("Init should batch the fetch commands")
			}
			// fetch, spinner, and the slow timer when enabled
			if len(batch) != tt.want {
				t.Errorf("got %d commands, want %d", len(batch), tt.want)
			}
		})
	}
}

func TestAppNavigation(t *testing.T) {
	app, _, _ := loadedApp(t, makeItems(5))

	app, _ = press(t, app, keyRunes("j"))
	if app.Cursor() != 1 {
		t.Errorf("j should move cursor to 1, got %d", app.Cursor())
	}
	app, _ = press(t, app, keyRunes("k"), keyRunes("k"))
	if app.Cursor() != 0 {
		t.Errorf("k at top should keep cursor at 0, got %d", app.Cursor())
	}
	app, _ = press(t, app, keyRunes("G"))
	if app.Cursor() != 4 {
		t.Errorf("G should move cursor to 4, got %d", app.Cursor())
	}
	app, _ = press(t, app, keyRunes("g"))
	if app.Cursor() != 0 {
		t.Errorf("g should move cursor to 0, got %d", app.Cursor())
	}
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyDown})
	if app.Cursor() != 1 {
		t.Errorf("down arrow should move cursor to 1, got %d", app.Cursor())
	}
}

func TestRevealExpandsNearEnd(t *testing.T) {
	var logs bytes.Buffer
	logging.InitWriter(&logs, log.DebugLevel)
	defer func() { logging.Logger = nil }()

	app, _, clock := loadedApp(t, makeItems(45))

	if len(app.Visible()) != 20 {
		t.Fatalf("initial window %d, want 20", len(app.Visible()))
	}

	app, cmd := press(t, app, keyRunes("G"))
	if len(app.Visible()) != 40 {
		t.Fatalf("window after nearing the end %d, want 40", len(app.Visible()))
	}
	if cmd == nil {
		t.Error("expansion should schedule its settle")
	}
	if !strings.Contains(logs.String(), "reveal grew") {
		t.Errorf("expansion should be logged, got:\n%s", logs.String())
	}

	// within the cooldown nothing grows
	app, _ = press(t, app, keyRunes("G"))
	if len(app.Visible()) != 40 {
		t.Errorf("window grew inside the cooldown: %d", len(app.Visible()))
	}

	clock.Advance(300 * time.Millisecond)
	app, _ = press(t, app, keyRunes("j"))
	if len(app.Visible()) != 45 {
		t.Errorf("window after cooldown %d, want 45", len(app.Visible()))
	}
}

func TestFacetKeysRefilter(t *testing.T) {
	app, _, _ := loadedApp(t, makeItems(45))
	app, _ = press(t, app, keyRunes("G"))

	// tab: all -> outfit
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyTab})
	if got := app.State().Category; got != "outfit" {
		t.Fatalf("category %q, want outfit", got)
	}
	if len(app.Filtered()) != 15 {
		t.Errorf("filtered %d, want 15 outfits", len(app.Filtered()))
	}
	for _, it := range app.Filtered() {
		if it.Category != "outfit" {
			t.Errorf("non-outfit %q in results", it.Name)
		}
	}
	if app.Cursor() != 0 || len(app.Visible()) != 15 {
		t.Errorf("refilter should reset: cursor=%d visible=%d", app.Cursor(), len(app.Visible()))
	}

	// y: all -> common; every outfit in makeItems is common
	app, _ = press(t, app, keyRunes("y"))
	if app.State().Rarity != "common" || len(app.Filtered()) != 15 {
		t.Errorf("rarity=%q filtered=%d", app.State().Rarity, len(app.Filtered()))
	}

	app, _ = press(t, app, keyRunes("Y"))
	if app.State().Rarity != "all" {
		t.Errorf("Y should step back to all, got %q", app.State().Rarity)
	}

	app, _ = press(t, app, keyRunes("x"))
	if app.State().Criteria().Category != "all" || len(app.Filtered()) != 45 {
		t.Errorf("reset: category=%q filtered=%d", app.State().Category, len(app.Filtered()))
	}
}

func TestSearchTyping(t *testing.T) {
	items := []catalog.Item{
		{ID: "1", Name: "Renegade Raider", Category: "outfit", Rarity: "rare"},
		{ID: "2", Name: "Reaper", Category: "pickaxe", Rarity: "epic"},
		{ID: "3", Name: "Drift", Category: "outfit", Rarity: "legendary"},
	}
	app, mock, _ := loadedApp(t, items)

	app, _ = press(t, app, keyRunes("/"), keyRunes("r"), keyRunes("e"), keyRunes("a"))
	if app.State().Query != "rea" {
		t.Fatalf("query %q, want rea", app.State().Query)
	}
	if len(app.Filtered()) != 1 || app.Filtered()[0].Name != "Reaper" {
		t.Errorf("unexpected results %v", app.Filtered())
	}
	if got := strings.Join(mock.queued, ","); got != "r,re,rea" {
		t.Errorf("queued saves %q", got)
	}

	// q types while searching instead of quitting
	app, _ = press(t, app, keyRunes("q"))
	if app.State().Query != "reaq" {
		t.Errorf("query %q, want reaq", app.State().Query)
	}

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyEsc}, keyRunes("j"))
	if app.State().Query != "reaq" {
		t.Error("esc should keep the query and leave search mode")
	}
}

func TestSearchDropdown(t *testing.T) {
	app, mock, _ := loadedApp(t, makeItems(3))
	app, _ = press(t, app, HistoryUpdated{Entries: []string{"reaper", "drift"}})

	app, _ = press(t, app, keyRunes("/"))
	if !app.State().DropdownOpen {
		t.Fatal("dropdown should open with recent searches")
	}
	if !strings.Contains(app.View(), "Recent searches") {
		t.Error("view should render the dropdown")
	}

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyCtrlD})
	if len(mock.removed) != 1 || mock.removed[0] != "drift" {
		t.Errorf("removed %v, want [drift]", mock.removed)
	}

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter})
	if app.State().Query != "reaper" {
		t.Errorf("query %q, want reaper", app.State().Query)
	}
	if app.State().DropdownOpen {
		t.Error("dropdown should close on enter")
	}
	if mock.queued[len(mock.queued)-1] != "reaper" {
		t.Errorf("selected search not queued: %v", mock.queued)
	}

	app, _ = press(t, app, keyRunes("/"), tea.KeyMsg{Type: tea.KeyCtrlX})
	if mock.cleared != 1 {
		t.Error("ctrl+x should clear recent searches")
	}
	if app.State().DropdownOpen {
		t.Error("dropdown should hide after clearing")
	}
}

func TestDetailsDialog(t *testing.T) {
	app, _, _ := loadedApp(t, makeItems(3))

	app, _ = press(t, app, keyRunes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	st := app.State()
	if st.Dialog != state.DialogDetails || st.Selected == nil || st.Selected.ID != "id-01" {
		t.Fatalf("details not open for id-01: %+v", st)
	}
	if len(st.RecentlyViewed) != 1 || st.RecentlyViewed[0].ID != "id-01" {
		t.Errorf("recently viewed %v", st.RecentlyViewed)
	}
	if !strings.Contains(app.View(), "Item 01") {
		t.Error("details view should show the item name")
	}

	// navigation keys do not leak through the dialog
	app, _ = press(t, app, keyRunes("j"))
	if app.Cursor() != 1 {
		t.Errorf("cursor moved under the dialog to %d", app.Cursor())
	}

	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	if app.State().Dialog != state.DialogNone {
		t.Error("esc should close the dialog")
	}
}

func TestSetDialog(t *testing.T) {
	app, mock, _ := loadedApp(t, makeItems(3))

	app, cmd := press(t, app, tea.KeyMsg{Type: tea.KeyEnter}, keyRunes("o"))
	if app.State().Dialog != state.DialogSet || app.State().SetName != "Test Set" {
		t.Fatalf("set dialog not open: %+v", app.State())
	}

	var loaded SetLoaded
	for _, m := range runCmds(cmd) {
		if sl, ok := m.(SetLoaded); ok {
			loaded = sl
		}
	}
	if len(mock.setCalls) != 1 || mock.setCalls[0] != "Test Set" {
		t.Fatalf("set fetch calls %v", mock.setCalls)
	}

	app, _ = press(t, app, SetLoaded{RequestID: "stale", Items: makeItems(9)})
	if len(app.SetItems()) != 0 {
		t.Error("stale set result applied")
	}

	app, _ = press(t, app, loaded)
	if len(app.SetItems()) != 2 {
		t.Fatalf("set items %d, want 2", len(app.SetItems()))
	}

	app, _ = press(t, app, keyRunes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	st := app.State()
	if st.Dialog != state.DialogDetails || st.Selected.ID != "s2" {
		t.Errorf("enter in set should open s2 details, got %+v", st)
	}
}

func TestSurpriseRoll(t *testing.T) {
	app, _, _ := loadedApp(t, makeItems(10))

	app, cmd := press(t, app, keyRunes("p"))
	if cmd == nil {
		t.Fatal("surprise should start a roll")
	}

	steps := 0
	for cmd != nil {
		app, cmd = press(t, app, cmd())
		steps++
		if steps > 10 {
			t.Fatal("roll did not settle")
		}
	}
	if steps != 3 {
		t.Errorf("roll took %d steps, want 3", steps)
	}

	st := app.State()
	if st.Dialog != state.DialogRandom || st.Selected == nil {
		t.Fatalf("random dialog not open: %+v", st)
	}
	if app.Shuffling() != "" {
		t.Error("shuffle name should clear once settled")
	}
	if !strings.Contains(app.View(), "Random Find!") {
		t.Error("view should show the random pick")
	}

	// enter opens the details of the pick
	picked := st.Selected.ID
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.State().Dialog != state.DialogDetails || app.State().Selected.ID != picked {
		t.Errorf("enter should open details of %s", picked)
	}
}

func TestSurpriseAbortedByRefilter(t *testing.T) {
	app, _, _ := loadedApp(t, makeItems(10))

	app, cmd := press(t, app, keyRunes("p"))
	step := cmd()
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyTab})

	app, next := press(t, app, step)
	if next != nil || app.State().Dialog != state.DialogNone {
		t.Error("steps of an aborted roll should be ignored")
	}
}

func TestSurpriseEmpty(t *testing.T) {
	app, _, _ := loadedApp(t, nil)
	if _, cmd := press(t, app, keyRunes("p")); cmd != nil {
		t.Error("surprise with nothing to pick should do nothing")
	}
}

func TestHelpDialog(t *testing.T) {
	app, _, _ := loadedApp(t, makeItems(2))

	app, _ = press(t, app, keyRunes("?"))
	if app.State().Dialog != state.DialogHelp {
		t.Fatal("? should open help")
	}
	if !strings.Contains(app.View(), "surprise me") {
		t.Error("help should list the key bindings")
	}
	app, _ = press(t, app, keyRunes("?"))
	if app.State().Dialog != state.DialogNone {
		t.Error("second ? should close help")
	}
}

func TestAppView(t *testing.T) {
	app, _, _ := loadedApp(t, makeItems(3))
	view := app.View()
	for _, want := range []string{"LOCKER", "Item 00", "Item 02", "Category"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	app, _ = press(t, app, keyRunes("/"), keyRunes("z"), keyRunes("z"), keyRunes("z"))
	if !strings.Contains(app.View(), "No cosmetics match") {
		t.Error("empty result should say so")
	}
}

func TestAppViewNotReady(t *testing.T) {
	app := NewApp(AppConfig{})
	if app.View() != "Loading..." {
		t.Errorf("unexpected view before size: %q", app.View())
	}
}

func TestQuitCancelsFetch(t *testing.T) {
	mock := &mockCmd{}
	app := newTestApp(mock, &fakeClock{})
	runCmds(app.Init())

	_, cmd := press(t, app, keyRunes("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
	if mock.ctxs[0].Err() == nil {
		t.Error("quitting should cancel the fetch in flight")
	}
}
