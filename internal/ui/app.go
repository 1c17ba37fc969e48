package ui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/locker/internal/catalog"
	"github.com/abelbrown/locker/internal/events"
	"github.com/abelbrown/locker/internal/fetch"
	"github.com/abelbrown/locker/internal/filter"
	"github.com/abelbrown/locker/internal/history"
	"github.com/abelbrown/locker/internal/logging"
	"github.com/abelbrown/locker/internal/reveal"
	"github.com/abelbrown/locker/internal/state"
	"github.com/abelbrown/locker/internal/surprise"
)

// Defaults applied by NewApp when AppConfig leaves a field zero.
const (
	DefaultProximity      = 3
	DefaultSlowAfter      = 15 * time.Second
	DefaultRetryCountdown = 15 * time.Second
)

// chromeLines is every row that is not the list: title, search bar, facet
// bar, notice, recently viewed, status bar.
const chromeLines = 6

// scrollFPS drives the scroll spring.
const scrollFPS = 60

// AppConfig holds the dependencies and tunables of the App.
// IMPORTANT: App does NOT hold the store or the HTTP client. All I/O happens
// in the closures below, inside tea.Cmd goroutines.
type AppConfig struct {
	// FetchCatalog loads every item. ctx is cancelled when superseded.
	FetchCatalog func(ctx context.Context) (catalog.Result, error)
	// FetchSet loads the items of one set.
	FetchSet func(ctx context.Context, name string) (catalog.Result, error)

	// Recent searches. Each returns a Cmd producing HistoryUpdated.
	LoadHistory func() tea.Cmd
	// QueueSearch is called from Update, so calls arrive in keystroke
	// order. It must not block; its result arrives later as HistoryUpdated.
	QueueSearch   func(q string)
	RemoveSearch  func(q string) tea.Cmd
	ClearSearches func() tea.Cmd

	PageSize       int
	Cooldown       time.Duration
	Proximity      int           // rows from the end of the window that trigger an expansion
	SlowAfter      time.Duration // pending fetch age that shows the slow notice
	RetryCountdown time.Duration
	AutoRetry      bool // retry once when the countdown reaches zero

	Surprise surprise.Options
	Now      func() time.Time

	// Journal is optional. Ring backs the debug overlay.
	Journal *events.Journal
	Ring    *events.Ring
}

// App is the root Bubble Tea model.
type App struct {
	cfg  AppConfig
	keys KeyMap
	help help.Model

	search textinput.Model
	spin   spinner.Model

	st       state.State
	items    []catalog.Item
	skipped  int
	filtered []catalog.Item
	reveal   *reveal.Controller[catalog.Item]
	cursor   int

	// offset is the target first row; scrollPos follows it on a spring.
	offset    int
	scrollPos float64
	scrollVel float64
	spring    harmonica.Spring
	animating bool

	// current catalog fetch
	requestID  string
	cancel     context.CancelFunc
	fetchStart time.Time
	initCmd    tea.Cmd
	loading    bool
	slow       bool
	err        error
	retryIn    int

	// set dialog
	setRequestID string
	setCancel    context.CancelFunc
	setItems     []catalog.Item
	setCursor    int
	setLoading   bool
	setErr       error

	roller    *surprise.Roller
	shuffling string

	searching  bool
	history    []string
	suggestion int

	debugVisible bool
	width        int
	height       int
	ready        bool
}

// NewApp creates an App. The first catalog fetch is prepared here and
// started by Init.
func NewApp(cfg AppConfig) App {
	if cfg.Proximity <= 0 {
		cfg.Proximity = DefaultProximity
	}
	if cfg.SlowAfter == 0 {
		cfg.SlowAfter = DefaultSlowAfter
	}
	if cfg.RetryCountdown <= 0 {
		cfg.RetryCountdown = DefaultRetryCountdown
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	ti := textinput.New()
	ti.Placeholder = "Search cosmetics..."
	ti.Prompt = "/ "
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	a := App{
		cfg:    cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		search: ti,
		spin:   sp,
		st:     state.Initial(),
		reveal: reveal.New[catalog.Item](reveal.Options{
			PageSize: cfg.PageSize,
			Cooldown: cfg.Cooldown,
			Now:      cfg.Now,
		}),
		roller:     surprise.New(cfg.Surprise),
		spring:     harmonica.NewSpring(harmonica.FPS(scrollFPS), 6.0, 0.8),
		suggestion: -1,
	}
	a.reveal.Reset(nil)
	a.initCmd = a.startFetch()
	return a
}

// Init starts the first fetch and loads the recent searches.
func (a App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if a.initCmd != nil {
		cmds = append(cmds, a.initCmd)
	}
	if a.cfg.LoadHistory != nil {
		cmds = append(cmds, a.cfg.LoadHistory())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.offset = calcScrollOffset(a.cursor, a.offset, a.listHeight(), a.reveal.Revealed())
		a.snapScroll()
		return a, nil

	case CatalogLoaded:
		return a.handleCatalogLoaded(msg)

	case FetchSlow:
		if msg.RequestID == a.requestID && a.loading {
			a.slow = true
			a.cfg.Journal.Emit(events.Event{Kind: events.KindFetchSlow, RequestID: msg.RequestID, Dur: a.cfg.Now().Sub(a.fetchStart)})
		}
		return a, nil

	case RetryTick:
		if msg.RequestID != a.requestID || a.err == nil || a.loading {
			return a, nil
		}
		a.retryIn--
		if a.retryIn > 0 {
			return a, a.retryTick()
		}
		a.retryIn = 0
		if !a.cfg.AutoRetry {
			return a, nil
		}
		a.cfg.Journal.Record(events.KindFetchRetry, "countdown")
		return a, a.startFetch()

	case ExpandSettled:
		a.reveal.Settle(msg.Gen)
		return a, nil

	case HistoryUpdated:
		if msg.Err != nil {
			logging.Warn("recent searches", "error", msg.Err)
		}
		if msg.Entries != nil {
			a.history = msg.Entries
		}
		a.clampSuggestion()
		return a, nil

	case SetLoaded:
		if msg.RequestID != a.setRequestID {
			return a, nil
		}
		a.setLoading = false
		a.releaseSet()
		if msg.Err != nil {
			if errors.Is(msg.Err, context.Canceled) {
				return a, nil
			}
			a.setErr = msg.Err
			a.cfg.Journal.Fail(events.KindSetError, msg.RequestID, msg.Err)
			return a, nil
		}
		a.setItems = msg.Items
		a.setCursor = 0
		a.cfg.Journal.Emit(events.Event{Kind: events.KindSetFetch, RequestID: msg.RequestID, Count: len(msg.Items), Query: msg.Name})
		return a, nil

	case surprise.Step:
		return a.handleStep(msg)

	case ScrollFrame:
		a.scrollPos, a.scrollVel = a.spring.Update(a.scrollPos, a.scrollVel, float64(a.offset))
		if math.Abs(a.scrollPos-float64(a.offset)) < 0.05 && math.Abs(a.scrollVel) < 0.05 {
			a.snapScroll()
			return a, nil
		}
		return a, scrollFrame()

	case spinner.TickMsg:
		if !a.loading && !a.setLoading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd
	}

	if a.searching {
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}
	return a, nil
}

// startFetch cancels any fetch in flight and starts a new one.
func (a *App) startFetch() tea.Cmd {
	if a.cfg.FetchCatalog == nil {
		return nil
	}
	if a.cancel != nil {
		a.cancel()
	}

	rid := fetch.NewRequestID()
	ctx, cancel := context.WithCancel(fetch.WithRequestID(context.Background(), rid))
	a.requestID = rid
	a.cancel = cancel
	a.fetchStart = a.cfg.Now()
	a.loading = true
	a.slow = false
	a.err = nil
	a.retryIn = 0
	a.cfg.Journal.Emit(events.Event{Kind: events.KindFetchStart, RequestID: rid})

	fetchCatalog := a.cfg.FetchCatalog
	cmds := []tea.Cmd{
		func() tea.Msg {
			res, err := fetchCatalog(ctx)
			return CatalogLoaded{RequestID: rid, Items: res.Items, Skipped: res.Skipped, Err: err}
		},
		a.spin.Tick,
	}
	if a.cfg.SlowAfter > 0 {
		cmds = append(cmds, tea.Tick(a.cfg.SlowAfter, func(time.Time) tea.Msg {
			return FetchSlow{RequestID: rid}
		}))
	}
	return tea.Batch(cmds...)
}

func (a App) handleCatalogLoaded(msg CatalogLoaded) (tea.Model, tea.Cmd) {
	if msg.RequestID != a.requestID {
		a.cfg.Journal.Emit(events.Event{Kind: events.KindFetchStale, RequestID: msg.RequestID})
		return a, nil
	}

	a.loading = false
	a.slow = false
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	dur := a.cfg.Now().Sub(a.fetchStart)

	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return a, nil
		}
		a.err = msg.Err
		a.retryIn = int(a.cfg.RetryCountdown / time.Second)
		a.cfg.Journal.Fail(events.KindFetchError, msg.RequestID, msg.Err)
		logging.Error("catalog fetch failed", "rid", msg.RequestID, "error", msg.Err)
		return a, a.retryTick()
	}

	a.err = nil
	a.items = msg.Items
	a.skipped = msg.Skipped
	a.cfg.Journal.Emit(events.Event{Kind: events.KindFetchComplete, RequestID: msg.RequestID, Count: len(msg.Items), Dur: dur})
	logging.Info("catalog loaded", "items", len(msg.Items), "skipped", msg.Skipped, "dur", dur)
	a.refilter()
	return a, nil
}

func (a *App) retryTick() tea.Cmd {
	rid := a.requestID
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return RetryTick{RequestID: rid}
	})
}

// dispatch applies e to the UI state and refilters when the criteria moved.
func (a *App) dispatch(e state.Event) {
	before := a.st.Criteria()
	a.st = state.Reduce(a.st, e)
	if a.st.Criteria() != before {
		a.refilter()
	}
}

// refilter recomputes the filtered list and restarts the reveal window.
func (a *App) refilter() {
	c := a.st.Criteria()
	a.filtered = filter.Apply(a.items, c)
	a.reveal.Reset(a.filtered)
	a.cursor = 0
	a.offset = 0
	a.snapScroll()
	if a.roller.Rolling() {
		a.roller.Abort()
		a.shuffling = ""
	}
	a.cfg.Journal.Emit(events.Event{Kind: events.KindFilter, Count: len(a.filtered), Query: c.Query})
}

// moveCursor moves within the revealed window and grows the window when
// the cursor comes near its end.
func (a *App) moveCursor(to int) tea.Cmd {
	n := a.reveal.Revealed()
	if n == 0 {
		a.cursor = 0
		return nil
	}
	a.cursor = max(min(to, n-1), 0)

	var cmds []tea.Cmd
	if a.reveal.Near(a.cursor, a.cfg.Proximity) && a.reveal.NotifyProximity() {
		gen := a.reveal.Generation()
		a.cfg.Journal.Emit(events.Event{Kind: events.KindRevealGrow, Count: a.reveal.Revealed()})
		logging.Debug("reveal grew", "revealed", a.reveal.Revealed(), "page", a.reveal.PageSize(), "of", a.reveal.Len())
		cmds = append(cmds, tea.Tick(a.reveal.Cooldown(), func(time.Time) tea.Msg {
			return ExpandSettled{Gen: gen}
		}))
	}

	a.offset = calcScrollOffset(a.cursor, a.offset, a.listHeight(), a.reveal.Revealed())
	if !a.animating && math.Abs(a.scrollPos-float64(a.offset)) > 0.05 {
		a.animating = true
		cmds = append(cmds, scrollFrame())
	}
	return tea.Batch(cmds...)
}

func scrollFrame() tea.Cmd {
	return tea.Tick(time.Second/scrollFPS, func(time.Time) tea.Msg { return ScrollFrame{} })
}

func (a *App) snapScroll() {
	a.scrollPos = float64(a.offset)
	a.scrollVel = 0
	a.animating = false
}

func (a App) listHeight() int {
	return max(a.height-chromeLines, 1)
}

// renderOffset is the spring position, clamped so the cursor stays visible.
func (a App) renderOffset() int {
	h := a.listHeight()
	off := int(math.Round(a.scrollPos))
	off = max(min(off, a.cursor), a.cursor-h+1)
	return max(off, 0)
}

func (a App) handleStep(msg surprise.Step) (tea.Model, tea.Cmd) {
	ok, next := a.roller.Advance(msg)
	if !ok || msg.Index >= len(a.filtered) {
		return a, nil
	}
	pick := a.filtered[msg.Index]
	if !msg.Settled {
		a.shuffling = pick.Name
		return a, next
	}
	a.shuffling = ""
	a.dispatch(state.OpenRandom{Item: pick})
	a.cfg.Journal.Emit(events.Event{Kind: events.KindSurprise, Msg: pick.ID})
	return a, nil
}

func (a *App) startSurprise() tea.Cmd {
	return a.roller.Start(len(a.filtered))
}

// openSet opens the set dialog and fetches its items.
func (a *App) openSet(name string) tea.Cmd {
	a.dispatch(state.OpenSet{Name: name})
	if a.st.Dialog != state.DialogSet || a.cfg.FetchSet == nil {
		return nil
	}
	a.releaseSet()

	rid := fetch.NewRequestID()
	ctx, cancel := context.WithCancel(fetch.WithRequestID(context.Background(), rid))
	a.setRequestID = rid
	a.setCancel = cancel
	a.setItems = nil
	a.setCursor = 0
	a.setErr = nil
	a.setLoading = true

	fetchSet := a.cfg.FetchSet
	return tea.Batch(func() tea.Msg {
		res, err := fetchSet(ctx, name)
		return SetLoaded{RequestID: rid, Name: name, Items: res.Items, Err: err}
	}, a.spin.Tick)
}

func (a *App) releaseSet() {
	if a.setCancel != nil {
		a.setCancel()
		a.setCancel = nil
	}
}

func (a *App) closeDialog() {
	if a.st.Dialog == state.DialogSet {
		a.releaseSet()
		a.setRequestID = ""
		a.setLoading = false
	}
	a.dispatch(state.CloseDialog{})
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a.quit()
	}

	if a.debugVisible {
		if key.Matches(msg, a.keys.Debug, a.keys.Close) {
			a.debugVisible = false
		}
		return a, nil
	}
	if a.st.Dialog != state.DialogNone {
		return a.handleDialogKey(msg)
	}
	if a.searching {
		return a.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case key.Matches(msg, a.keys.Up):
		return a, a.moveCursor(a.cursor - 1)
	case key.Matches(msg, a.keys.Down):
		return a, a.moveCursor(a.cursor + 1)
	case key.Matches(msg, a.keys.Top):
		return a, a.moveCursor(0)
	case key.Matches(msg, a.keys.Bottom):
		return a, a.moveCursor(a.reveal.Revealed() - 1)
	case key.Matches(msg, a.keys.Open):
		if item, ok := a.current(); ok {
			a.dispatch(state.OpenDetails{Item: item})
		}
		return a, nil
	case key.Matches(msg, a.keys.Search):
		return a, a.focusSearch()
	case key.Matches(msg, a.keys.Category):
		a.dispatch(state.CycleFacet{Facet: state.FacetCategory, Step: 1})
	case key.Matches(msg, a.keys.CategoryBack):
		a.dispatch(state.CycleFacet{Facet: state.FacetCategory, Step: -1})
	case key.Matches(msg, a.keys.Rarity):
		a.dispatch(state.CycleFacet{Facet: state.FacetRarity, Step: 1})
	case key.Matches(msg, a.keys.RarityBack):
		a.dispatch(state.CycleFacet{Facet: state.FacetRarity, Step: -1})
	case key.Matches(msg, a.keys.Season):
		a.dispatch(state.CycleFacet{Facet: state.FacetSeason, Step: 1})
	case key.Matches(msg, a.keys.SeasonBack):
		a.dispatch(state.CycleFacet{Facet: state.FacetSeason, Step: -1})
	case key.Matches(msg, a.keys.Reset):
		a.search.SetValue("")
		a.dispatch(state.ResetFilters{})
	case key.Matches(msg, a.keys.Surprise):
		return a, a.startSurprise()
	case key.Matches(msg, a.keys.Set):
		if item, ok := a.current(); ok {
			return a, a.openSet(item.Set)
		}
	case key.Matches(msg, a.keys.Retry):
		a.cfg.Journal.Record(events.KindFetchRetry, "manual")
		return a, a.startFetch()
	case key.Matches(msg, a.keys.Help):
		a.dispatch(state.OpenHelp{})
	case key.Matches(msg, a.keys.Debug):
		a.debugVisible = true
	}
	return a, nil
}

func (a App) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Close) {
		a.closeDialog()
		return a, nil
	}

	switch a.st.Dialog {
	case state.DialogDetails:
		if key.Matches(msg, a.keys.Set) && a.st.Selected != nil {
			return a, a.openSet(a.st.Selected.Set)
		}
	case state.DialogSet:
		switch {
		case key.Matches(msg, a.keys.Up):
			a.setCursor = max(a.setCursor-1, 0)
		case key.Matches(msg, a.keys.Down):
			a.setCursor = max(min(a.setCursor+1, len(a.setItems)-1), 0)
		case key.Matches(msg, a.keys.Open):
			if a.setCursor < len(a.setItems) {
				a.releaseSet()
				a.dispatch(state.OpenDetails{Item: a.setItems[a.setCursor]})
			}
		}
	case state.DialogRandom:
		switch {
		case key.Matches(msg, a.keys.Open):
			if a.st.Selected != nil {
				a.dispatch(state.OpenDetails{Item: *a.st.Selected})
			}
		case key.Matches(msg, a.keys.Surprise):
			a.closeDialog()
			return a, a.startSurprise()
		}
	case state.DialogHelp:
		if key.Matches(msg, a.keys.Help) {
			a.closeDialog()
		}
	}
	return a, nil
}

func (a *App) focusSearch() tea.Cmd {
	a.searching = true
	a.suggestion = -1
	if len(a.history) > 0 {
		a.dispatch(state.ShowDropdown{})
	}
	return a.search.Focus()
}

func (a *App) blurSearch() {
	a.searching = false
	a.suggestion = -1
	a.search.Blur()
	a.dispatch(state.HideDropdown{})
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	suggestions := a.suggestions()

	switch {
	case key.Matches(msg, a.keys.Close):
		a.blurSearch()
		return a, nil

	case msg.Type == tea.KeyEnter:
		if a.st.DropdownOpen && a.suggestion >= 0 && a.suggestion < len(suggestions) {
			q := suggestions[a.suggestion]
			a.search.SetValue(q)
			a.dispatch(state.SetQuery{Query: q})
		}
		a.blurSearch()
		a.queueSearch(a.search.Value())
		return a, nil

	case msg.Type == tea.KeyUp:
		if a.st.DropdownOpen && len(suggestions) > 0 {
			a.suggestion = max(a.suggestion-1, 0)
		}
		return a, nil

	case msg.Type == tea.KeyDown:
		if a.st.DropdownOpen && len(suggestions) > 0 {
			a.suggestion = min(a.suggestion+1, len(suggestions)-1)
		}
		return a, nil

	case key.Matches(msg, a.keys.DeleteSuggestion):
		if a.suggestion >= 0 && a.suggestion < len(suggestions) && a.cfg.RemoveSearch != nil {
			return a, a.cfg.RemoveSearch(suggestions[a.suggestion])
		}
		return a, nil

	case key.Matches(msg, a.keys.ClearSuggestions):
		a.suggestion = -1
		a.dispatch(state.HideDropdown{})
		if a.cfg.ClearSearches != nil {
			return a, a.cfg.ClearSearches()
		}
		return a, nil
	}

	prev := a.search.Value()
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	q := a.search.Value()
	if q == prev {
		return a, cmd
	}

	a.dispatch(state.SetQuery{Query: q})
	a.suggestion = -1
	if len(history.Rank(a.history, q)) > 0 {
		a.dispatch(state.ShowDropdown{})
	} else {
		a.dispatch(state.HideDropdown{})
	}
	a.queueSearch(q)
	return a, cmd
}

func (a *App) queueSearch(q string) {
	if a.cfg.QueueSearch == nil || strings.TrimSpace(q) == "" {
		return
	}
	a.cfg.QueueSearch(q)
}

func (a App) suggestions() []string {
	return history.Rank(a.history, a.search.Value())
}

func (a *App) clampSuggestion() {
	n := len(a.suggestions())
	if a.suggestion >= n {
		a.suggestion = n - 1
	}
	if n == 0 {
		a.dispatch(state.HideDropdown{})
	}
}

func (a App) current() (catalog.Item, bool) {
	visible := a.reveal.VisiblePrefix()
	if a.cursor < 0 || a.cursor >= len(visible) {
		return catalog.Item{}, false
	}
	return visible[a.cursor], true
}

func (a App) quit() (tea.Model, tea.Cmd) {
	if a.cancel != nil {
		a.cancel()
	}
	a.releaseSet()
	a.roller.Abort()
	return a, tea.Quit
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	if a.debugVisible {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			debugOverlay(a.cfg.Ring, a.cfg.Now(), a.width, a.height))
	}
	if dialog := a.renderDialog(); dialog != "" {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, dialog)
	}

	var b strings.Builder
	b.WriteString(Title.Render("LOCKER") + MetaItem.Render(fmt.Sprintf("%d cosmetics", len(a.items))) + "\n")
	b.WriteString(RenderSearchBar(a.search.View(), len(a.filtered), len(a.items), a.width) + "\n")
	b.WriteString(RenderFacetBar(a.st.Criteria(), a.width) + "\n")
	b.WriteString(a.renderNotice() + "\n")
	b.WriteString(a.renderBody() + "\n")
	b.WriteString(RenderRecentlyViewed(a.st.RecentlyViewed, a.width) + "\n")
	b.WriteString(RenderStatusBar(StatusInfo{
		Cursor:    a.cursor,
		Revealed:  a.reveal.Revealed(),
		Filtered:  len(a.filtered),
		Loading:   a.loading,
		Expanding: a.reveal.IsExpanding(),
		Shuffling: a.shuffling,
	}, a.width))
	return b.String()
}

func (a App) renderNotice() string {
	switch {
	case a.err != nil:
		line := "Error: " + a.err.Error() + "  (r to retry"
		if a.retryIn > 0 {
			if a.cfg.AutoRetry {
				line += fmt.Sprintf(", retrying in %ds", a.retryIn)
			} else {
				line += fmt.Sprintf(", %ds", a.retryIn)
			}
		}
		return ErrorStyle.Width(a.width).Render(line + ")")
	case a.slow:
		return NoticeStyle.Render("Loading is taking longer than expected...")
	case a.skipped > 0:
		return MetaItem.Padding(0, 1).Render(fmt.Sprintf("%d malformed entries skipped", a.skipped))
	}
	return ""
}

func (a App) renderBody() string {
	h := a.listHeight()
	var lines []string

	if a.st.DropdownOpen {
		if dd := RenderDropdown(a.suggestions(), a.suggestion, a.width); dd != "" {
			lines = append(lines, strings.Split(dd, "\n")...)
		}
	}

	switch {
	case a.loading && len(a.items) == 0:
		lines = append(lines, "", "  "+a.spin.View()+" Loading cosmetics...")
	case a.err != nil && len(a.items) == 0:
		lines = append(lines, "", MetaItem.Render("  Nothing loaded yet."))
	case len(a.filtered) == 0:
		lines = append(lines, "", MetaItem.Render("  No cosmetics match your filters."))
	default:
		list := RenderList(a.reveal.VisiblePrefix(), a.cursor, a.renderOffset(), a.width, h)
		lines = append(lines, strings.Split(strings.TrimRight(list, "\n"), "\n")...)
	}

	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (a App) renderDialog() string {
	switch a.st.Dialog {
	case state.DialogDetails:
		if a.st.Selected != nil {
			return RenderDetails(*a.st.Selected, a.width)
		}
	case state.DialogSet:
		return RenderSet(SetView{
			Name:    a.st.SetName,
			Items:   a.setItems,
			Cursor:  a.setCursor,
			Loading: a.setLoading,
			Spinner: a.spin.View(),
			Err:     a.setErr,
		}, a.width, a.height)
	case state.DialogRandom:
		if a.st.Selected != nil {
			return RenderRandom(*a.st.Selected, a.width)
		}
	case state.DialogHelp:
		return RenderHelp(a.help, a.keys)
	}
	return ""
}

// Cursor returns the current cursor position (for testing).
func (a App) Cursor() int { return a.cursor }

// Items returns every loaded item (for testing).
func (a App) Items() []catalog.Item { return a.items }

// Filtered returns the items matching the current criteria (for testing).
func (a App) Filtered() []catalog.Item { return a.filtered }

// Visible returns the revealed prefix (for testing).
func (a App) Visible() []catalog.Item { return a.reveal.VisiblePrefix() }

// State returns the UI state (for testing).
func (a App) State() state.State { return a.st }

// Loading reports whether a catalog fetch is in flight.
func (a App) Loading() bool { return a.loading }

// Err returns the current fetch error.
func (a App) Err() error { return a.err }

// RetryIn returns the seconds left on the retry countdown.
func (a App) RetryIn() int { return a.retryIn }

// Slow reports whether the slow-fetch notice is showing.
func (a App) Slow() bool { return a.slow }

// RequestID returns the ID of the current catalog fetch.
func (a App) RequestID() string { return a.requestID }

// Shuffling returns the name flashing during a surprise roll.
func (a App) Shuffling() string { return a.shuffling }

// SetItems returns the items of the open set dialog.
func (a App) SetItems() []catalog.Item { return a.setItems }

// Searches returns the recent searches the app knows about.
func (a App) Searches() []string { return a.history }
