// Package surprise drives the "surprise me" shuffle: a fixed number of
// random picks delivered at a fixed interval, the last of which settles.
package surprise

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultPicks    = 10
	DefaultInterval = 50 * time.Millisecond
)

// Ticker schedules fn after d. tea.Tick satisfies it.
type Ticker func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// Step is one pick of a roll. Index is the position among n candidates.
type Step struct {
	Roll    uint64
	Seq     int
	Index   int
	Settled bool
}

// Options configures a Roller.
type Options struct {
	Picks    int
	Interval time.Duration
	Tick     Ticker     // defaults to tea.Tick
	Rand     *rand.Rand // defaults to a time-seeded source
}

// Roller runs at most one roll at a time. Picks are drawn on the caller's
// goroutine and carried by the Step message, so the ticker never touches
// the random source.
type Roller struct {
	picks    int
	interval time.Duration
	tick     Ticker
	rnd      *rand.Rand

	roll    uint64
	seq     int
	n       int
	rolling bool
}

// New creates an idle roller.
func New(opts Options) *Roller {
	if opts.Picks <= 0 {
		opts.Picks = DefaultPicks
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Tick == nil {
		opts.Tick = tea.Tick
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Roller{
		picks:    opts.Picks,
		interval: opts.Interval,
		tick:     opts.Tick,
		rnd:      opts.Rand,
	}
}

// Rolling reports whether a roll is in progress.
func (r *Roller) Rolling() bool { return r.rolling }

// Start begins a roll over n candidates. Returns nil when a roll is already
// running or there is nothing to pick from.
func (r *Roller) Start(n int) tea.Cmd {
	if r.rolling || n <= 0 {
		return nil
	}
	r.roll++
	r.seq = 0
	r.n = n
	r.rolling = true
	return r.schedule()
}

// Advance consumes a delivered step and returns the command for the next
// one. ok is false for steps from an abandoned roll. The settled step ends
// the roll and returns a nil command.
func (r *Roller) Advance(s Step) (ok bool, next tea.Cmd) {
	if !r.rolling || s.Roll != r.roll || s.Seq != r.seq {
		return false, nil
	}
	if s.Settled {
		r.rolling = false
		return true, nil
	}
	return true, r.schedule()
}

// Abort abandons the current roll; its pending step is ignored on arrival.
func (r *Roller) Abort() {
	r.rolling = false
	r.roll++
}

func (r *Roller) schedule() tea.Cmd {
	r.seq++
	step := Step{
		Roll:    r.roll,
		Seq:     r.seq,
		Index:   r.rnd.Intn(r.n),
		Settled: r.seq >= r.picks,
	}
	return r.tick(r.interval, func(time.Time) tea.Msg { return step })
}

// Sequence draws a whole roll synchronously: picks indexes over n
// candidates, the last being the settled one. Used by the CLI.
func Sequence(rnd *rand.Rand, n, picks int) []int {
	if n <= 0 || picks <= 0 {
		return nil
	}
	out := make([]int, picks)
	for i := range out {
		out[i] = rnd.Intn(n)
	}
	return out
}
