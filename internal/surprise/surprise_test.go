package surprise

import (
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeTicker fires immediately and records the requested delays.
type fakeTicker struct {
	delays []time.Duration
}

func (f *fakeTicker) Tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	f.delays = append(f.delays, d)
	return func() tea.Msg { return fn(time.Time{}) }
}

func newTestRoller(ft *fakeTicker) *Roller {
	return New(Options{
		Picks:    10,
		Interval: 50 * time.Millisecond,
		Tick:     ft.Tick,
		Rand:     rand.New(rand.NewSource(1)),
	})
}

func drain(t *testing.T, r *Roller, cmd tea.Cmd) []Step {
	t.Helper()
	var steps []Step
	for cmd != nil {
		step, ok := cmd().(Step)
		if !ok {
			t.Fatal("expected Step message")
		}
		steps = append(steps, step)
		accepted, next := r.Advance(step)
		if !accepted {
			t.Fatalf("step %d rejected", step.Seq)
		}
		cmd = next
		if len(steps) > 100 {
			t.Fatal("roll never settled")
		}
	}
	return steps
}

func TestRollProducesPicksThenSettles(t *testing.T) {
	ft := &fakeTicker{}
	r := newTestRoller(ft)

	steps := drain(t, r, r.Start(7))

	if len(steps) != 10 {
		t.Fatalf("expected 10 steps, got %d", len(steps))
	}
	for i, s := range steps {
		if s.Index < 0 || s.Index >= 7 {
			t.Errorf("step %d index %d out of range", i, s.Index)
		}
		if s.Settled != (i == len(steps)-1) {
			t.Errorf("step %d settled=%v", i, s.Settled)
		}
	}
	for _, d := range ft.delays {
		if d != 50*time.Millisecond {
			t.Errorf("expected 50ms interval, got %v", d)
		}
	}
	if r.Rolling() {
		t.Error("roll should be over after the settled step")
	}
}

func TestStartWhileRollingIgnored(t *testing.T) {
	r := newTestRoller(&fakeTicker{})

	if r.Start(5) == nil {
		t.Fatal("expected a command")
	}
	if r.Start(5) != nil {
		t.Error("second Start during a roll should be ignored")
	}
}

func TestStartEmpty(t *testing.T) {
	r := newTestRoller(&fakeTicker{})
	if r.Start(0) != nil {
		t.Error("rolling over nothing should not start")
	}
	if r.Rolling() {
		t.Error("should not be rolling")
	}
}

func TestAbortDropsPendingStep(t *testing.T) {
	r := newTestRoller(&fakeTicker{})

	cmd := r.Start(3)
	r.Abort()

	step := cmd().(Step)
	if ok, next := r.Advance(step); ok || next != nil {
		t.Error("step from an aborted roll should be ignored")
	}

	if r.Start(3) == nil {
		t.Error("should be able to roll again after abort")
	}
}

func TestDuplicateStepIgnored(t *testing.T) {
	r := newTestRoller(&fakeTicker{})

	step := r.Start(3)().(Step)
	if ok, _ := r.Advance(step); !ok {
		t.Fatal("first delivery should be accepted")
	}
	if ok, _ := r.Advance(step); ok {
		t.Error("replayed step should be rejected")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	r1 := newTestRoller(&fakeTicker{})
	r2 := newTestRoller(&fakeTicker{})
	s1 := drain(t, r1, r1.Start(50))
	s2 := drain(t, r2, r2.Start(50))
	for i := range s1 {
		if s1[i].Index != s2[i].Index {
			t.Fatalf("same seed gave different picks at %d", i)
		}
	}
}

func TestSequence(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	picks := Sequence(rnd, 4, 10)
	if len(picks) != 10 {
		t.Fatalf("expected 10 picks, got %d", len(picks))
	}
	for _, p := range picks {
		if p < 0 || p >= 4 {
			t.Errorf("pick %d out of range", p)
		}
	}
	if Sequence(rnd, 0, 10) != nil {
		t.Error("expected nil for no candidates")
	}
}
