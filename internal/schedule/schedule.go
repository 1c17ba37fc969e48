// Package schedule runs delayed tasks that a later call can supersede.
// The browser uses it to debounce recent-search writes.
package schedule

import (
	"sync"
	"time"
)

type task struct {
	timer *time.Timer
	seq   uint64
	fn    func()
}

// Scheduler runs fn after a delay, keyed so that scheduling the same key
// again cancels the pending run.
type Scheduler struct {
	mu      sync.Mutex
	tasks   map[string]*task
	seq     uint64
	stopped bool
	wg      sync.WaitGroup
}

// NewScheduler creates an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[string]*task)}
}

// Schedule runs fn after delay unless key is scheduled again, cancelled,
// or the scheduler is stopped first.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if prev, ok := s.tasks[key]; ok {
		if prev.timer.Stop() {
			s.wg.Done()
		}
	}

	s.seq++
	t := &task{seq: s.seq, fn: fn}
	s.wg.Add(1)
	t.timer = time.AfterFunc(delay, func() {
		defer s.wg.Done()

		s.mu.Lock()
		cur, ok := s.tasks[key]
		live := ok && cur.seq == t.seq && !s.stopped
		if live {
			delete(s.tasks, key)
		}
		s.mu.Unlock()

		if live {
			fn()
		}
	})
	s.tasks[key] = t
}

// Cancel drops the pending task for key. Reports whether one was pending.
func (s *Scheduler) Cancel(key string) bool {
	return s.take(key) != nil
}

func (s *Scheduler) take(key string) *task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[key]
	if !ok {
		return nil
	}
	delete(s.tasks, key)
	if t.timer.Stop() {
		s.wg.Done()
	}
	return t
}

// Pending reports whether a task is waiting under key.
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[key]
	return ok
}

// Flush runs the pending task for key now instead of at its deadline.
// Reports whether one was pending.
func (s *Scheduler) Flush(key string) bool {
	t := s.take(key)
	if t == nil {
		return false
	}
	t.fn()
	return true
}

// Stop cancels every pending task and waits for any task already running.
// Schedule is a no-op afterwards.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for key, t := range s.tasks {
		if t.timer.Stop() {
			s.wg.Done()
		}
		delete(s.tasks, key)
	}
	s.mu.Unlock()

	s.wg.Wait()
}
