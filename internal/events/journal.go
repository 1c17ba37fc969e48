package events

// The drain goroutine is the only reader of j.ch and the only writer to j.w.
// j.mu guards the ring pointer alone; the ring has its own lock.

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

const queueSize = 1024

type entry struct {
	line []byte
	ev   Event
}

// Journal serializes events to w off the caller's goroutine.
// A nil *Journal discards everything, so callers need no guard.
type Journal struct {
	mu        sync.Mutex
	ring      *Ring
	sessionID string
	now       func() time.Time

	ch      chan entry
	w       io.Writer
	dropped atomic.Uint64
	closed  atomic.Bool
	done    chan struct{}
	once    sync.Once
}

// NewJournal starts a journal writing JSONL to w. Call Close to flush.
func NewJournal(w io.Writer) *Journal {
	var sid [6]byte
	_, _ = rand.Read(sid[:])

	j := &Journal{
		sessionID: fmt.Sprintf("%x", sid[:]),
		now:       time.Now,
		ch:        make(chan entry, queueSize),
		w:         w,
		done:      make(chan struct{}),
	}
	go j.drain()
	return j
}

func (j *Journal) drain() {
	defer close(j.done)
	for e := range j.ch {
		if _, err := j.w.Write(e.line); err != nil {
			j.dropped.Add(1)
		}

		j.mu.Lock()
		r := j.ring
		j.mu.Unlock()
		if r != nil {
			r.Push(e.ev)
		}
	}
}

// Emit queues e. Never blocks: a full queue or a closed journal drops it.
func (j *Journal) Emit(e Event) {
	if j == nil {
		return
	}
	defer func() {
		// Close may race the closed check below.
		if recover() != nil {
			j.dropped.Add(1)
		}
	}()
	if j.closed.Load() {
		j.dropped.Add(1)
		return
	}

	if e.Time.IsZero() {
		e.Time = j.now()
	}
	e.SessionID = j.sessionID

	line, err := json.Marshal(e)
	if err != nil {
		j.dropped.Add(1)
		return
	}
	line = append(line, '\n')

	select {
	case j.ch <- entry{line: line, ev: e}:
	default:
		j.dropped.Add(1)
	}
}

// Record emits an event of kind with a free-text message.
func (j *Journal) Record(kind Kind, msg string) {
	j.Emit(Event{Kind: kind, Msg: msg})
}

// Fail emits an event of kind carrying err.
func (j *Journal) Fail(kind Kind, requestID string, err error) {
	e := Event{Kind: kind, RequestID: requestID}
	if err != nil {
		e.Err = err.Error()
	}
	j.Emit(e)
}

// Attach makes the journal copy every written event into r.
func (j *Journal) Attach(r *Ring) {
	if j == nil {
		return
	}
	j.mu.Lock()
	j.ring = r
	j.mu.Unlock()
}

// SessionID identifies this run in the journal.
func (j *Journal) SessionID() string {
	if j == nil {
		return ""
	}
	return j.sessionID
}

// Dropped reports how many events were lost.
func (j *Journal) Dropped() uint64 {
	if j == nil {
		return 0
	}
	return j.dropped.Load()
}

// Close flushes queued events and stops the drain goroutine.
func (j *Journal) Close() {
	if j == nil {
		return
	}
	j.once.Do(func() {
		j.closed.Store(true)
		close(j.ch)
		<-j.done
	})
}
