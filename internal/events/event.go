// Package events records what the browser does as JSONL lines.
//
// The Journal writes asynchronously through a buffered channel and a drain
// goroutine. An attached Ring keeps the latest events in memory for the
// debug overlay.
package events

import (
	"encoding/json"
	"time"
)

// Kind names an event. Dot-delimited: "<subsystem>.<action>".
type Kind string

const (
	KindFetchStart    Kind = "fetch.start"
	KindFetchComplete Kind = "fetch.complete"
	KindFetchError    Kind = "fetch.error"
	KindFetchStale    Kind = "fetch.stale" // result arrived for a superseded request
	KindFetchSlow     Kind = "fetch.slow"
	KindFetchRetry    Kind = "fetch.retry"

	KindSetFetch Kind = "set.fetch"
	KindSetError Kind = "set.error"

	KindFilter      Kind = "filter.apply"
	KindRevealGrow  Kind = "reveal.expand"
	KindHistorySave Kind = "history.save"
	KindSurprise    Kind = "surprise.settle"

	KindStartup  Kind = "sys.startup"
	KindShutdown Kind = "sys.shutdown"
)

// Event is one journal record. Only Kind and Time are always set.
type Event struct {
	Time      time.Time     `json:"t"`
	Kind      Kind          `json:"kind"`
	SessionID string        `json:"session_id,omitempty"`
	RequestID string        `json:"rid,omitempty"`
	Dur       time.Duration `json:"-"`
	DurMs     float64       `json:"dur_ms,omitempty"`
	Count     int           `json:"count,omitempty"`
	Query     string        `json:"query,omitempty"`
	Msg       string        `json:"msg,omitempty"`
	Err       string        `json:"err,omitempty"`
}

// MarshalJSON writes Dur as milliseconds.
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event
	p := plain(e)
	if e.Dur > 0 {
		p.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(p)
}
