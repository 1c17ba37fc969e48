// Package history keeps the recent-search list.
//
// The list is a JSON array of at most five distinct queries, newest first,
// stored under a single key.
package history

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

// Key is the store key holding the list.
const Key = "recentSearches"

// Max is the number of queries kept.
const Max = 5

// KV is the storage the list lives in. *store.Store satisfies it.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// History is the recent-search list backed by a KV.
// Safe for concurrent use.
type History struct {
	kv      KV
	mu      sync.Mutex
	entries []string
}

// Load reads the list from kv. A corrupt value yields an empty list and an
// error describing it; the History is still usable.
func Load(kv KV) (*History, error) {
	h := &History{kv: kv, entries: []string{}}

	raw, ok, err := kv.Get(Key)
	if err != nil {
		return h, fmt.Errorf("load history: %w", err)
	}
	if !ok || raw == "" {
		return h, nil
	}

	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return h, fmt.Errorf("decode history: %w", err)
	}

	// Normalize whatever was stored.
	var clean []string
	for i := len(entries) - 1; i >= 0; i-- {
		clean = Push(clean, entries[i])
	}
	if clean != nil {
		h.entries = clean
	}
	return h, nil
}

// Push returns list with q moved to the front, trimmed to Max.
// Blank queries leave the list unchanged. list is not modified.
func Push(list []string, q string) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return list
	}
	out := make([]string, 0, Max)
	out = append(out, q)
	for _, e := range list {
		if len(out) == Max {
			break
		}
		if e != q {
			out = append(out, e)
		}
	}
	return out
}

// List returns a copy of the queries, newest first.
func (h *History) List() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.entries)
}

// Add records q as the newest query and persists the list.
// Blank queries are ignored.
func (h *History) Add(q string) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := Push(h.entries, q)
	if slices.Equal(next, h.entries) {
		return slices.Clone(h.entries), nil
	}
	if err := h.save(next); err != nil {
		return slices.Clone(h.entries), err
	}
	h.entries = next
	return slices.Clone(next), nil
}

// Remove deletes one query and persists the list.
func (h *History) Remove(q string) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	idx := slices.Index(h.entries, q)
	if idx < 0 {
		return slices.Clone(h.entries), nil
	}
	next := slices.Delete(slices.Clone(h.entries), idx, idx+1)
	if err := h.save(next); err != nil {
		return slices.Clone(h.entries), err
	}
	h.entries = next
	return slices.Clone(next), nil
}

// Clear removes every query and the stored key.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.kv.Delete(Key); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	h.entries = []string{}
	return nil
}

// Suggest ranks the queries against input by fuzzy match, best first.
// Empty input returns the whole list in recency order.
func (h *History) Suggest(input string) []string {
	return Rank(h.List(), input)
}

// Rank orders entries by how well they fuzzy-match input, dropping the
// ones that do not match. Ties keep recency order.
func Rank(entries []string, input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return slices.Clone(entries)
	}

	matches := fuzzy.Find(input, entries)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}

// save writes list to the store. Caller must hold h.mu.
func (h *History) save(list []string) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := h.kv.Set(Key, string(b)); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}
