package market

import (
	"fmt"
	"sync"
)

// DefaultWindowSize bounds the shared observation window across all symbols.
const DefaultWindowSize = 100

// Window retains the most recent observations across all symbols combined,
// evicting oldest-first once capacity is reached. A busy symbol can starve a
// quiet one out of the window entirely. Written by a single generator task,
// read concurrently by request handlers.
type Window struct {
	mu    sync.RWMutex
	buf   []Observation
	start int
	size  int
}

// NewWindow allocates a window with a fixed capacity. A capacity below one is
// a programming error and panics.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		panic(fmt.Sprintf("market: invalid window capacity %d", capacity))
	}
	return &Window{buf: make([]Observation, capacity)}
}

// Push appends an observation, evicting the oldest entry when full.
func (w *Window) Push(obs Observation) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.size < len(w.buf) {
		w.buf[(w.start+w.size)%len(w.buf)] = obs
		w.size++
		return
	}
	w.buf[w.start] = obs
	w.start = (w.start + 1) % len(w.buf)
}

// Latest returns up to limit of the most recent observations in insertion
// order, oldest of the selected suffix first. A zero or negative limit yields
// nothing; a limit past the current size returns the whole window.
func (w *Window) Latest(limit int) []Observation {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if limit <= 0 || w.size == 0 {
		return nil
	}
	if limit > w.size {
		limit = w.size
	}
	out := make([]Observation, limit)
	first := w.size - limit
	for i := range out {
		out[i] = w.buf[(w.start+first+i)%len(w.buf)]
	}
	return out
}

// Snapshot copies the full window contents in insertion order.
func (w *Window) Snapshot() []Observation {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Observation, w.size)
	for i := range out {
		out[i] = w.buf[(w.start+i)%len(w.buf)]
	}
	return out
}

// Len reports how many observations are currently retained.
func (w *Window) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.size
}

// IsEmpty reports whether the window holds no observations.
func (w *Window) IsEmpty() bool { return w.Len() == 0 }

// Cap returns the fixed capacity.
func (w *Window) Cap() int { return len(w.buf) }
