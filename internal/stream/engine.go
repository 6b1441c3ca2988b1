package stream

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"finstream-go/internal/market"
	"finstream-go/internal/metrics"
)

// Event kinds pushed to live-feed subscribers.
const (
	EventObservation = "observation"
	EventAlert       = "alert"
)

// Event is fanned out to subscribers for each new observation or alert.
type Event struct {
	Kind        string              `json:"kind"`
	Observation *market.Observation `json:"observation,omitempty"`
	Alert       *market.Alert       `json:"alert,omitempty"`
}

// Engine owns the generator task and the shared stores it mutates. Exactly
// one writer goroutine exists while running; all reads go through accessors
// backed by the stores' own synchronization.
type Engine struct {
	gen      *Generator
	window   *market.Window
	alerts   *market.AlertLog
	detector *market.Detector
	interval time.Duration
	log      zerolog.Logger

	running atomic.Bool
	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}

	subMu  sync.Mutex
	nextID int
	subs   map[int]chan Event
}

// Option configures Engine construction parameters.
type Option func(*Engine)

// WithInterval overrides the inter-cycle delay.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// NewEngine wires a generator to the shared stores and detector.
func NewEngine(gen *Generator, window *market.Window, alerts *market.AlertLog, detector *market.Detector, log zerolog.Logger, opts ...Option) *Engine {
	if gen == nil || window == nil || alerts == nil || detector == nil {
		panic("stream: engine requires generator, window, alert log and detector")
	}
	e := &Engine{
		gen:      gen,
		window:   window,
		alerts:   alerts,
		detector: detector,
		interval: defaultTickInterval,
		log:      log,
		subs:     make(map[int]chan Event),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start flips the running flag and launches the generator task. Calling Start
// on a running engine is a no-op.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running.Load() {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})
	e.running.Store(true)
	go e.run(ctx, e.done)
}

// Stop clears the running flag and waits for the task to finish its in-flight
// cycle. Safe to call on a stopped engine.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.running.Load() {
		e.mu.Unlock()
		return
	}
	e.running.Store(false)
	e.cancel()
	done := e.done
	e.mu.Unlock()
	<-done
}

// Running reports whether the generator task is active.
func (e *Engine) Running() bool { return e.running.Load() }

func (e *Engine) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.log.Info().Strs("symbols", e.gen.Symbols()).Dur("interval", e.interval).Msg("market stream started")
	e.cycle(time.Now())
	for {
		select {
		case <-ctx.Done():
			e.log.Info().Msg("market stream stopped")
			return
		case ts := <-ticker.C:
			if !e.running.Load() {
				e.log.Info().Msg("market stream stopped")
				return
			}
			e.cycle(ts)
		}
	}
}

// cycle runs one full pass over the symbol set. It is never interrupted
// mid-pass; cancellation only takes effect at the next cycle boundary.
func (e *Engine) cycle(now time.Time) {
	for _, obs := range e.gen.Cycle(now) {
		e.window.Push(obs)
		metrics.ObservationsTotal.WithLabelValues(obs.Symbol).Inc()
		e.publish(Event{Kind: EventObservation, Observation: &obs})

		if alert := e.detector.Evaluate(obs); alert != nil {
			e.alerts.Append(*alert)
			metrics.AlertsTotal.WithLabelValues(string(alert.Severity)).Inc()
			e.log.Warn().Str("sym", alert.Symbol).Str("severity", string(alert.Severity)).Msg(alert.Message)
			e.publish(Event{Kind: EventAlert, Alert: alert})
		}
	}
	metrics.WindowSize.Set(float64(e.window.Len()))
}

// Latest returns up to limit most recent observations across all symbols.
func (e *Engine) Latest(limit int) []market.Observation { return e.window.Latest(limit) }

// Aggregates computes fresh per-symbol statistics from the current window.
func (e *Engine) Aggregates() map[string]market.Aggregate {
	return market.ComputeAggregates(e.window.Snapshot())
}

// Alerts returns up to limit most recent alerts in chronological order.
func (e *Engine) Alerts(limit int) []market.Alert { return e.alerts.Recent(limit) }

// AlertCount reports the all-time number of alerts raised.
func (e *Engine) AlertCount() int64 { return e.alerts.Count() }

// WindowLen reports how many observations the window currently holds.
func (e *Engine) WindowLen() int { return e.window.Len() }

// Subscribe registers a live-feed subscriber. The returned cancel func must be
// called to release the channel. Slow subscribers drop events rather than
// stall the generator.
func (e *Engine) Subscribe() (<-chan Event, func()) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	id := e.nextID
	e.nextID++
	ch := make(chan Event, 64)
	e.subs[id] = ch
	return ch, func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		if sub, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(sub)
		}
	}
}

func (e *Engine) publish(ev Event) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	for _, sub := range e.subs {
		select {
		case sub <- ev:
		default:
		}
	}
}
