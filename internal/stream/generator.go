// Package stream runs the synthetic market data engine: a single generator
// task feeding the shared window and alert log, with read accessors served to
// concurrent request handlers.
package stream

import (
	"math/rand"
	"sort"
	"time"

	"finstream-go/internal/market"
)

// DefaultBasePrices anchors the synthetic feed to a plausible quote per symbol.
var DefaultBasePrices = map[string]float64{
	"AAPL":  180,
	"GOOGL": 140,
	"MSFT":  380,
	"AMZN":  170,
	"TSLA":  250,
	"META":  480,
	"NVDA":  880,
	"JPM":   160,
}

const (
	defaultMaxMovePct   = 0.02
	defaultVolumeMin    = 1_000_000
	defaultVolumeMax    = 5_000_000
	maxChangePct        = 2.0
	fallbackBasePrice   = 100.0
	defaultTickInterval = 2 * time.Second
)

// Generator synthesizes one observation per symbol per cycle. Prices perturb a
// per-symbol base by a bounded random factor; the change percentage is drawn
// independently of the price path. Not safe for concurrent use; the engine is
// its only caller.
type Generator struct {
	symbols    []string
	basePrices map[string]float64
	maxMove    float64
	volumeMin  int64
	volumeMax  int64
	rng        *rand.Rand
}

// GeneratorOption configures Generator construction parameters.
type GeneratorOption func(*Generator)

// WithMaxMovePct overrides the bounded per-tick price perturbation.
func WithMaxMovePct(pct float64) GeneratorOption {
	return func(g *Generator) {
		if pct > 0 {
			g.maxMove = pct
		}
	}
}

// WithVolumeRange overrides the uniform volume bounds.
func WithVolumeRange(min, max int64) GeneratorOption {
	return func(g *Generator) {
		if min > 0 && max >= min {
			g.volumeMin, g.volumeMax = min, max
		}
	}
}

// WithSeed makes the random stream reproducible (tests).
func WithSeed(seed int64) GeneratorOption {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// NewGenerator builds a generator over the given symbol set. Symbols are
// deduplicated and sorted so cycle order is deterministic; symbols without a
// base price fall back to a flat default.
func NewGenerator(symbols []string, basePrices map[string]float64, opts ...GeneratorOption) *Generator {
	if len(symbols) == 0 {
		for sym := range DefaultBasePrices {
			symbols = append(symbols, sym)
		}
	}
	unique := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		if sym != "" {
			unique[sym] = struct{}{}
		}
	}
	g := &Generator{
		basePrices: make(map[string]float64, len(unique)),
		maxMove:    defaultMaxMovePct,
		volumeMin:  defaultVolumeMin,
		volumeMax:  defaultVolumeMax,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for sym := range unique {
		g.symbols = append(g.symbols, sym)
		base := basePrices[sym]
		if base <= 0 {
			base = DefaultBasePrices[sym]
		}
		if base <= 0 {
			base = fallbackBasePrice
		}
		g.basePrices[sym] = base
	}
	sort.Strings(g.symbols)
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Symbols returns the tracked symbol set in cycle order.
func (g *Generator) Symbols() []string {
	out := make([]string, len(g.symbols))
	copy(out, g.symbols)
	return out
}

// Cycle produces one observation per symbol, all stamped with the given time.
func (g *Generator) Cycle(now time.Time) []market.Observation {
	out := make([]market.Observation, 0, len(g.symbols))
	for _, sym := range g.symbols {
		out = append(out, g.observe(sym, now))
	}
	return out
}

func (g *Generator) observe(symbol string, now time.Time) market.Observation {
	base := g.basePrices[symbol]
	price := base * (1 + g.uniform(-g.maxMove, g.maxMove))
	return market.Observation{
		Symbol:    symbol,
		Price:     market.Round2(price),
		Volume:    g.volumeMin + g.rng.Int63n(g.volumeMax-g.volumeMin+1),
		ChangePct: market.Round2(g.uniform(-maxChangePct, maxChangePct)),
		Timestamp: now,
	}
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}
