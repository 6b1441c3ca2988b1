package market

import (
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AlertTypePrice marks alerts raised on abnormal single-tick price moves.
const AlertTypePrice = "price_alert"

// Default cutoffs for flagging a single-tick change percentage.
const (
	DefaultChangeThreshold = 1.5
	DefaultHighThreshold   = 1.8
)

// Detector flags observations whose change magnitude exceeds a threshold. An
// optional per-symbol debounce suppresses repeat alerts inside the configured
// interval; zero keeps the alert-on-every-anomalous-tick behavior.
type Detector struct {
	threshold float64
	high      float64
	debounce  time.Duration

	mu       sync.Mutex
	lastFire map[string]time.Time
}

// NewDetector builds a detector using the given cutoffs; non-positive or
// inverted values fall back to the defaults.
func NewDetector(threshold, high float64, debounce time.Duration) *Detector {
	if threshold <= 0 {
		threshold = DefaultChangeThreshold
	}
	if high <= threshold {
		high = DefaultHighThreshold
		if high <= threshold {
			high = threshold * 1.2
		}
	}
	if debounce < 0 {
		debounce = 0
	}
	return &Detector{
		threshold: threshold,
		high:      high,
		debounce:  debounce,
		lastFire:  make(map[string]time.Time),
	}
}

// Evaluate returns an alert when the observation's change magnitude crosses
// the threshold, nil otherwise.
func (d *Detector) Evaluate(obs Observation) *Alert {
	magnitude := math.Abs(obs.ChangePct)
	if magnitude <= d.threshold {
		return nil
	}

	if d.debounce > 0 {
		d.mu.Lock()
		last, seen := d.lastFire[obs.Symbol]
		if seen && obs.Timestamp.Sub(last) < d.debounce {
			d.mu.Unlock()
			return nil
		}
		d.lastFire[obs.Symbol] = obs.Timestamp
		d.mu.Unlock()
	}

	severity := SeverityMedium
	if magnitude > d.high {
		severity = SeverityHigh
	}
	return &Alert{
		ID:        uuid.NewString(),
		Type:      AlertTypePrice,
		Symbol:    obs.Symbol,
		Message:   fmt.Sprintf("%s showing unusual movement: %s%%", obs.Symbol, strconv.FormatFloat(obs.ChangePct, 'f', -1, 64)),
		Timestamp: obs.Timestamp,
		Severity:  severity,
	}
}
