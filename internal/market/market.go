// Package market defines the streaming data model shared between the tick
// engine and its consumers, plus the bounded stores that hold it.
package market

import (
	"math"
	"time"
)

// Observation is one synthetic price/volume record for a symbol at an instant.
// Observations are immutable once created.
type Observation struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Volume    int64     `json:"volume"`
	ChangePct float64   `json:"change"`
	Timestamp time.Time `json:"timestamp"`
}

// Severity ranks how abnormal a flagged price move is.
type Severity string

const (
	// SeverityMedium covers moves just past the alert threshold.
	SeverityMedium Severity = "medium"
	// SeverityHigh covers moves past the high cutoff.
	SeverityHigh Severity = "high"
)

// Alert records an observation whose change magnitude crossed the anomaly
// threshold. Alerts copy the triggering symbol and timestamp, so they outlive
// the observation once it is evicted from the window.
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Symbol    string    `json:"symbol"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Severity  Severity  `json:"severity"`
}

// Aggregate summarizes a symbol's observations currently held in the window.
// It is derived on demand and never stored.
type Aggregate struct {
	Current float64 `json:"current"`
	Avg     float64 `json:"avg"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Volume  int64   `json:"volume"`
}

// Round2 rounds to two decimal places, the precision ticks are quoted at.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
