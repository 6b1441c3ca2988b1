package market

import (
	"testing"
	"time"
)

func changeObs(symbol string, change float64, ts time.Time) Observation {
	return Observation{Symbol: symbol, Price: 100, Volume: 1, ChangePct: change, Timestamp: ts}
}

func TestDetectorThresholds(t *testing.T) {
	d := NewDetector(DefaultChangeThreshold, DefaultHighThreshold, 0)
	now := time.Now()

	cases := []struct {
		change   float64
		fires    bool
		severity Severity
	}{
		{0, false, ""},
		{1.5, false, ""},
		{-1.5, false, ""},
		{1.6, true, SeverityMedium},
		{-1.7, true, SeverityMedium},
		{1.8, true, SeverityMedium},
		{1.9, true, SeverityHigh},
		{-2.0, true, SeverityHigh},
	}
	for _, tc := range cases {
		alert := d.Evaluate(changeObs("TSLA", tc.change, now))
		if !tc.fires {
			if alert != nil {
				t.Fatalf("change %.2f should not alert, got %+v", tc.change, alert)
			}
			continue
		}
		if alert == nil {
			t.Fatalf("change %.2f should alert", tc.change)
		}
		if alert.Severity != tc.severity {
			t.Fatalf("change %.2f: expected severity %s, got %s", tc.change, tc.severity, alert.Severity)
		}
		if alert.ID == "" {
			t.Fatalf("alert must carry an id")
		}
		if alert.Symbol != "TSLA" || !alert.Timestamp.Equal(now) {
			t.Fatalf("alert must copy symbol and timestamp, got %+v", alert)
		}
	}
}

func TestDetectorMessageFormat(t *testing.T) {
	d := NewDetector(0, 0, 0)
	alert := d.Evaluate(changeObs("NVDA", 1.7, time.Now()))
	if alert == nil {
		t.Fatalf("expected alert")
	}
	if alert.Message != "NVDA showing unusual movement: 1.7%" {
		t.Fatalf("unexpected message: %q", alert.Message)
	}
	if alert.Type != AlertTypePrice {
		t.Fatalf("unexpected alert type: %q", alert.Type)
	}
}

func TestDetectorRepeatsWithoutDebounce(t *testing.T) {
	d := NewDetector(0, 0, 0)
	now := time.Now()
	for i := 0; i < 3; i++ {
		if d.Evaluate(changeObs("META", 1.9, now.Add(time.Duration(i)*time.Millisecond))) == nil {
			t.Fatalf("expected alert on every anomalous tick, missed %d", i)
		}
	}
}

func TestDetectorDebounceSuppressesRepeats(t *testing.T) {
	d := NewDetector(0, 0, time.Second)
	now := time.Now()

	if d.Evaluate(changeObs("AMZN", 1.9, now)) == nil {
		t.Fatalf("first anomalous tick should alert")
	}
	if d.Evaluate(changeObs("AMZN", 1.9, now.Add(200*time.Millisecond))) != nil {
		t.Fatalf("tick inside debounce interval should be suppressed")
	}
	if d.Evaluate(changeObs("GOOGL", 1.9, now.Add(200*time.Millisecond))) == nil {
		t.Fatalf("debounce is per symbol, other symbols still alert")
	}
	if d.Evaluate(changeObs("AMZN", 1.9, now.Add(1100*time.Millisecond))) == nil {
		t.Fatalf("tick past debounce interval should alert again")
	}
}
