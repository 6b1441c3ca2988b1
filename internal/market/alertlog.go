package market

import "sync"

// DefaultAlertRetention bounds how many alerts the log keeps around.
const DefaultAlertRetention = 1000

// AlertLog stores raised alerts in memory for quick inspection. Retention
// bounds how many are kept (FIFO eviction, same discipline as the window);
// the all-time total keeps counting past eviction.
type AlertLog struct {
	mu        sync.Mutex
	alerts    []Alert
	retention int
	total     int64
}

// NewAlertLog creates an empty log. A retention of zero or below disables
// eviction and lets the log grow for the life of the process.
func NewAlertLog(retention int) *AlertLog {
	if retention < 0 {
		retention = 0
	}
	return &AlertLog{retention: retention}
}

// Append records an alert, evicting the oldest entries past the retention
// bound.
func (l *AlertLog) Append(alert Alert) {
	l.mu.Lock()
	l.alerts = append(l.alerts, alert)
	l.total++
	if l.retention > 0 && len(l.alerts) > l.retention {
		l.alerts = l.alerts[len(l.alerts)-l.retention:]
	}
	l.mu.Unlock()
}

// Recent returns up to limit of the newest alerts in chronological order.
func (l *AlertLog) Recent(limit int) []Alert {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limit <= 0 || len(l.alerts) == 0 {
		return nil
	}
	if limit > len(l.alerts) {
		limit = len(l.alerts)
	}
	out := make([]Alert, limit)
	copy(out, l.alerts[len(l.alerts)-limit:])
	return out
}

// Count reports the number of alerts ever appended, including evicted ones.
func (l *AlertLog) Count() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Retained reports how many alerts are currently held.
func (l *AlertLog) Retained() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.alerts)
}
