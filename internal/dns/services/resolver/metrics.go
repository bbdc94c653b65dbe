package resolver

import (
	"sync"
	"time"
)

// QueryRecord is one entry in the metrics history, per spec §4.6.
type QueryRecord struct {
	Timestamp  time.Time
	Name       string
	Mode       string
	DurationMs float64
	Status     string
}

// Metrics is an append-only history of resolution attempts, safe for
// concurrent use per spec §5.
type Metrics struct {
	mu      sync.Mutex
	history []QueryRecord
}

// NewMetrics returns an empty Metrics history.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Record appends one resolution attempt to the history.
func (m *Metrics) Record(ts time.Time, name, mode string, durationMs float64, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, QueryRecord{
		Timestamp:  ts,
		Name:       name,
		Mode:       mode,
		DurationMs: durationMs,
		Status:     status,
	})
}

// Count returns the number of recorded attempts.
func (m *Metrics) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.history)
}

// MeanDurationMs returns the mean duration across all recorded attempts,
// or 0 if none have been recorded.
func (m *Metrics) MeanDurationMs() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.history) == 0 {
		return 0
	}
	var total float64
	for _, rec := range m.history {
		total += rec.DurationMs
	}
	return total / float64(len(m.history))
}

// Snapshot returns a copy of the recorded history.
func (m *Metrics) Snapshot() []QueryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]QueryRecord, len(m.history))
	copy(out, m.history)
	return out
}
