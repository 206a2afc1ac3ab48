// Package provider gathers the data the dashboard panels display.
//
// Each provider runs on its own goroutine and publishes immutable snapshots
// through an atomic pointer. Readers never block and never see a snapshot
// change after it was published. A nil snapshot means no data has arrived yet.
package provider

import (
	"context"
	"time"
)

// LogSnapshot is the tail of a log source
type LogSnapshot struct {
	Source  string
	Lines   []string
	Err     string // Non-empty when the source cannot currently be read
	Updated time.Time
}

// StatusFact is one health check result
type StatusFact struct {
	Key     string
	Value   string
	Healthy bool
}

// StatusSnapshot is the result of one round of health checks
type StatusSnapshot struct {
	Facts   []StatusFact
	Updated time.Time
}

// Healthy reports whether every fact is healthy
func (s *StatusSnapshot) Healthy() bool {
	for _, f := range s.Facts {
		if !f.Healthy {
			return false
		}
	}
	return true
}

// Metric is a named reading with its recent history
type Metric struct {
	Name    string
	Value   string    // Formatted current value
	Ratio   float64   // Current value as 0..1 for gauges, negative when not a ratio
	History []float64 // Oldest first
}

// MetricsSnapshot is one sample of every metric
type MetricsSnapshot struct {
	Metrics []Metric
	Err     string
	Updated time.Time
}

// Snapshot aggregates the latest snapshot of each provider; any field may be nil
type Snapshot struct {
	Logs    *LogSnapshot
	Status  *StatusSnapshot
	Metrics *MetricsSnapshot
}

// LogSource provides the latest log snapshot
type LogSource interface {
	Logs() *LogSnapshot
}

// StatusSource provides the latest status snapshot
type StatusSource interface {
	Status() *StatusSnapshot
}

// MetricsSource provides the latest metrics snapshot
type MetricsSource interface {
	Metrics() *MetricsSnapshot
}

// Runner is a provider with a background collection loop. Run blocks until
// ctx is done and returns nil on cancellation.
type Runner interface {
	Name() string
	Run(ctx context.Context) error
}
