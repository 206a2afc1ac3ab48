// Package stats holds the dashboard's own runtime counters.
//
// Writers look up a metric once and keep the pointer; updates after that are
// single atomic operations and safe from any goroutine.
package stats

import (
	"strconv"
	"sync/atomic"
)

// Well-known keys written by the event loop
const (
	Frames       = "frames"
	Polls        = "polls"
	Events       = "events"
	Unrecognized = "unrecognized"
	Resizes      = "resizes"
	Alerts       = "alerts"
	RenderMillis = "render_ms"
	Driver       = "driver"
	RunID        = "run"
)

// Registry groups metrics by value type
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Count returns the number of registered metrics of every type
func (r *Registry) Count() int {
	return r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Entry is a formatted metric for display
type Entry struct {
	Key   string
	Value string
}

// Entries formats every metric: strings first, then ints, then floats, each
// group in key order. A nil Registry has no entries.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, 0, r.Count())
	r.Strings.Range(func(key string, s *AtomicString) {
		out = append(out, Entry{Key: key, Value: s.Load()})
	})
	r.Ints.Range(func(key string, v *atomic.Int64) {
		out = append(out, Entry{Key: key, Value: strconv.FormatInt(v.Load(), 10)})
	})
	r.Floats.Range(func(key string, f *AtomicFloat) {
		out = append(out, Entry{Key: key, Value: strconv.FormatFloat(f.Get(), 'f', 2, 64)})
	})
	return out
}
