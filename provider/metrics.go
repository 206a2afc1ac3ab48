package provider

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/procfs"
)

const (
	// DefaultMetricsInterval is the delay between samples
	DefaultMetricsInterval = time.Second
	// DefaultHistory is the sparkline length kept per metric
	DefaultHistory = 60
)

// Metric names in display order
const (
	MetricCPU    = "cpu"
	MetricMemory = "memory"
	MetricLoad1  = "load1"
	MetricLoad5  = "load5"
	MetricLoad15 = "load15"
	MetricUptime = "uptime"
)

var metricOrder = []string{MetricCPU, MetricMemory, MetricLoad1, MetricLoad5, MetricLoad15, MetricUptime}

// procReader is the subset of procfs used for sampling
type procReader interface {
	LoadAvg() (*procfs.LoadAvg, error)
	Meminfo() (procfs.Meminfo, error)
	Stat() (procfs.Stat, error)
}

// ProcMetrics samples host load, memory and CPU from /proc
type ProcMetrics struct {
	proc     procReader
	interval time.Duration
	log      *slog.Logger
	now      func() time.Time

	history map[string]*ring[float64]
	prevCPU *procfs.CPUStat

	snap atomic.Pointer[MetricsSnapshot]
}

// NewProcMetrics opens the default procfs mount. On hosts without /proc the
// provider still runs and reports the error in its snapshot.
func NewProcMetrics(interval time.Duration, history int, log *slog.Logger) *ProcMetrics {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("provider", "metrics")

	var reader procReader
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		log.Warn("procfs unavailable", "error", err)
	} else {
		reader = fs
	}
	return newProcMetrics(reader, interval, history, log)
}

func newProcMetrics(reader procReader, interval time.Duration, history int, log *slog.Logger) *ProcMetrics {
	if interval <= 0 {
		interval = DefaultMetricsInterval
	}
	if history <= 0 {
		history = DefaultHistory
	}
	if log == nil {
		log = slog.Default()
	}
	m := &ProcMetrics{
		proc:     reader,
		interval: interval,
		log:      log,
		now:      time.Now,
		history:  make(map[string]*ring[float64], len(metricOrder)),
	}
	for _, name := range metricOrder {
		m.history[name] = newRing[float64](history)
	}
	return m
}

func (m *ProcMetrics) Name() string { return "metrics" }

// Metrics returns the latest snapshot, nil before the first sample
func (m *ProcMetrics) Metrics() *MetricsSnapshot {
	return m.snap.Load()
}

// Run samples immediately and then every interval until ctx is done
func (m *ProcMetrics) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		m.Sample()
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Sample reads every source once and publishes a snapshot. Sources that fail
// are omitted and the first failure is reported in Err.
func (m *ProcMetrics) Sample() *MetricsSnapshot {
	snap := &MetricsSnapshot{Updated: m.now()}
	if m.proc == nil {
		snap.Err = fmt.Sprintf("/proc is not available on %s", runtime.GOOS)
		m.snap.Store(snap)
		return snap
	}

	fail := func(what string, err error) {
		m.log.Debug("sample failed", "source", what, "error", err)
		if snap.Err == "" {
			snap.Err = fmt.Sprintf("%s: %v", what, err)
		}
	}

	if st, err := m.proc.Stat(); err != nil {
		fail("stat", err)
	} else {
		if busy, ok := m.cpuBusy(st.CPUTotal); ok {
			snap.Metrics = append(snap.Metrics, m.record(MetricCPU, busy*100, formatPercent(busy), busy))
		}
		if st.BootTime > 0 {
			up := m.now().Sub(time.Unix(int64(st.BootTime), 0))
			snap.Metrics = append(snap.Metrics, m.record(MetricUptime, up.Hours(), formatUptime(up), -1))
		}
	}

	if mi, err := m.proc.Meminfo(); err != nil {
		fail("meminfo", err)
	} else if used, ok := memUsed(mi); ok {
		snap.Metrics = append(snap.Metrics, m.record(MetricMemory, used*100, formatPercent(used), used))
	}

	if la, err := m.proc.LoadAvg(); err != nil {
		fail("loadavg", err)
	} else {
		snap.Metrics = append(snap.Metrics,
			m.record(MetricLoad1, la.Load1, formatLoad(la.Load1), -1),
			m.record(MetricLoad5, la.Load5, formatLoad(la.Load5), -1),
			m.record(MetricLoad15, la.Load15, formatLoad(la.Load15), -1),
		)
	}

	sortMetrics(snap.Metrics)
	m.snap.Store(snap)
	return snap
}

func (m *ProcMetrics) record(name string, sample float64, value string, ratio float64) Metric {
	h := m.history[name]
	h.push(sample)
	return Metric{Name: name, Value: value, Ratio: ratio, History: h.snapshot()}
}

// cpuBusy returns the busy fraction since the previous sample. The first call
// only primes the baseline.
func (m *ProcMetrics) cpuBusy(cur procfs.CPUStat) (float64, bool) {
	prev := m.prevCPU
	m.prevCPU = &cur
	if prev == nil {
		return 0, false
	}

	idle := (cur.Idle + cur.Iowait) - (prev.Idle + prev.Iowait)
	total := cpuTotal(cur) - cpuTotal(*prev)
	if total <= 0 {
		return 0, false
	}
	return clampRatio(1 - idle/total), true
}

func cpuTotal(c procfs.CPUStat) float64 {
	return c.User + c.Nice + c.System + c.Idle + c.Iowait + c.IRQ + c.SoftIRQ + c.Steal
}

func memUsed(mi procfs.Meminfo) (float64, bool) {
	if mi.MemTotal == nil || mi.MemAvailable == nil || *mi.MemTotal == 0 {
		return 0, false
	}
	total := float64(*mi.MemTotal)
	avail := float64(*mi.MemAvailable)
	return clampRatio((total - avail) / total), true
}

func sortMetrics(ms []Metric) {
	rank := func(name string) int {
		for i, n := range metricOrder {
			if n == name {
				return i
			}
		}
		return len(metricOrder)
	}
	// Insertion sort; at most a handful of entries
	for i := 1; i < len(ms); i++ {
		for j := i; j > 0 && rank(ms[j].Name) < rank(ms[j-1].Name); j-- {
			ms[j], ms[j-1] = ms[j-1], ms[j]
		}
	}
}

func clampRatio(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func formatPercent(ratio float64) string {
	return strconv.FormatFloat(ratio*100, 'f', 1, 64) + "%"
}

func formatLoad(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	hours := int(d / time.Hour)
	d -= time.Duration(hours) * time.Hour
	mins := int(d / time.Minute)
	if days > 0 {
		return fmt.Sprintf("%dd %02dh %02dm", days, hours, mins)
	}
	return fmt.Sprintf("%02dh %02dm", hours, mins)
}
