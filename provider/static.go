package provider

import (
	"math"
	"strconv"
	"time"
)

// Static serves fixed snapshots. Used by --demo and by tests.
type Static struct {
	LogSnap     *LogSnapshot
	StatusSnap  *StatusSnapshot
	MetricsSnap *MetricsSnapshot
}

func (s *Static) Logs() *LogSnapshot        { return s.LogSnap }
func (s *Static) Status() *StatusSnapshot   { return s.StatusSnap }
func (s *Static) Metrics() *MetricsSnapshot { return s.MetricsSnap }

// Demo returns a Static populated with plausible sample data
func Demo(now time.Time) *Static {
	lines := make([]string, 0, 120)
	levels := []string{"INFO", "INFO", "DEBUG", "INFO", "WARN"}
	msgs := []string{
		"daemon listening on 127.0.0.1:3120",
		"module loader scanned /opt/fazai/lib/mods",
		"command received: status",
		"provider openrouter selected",
		"retrying provider request",
	}
	for i := 0; i < 120; i++ {
		ts := now.Add(time.Duration(i-120) * time.Second).Format("2006-01-02T15:04:05")
		lines = append(lines, ts+" "+levels[i%len(levels)]+" "+msgs[i%len(msgs)]+" #"+strconv.Itoa(i))
	}

	history := func(base, amp float64) []float64 {
		h := make([]float64, DefaultHistory)
		for i := range h {
			h[i] = base + amp*math.Sin(float64(i)/6)
		}
		return h
	}

	return &Static{
		LogSnap: &LogSnapshot{Source: "demo", Lines: lines, Updated: now},
		StatusSnap: &StatusSnapshot{
			Facts: []StatusFact{
				{Key: "install dir", Value: "present", Healthy: true},
				{Key: "config", Value: "present", Healthy: true},
				{Key: "service", Value: "active", Healthy: true},
				{Key: "node", Value: "/usr/bin/node", Healthy: true},
				{Key: "npm", Value: "not found", Healthy: false},
			},
			Updated: now,
		},
		MetricsSnap: &MetricsSnapshot{
			Metrics: []Metric{
				{Name: MetricCPU, Value: "23.5%", Ratio: 0.235, History: history(25, 10)},
				{Name: MetricMemory, Value: "61.0%", Ratio: 0.61, History: history(60, 2)},
				{Name: MetricLoad1, Value: "0.42", Ratio: -1, History: history(0.5, 0.2)},
				{Name: MetricLoad5, Value: "0.38", Ratio: -1, History: history(0.4, 0.1)},
				{Name: MetricLoad15, Value: "0.30", Ratio: -1, History: history(0.3, 0.05)},
				{Name: MetricUptime, Value: "3d 04h 12m", Ratio: -1},
			},
			Updated: now,
		},
	}
}
