package provider

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/procfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRing(t *testing.T) {
	r := newRing[int](3)
	assert.Empty(t, r.snapshot())

	r.push(1)
	r.push(2)
	assert.Equal(t, []int{1, 2}, r.snapshot())

	r.push(3)
	r.push(4)
	r.push(5)
	assert.Equal(t, []int{3, 4, 5}, r.snapshot())
	assert.Equal(t, 3, r.len())

	snap := r.snapshot()
	r.push(6)
	assert.Equal(t, []int{3, 4, 5}, snap, "published copies must not change")

	r.reset()
	assert.Zero(t, r.len())

	tiny := newRing[string](0)
	tiny.push("a")
	tiny.push("b")
	assert.Equal(t, []string{"b"}, tiny.snapshot())
}

func TestCleanLogLine(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"\x1b[31mred\x1b[0m text", "red text"},
		{"tab\there", "tab here"},
		{"bell\x07 and del\x7f", "bell and del"},
		{"crlf\r\n", "crlf"},
		{"utf8 ação ✓", "utf8 ação ✓"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanLogLine(tt.in))
	}
}

func TestFileLogsFollows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fazai.log")
	require.NoError(t, os.WriteFile(path, []byte("first\nsecond\n"), 0o644))

	logs := NewFileLogs(path, 3, quietLogger())
	assert.Nil(t, logs.Logs())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- logs.Run(ctx) }()

	require.Eventually(t, func() bool {
		s := logs.Logs()
		return s != nil && len(s.Lines) == 2
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"first", "second"}, logs.Logs().Lines)
	assert.Empty(t, logs.Logs().Err)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("third\n\x1b[1mfourth\x1b[0m\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		s := logs.Logs()
		return s != nil && len(s.Lines) == 3 && s.Lines[2] == "fourth"
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"second", "third", "fourth"}, logs.Logs().Lines)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestFileLogsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.log")
	logs := NewFileLogs(path, 10, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = logs.Run(ctx) }()

	require.Eventually(t, func() bool { return logs.Logs() != nil }, 5*time.Second, 10*time.Millisecond)
	s := logs.Logs()
	assert.Contains(t, s.Err, "waiting for")
	assert.Empty(t, s.Lines)
}

type fakeCommander struct {
	outputs map[string]string
	paths   map[string]string
	err     error
	block   bool
}

func (p *fakeCommander) Output(ctx context.Context, name string, args ...string) (string, error) {
	if p.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	unit := args[len(args)-1]
	if out, ok := p.outputs[unit]; ok {
		return out, p.err
	}
	return "", errors.New("exit status 4")
}

func (p *fakeCommander) LookPath(file string) (string, error) {
	if path, ok := p.paths[file]; ok {
		return path, nil
	}
	return "", errors.New("not found")
}

func TestSystemStatusChecks(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "fazai.conf")
	require.NoError(t, os.WriteFile(conf, []byte("x=1\n"), 0o644))

	checks := []Check{
		{Name: "dir", Kind: CheckPath, Target: dir},
		{Name: "missing dir", Kind: CheckPath, Target: filepath.Join(dir, "nope")},
		{Name: "config", Kind: CheckFile, Target: conf},
		{Name: "dir as file", Kind: CheckFile, Target: dir},
		{Name: "service", Kind: CheckSystemd, Target: "fazai"},
		{Name: "failed service", Kind: CheckSystemd, Target: "broken"},
		{Name: "unknown service", Kind: CheckSystemd, Target: "ghost"},
		{Name: "node", Kind: CheckCommand, Target: "node"},
		{Name: "npm", Kind: CheckCommand, Target: "npm"},
		{Name: "", Kind: "bogus", Target: "weird"},
	}
	commander := &fakeCommander{
		outputs: map[string]string{"fazai": "active", "broken": "failed"},
		paths:   map[string]string{"node": "/usr/bin/node"},
	}
	st := NewSystemStatus(checks, time.Second, quietLogger()).WithCommander(commander)
	assert.Nil(t, st.Status())

	snap := st.Refresh(context.Background())
	require.Len(t, snap.Facts, len(checks))
	assert.Same(t, snap, st.Status())

	want := []StatusFact{
		{Key: "dir", Value: "present", Healthy: true},
		{Key: "missing dir", Value: "missing"},
		{Key: "config", Value: "present", Healthy: true},
		{Key: "dir as file", Value: "not a regular file"},
		{Key: "service", Value: "active", Healthy: true},
		{Key: "failed service", Value: "failed"},
		{Key: "unknown service", Value: "unavailable"},
		{Key: "node", Value: "/usr/bin/node", Healthy: true},
		{Key: "npm", Value: "not found"},
		{Key: "weird", Value: `unknown check kind "bogus"`},
	}
	assert.Equal(t, want, snap.Facts)
	assert.False(t, snap.Healthy())
}

func TestSystemStatusTimeout(t *testing.T) {
	st := NewSystemStatus([]Check{{Name: "svc", Kind: CheckSystemd, Target: "fazai"}}, time.Second, quietLogger()).
		WithCommander(&fakeCommander{block: true})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	snap := st.Refresh(ctx)
	assert.Less(t, time.Since(start), systemctlTimeout+time.Second)
	assert.False(t, snap.Facts[0].Healthy)
}

func TestCheckValidate(t *testing.T) {
	for _, c := range DefaultChecks() {
		assert.NoError(t, c.Validate())
	}
	assert.Error(t, Check{Name: "x", Kind: "disk", Target: "/"}.Validate())
	assert.Error(t, Check{Name: "x", Kind: CheckPath}.Validate())
}

func TestStatusHealthy(t *testing.T) {
	assert.True(t, (&StatusSnapshot{}).Healthy())
	assert.True(t, (&StatusSnapshot{Facts: []StatusFact{{Healthy: true}}}).Healthy())
	assert.False(t, (&StatusSnapshot{Facts: []StatusFact{{Healthy: true}, {}}}).Healthy())
}

type fakeProc struct {
	stat    procfs.Stat
	mem     procfs.Meminfo
	load    procfs.LoadAvg
	loadErr error
}

func (p *fakeProc) LoadAvg() (*procfs.LoadAvg, error) {
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	la := p.load
	return &la, nil
}

func (p *fakeProc) Meminfo() (procfs.Meminfo, error) { return p.mem, nil }
func (p *fakeProc) Stat() (procfs.Stat, error)       { return p.stat, nil }

func u64(v uint64) *uint64 { return &v }

func metricByName(s *MetricsSnapshot, name string) (Metric, bool) {
	for _, m := range s.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

func TestProcMetricsSample(t *testing.T) {
	boot := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	proc := &fakeProc{
		stat: procfs.Stat{
			BootTime: uint64(boot.Unix()),
			CPUTotal: procfs.CPUStat{User: 100, System: 50, Idle: 850},
		},
		mem:  procfs.Meminfo{MemTotal: u64(1000), MemAvailable: u64(250)},
		load: procfs.LoadAvg{Load1: 0.5, Load5: 0.25, Load15: 0.125},
	}
	m := newProcMetrics(proc, time.Second, 4, quietLogger())
	m.now = func() time.Time { return boot.Add(26*time.Hour + 5*time.Minute) }

	first := m.Sample()
	assert.Empty(t, first.Err)
	_, hasCPU := metricByName(first, MetricCPU)
	assert.False(t, hasCPU, "cpu needs two samples")

	mem, ok := metricByName(first, MetricMemory)
	require.True(t, ok)
	assert.Equal(t, "75.0%", mem.Value)
	assert.InDelta(t, 0.75, mem.Ratio, 1e-9)

	up, ok := metricByName(first, MetricUptime)
	require.True(t, ok)
	assert.Equal(t, "1d 02h 05m", up.Value)

	load1, ok := metricByName(first, MetricLoad1)
	require.True(t, ok)
	assert.Equal(t, "0.50", load1.Value)
	assert.Negative(t, load1.Ratio)

	// 100 more busy ticks out of 200
	proc.stat.CPUTotal = procfs.CPUStat{User: 180, System: 70, Idle: 950}
	second := m.Sample()
	cpu, ok := metricByName(second, MetricCPU)
	require.True(t, ok)
	assert.Equal(t, "50.0%", cpu.Value)
	assert.Equal(t, MetricCPU, second.Metrics[0].Name)

	mem2, _ := metricByName(second, MetricMemory)
	assert.Equal(t, []float64{75, 75}, mem2.History)
	for range 5 {
		m.Sample()
	}
	mem3, _ := metricByName(m.Metrics(), MetricMemory)
	assert.Len(t, mem3.History, 4)
}

func TestProcMetricsPartialFailure(t *testing.T) {
	proc := &fakeProc{loadErr: errors.New("boom"), mem: procfs.Meminfo{MemTotal: u64(0)}}
	m := newProcMetrics(proc, time.Second, 4, quietLogger())
	snap := m.Sample()
	assert.Contains(t, snap.Err, "loadavg")
	_, ok := metricByName(snap, MetricMemory)
	assert.False(t, ok, "zero total memory is not reported")
}

func TestProcMetricsUnavailable(t *testing.T) {
	m := newProcMetrics(nil, time.Second, 4, quietLogger())
	snap := m.Sample()
	assert.NotEmpty(t, snap.Err)
	assert.Empty(t, snap.Metrics)
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "00h 00m", formatUptime(-time.Second))
	assert.Equal(t, "03h 07m", formatUptime(3*time.Hour+7*time.Minute+30*time.Second))
	assert.Equal(t, "2d 00h 01m", formatUptime(48*time.Hour+time.Minute))
}

type countingRunner struct {
	started atomic.Int32
	err     error
}

func (r *countingRunner) Name() string { return "counting" }

func (r *countingRunner) Run(ctx context.Context) error {
	r.started.Add(1)
	if r.err != nil {
		return r.err
	}
	<-ctx.Done()
	return nil
}

type runnerStatic struct {
	Static
	countingRunner
}

func TestHubSnapshotAndRun(t *testing.T) {
	empty := NewHub(nil, nil, nil, quietLogger())
	assert.Equal(t, Snapshot{}, empty.Snapshot())
	assert.Empty(t, empty.Runners())

	demo := Demo(time.Unix(0, 0))
	failing := &runnerStatic{Static: *demo, countingRunner: countingRunner{err: errors.New("broken")}}
	steady := &runnerStatic{Static: *demo}

	h := NewHub(failing, steady, demo, quietLogger())
	require.Len(t, h.Runners(), 2)

	snap := h.Snapshot()
	assert.Same(t, demo.LogSnap, snap.Logs)
	assert.Same(t, demo.StatusSnap, snap.Status)
	assert.Same(t, demo.MetricsSnap, snap.Metrics)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	require.Eventually(t, func() bool {
		return failing.started.Load() == 1 && steady.started.Load() == 1
	}, time.Second, 5*time.Millisecond)

	// The failing runner must not stop the steady one
	select {
	case <-done:
		t.Fatal("Run returned before cancel")
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

type panicRunner struct{}

func (panicRunner) Logs() *LogSnapshot            { return nil }
func (panicRunner) Name() string                  { return "panicky" }
func (panicRunner) Run(ctx context.Context) error { panic("kaboom") }

func TestHubRecoversPanic(t *testing.T) {
	h := NewHub(panicRunner{}, nil, nil, quietLogger())
	err := h.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestDemoIsPopulated(t *testing.T) {
	d := Demo(time.Now())
	assert.NotEmpty(t, d.Logs().Lines)
	assert.NotEmpty(t, d.Status().Facts)
	assert.False(t, d.Status().Healthy())
	assert.Len(t, d.Metrics().Metrics, len(metricOrder))
}
