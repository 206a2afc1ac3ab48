package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazai/fazai-dash/config"
	"github.com/fazai/fazai-dash/dashboard"
	"github.com/fazai/fazai-dash/provider"
	"github.com/fazai/fazai-dash/terminal"
	"github.com/fazai/fazai-dash/view"
)

// isolateConfig keeps the user's own config file out of the test
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"clean quit", nil, 0},
		{"interrupted", dashboard.ErrInterrupted, 130},
		{"wrapped interrupt", fmt.Errorf("run: %w", dashboard.ErrInterrupted), 130},
		{"render fault", &dashboard.RenderFault{Frame: 3, Err: errors.New("broken pipe")}, 1},
		{"terminal fault", &terminal.Error{Op: "enter", Err: terminal.ErrNotTerminal}, 1},
		{"input closed", dashboard.ErrInputClosed, 1},
		{"config", errors.New("config: bad"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "fazai-dash", root.Use)
	assert.NotEmpty(t, root.Short)
	assert.True(t, root.SilenceUsage)

	found := map[string]bool{}
	for _, c := range root.Commands() {
		found[c.Name()] = true
	}
	for _, name := range []string{"snapshot", "config", "version"} {
		assert.True(t, found[name], "subcommand %s", name)
	}

	for _, flag := range []string{"config", "keymap", "driver", "color", "poll", "debug", "log-file", "log-path", "alert-sound", "demo"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %s", flag)
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "fazai-dash version "+version+"\n", out)

	code, out, _ = run(t, "--version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "fazai-dash version "+version+"\n", out)
}

func TestConfigCommandAppliesFlags(t *testing.T) {
	isolateConfig(t)
	file := filepath.Join(t.TempDir(), "dash.yaml")
	require.NoError(t, os.WriteFile(file, []byte("driver: tcell\npoll: 300ms\n"), 0o644))

	code, out, errOut := run(t, "config", "--config", file)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "driver: tcell")
	assert.Contains(t, out, "poll: 300ms")

	// Flags win over files
	code, out, errOut = run(t, "config", "--config", file, "--driver", "ansi", "--poll", "250ms", "--log-path", "/tmp/x.log", "--alert-sound")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "driver: ansi")
	assert.Contains(t, out, "poll: 250ms")
	assert.Contains(t, out, "path: /tmp/x.log")
	assert.Contains(t, out, "sound: true")

	// Unset flags leave the file value alone
	code, out, _ = run(t, "config", "--config", file, "--debug")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "driver: tcell")
	assert.Contains(t, out, "debug: true")
}

func TestInvalidSettingsExitOne(t *testing.T) {
	isolateConfig(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"driver", []string{"config", "--driver", "curses"}, "unknown driver"},
		{"poll", []string{"config", "--poll", "0s"}, "poll"},
		{"color", []string{"config", "--color", "mono"}, "unknown color mode"},
		{"missing file", []string{"config", "--config", filepath.Join(t.TempDir(), "nope.yaml")}, "nope.yaml"},
		{"extra arg", []string{"bogus"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := run(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, errOut, "fazai-dash:")
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestSnapshotDemo(t *testing.T) {
	isolateConfig(t)
	code, out, errOut := run(t, "snapshot", "--demo", "--lines", "3")
	require.Equal(t, 0, code, errOut)

	assert.Contains(t, out, "Status")
	assert.Contains(t, out, "✓ active")
	assert.Contains(t, out, "✗ not found")
	assert.Contains(t, out, "Metrics")
	assert.Contains(t, out, "23.5%")
	assert.Contains(t, out, "Logs demo")
	assert.Contains(t, out, "#119")
	assert.NotContains(t, out, "#116", "only the last 3 lines")
	assert.NotContains(t, out, "\x1b[", "no styling when not a terminal")
}

func TestSnapshotSinglePanel(t *testing.T) {
	isolateConfig(t)
	code, out, _ := run(t, "snapshot", "metrics", "--demo")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "uptime")
	assert.NotContains(t, out, "Status")
	assert.NotContains(t, out, "Logs")

	code, _, errOut := run(t, "snapshot", "graphs", "--demo")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `unknown panel "graphs"`)
}

func TestWriteSnapshotNoData(t *testing.T) {
	var buf bytes.Buffer
	writeSnapshot(&buf, provider.Snapshot{}, view.PanelHome, 10)
	assert.Equal(t, 3, strings.Count(buf.String(), "no data"))
}

func TestCollectStopsAfterWait(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "fazai.log")
	require.NoError(t, os.WriteFile(logPath, []byte("first\nsecond\n"), 0o644))

	cfg := config.Default()
	cfg.Logs.Path = logPath
	cfg.Status.Checks = []provider.Check{{Name: "log", Kind: provider.CheckFile, Target: logPath}}
	cfg.Status.Interval = time.Hour
	hub := buildHub(cfg, false, nil)

	start := time.Now()
	snap, err := collect(context.Background(), hub, 300*time.Millisecond)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	require.NotNil(t, snap.Status)
	require.Len(t, snap.Status.Facts, 1)
	assert.True(t, snap.Status.Facts[0].Healthy)
}

// crashingLogs is a log provider whose collection loop panics
type crashingLogs struct{}

func (crashingLogs) Name() string                { return "logs" }
func (crashingLogs) Logs() *provider.LogSnapshot { return nil }
func (crashingLogs) Run(context.Context) error   { panic("tail: nil reader") }

func TestCollectReportsProviderPanic(t *testing.T) {
	d := provider.Demo(time.Now())
	hub := provider.NewHub(crashingLogs{}, d, d, nil)

	_, err := collect(context.Background(), hub, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider logs panicked")
	assert.Contains(t, err.Error(), "tail: nil reader")
	assert.Equal(t, 1, exitCode(err))
}

func TestPrintFatal(t *testing.T) {
	var buf bytes.Buffer
	printFatal(&buf, &dashboard.RenderFault{Frame: 7, Err: errors.New("broken pipe")})
	assert.Equal(t, "fazai-dash: render frame 7: broken pipe\n", buf.String())
}

func TestNewTerminalByDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Color = config.Color256

	term, err := newTerminal(cfg)
	require.NoError(t, err)
	assert.Equal(t, terminal.ColorMode256, term.ColorMode())
}
