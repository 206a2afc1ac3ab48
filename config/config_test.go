package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazai/fazai-dash/provider"
)

// isolate points the user config lookup at a temp dir for one test
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origGetenv, origHome := osGetenv, osUserHomeDir
	osGetenv = func(key string) string {
		if key == "XDG_CONFIG_HOME" {
			return dir
		}
		return ""
	}
	osUserHomeDir = func() (string, error) { return "/nonexistent", nil }
	t.Cleanup(func() {
		osGetenv, osUserHomeDir = origGetenv, origHome
	})
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100*time.Millisecond, cfg.Poll)
	assert.False(t, cfg.DebugEnabled())
	assert.False(t, cfg.SoundEnabled())
	assert.Equal(t, provider.DefaultChecks(), cfg.Status.Checks)
}

func TestLoadDefaultsOnly(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadLayers(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, appDir, configFileName), `
poll: 250ms
driver: tcell
logs:
  path: /tmp/user.log
alert:
  sound: true
`)
	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	writeFile(t, explicit, `
poll: 50ms
status:
  checks:
    - name: home
      kind: path
      target: /home
metrics:
  history: 30
`)

	cfg, err := Load(explicit)
	require.NoError(t, err)

	assert.Equal(t, 50*time.Millisecond, cfg.Poll, "explicit file wins")
	assert.Equal(t, DriverTcell, cfg.Driver, "user file kept where explicit is silent")
	assert.Equal(t, "/tmp/user.log", cfg.Logs.Path)
	assert.True(t, cfg.SoundEnabled())
	assert.Equal(t, []provider.Check{{Name: "home", Kind: provider.CheckPath, Target: "/home"}}, cfg.Status.Checks)
	assert.Equal(t, 30, cfg.Metrics.History)
	assert.Equal(t, provider.DefaultLogLines, cfg.Logs.Lines, "defaults fill the rest")
}

func TestLoadEmptyChecksDisables(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	writeFile(t, path, "status:\n  checks: []\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg.Status.Checks)
	assert.Empty(t, cfg.Status.Checks)
}

func TestLoadErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "colour: red\n"},
		{"bad yaml", "poll: [\n"},
		{"bad duration", "poll: soon\n"},
		{"bad driver", "driver: curses\n"},
		{"bad color", "color: sepia\n"},
		{"poll too long", "poll: 1m\n"},
		{"bad check", "status:\n  checks:\n    - name: x\n      kind: disk\n      target: /\n"},
		{"volume range", "alert:\n  volume: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			writeFile(t, path, tt.content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "explicit file must exist")
}

func TestBrokenUserFileFails(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, appDir, configFileName), "poll: [\n")
	_, err := Load("")
	assert.Error(t, err)
}

func TestUserConfigPathFallback(t *testing.T) {
	origGetenv, origHome := osGetenv, osUserHomeDir
	t.Cleanup(func() { osGetenv, osUserHomeDir = origGetenv, origHome })

	osGetenv = func(string) string { return "" }
	osUserHomeDir = func() (string, error) { return "/home/op", nil }

	p, err := UserConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/op/.config/fazai-dash/config.yaml", p)
}

func TestMergeExplicitFalse(t *testing.T) {
	base := Default()
	base.Alert.Sound = ptr(true)
	merged := Merge(base, Config{Alert: AlertConfig{Sound: ptr(false)}})
	assert.False(t, merged.SoundEnabled())
	assert.True(t, base.SoundEnabled())

	merged = Merge(base, Config{})
	assert.True(t, merged.SoundEnabled(), "unset overlay keeps base")
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "poll: 100ms")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}
