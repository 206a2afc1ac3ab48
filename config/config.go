// Package config loads fazai-dash settings.
//
// Settings are layered: built-in defaults, then the user file under the XDG
// config directory, then an explicit --config file. Command-line flags are
// applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/fazai/fazai-dash/provider"
)

// Drivers selectable with Driver
const (
	DriverANSI  = "ansi"
	DriverTcell = "tcell"
)

// Color modes selectable with Color
const (
	ColorAuto      = "auto"
	Color256       = "256"
	ColorTrueColor = "truecolor"
)

const (
	DefaultPoll = 100 * time.Millisecond
	maxPoll     = 10 * time.Second
)

// Config is the complete dashboard configuration
type Config struct {
	Poll   time.Duration `yaml:"poll"`
	Driver string        `yaml:"driver"`
	Color  string        `yaml:"color"`
	Keymap string        `yaml:"keymap"`

	Log     LogConfig     `yaml:"log"`
	Alert   AlertConfig   `yaml:"alert"`
	Logs    LogsConfig    `yaml:"logs"`
	Status  StatusConfig  `yaml:"status"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig controls the dashboard's own debug log
type LogConfig struct {
	Debug *bool  `yaml:"debug"`
	File  string `yaml:"file"`
}

// AlertConfig controls the audible alert
type AlertConfig struct {
	Sound  *bool   `yaml:"sound"`
	Volume float64 `yaml:"volume"`
}

// LogsConfig configures the followed log file
type LogsConfig struct {
	Path  string `yaml:"path"`
	Lines int    `yaml:"lines"`
}

// StatusConfig configures health checks. A nil Checks keeps the inherited
// list; an empty list disables checks.
type StatusConfig struct {
	Interval time.Duration    `yaml:"interval"`
	Checks   []provider.Check `yaml:"checks"`
}

// MetricsConfig configures host sampling
type MetricsConfig struct {
	Interval time.Duration `yaml:"interval"`
	History  int           `yaml:"history"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Poll:   DefaultPoll,
		Driver: DriverANSI,
		Color:  ColorAuto,
		Log: LogConfig{
			Debug: ptr(false),
			File:  "logs/fazai-dash.log",
		},
		Alert: AlertConfig{
			Sound:  ptr(false),
			Volume: 0.5,
		},
		Logs: LogsConfig{
			Path:  provider.DefaultLogPath,
			Lines: provider.DefaultLogLines,
		},
		Status: StatusConfig{
			Interval: provider.DefaultStatusInterval,
			Checks:   provider.DefaultChecks(),
		},
		Metrics: MetricsConfig{
			Interval: provider.DefaultMetricsInterval,
			History:  provider.DefaultHistory,
		},
	}
}

// Merge returns base with every set field of overlay applied
func Merge(base, overlay Config) Config {
	out := base
	setIf(&out.Poll, overlay.Poll)
	setIf(&out.Driver, overlay.Driver)
	setIf(&out.Color, overlay.Color)
	setIf(&out.Keymap, overlay.Keymap)

	if overlay.Log.Debug != nil {
		out.Log.Debug = ptr(*overlay.Log.Debug)
	}
	setIf(&out.Log.File, overlay.Log.File)

	if overlay.Alert.Sound != nil {
		out.Alert.Sound = ptr(*overlay.Alert.Sound)
	}
	setIf(&out.Alert.Volume, overlay.Alert.Volume)

	setIf(&out.Logs.Path, overlay.Logs.Path)
	setIf(&out.Logs.Lines, overlay.Logs.Lines)

	setIf(&out.Status.Interval, overlay.Status.Interval)
	if overlay.Status.Checks != nil {
		out.Status.Checks = slices.Clone(overlay.Status.Checks)
	}

	setIf(&out.Metrics.Interval, overlay.Metrics.Interval)
	setIf(&out.Metrics.History, overlay.Metrics.History)
	return out
}

// Validate reports every invalid setting
func (c Config) Validate() error {
	var errs []error
	if c.Poll <= 0 || c.Poll > maxPoll {
		errs = append(errs, fmt.Errorf("poll %s out of range (0, %s]", c.Poll, maxPoll))
	}
	if c.Driver != DriverANSI && c.Driver != DriverTcell {
		errs = append(errs, fmt.Errorf("unknown driver %q (want %s or %s)", c.Driver, DriverANSI, DriverTcell))
	}
	switch c.Color {
	case ColorAuto, Color256, ColorTrueColor:
	default:
		errs = append(errs, fmt.Errorf("unknown color mode %q", c.Color))
	}
	if c.Alert.Volume < 0 || c.Alert.Volume > 1 {
		errs = append(errs, fmt.Errorf("alert volume %g out of range [0, 1]", c.Alert.Volume))
	}
	if c.Logs.Lines < 1 {
		errs = append(errs, fmt.Errorf("logs.lines must be positive, got %d", c.Logs.Lines))
	}
	if c.Status.Interval <= 0 {
		errs = append(errs, errors.New("status.interval must be positive"))
	}
	for _, chk := range c.Status.Checks {
		if err := chk.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Metrics.Interval <= 0 {
		errs = append(errs, errors.New("metrics.interval must be positive"))
	}
	if c.Metrics.History < 1 {
		errs = append(errs, fmt.Errorf("metrics.history must be positive, got %d", c.Metrics.History))
	}
	return errors.Join(errs...)
}

// DebugEnabled reports whether the debug log is on
func (c Config) DebugEnabled() bool {
	return c.Log.Debug != nil && *c.Log.Debug
}

// SoundEnabled reports whether the audible alert is on
func (c Config) SoundEnabled() bool {
	return c.Alert.Sound != nil && *c.Alert.Sound
}

func setIf[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

func ptr[T any](v T) *T {
	return &v
}
