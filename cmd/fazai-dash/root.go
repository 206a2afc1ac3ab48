package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/fazai/fazai-dash/config"
	"github.com/fazai/fazai-dash/dashboard"
)

// Exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// options holds raw flag values; only flags the user set override the config
type options struct {
	configPath string
	keymap     string
	driver     string
	color      string
	poll       time.Duration
	debug      bool
	logFile    string
	logPath    string
	alertSound bool
	demo       bool
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "fazai-dash",
		Short: "Terminal dashboard for the FazAI service",
		Long: `fazai-dash shows the FazAI service log, health checks and host metrics
in a full-screen terminal dashboard.

Keys: h home, l logs, s status, m metrics, j/k scroll, q quit.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			return runDashboard(cmd.Context(), cfg, o.demo)
		},
	}
	root.SetVersionTemplate(`{{printf "fazai-dash version %s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVar(&o.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/fazai-dash/config.yaml)")
	pf.StringVar(&o.logPath, "log-path", "", "FazAI log file to follow")
	pf.BoolVar(&o.demo, "demo", false, "show built-in sample data instead of live providers")
	pf.StringVar(&o.keymap, "keymap", "", "TOML keymap overrides")
	pf.StringVar(&o.driver, "driver", config.DriverANSI, "terminal driver: ansi or tcell")
	pf.StringVar(&o.color, "color", config.ColorAuto, "color mode: auto, 256 or truecolor")
	pf.DurationVar(&o.poll, "poll", config.DefaultPoll, "input poll timeout per cycle")
	pf.BoolVar(&o.debug, "debug", false, "write a debug log")
	pf.StringVar(&o.logFile, "log-file", "", "debug log file (default logs/fazai-dash.log)")
	pf.BoolVar(&o.alertSound, "alert-sound", false, "beep when a health check starts failing")

	root.AddCommand(newSnapshotCmd(o))
	root.AddCommand(newConfigCmd(o))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of fazai-dash",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fazai-dash version %s\n", version)
		},
	}
}

func newConfigCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}
			out, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// loadConfig layers the config files and then the flags the user set
func loadConfig(cmd *cobra.Command, o *options) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	changed := cmd.Flags().Changed
	if changed("keymap") {
		cfg.Keymap = o.keymap
	}
	if changed("driver") {
		cfg.Driver = o.driver
	}
	if changed("color") {
		cfg.Color = o.color
	}
	if changed("poll") {
		cfg.Poll = o.poll
	}
	if changed("debug") {
		cfg.Log.Debug = &o.debug
	}
	if changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if changed("alert-sound") {
		cfg.Alert.Sound = &o.alertSound
	}
	if changed("log-path") {
		cfg.Logs.Path = o.logPath
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// execute runs the command line and maps the outcome to an exit code
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, dashboard.ErrInterrupted) {
		printFatal(stderr, err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, dashboard.ErrInterrupted):
		return exitInterrupted
	default:
		return exitFailure
	}
}
