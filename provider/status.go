package provider

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"time"
)

// CheckKind selects how a status check inspects the system
type CheckKind string

const (
	CheckPath    CheckKind = "path"    // Target exists (file or directory)
	CheckFile    CheckKind = "file"    // Target is a readable regular file
	CheckSystemd CheckKind = "systemd" // systemctl reports the unit active
	CheckCommand CheckKind = "command" // Target resolves on PATH
)

// Check is one configured health check
type Check struct {
	Name   string    `yaml:"name"`
	Kind   CheckKind `yaml:"kind"`
	Target string    `yaml:"target"`
}

// DefaultChecks mirrors what the FazAI installer verifies
func DefaultChecks() []Check {
	return []Check{
		{Name: "install dir", Kind: CheckPath, Target: "/opt/fazai"},
		{Name: "config", Kind: CheckFile, Target: "/etc/fazai/fazai.conf"},
		{Name: "service", Kind: CheckSystemd, Target: "fazai"},
		{Name: "node", Kind: CheckCommand, Target: "node"},
		{Name: "npm", Kind: CheckCommand, Target: "npm"},
	}
}

// Validate reports configuration errors in a check
func (c Check) Validate() error {
	switch c.Kind {
	case CheckPath, CheckFile, CheckSystemd, CheckCommand:
	default:
		return fmt.Errorf("check %q: unknown kind %q", c.Name, c.Kind)
	}
	if c.Target == "" {
		return fmt.Errorf("check %q: empty target", c.Name)
	}
	return nil
}

const (
	// DefaultStatusInterval is the delay between check rounds
	DefaultStatusInterval = 5 * time.Second
	// systemctlTimeout bounds each systemctl call
	systemctlTimeout = 2 * time.Second
)

// Commander runs external commands; tests substitute it
type Commander interface {
	// Output runs name with args and returns trimmed stdout
	Output(ctx context.Context, name string, args ...string) (string, error)
	LookPath(file string) (string, error)
}

type execCommander struct{}

func (execCommander) Output(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return strings.TrimSpace(string(out)), err
}

func (execCommander) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// SystemStatus periodically runs health checks
type SystemStatus struct {
	checks    []Check
	interval  time.Duration
	commander Commander
	log       *slog.Logger

	snap atomic.Pointer[StatusSnapshot]
}

// NewSystemStatus creates a status provider. Nil checks selects DefaultChecks.
func NewSystemStatus(checks []Check, interval time.Duration, log *slog.Logger) *SystemStatus {
	if checks == nil {
		checks = DefaultChecks()
	}
	if interval <= 0 {
		interval = DefaultStatusInterval
	}
	if log == nil {
		log = slog.Default()
	}
	return &SystemStatus{
		checks:    checks,
		interval:  interval,
		commander: execCommander{},
		log:       log.With("provider", "status"),
	}
}

// WithCommander replaces the command runner
func (s *SystemStatus) WithCommander(p Commander) *SystemStatus {
	s.commander = p
	return s
}

func (s *SystemStatus) Name() string { return "status" }

// Status returns the latest snapshot, nil before the first round completes
func (s *SystemStatus) Status() *StatusSnapshot {
	return s.snap.Load()
}

// Run checks immediately and then every interval until ctx is done
func (s *SystemStatus) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.Refresh(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Refresh runs one round of checks and publishes the result
func (s *SystemStatus) Refresh(ctx context.Context) *StatusSnapshot {
	facts := make([]StatusFact, 0, len(s.checks))
	for _, c := range s.checks {
		f := s.check(ctx, c)
		if !f.Healthy {
			s.log.Debug("check unhealthy", "check", c.Name, "value", f.Value)
		}
		facts = append(facts, f)
	}

	snap := &StatusSnapshot{Facts: facts, Updated: time.Now()}
	s.snap.Store(snap)
	return snap
}

func (s *SystemStatus) check(ctx context.Context, c Check) StatusFact {
	fact := StatusFact{Key: c.Name}
	if fact.Key == "" {
		fact.Key = c.Target
	}

	switch c.Kind {
	case CheckPath:
		if _, err := os.Stat(c.Target); err != nil {
			fact.Value = describeStatErr(err)
		} else {
			fact.Value = "present"
			fact.Healthy = true
		}

	case CheckFile:
		info, err := os.Stat(c.Target)
		switch {
		case err != nil:
			fact.Value = describeStatErr(err)
		case !info.Mode().IsRegular():
			fact.Value = "not a regular file"
		default:
			fact.Value = "present"
			fact.Healthy = true
		}

	case CheckSystemd:
		pctx, cancel := context.WithTimeout(ctx, systemctlTimeout)
		defer cancel()
		// is-active prints the state and exits non-zero for anything but active
		out, err := s.commander.Output(pctx, "systemctl", "is-active", c.Target)
		switch {
		case out == "active":
			fact.Value = "active"
			fact.Healthy = true
		case out != "":
			fact.Value = out
		case errors.Is(pctx.Err(), context.DeadlineExceeded):
			fact.Value = "timeout"
		case err != nil:
			fact.Value = "unavailable"
		default:
			fact.Value = "unknown"
		}

	case CheckCommand:
		if path, err := s.commander.LookPath(c.Target); err != nil {
			fact.Value = "not found"
		} else {
			fact.Value = path
			fact.Healthy = true
		}

	default:
		fact.Value = fmt.Sprintf("unknown check kind %q", c.Kind)
	}

	return fact
}

func describeStatErr(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "missing"
	case errors.Is(err, fs.ErrPermission):
		return "permission denied"
	default:
		return "error"
	}
}
