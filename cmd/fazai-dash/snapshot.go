package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fazai/fazai-dash/provider"
	"github.com/fazai/fazai-dash/view"
)

const (
	defaultSnapshotWait  = 1500 * time.Millisecond
	defaultSnapshotLines = 20
)

// palette styles non-interactive output. The renderer drops colors when w is not a terminal.
type palette struct {
	title lipgloss.Style
	key   lipgloss.Style
	ok    lipgloss.Style
	bad   lipgloss.Style
	dim   lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	return palette{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FAFFF")),
		key:   r.NewStyle().Width(16),
		ok:    r.NewStyle().Foreground(lipgloss.Color("10")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		dim:   r.NewStyle().Faint(true),
	}
}

// printFatal reports an error on the normal screen after the session is restored
func printFatal(w io.Writer, err error) {
	fmt.Fprintln(w, newPalette(w).bad.Render("fazai-dash: "+err.Error()))
}

func newSnapshotCmd(o *options) *cobra.Command {
	var (
		wait  time.Duration
		lines int
	)
	cmd := &cobra.Command{
		Use:   "snapshot [home|logs|status|metrics]",
		Short: "Print the current provider data once and exit",
		Long: `snapshot runs the providers for a short while, then prints what they
collected. Without an argument every section is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			panel := view.PanelHome
			if len(args) == 1 {
				p, ok := view.ParsePanel(args[0])
				if !ok {
					return fmt.Errorf("unknown panel %q", args[0])
				}
				panel = p
			}

			cfg, err := loadConfig(cmd, o)
			if err != nil {
				return err
			}

			hub := buildHub(cfg, o.demo, slog.New(slog.DiscardHandler))
			snap, err := collect(cmd.Context(), hub, wait)
			if err != nil {
				return err
			}
			writeSnapshot(cmd.OutOrStdout(), snap, panel, lines)
			return nil
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", defaultSnapshotWait, "how long to let providers collect")
	cmd.Flags().IntVar(&lines, "lines", defaultSnapshotLines, "log lines to print")
	return cmd
}

// collect runs the hub for wait and returns whatever it gathered.
// A provider panic is returned instead of a partial snapshot.
func collect(ctx context.Context, hub *provider.Hub, wait time.Duration) (provider.Snapshot, error) {
	if len(hub.Runners()) == 0 || wait <= 0 {
		return hub.Snapshot(), nil
	}
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	if err := hub.Run(ctx); err != nil {
		return provider.Snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	return hub.Snapshot(), nil
}

// writeSnapshot prints the sections for panel; PanelHome prints all of them
func writeSnapshot(w io.Writer, snap provider.Snapshot, panel view.Panel, lines int) {
	pal := newPalette(w)
	var sections []string
	if panel == view.PanelHome || panel == view.PanelStatus {
		sections = append(sections, statusSection(pal, snap.Status))
	}
	if panel == view.PanelHome || panel == view.PanelMetrics {
		sections = append(sections, metricsSection(pal, snap.Metrics))
	}
	if panel == view.PanelHome || panel == view.PanelLogs {
		sections = append(sections, logsSection(pal, snap.Logs, lines))
	}
	fmt.Fprintln(w, strings.Join(sections, "\n\n"))
}

func statusSection(pal palette, s *provider.StatusSnapshot) string {
	var b strings.Builder
	b.WriteString(pal.title.Render("Status"))
	if s == nil {
		b.WriteString("\n" + pal.dim.Render("no data"))
		return b.String()
	}
	for _, f := range s.Facts {
		mark, style := "✓", pal.ok
		if !f.Healthy {
			mark, style = "✗", pal.bad
		}
		b.WriteString("\n" + pal.key.Render(f.Key) + style.Render(mark+" "+f.Value))
	}
	return b.String()
}

func metricsSection(pal palette, m *provider.MetricsSnapshot) string {
	var b strings.Builder
	b.WriteString(pal.title.Render("Metrics"))
	if m == nil {
		b.WriteString("\n" + pal.dim.Render("no data"))
		return b.String()
	}
	if m.Err != "" {
		b.WriteString("\n" + pal.bad.Render(m.Err))
	}
	for _, mt := range m.Metrics {
		b.WriteString("\n" + pal.key.Render(mt.Name) + mt.Value)
	}
	return b.String()
}

func logsSection(pal palette, l *provider.LogSnapshot, lines int) string {
	var b strings.Builder
	if l == nil {
		b.WriteString(pal.title.Render("Logs"))
		b.WriteString("\n" + pal.dim.Render("no data"))
		return b.String()
	}
	b.WriteString(pal.title.Render("Logs " + l.Source))
	if l.Err != "" {
		b.WriteString("\n" + pal.bad.Render(l.Err))
	}
	tail := l.Lines
	if lines >= 0 && len(tail) > lines {
		tail = tail[len(tail)-lines:]
	}
	for _, line := range tail {
		b.WriteString("\n" + line)
	}
	return b.String()
}
