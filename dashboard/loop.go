// Package dashboard runs the interactive event loop.
//
// One goroutine owns the terminal session. Each cycle renders the current
// state, waits a bounded time for one input event, and applies the decoded
// command. Providers publish on their own goroutines; the loop only reads
// their latest snapshots.
package dashboard

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fazai/fazai-dash/audio"
	"github.com/fazai/fazai-dash/input"
	"github.com/fazai/fazai-dash/provider"
	"github.com/fazai/fazai-dash/render"
	"github.com/fazai/fazai-dash/stats"
	"github.com/fazai/fazai-dash/terminal"
	"github.com/fazai/fazai-dash/terminal/tui"
	"github.com/fazai/fazai-dash/view"
)

// DefaultPoll is the input wait per cycle
const DefaultPoll = 100 * time.Millisecond

// renderSmoothing is the moving average weight of the render time stat
const renderSmoothing = 0.1

// SnapshotSource supplies the latest provider data; provider.Hub implements it
type SnapshotSource interface {
	Snapshot() provider.Snapshot
}

// Options tunes a Loop. The zero value is usable.
type Options struct {
	Poll    time.Duration
	Alerter audio.Alerter
	Stats   *stats.Registry
	Log     *slog.Logger
	Theme   *tui.Theme
	Clock   func() time.Time // Header clock; nil hides it
}

// Loop is the dashboard event loop. It is not safe for concurrent use.
type Loop struct {
	session *terminal.Session
	source  *input.Source
	snaps   SnapshotSource
	alerter audio.Alerter
	stats   *stats.Registry
	log     *slog.Logger
	theme   *tui.Theme
	clock   func() time.Time
	poll    time.Duration

	state view.State
	hints []input.Hint

	lastStatus  *provider.StatusSnapshot
	healthByKey map[string]bool

	// Cached stat pointers
	frames       *atomic.Int64
	polls        *atomic.Int64
	events       *atomic.Int64
	unrecognized *atomic.Int64
	resizes      *atomic.Int64
	alerts       *atomic.Int64
	renderMillis *stats.AtomicFloat
}

// New creates a loop drawing to session and reading commands from source
func New(session *terminal.Session, source *input.Source, snaps SnapshotSource, opts Options) *Loop {
	if opts.Poll <= 0 {
		opts.Poll = DefaultPoll
	}
	if opts.Alerter == nil {
		opts.Alerter = audio.Silent{}
	}
	if opts.Stats == nil {
		opts.Stats = stats.NewRegistry()
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}

	reg := opts.Stats
	return &Loop{
		session:      session,
		source:       source,
		snaps:        snaps,
		alerter:      opts.Alerter,
		stats:        reg,
		log:          opts.Log.With("component", "loop"),
		theme:        opts.Theme,
		clock:        opts.Clock,
		poll:         opts.Poll,
		state:        view.NewState(),
		hints:        source.Keys().Hints(),
		healthByKey:  make(map[string]bool),
		frames:       reg.Ints.Get(stats.Frames),
		polls:        reg.Ints.Get(stats.Polls),
		events:       reg.Ints.Get(stats.Events),
		unrecognized: reg.Ints.Get(stats.Unrecognized),
		resizes:      reg.Ints.Get(stats.Resizes),
		alerts:       reg.Ints.Get(stats.Alerts),
		renderMillis: reg.Floats.Get(stats.RenderMillis),
	}
}

// State returns the current view state
func (l *Loop) State() view.State {
	return l.state
}

// Run loops until Quit, a fatal terminal fault, or ctx is cancelled.
// A clean quit returns nil; cancellation returns ErrInterrupted.
func (l *Loop) Run(ctx context.Context) error {
	term := l.session.Terminal()
	l.log.Debug("loop started", "poll", l.poll)

	for {
		if ctx.Err() != nil {
			l.log.Debug("loop interrupted", "frames", l.frames.Load())
			return ErrInterrupted
		}

		snap := l.snapshot()
		l.watchHealth(snap.Status)

		w, h := term.Size()
		rg := render.Layout(w, h)
		opts := l.renderOptions()
		if err := l.draw(rg, snap, opts); err != nil {
			l.log.Error("frame write failed", "frame", l.frames.Load(), "error", err)
			return &RenderFault{Frame: uint64(l.frames.Load()), Err: err}
		}

		ev, ok := l.source.Poll(l.poll)
		l.polls.Add(1)
		if !ok {
			continue
		}

		switch ev.Type {
		case terminal.EventResize:
			l.resizes.Add(1)
			term.Sync()
			continue
		case terminal.EventClosed:
			return ErrInputClosed
		case terminal.EventError:
			return &terminal.Error{Op: "poll", Err: ev.Err}
		}

		l.events.Add(1)
		cmd := l.source.Decode(ev)
		if cmd.Kind == view.CommandUnrecognized {
			l.unrecognized.Add(1)
			continue
		}

		ext := render.PanelExtent(l.state, rg, snap, opts)
		l.state = view.Apply(l.state, cmd, ext)
		l.log.Debug("command", "kind", cmd.Kind, "panel", l.state.Panel, "offset", l.state.Offset(l.state.Panel))

		if !l.state.Running {
			l.log.Debug("loop finished", "frames", l.frames.Load())
			return nil
		}
	}
}

func (l *Loop) snapshot() provider.Snapshot {
	if l.snaps == nil {
		return provider.Snapshot{}
	}
	return l.snaps.Snapshot()
}

func (l *Loop) renderOptions() render.Options {
	opts := render.Options{
		Theme: l.theme,
		Hints: l.hints,
		Stats: l.stats.Entries(),
	}
	if l.clock != nil {
		opts.Now = l.clock()
	}
	return opts
}

func (l *Loop) draw(rg render.Regions, snap provider.Snapshot, opts render.Options) error {
	start := time.Now()
	frame := render.Render(l.state, rg, snap, opts)
	if err := l.session.Flush(frame.Cells, frame.Width, frame.Height); err != nil {
		return err
	}
	l.frames.Add(1)
	l.renderMillis.Smooth(float64(time.Since(start).Microseconds())/1000, renderSmoothing)
	return nil
}

// watchHealth alerts when a fact that was healthy in the previous status
// snapshot is unhealthy in this one
func (l *Loop) watchHealth(s *provider.StatusSnapshot) {
	if s == nil || s == l.lastStatus {
		return
	}
	first := l.lastStatus == nil
	l.lastStatus = s

	degraded := false
	for _, f := range s.Facts {
		was, seen := l.healthByKey[f.Key]
		if !first && seen && was && !f.Healthy {
			degraded = true
			l.log.Warn("check became unhealthy", "check", f.Key, "value", f.Value)
		}
		l.healthByKey[f.Key] = f.Healthy
	}

	if degraded {
		l.alerts.Add(1)
		l.alerter.Alert()
	}
}
