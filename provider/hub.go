package provider

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Hub owns the providers and assembles their latest snapshots
type Hub struct {
	logs    LogSource
	status  StatusSource
	metrics MetricsSource
	runners []Runner
	log     *slog.Logger
}

// NewHub wires sources and the runners that feed them. Any source may be nil;
// its panel then shows the no data placeholder.
func NewHub(logs LogSource, status StatusSource, metrics MetricsSource, log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	h := &Hub{logs: logs, status: status, metrics: metrics, log: log}
	for _, src := range []any{logs, status, metrics} {
		if r, ok := src.(Runner); ok {
			h.runners = append(h.runners, r)
		}
	}
	return h
}

// Runners lists the background loops started by Run
func (h *Hub) Runners() []Runner {
	return h.runners
}

// Run starts every runner and blocks until ctx is done. A runner that returns
// an error is logged and the others keep running. A panic in a runner stops
// the group and is returned.
func (h *Hub) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range h.runners {
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("provider %s panicked: %v", r.Name(), p)
					h.log.Error("provider panic", "provider", r.Name(), "panic", p)
				}
			}()
			h.log.Debug("provider started", "provider", r.Name())
			if err := r.Run(gctx); err != nil {
				h.log.Error("provider stopped", "provider", r.Name(), "error", err)
				return nil
			}
			h.log.Debug("provider stopped", "provider", r.Name())
			return nil
		})
	}
	return g.Wait()
}

// Snapshot returns the latest published data of every source
func (h *Hub) Snapshot() Snapshot {
	var s Snapshot
	if h.logs != nil {
		s.Logs = h.logs.Logs()
	}
	if h.status != nil {
		s.Status = h.status.Status()
	}
	if h.metrics != nil {
		s.Metrics = h.metrics.Metrics()
	}
	return s
}
