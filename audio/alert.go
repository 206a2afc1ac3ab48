// Package audio plays the dashboard's audible alert.
//
// Audio is optional: when the sound device cannot be opened the dashboard
// logs the failure and runs silent.
package audio

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Alerter signals that a health check turned unhealthy. Alert must not block.
type Alerter interface {
	Alert()
	Close()
}

// Silent is an Alerter that does nothing
type Silent struct{}

func (Silent) Alert() {}
func (Silent) Close() {}

const (
	// DefaultVolume is the linear gain of the alert tone
	DefaultVolume = 0.5
	// minAlertGap rate-limits alerts when several checks fail together
	minAlertGap = 2 * time.Second
)

// Beeper plays AlertTone through the system speaker
type Beeper struct {
	play   func(...beep.Streamer)
	close  func()
	rate   beep.SampleRate
	volume float64
	gap    time.Duration
	now    func() time.Time

	last   atomic.Int64 // UnixNano of the last accepted alert
	played atomic.Uint64
	closed atomic.Bool
}

// NewBeeper opens the speaker. The speaker keeps its own playback goroutine;
// Alert only queues a streamer.
func NewBeeper(volume float64) (*Beeper, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio init: %w", err)
	}
	return newBeeper(speaker.Play, speaker.Close, volume), nil
}

func newBeeper(play func(...beep.Streamer), closeFn func(), volume float64) *Beeper {
	return &Beeper{
		play:   play,
		close:  closeFn,
		rate:   sampleRate,
		volume: volume,
		gap:    minAlertGap,
		now:    time.Now,
	}
}

// Alert queues the tone unless one was queued within the rate-limit gap
func (b *Beeper) Alert() {
	if b.closed.Load() {
		return
	}
	now := b.now().UnixNano()
	last := b.last.Load()
	if last != 0 && now-last < int64(b.gap) {
		return
	}
	if !b.last.CompareAndSwap(last, now) {
		return
	}
	b.played.Add(1)
	b.play(AlertTone(b.volume, b.rate))
}

// Played returns the number of tones queued
func (b *Beeper) Played() uint64 {
	return b.played.Load()
}

// Close releases the speaker; later alerts are dropped
func (b *Beeper) Close() {
	if b.closed.CompareAndSwap(false, true) && b.close != nil {
		b.close()
	}
}

// New returns a Beeper when enabled and the device opens, Silent otherwise.
// A device failure is logged, never returned.
func New(enabled bool, volume float64, log *slog.Logger) Alerter {
	if !enabled {
		return Silent{}
	}
	if log == nil {
		log = slog.Default()
	}
	if volume <= 0 {
		volume = DefaultVolume
	}
	b, err := NewBeeper(volume)
	if err != nil {
		log.Warn("alert sound disabled", "error", err)
		return Silent{}
	}
	log.Debug("alert sound enabled", "rate", int(sampleRate))
	return b
}
