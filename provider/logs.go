package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/nxadm/tail"
)

const (
	// DefaultLogPath is where the FazAI service writes its log
	DefaultLogPath = "/var/log/fazai/fazai.log"
	// DefaultLogLines caps the lines kept for the Logs panel
	DefaultLogLines = 500

	// backfillBytes is how far before the end of an existing file tailing starts
	backfillBytes = 64 * 1024
	// logPublishInterval coalesces bursts of lines into one snapshot
	logPublishInterval = 100 * time.Millisecond
)

// FileLogs follows a log file and keeps its most recent lines
type FileLogs struct {
	path     string
	maxLines int
	log      *slog.Logger

	snap atomic.Pointer[LogSnapshot]
}

// NewFileLogs creates a log follower for path keeping at most maxLines lines
func NewFileLogs(path string, maxLines int, log *slog.Logger) *FileLogs {
	if path == "" {
		path = DefaultLogPath
	}
	if maxLines <= 0 {
		maxLines = DefaultLogLines
	}
	if log == nil {
		log = slog.Default()
	}
	return &FileLogs{path: path, maxLines: maxLines, log: log.With("provider", "logs")}
}

func (f *FileLogs) Name() string { return "logs" }

// Logs returns the latest snapshot, nil before the first publish
func (f *FileLogs) Logs() *LogSnapshot {
	return f.snap.Load()
}

// Run tails the file until ctx is done. A missing or unreadable file is
// reported in the snapshot and retried by the tailer, never returned.
func (f *FileLogs) Run(ctx context.Context) error {
	lines := newRing[string](f.maxLines)

	cfg, partial, statErr := f.tailConfig()
	if statErr != nil {
		f.publish(lines, describeLogErr(f.path, statErr))
	}

	t, err := tail.TailFile(f.path, cfg)
	if err != nil {
		f.publish(lines, err.Error())
		f.log.Warn("tail failed", "path", f.path, "error", err)
		<-ctx.Done()
		return nil
	}
	defer t.Cleanup()

	f.log.Debug("tailing", "path", f.path, "backfill", partial)

	ticker := time.NewTicker(logPublishInterval)
	defer ticker.Stop()

	dirty := false
	for {
		select {
		case <-ctx.Done():
			if err := t.Stop(); err != nil {
				f.log.Debug("tail stop", "error", err)
			}
			return nil

		case line, ok := <-t.Lines:
			if !ok {
				err := t.Err()
				msg := "log follower stopped"
				if err != nil {
					msg = err.Error()
				}
				f.publish(lines, msg)
				<-ctx.Done()
				return nil
			}
			if line.Err != nil {
				f.log.Debug("tail line error", "error", line.Err)
				continue
			}
			// First line after a mid-file seek is usually cut
			if partial {
				partial = false
				continue
			}
			lines.push(cleanLogLine(line.Text))
			dirty = true

		case <-ticker.C:
			if dirty {
				f.publish(lines, "")
				dirty = false
			}
		}
	}
}

// tailConfig follows by name across rotation. Existing files are read from
// near their end; the bool reports whether that start may cut a line.
func (f *FileLogs) tailConfig() (tail.Config, bool, error) {
	cfg := tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: false,
		Logger:    tail.DiscardingLogger,
	}

	info, err := os.Stat(f.path)
	if err != nil {
		return cfg, false, err
	}

	size := info.Size()
	if size > backfillBytes {
		cfg.Location = &tail.SeekInfo{Offset: -backfillBytes, Whence: io.SeekEnd}
		return cfg, true, nil
	}
	return cfg, false, nil
}

func (f *FileLogs) publish(lines *ring[string], errMsg string) {
	f.snap.Store(&LogSnapshot{
		Source:  f.path,
		Lines:   lines.snapshot(),
		Err:     errMsg,
		Updated: time.Now(),
	})
}

// cleanLogLine removes terminal escapes and control characters that would
// corrupt the cell grid
func cleanLogLine(s string) string {
	s = ansi.Strip(s)
	s = strings.TrimRight(s, "\r\n")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)
}

func describeLogErr(path string, err error) string {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Sprintf("waiting for %s to appear", path)
	}
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Sprintf("no permission to read %s", path)
	}
	return err.Error()
}
