package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"time"
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
	AttrFg256     Attr = 1 << 6 // Fg.R is 256-color palette index
	AttrBg256     Attr = 1 << 7 // Bg.R is 256-color palette index
)

// AttrStyle masks only the style bits (excludes color mode flags)
const AttrStyle Attr = AttrBold | AttrDim | AttrItalic | AttrUnderline | AttrBlink | AttrReverse

// Cell represents a single terminal cell. Zero RGB means the terminal default color
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// Terminal provides low-level terminal access
type Terminal interface {
	// Init enters raw mode and the alternate screen buffer, hides the cursor.
	// A failed Init leaves the terminal as it found it
	Init() error

	// Fini restores terminal state. Safe to call multiple times and after a failed Init
	Fini() error

	// Size returns current terminal dimensions
	Size() (width, height int)

	// ColorMode returns the color capability output is encoded for
	ColorMode() ColorMode

	// Flush writes a row-major cell buffer (cells[y*width + x]) to the terminal
	Flush(cells []Cell, width, height int) error

	// Sync forces the next Flush to repaint every cell
	Sync()

	// Poll waits at most timeout for the next input event, false on timeout
	Poll(timeout time.Duration) (Event, bool)

	// PostEvent injects a synthetic event
	PostEvent(Event)
}

// termImpl implements Terminal over a Backend with direct ANSI output
type termImpl struct {
	backend Backend

	output      *outputBuffer
	input       *inputReader
	resizeCh    chan Event
	syntheticCh chan Event

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates the ANSI terminal driver on stdin/stdout
func New(colorMode ColorMode) Terminal {
	return newTerm(newBackend(), colorMode)
}

// NewWithBackend creates the ANSI terminal driver over a caller-supplied backend
func NewWithBackend(b Backend, colorMode ColorMode) Terminal {
	return newTerm(b, colorMode)
}

func newTerm(b Backend, colorMode ColorMode) *termImpl {
	return &termImpl{
		backend:     b,
		output:      newOutputBuffer(backendWriter{b}, colorMode),
		syntheticCh: make(chan Event, 16),
		resizeCh:    make(chan Event, 1),
	}
}

// Init enters raw mode and sets up terminal
func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized && !t.finalized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		// Restore whatever the backend managed to change before failing
		return errors.Join(err, t.backend.Fini())
	}

	if err := t.backend.Write(enterSequence()); err != nil {
		// Undo the partial alternate screen switch, then leave raw mode
		_ = t.backend.Write(exitSequence())
		return errors.Join(err, t.backend.Fini())
	}

	w, h := t.backend.Size()
	t.output.resize(w, h)
	if err := t.output.clear(RGB{}); err != nil {
		_ = t.backend.Write(exitSequence())
		return errors.Join(err, t.backend.Fini())
	}

	t.backend.SetResizeHandler(func(w, h int) {
		ev := Event{Type: EventResize, Width: w, Height: h}
		// Keep only the latest size pending
		select {
		case t.resizeCh <- ev:
		default:
			select {
			case <-t.resizeCh:
			default:
			}
			select {
			case t.resizeCh <- ev:
			default:
			}
		}
	})

	t.input = newInputReader(t.backend)
	t.input.start()

	t.initialized = true
	t.finalized = false
	return nil
}

// Fini restores terminal state
func (t *termImpl) Fini() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	t.finalized = true

	if t.input != nil {
		t.input.stop()
	}

	// Both steps run even if the first fails; a half-restored terminal is the worst outcome
	writeErr := t.backend.Write(exitSequence())
	finiErr := t.backend.Fini()
	return errors.Join(writeErr, finiErr)
}

func (t *termImpl) Size() (int, int) {
	return t.backend.Size()
}

func (t *termImpl) ColorMode() ColorMode {
	return t.output.colorMode
}

// Flush holds the lock for the entire write so Fini cannot interleave with a frame
func (t *termImpl) Flush(cells []Cell, width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}

	// Frame built for a stale size would corrupt the screen; the next cycle rebuilds it
	if currW, currH := t.backend.Size(); currW != width || currH != height {
		return nil
	}

	return t.output.flush(cells, width, height)
}

func (t *termImpl) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.output.forceFullRedraw()
}

func (t *termImpl) Poll(timeout time.Duration) (Event, bool) {
	select {
	case ev := <-t.syntheticCh:
		return ev, true
	default:
	}

	if t.input == nil {
		return Event{}, false
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-t.syntheticCh:
		return ev, true
	case ev := <-t.input.events():
		return ev, true
	case ev := <-t.resizeCh:
		return ev, true
	case <-timer.C:
		return Event{}, false
	}
}

func (t *termImpl) PostEvent(ev Event) {
	select {
	case t.syntheticCh <- ev:
	default:
	}
}

// EmergencyReset attempts to restore terminal to sane state.
// Call this from panic recovery when the owning Session cannot be reached
func EmergencyReset(w io.Writer) {
	w.Write(exitSequence())
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}

// recoverAndReset is deferred at the top of every driver goroutine: a panic there
// would otherwise kill the process with the terminal still raw
func recoverAndReset(who string) {
	if r := recover(); r != nil {
		EmergencyReset(os.Stdout)
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s CRASHED: %v\x1b[0m\r\n", who, r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}
}
