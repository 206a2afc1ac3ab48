package terminal

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// tcellTerm implements Terminal on top of a tcell.Screen
type tcellTerm struct {
	screen    tcell.Screen
	colorMode ColorMode

	eventCh     chan Event
	syntheticCh chan Event
	doneCh      chan struct{}

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewTcell creates a Terminal driven by tcell's own terminfo-based screen
func NewTcell(colorMode ColorMode) (Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, opError("enter", err)
	}
	return NewTcellScreen(s, colorMode), nil
}

// NewTcellScreen wraps an existing screen, typically tcell.NewSimulationScreen in tests
func NewTcellScreen(s tcell.Screen, colorMode ColorMode) Terminal {
	return &tcellTerm{
		screen:      s,
		colorMode:   colorMode,
		eventCh:     make(chan Event, 256),
		syntheticCh: make(chan Event, 16),
	}
}

func (t *tcellTerm) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized && !t.finalized {
		return nil
	}

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.HideCursor()
	t.screen.Clear()

	t.doneCh = make(chan struct{})
	go t.pollLoop(t.doneCh)

	t.initialized = true
	t.finalized = false
	return nil
}

func (t *tcellTerm) Fini() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	t.finalized = true

	// Fini makes PollEvent return nil, which ends pollLoop
	t.screen.Fini()
	select {
	case <-t.doneCh:
	case <-time.After(2 * readPollMillis * time.Millisecond):
	}
	return nil
}

func (t *tcellTerm) pollLoop(done chan struct{}) {
	defer close(done)
	defer recoverAndReset("TCELL READER")

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		out, ok := convertTcellEvent(ev)
		if !ok {
			continue
		}
		select {
		case t.eventCh <- out:
		default:
		}
	}
}

func (t *tcellTerm) Size() (int, int) {
	return t.screen.Size()
}

func (t *tcellTerm) ColorMode() ColorMode {
	return t.colorMode
}

func (t *tcellTerm) Flush(cells []Cell, width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	if w, h := t.screen.Size(); w != width || h != height || len(cells) < width*height {
		return nil
	}

	for y := 0; y < height; y++ {
		row := y * width
		for x := 0; x < width; x++ {
			c := cells[row+x]
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			t.screen.SetContent(x, y, r, nil, tcellStyle(c))
			if r >= 0x80 && runewidth.RuneWidth(r) == 2 {
				x++
			}
		}
	}
	t.screen.Show()
	return nil
}

func (t *tcellTerm) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.screen.Sync()
}

func (t *tcellTerm) Poll(timeout time.Duration) (Event, bool) {
	select {
	case ev := <-t.syntheticCh:
		return ev, true
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-t.syntheticCh:
		return ev, true
	case ev := <-t.eventCh:
		return ev, true
	case <-timer.C:
		return Event{}, false
	}
}

func (t *tcellTerm) PostEvent(ev Event) {
	select {
	case t.syntheticCh <- ev:
	default:
	}
}

func tcellColor(c RGB, palette bool) tcell.Color {
	if palette {
		return tcell.PaletteColor(int(c.R))
	}
	if c == (RGB{}) {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func tcellStyle(c Cell) tcell.Style {
	st := tcell.StyleDefault.
		Foreground(tcellColor(c.Fg, c.Attrs&AttrFg256 != 0)).
		Background(tcellColor(c.Bg, c.Attrs&AttrBg256 != 0))

	if c.Attrs&AttrBold != 0 {
		st = st.Bold(true)
	}
	if c.Attrs&AttrDim != 0 {
		st = st.Dim(true)
	}
	if c.Attrs&AttrItalic != 0 {
		st = st.Italic(true)
	}
	if c.Attrs&AttrUnderline != 0 {
		st = st.Underline(true)
	}
	if c.Attrs&AttrBlink != 0 {
		st = st.Blink(true)
	}
	if c.Attrs&AttrReverse != 0 {
		st = st.Reverse(true)
	}
	return st
}

// tcellNamedKeys covers keys whose tcell code collides with a Ctrl+letter code
var tcellNamedKeys = map[tcell.Key]Key{
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
}

func convertTcellEvent(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		var mod Modifier
		m := e.Modifiers()
		if m&tcell.ModShift != 0 {
			mod |= ModShift
		}
		if m&tcell.ModAlt != 0 {
			mod |= ModAlt
		}
		if m&tcell.ModCtrl != 0 {
			mod |= ModCtrl
		}

		k := e.Key()
		if k == tcell.KeyRune {
			return Event{Type: EventKey, Key: KeyRune, Rune: e.Rune(), Modifiers: mod}, true
		}
		if key, ok := tcellNamedKeys[k]; ok {
			return Event{Type: EventKey, Key: key, Modifiers: mod}, true
		}
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			return Event{Type: EventKey, Key: KeyCtrlA + Key(k-tcell.KeyCtrlA), Modifiers: mod}, true
		}
		if k == tcell.KeyCtrlSpace {
			return Event{Type: EventKey, Key: KeyCtrlSpace, Modifiers: mod}, true
		}
		return Event{Type: EventKey, Key: KeyNone, Modifiers: mod}, true

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true
	}
	return Event{}, false
}
