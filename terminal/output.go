package terminal

import (
	"bufio"
	"io"

	"github.com/mattn/go-runewidth"
)

// outputBuffer manages double-buffered terminal output with diffing
type outputBuffer struct {
	front     []Cell
	width     int
	height    int
	colorMode ColorMode
	dst       io.Writer
	writer    *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	lastFg    RGB
	lastBg    RGB
	lastAttr  Attr
	lastValid bool
}

// backendWriter adapts Backend.Write to io.Writer for bufio
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func newOutputBuffer(w io.Writer, colorMode ColorMode) *outputBuffer {
	return &outputBuffer{
		dst:       w,
		writer:    bufio.NewWriterSize(w, 64*1024),
		colorMode: colorMode,
	}
}

// resize reallocates the front buffer; every cell is dirty afterwards
func (o *outputBuffer) resize(width, height int) {
	size := width * height
	if cap(o.front) < size {
		o.front = make([]Cell, size)
	} else {
		o.front = o.front[:size]
	}
	o.width = width
	o.height = height
	o.forceFullRedraw()
}

func cellEqual(a, b Cell) bool {
	return a.Rune == b.Rune && a.Attrs == b.Attrs && a.Fg == b.Fg && a.Bg == b.Bg
}

// flush writes the back buffer to the terminal, diffing against the front buffer.
// The front buffer only advances for cells that were handed to the writer, and a
// write error leaves the screen state unknown, so the next flush repaints everything.
func (o *outputBuffer) flush(cells []Cell, width, height int) error {
	if width != o.width || height != o.height {
		o.resize(width, height)
	}
	if len(cells) < width*height {
		return nil
	}

	w := o.writer

	for y := 0; y < height; y++ {
		rowStart := y * width
		x := 0

		for x < width {
			idx := rowStart + x
			if cellEqual(cells[idx], o.front[idx]) {
				x++
				continue
			}

			if !o.cursorValid || x != o.cursorX || y != o.cursorY {
				if o.cursorValid && y == o.cursorY && x > o.cursorX {
					writeCursorForward(w, x-o.cursorX)
				} else {
					writeCursorPos(w, x, y)
				}
				o.cursorX = x
				o.cursorY = y
				o.cursorValid = true
			}

			for x < width {
				cidx := rowStart + x
				c := cells[cidx]
				if cellEqual(c, o.front[cidx]) {
					break
				}

				o.writeStyleCoalesced(w, c.Fg, c.Bg, c.Attrs)

				r := c.Rune
				if r == 0 {
					r = ' '
				}
				if r < 0x80 {
					w.WriteByte(byte(r))
				} else {
					w.WriteRune(r)
				}
				o.front[cidx] = c

				// Wide runes advance the terminal cursor by two; the continuation cell is owned by it
				adv := 1
				if r >= 0x80 && runewidth.RuneWidth(r) == 2 && x+1 < width {
					o.front[cidx+1] = cells[cidx+1]
					adv = 2
				}
				o.cursorX += adv
				x += adv
			}
		}
	}

	w.Write(csiSGR0)
	o.lastValid = false

	if err := w.Flush(); err != nil {
		o.forceFullRedraw()
		w.Reset(o.dst)
		return err
	}
	return nil
}

// writeStyleCoalesced emits a single combined SGR sequence when style changes
func (o *outputBuffer) writeStyleCoalesced(w *bufio.Writer, fg, bg RGB, attr Attr) {
	if o.lastValid && fg == o.lastFg && bg == o.lastBg && attr == o.lastAttr {
		return
	}

	w.Write(csi)
	w.WriteByte('0')
	style := attr & AttrStyle
	for _, a := range sgrAttrs {
		if style&a.attr != 0 {
			w.WriteByte(';')
			w.WriteByte(a.code)
		}
	}
	o.writeColor(w, fg, attr&AttrFg256 != 0, "38")
	o.writeColor(w, bg, attr&AttrBg256 != 0, "48")
	w.WriteByte('m')

	o.lastFg = fg
	o.lastBg = bg
	o.lastAttr = attr
	o.lastValid = true
}

var sgrAttrs = [...]struct {
	attr Attr
	code byte
}{
	{AttrBold, '1'},
	{AttrDim, '2'},
	{AttrItalic, '3'},
	{AttrUnderline, '4'},
	{AttrBlink, '5'},
	{AttrReverse, '7'},
}

// writeColor writes ";38;2;R;G;B" or ";38;5;N" (prefix 48 for background).
// A zero RGB without palette flag is the terminal default color.
func (o *outputBuffer) writeColor(w *bufio.Writer, c RGB, palette bool, prefix string) {
	if !palette && c == (RGB{}) {
		return
	}
	w.WriteByte(';')
	w.WriteString(prefix)
	switch {
	case palette:
		w.WriteString(";5;")
		writeInt(w, int(c.R))
	case o.colorMode == ColorModeTrueColor:
		w.WriteString(";2;")
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
	default:
		w.WriteString(";5;")
		writeInt(w, int(RGBTo256(c)))
	}
}

// forceFullRedraw clears front buffer to force complete redraw
func (o *outputBuffer) forceFullRedraw() {
	for i := range o.front {
		o.front[i] = Cell{Rune: -1}
	}
	o.lastValid = false
	o.cursorValid = false
}

// clear writes a clear screen with specified background
func (o *outputBuffer) clear(bg RGB) error {
	w := o.writer
	w.Write(csiSGR0)
	if bg != (RGB{}) {
		if o.colorMode == ColorModeTrueColor {
			w.Write(csiBgRGB)
			writeInt(w, int(bg.R))
			w.WriteByte(';')
			writeInt(w, int(bg.G))
			w.WriteByte(';')
			writeInt(w, int(bg.B))
		} else {
			w.Write(csiBg256)
			writeInt(w, int(RGBTo256(bg)))
		}
		w.WriteByte('m')
	}
	w.Write(csiClear)

	o.lastValid = false
	o.cursorValid = false
	for i := range o.front {
		o.front[i] = Cell{Rune: ' ', Bg: bg}
	}
	if err := w.Flush(); err != nil {
		o.forceFullRedraw()
		w.Reset(o.dst)
		return err
	}
	return nil
}
