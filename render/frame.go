package render

import (
	"strings"

	"github.com/fazai/fazai-dash/terminal"
	"github.com/fazai/fazai-dash/terminal/tui"
)

// Frame is one rendered screen. It is rebuilt for every render cycle.
type Frame struct {
	Cells   []terminal.Cell
	Width   int
	Height  int
	Regions Regions
}

// NewFrame allocates a w x h frame cleared to bg
func NewFrame(w, h int, bg terminal.RGB) *Frame {
	w = max(0, w)
	h = max(0, h)
	f := &Frame{
		Cells:  make([]terminal.Cell, w*h),
		Width:  w,
		Height: h,
	}
	f.Root().Fill(bg)
	return f
}

// Root returns a drawing region covering the whole frame
func (f *Frame) Root() tui.Region {
	return tui.NewRegion(f.Cells, f.Width, 0, 0, f.Width, f.Height)
}

// Region returns a drawing region for r
func (f *Frame) Region(r Rect) tui.Region {
	return tui.NewRegion(f.Cells, f.Width, r.X, r.Y, r.W, r.H)
}

// Row returns the runes of row y, one per cell, with empty cells as spaces
func (f *Frame) Row(y int) string {
	if y < 0 || y >= f.Height {
		return ""
	}
	var sb strings.Builder
	for _, c := range f.Cells[y*f.Width : (y+1)*f.Width] {
		if c.Rune == 0 {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns every row joined by newlines with trailing spaces trimmed
func (f *Frame) String() string {
	rows := make([]string, f.Height)
	for y := range rows {
		rows[y] = strings.TrimRight(f.Row(y), " ")
	}
	return strings.Join(rows, "\n")
}
