package tui

import (
	"strconv"

	"github.com/fazai/fazai-dash/terminal"
)

// ScrollPercent returns scroll position as 0-100 percentage
func ScrollPercent(scroll, visible, total int) int {
	maxScroll := total - visible
	if maxScroll <= 0 {
		return 0
	}
	pct := (scroll * 100) / maxScroll
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

// ScrollBar draws vertical scrollbar track with thumb
func ScrollBar(r Region, x int, offset, visible, total int, fg terminal.RGB) {
	if x < 0 || x >= r.W || r.H < 1 {
		return
	}

	trackH := r.H
	if total <= visible || trackH < 3 {
		for y := 0; y < trackH; y++ {
			r.Cell(x, y, '│', fg, terminal.RGB{}, terminal.AttrDim)
		}
		return
	}

	thumbH := (visible * trackH) / total
	thumbH = max(1, min(thumbH, trackH))

	maxScroll := total - visible
	thumbY := 0
	if maxScroll > 0 {
		thumbY = (offset * (trackH - thumbH)) / maxScroll
	}
	thumbY = max(0, min(thumbY, trackH-thumbH))

	for y := 0; y < trackH; y++ {
		ch := '░'
		if y >= thumbY && y < thumbY+thumbH {
			ch = '█'
		}
		r.Cell(x, y, ch, fg, terminal.RGB{}, terminal.AttrNone)
	}
}

// ScrollIndicator draws compact indicator text: "Top", "Bot" or "XX%"
func ScrollIndicator(r Region, y int, offset, visible, total int, fg terminal.RGB) {
	if y < 0 || y >= r.H {
		return
	}

	var text string
	switch {
	case total <= visible || offset <= 0:
		text = "Top"
	case offset+visible >= total:
		text = "Bot"
	default:
		text = PadLeft(strconv.Itoa(min(ScrollPercent(offset, visible, total), 99))+"%", 3)
	}

	r.TextRight(y, text, fg, terminal.RGB{}, terminal.AttrDim)
}

// ClampScroll ensures scroll offset is within valid range
func ClampScroll(scroll, visible, total int) int {
	if total <= visible {
		return 0
	}
	return max(0, min(scroll, total-visible))
}
