// Package render lays out the dashboard and draws one frame of it.
//
// Rendering is a pure function of the view state, the region set and the
// provider snapshot. It never mutates its inputs and never fails; only
// writing the finished frame to the terminal can fail.
package render

// Rect is a rectangle of screen cells
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether r covers no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

const (
	// HeaderHeight is the header's height when the screen can afford it
	HeaderHeight = 3
	// FooterHeight is the footer's height when the screen can afford it
	FooterHeight = 3

	margin = 1
	// Narrowest and shortest screens that still get an outer margin
	marginMinW = 20
	marginMinH = HeaderHeight + FooterHeight + 1 + 2*margin
)

// Regions partitions the screen. Header, Body and Footer stack vertically
// inside the margin and never overlap.
type Regions struct {
	Screen Rect
	Header Rect
	Body   Rect
	Footer Rect
}

// Layout computes the regions for a w x h screen. It never fails and no
// dimension is negative. On short screens the header keeps its rows first,
// then the footer, and the body may be empty.
func Layout(w, h int) Regions {
	w = max(0, w)
	h = max(0, h)

	rg := Regions{Screen: Rect{W: w, H: h}}
	inner := rg.Screen
	if w >= marginMinW && h >= marginMinH {
		inner = Rect{X: margin, Y: margin, W: w - 2*margin, H: h - 2*margin}
	}

	headerH := min(HeaderHeight, inner.H)
	footerH := min(FooterHeight, inner.H-headerH)
	bodyH := inner.H - headerH - footerH

	rg.Header = Rect{X: inner.X, Y: inner.Y, W: inner.W, H: headerH}
	rg.Body = Rect{X: inner.X, Y: inner.Y + headerH, W: inner.W, H: bodyH}
	rg.Footer = Rect{X: inner.X, Y: inner.Y + headerH + bodyH, W: inner.W, H: footerH}
	return rg
}

// Content is the part of the body inside its border, where panel lines go
func (rg Regions) Content() Rect {
	b := rg.Body
	if b.W < 2 || b.H < 2 {
		return b
	}
	return Rect{X: b.X + 1, Y: b.Y + 1, W: b.W - 2, H: b.H - 2}
}
