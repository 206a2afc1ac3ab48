package tui

import "github.com/fazai/fazai-dash/terminal"

// TabBounds stores position and size of a rendered tab
type TabBounds struct {
	X, W int
}

// TabBarOpts configures tab bar rendering
type TabBarOpts struct {
	ActiveStyle   Style
	InactiveStyle Style
	Separator     string // Between tabs, default " │ "
	Padding       int    // Horizontal padding inside each tab
}

// DefaultTabBarOpts returns sensible defaults
func DefaultTabBarOpts() TabBarOpts {
	return TabBarOpts{
		ActiveStyle:   Style{Attr: terminal.AttrBold | terminal.AttrReverse},
		InactiveStyle: Style{Attr: terminal.AttrNone},
		Separator:     " │ ",
		Padding:       1,
	}
}

// TabBar renders horizontal tab strip at row y starting at column x.
// Returns bounds of each tab; tabs that do not fit are reported with zero width.
func (r Region) TabBar(x, y int, titles []string, active int, opts TabBarOpts) []TabBounds {
	if y < 0 || y >= r.H || len(titles) == 0 {
		return nil
	}
	if opts.Separator == "" {
		opts.Separator = " │ "
	}

	bounds := make([]TabBounds, len(titles))
	sepW := Width(opts.Separator)
	pad := PadRight("", opts.Padding)

	for i, title := range titles {
		if x >= r.W {
			break
		}

		style := opts.InactiveStyle
		if i == active {
			style = opts.ActiveStyle
		}

		w := r.TextStyled(x, y, pad+title+pad, style)
		bounds[i] = TabBounds{X: x, W: w}
		x += w

		if i < len(titles)-1 && x+sepW <= r.W {
			r.Text(x, y, opts.Separator, opts.InactiveStyle.Fg, opts.InactiveStyle.Bg, terminal.AttrDim)
			x += sepW
		}
	}

	return bounds
}

// TabBarWidth returns the columns TabBar needs for titles
func TabBarWidth(titles []string, opts TabBarOpts) int {
	if opts.Separator == "" {
		opts.Separator = " │ "
	}
	total := 0
	for i, title := range titles {
		total += Width(title) + opts.Padding*2
		if i < len(titles)-1 {
			total += Width(opts.Separator)
		}
	}
	return total
}
