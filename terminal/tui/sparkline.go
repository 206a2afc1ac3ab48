package tui

import "github.com/fazai/fazai-dash/terminal"

// SparklineChars provides 8-level vertical resolution
var SparklineChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// SparklineOpts configures sparkline rendering
type SparklineOpts struct {
	Min, Max float64 // Range bounds, auto-scale if both 0
	Style    Style
}

// Sparkline renders an inline graph of the most recent values that fit in width,
// mapped to 8-level block characters
func (r Region) Sparkline(x, y, width int, values []float64, opts SparklineOpts) {
	if y < 0 || y >= r.H || width <= 0 {
		return
	}

	sampled := values
	if len(values) > width {
		sampled = values[len(values)-width:]
	}

	lo, hi := opts.Min, opts.Max
	if lo == 0 && hi == 0 && len(sampled) > 0 {
		lo, hi = sampled[0], sampled[0]
		for _, v := range sampled {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}

	rangeV := hi - lo
	if rangeV == 0 {
		rangeV = 1
	}

	// Left-pad so the newest sample always sits at the right edge
	pad := width - len(sampled)
	for i := 0; i < pad && x+i < r.W; i++ {
		r.Cell(x+i, y, SparklineChars[0], opts.Style.Fg, opts.Style.Bg, terminal.AttrDim)
	}

	for i, v := range sampled {
		col := x + pad + i
		if col >= r.W {
			break
		}

		norm := (v - lo) / rangeV
		idx := int(clamp01(norm) * 7.99)
		if idx > 7 {
			idx = 7
		}

		r.Cell(col, y, SparklineChars[idx], opts.Style.Fg, opts.Style.Bg, opts.Style.Attr)
	}
}
