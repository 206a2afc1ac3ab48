package tui

import "github.com/fazai/fazai-dash/terminal"

// KeyValue renders right-aligned key, separator, left-aligned value on row.
// keyW fixes the key column width; 0 auto-sizes to the key, capped at 40% of the region.
func (r Region) KeyValue(y int, key, value string, keyW int, keyStyle, valStyle Style, sep rune) {
	if y < 0 || y >= r.H || r.W < 3 {
		return
	}

	maxKeyW := (r.W * 2) / 5
	if keyW <= 0 {
		keyW = Width(key)
	}
	if keyW > maxKeyW {
		keyW = maxKeyW
	}
	if keyW < 1 {
		keyW = 1
	}

	valW := r.W - keyW - 2 // separator plus one space
	if valW < 1 {
		valW = 1
	}

	key = Truncate(key, keyW)
	value = Truncate(value, valW)

	r.Text(keyW-Width(key), y, key, keyStyle.Fg, keyStyle.Bg, keyStyle.Attr)
	r.Cell(keyW, y, sep, keyStyle.Fg, keyStyle.Bg, terminal.AttrDim)
	r.Text(keyW+2, y, value, valStyle.Fg, valStyle.Bg, valStyle.Attr)
}
