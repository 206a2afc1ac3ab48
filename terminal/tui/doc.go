// Package tui provides immediate-mode drawing primitives over a terminal cell buffer.
//
// Core abstraction is Region, a rectangular window into a row-major []terminal.Cell.
// All drawing operations are relative to region bounds with automatic clipping,
// so callers never need to check sizes before drawing.
//
// Design principles:
//   - Immediate mode: no retained widget state, the caller owns the render loop
//   - Zero allocation in hot paths: Region is a small value type
//   - Composable: regions nest via Sub()
//   - Display-width aware: wide runes occupy two cells
//
// Usage pattern:
//
//	cells := make([]terminal.Cell, w*h)
//	root := tui.NewRegion(cells, w, 0, 0, w, h)
//	root.Fill(theme.Bg)
//
//	header, body := root.Sub(0, 0, w, 3), root.Sub(0, 3, w, h-3)
//	header.TabBar(1, 1, titles, active, tui.DefaultTabBarOpts())
//	content := body.Card("LOGS", tui.LineRounded, theme.Border)
//	content.Text(0, 0, "Hello", fg, bg, 0)
//
//	term.Flush(cells, w, h)
package tui
