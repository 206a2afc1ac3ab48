// Package view holds the dashboard's view state and its pure transition function.
package view

import "math"

// State is the whole of the dashboard's mutable view. Only the event loop
// replaces it, and only with the result of Apply.
type State struct {
	Panel   Panel
	Running bool
	Scroll  [panelCount]int // Per-panel first visible line
}

// NewState returns the initial state: Home panel, running, nothing scrolled
func NewState() State {
	return State{Panel: PanelHome, Running: true}
}

// Offset returns the scroll offset of panel p
func (s State) Offset(p Panel) int {
	if !p.Valid() {
		return 0
	}
	return s.Scroll[p]
}

// Extent describes the active panel's content at the time a command is applied
type Extent struct {
	Lines int // Content length in lines
	Page  int // Visible lines
}

// Apply returns the state after cmd. It is deterministic and total: every
// command yields a valid state, and a stopped state never changes again.
func Apply(s State, cmd Command, ext Extent) State {
	if !s.Running {
		return s
	}

	switch cmd.Kind {
	case CommandQuit:
		s.Running = false

	case CommandSelectPanel:
		if cmd.Panel.Valid() {
			s.Panel = cmd.Panel
		}

	case CommandScroll:
		if !s.Panel.Valid() {
			break
		}
		cur := s.Scroll[s.Panel]
		switch cmd.Unit {
		case ScrollPages:
			cur = satAdd(cur, satMul(cmd.Delta, max(1, ext.Page)))
		case ScrollEnds:
			switch {
			case cmd.Delta < 0:
				cur = 0
			case cmd.Delta > 0:
				cur = ext.Lines - 1
			}
		default:
			cur = satAdd(cur, cmd.Delta)
		}
		s.Scroll[s.Panel] = clampOffset(cur, ext.Lines)
	}

	return s
}

// clampOffset keeps an offset within [0, lines), or 0 for empty content
func clampOffset(off, lines int) int {
	if lines <= 0 || off < 0 {
		return 0
	}
	if off >= lines {
		return lines - 1
	}
	return off
}

func satAdd(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	if b < 0 && a < math.MinInt-b {
		return math.MinInt
	}
	return a + b
}

func satMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	r := a * b
	if r/b != a {
		if (a < 0) != (b < 0) {
			return math.MinInt
		}
		return math.MaxInt
	}
	return r
}
