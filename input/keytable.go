// Package input turns terminal events into dashboard commands through a configurable key table.
package input

import (
	"maps"

	"github.com/fazai/fazai-dash/terminal"
	"github.com/fazai/fazai-dash/view"
)

// Action is a bindable dashboard operation
type Action uint8

const (
	ActionNone Action = iota // Unbind sentinel
	ActionQuit
	ActionHome
	ActionLogs
	ActionStatus
	ActionMetrics
	ActionScrollDown
	ActionScrollUp
	ActionPageDown
	ActionPageUp
	ActionTop
	ActionBottom
)

// Command returns the view command an action produces
func (a Action) Command() view.Command {
	switch a {
	case ActionQuit:
		return view.Quit()
	case ActionHome:
		return view.SelectPanel(view.PanelHome)
	case ActionLogs:
		return view.SelectPanel(view.PanelLogs)
	case ActionStatus:
		return view.SelectPanel(view.PanelStatus)
	case ActionMetrics:
		return view.SelectPanel(view.PanelMetrics)
	case ActionScrollDown:
		return view.Scroll(1)
	case ActionScrollUp:
		return view.Scroll(-1)
	case ActionPageDown:
		return view.ScrollPage(1)
	case ActionPageUp:
		return view.ScrollPage(-1)
	case ActionTop:
		return view.ScrollEnd(-1)
	case ActionBottom:
		return view.ScrollEnd(1)
	default:
		return view.Unrecognized()
	}
}

// KeyTable maps keys to actions. Runes and named keys are looked up separately.
type KeyTable struct {
	Runes   map[rune]Action
	Special map[terminal.Key]Action
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Runes: map[rune]Action{
			'q': ActionQuit,
			'h': ActionHome,
			'1': ActionHome,
			'l': ActionLogs,
			'2': ActionLogs,
			's': ActionStatus,
			'3': ActionStatus,
			'm': ActionMetrics,
			'4': ActionMetrics,
			'j': ActionScrollDown,
			'k': ActionScrollUp,
			'g': ActionTop,
			'G': ActionBottom,
		},
		Special: map[terminal.Key]Action{
			terminal.KeyCtrlC:    ActionQuit,
			terminal.KeyDown:     ActionScrollDown,
			terminal.KeyUp:       ActionScrollUp,
			terminal.KeyPageDown: ActionPageDown,
			terminal.KeyPageUp:   ActionPageUp,
			terminal.KeyCtrlD:    ActionPageDown,
			terminal.KeyCtrlU:    ActionPageUp,
			terminal.KeyHome:     ActionTop,
			terminal.KeyEnd:      ActionBottom,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	out := &KeyTable{
		Runes:   make(map[rune]Action, len(kt.Runes)),
		Special: make(map[terminal.Key]Action, len(kt.Special)),
	}
	maps.Copy(out.Runes, kt.Runes)
	maps.Copy(out.Special, kt.Special)
	return out
}

// Lookup returns the action bound to ev, ActionNone when unbound
func (kt *KeyTable) Lookup(ev terminal.Event) Action {
	if ev.Type != terminal.EventKey {
		return ActionNone
	}
	if ev.Key == terminal.KeyRune {
		// Alt+rune is a distinct chord, never the bare binding
		if ev.Modifiers&terminal.ModAlt != 0 {
			return ActionNone
		}
		return kt.Runes[ev.Rune]
	}
	return kt.Special[ev.Key]
}
