package input

import (
	"slices"
	"strings"

	"github.com/fazai/fazai-dash/terminal"
)

// Hint is one footer entry: the keys bound to an action and its label
type Hint struct {
	Keys  string
	Label string
}

// hintOrder lists the actions shown in the footer, with their labels.
// Scroll pairs share one entry.
var hintOrder = []struct {
	actions []Action
	label   string
}{
	{[]Action{ActionQuit}, "quit"},
	{[]Action{ActionHome}, "home"},
	{[]Action{ActionLogs}, "logs"},
	{[]Action{ActionStatus}, "status"},
	{[]Action{ActionMetrics}, "metrics"},
	{[]Action{ActionScrollDown, ActionScrollUp}, "scroll"},
	{[]Action{ActionPageDown, ActionPageUp}, "page"},
}

// Hints lists the footer entries for the table. Each entry shows the first
// letter binding of its actions, falling back to a named key, so rebinding a
// key updates the footer. Actions with no binding are omitted.
func (kt *KeyTable) Hints() []Hint {
	var hints []Hint
	for _, h := range hintOrder {
		var keys []string
		for _, a := range h.actions {
			if k := kt.primaryKey(a); k != "" {
				keys = append(keys, k)
			}
		}
		if len(keys) == 0 {
			continue
		}
		hints = append(hints, Hint{Keys: strings.Join(keys, "/"), Label: h.label})
	}
	return hints
}

// primaryKey picks a stable display key: letters first, then other runes, then named keys
func (kt *KeyTable) primaryKey(a Action) string {
	var letters, others []rune
	for r, bound := range kt.Runes {
		if bound != a {
			continue
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters = append(letters, r)
		} else {
			others = append(others, r)
		}
	}
	if len(letters) > 0 {
		slices.Sort(letters)
		return string(letters[0])
	}
	if len(others) > 0 {
		slices.Sort(others)
		if others[0] == ' ' {
			return "space"
		}
		return string(others[0])
	}

	var names []string
	for k, bound := range kt.Special {
		if bound == a {
			names = append(names, displayKeyName(k))
		}
	}
	if len(names) == 0 {
		return ""
	}
	slices.Sort(names)
	return names[0]
}

func displayKeyName(k terminal.Key) string {
	name := terminal.KeyName(k)
	if rest, ok := strings.CutPrefix(name, "ctrl_"); ok {
		return "^" + strings.ToUpper(rest)
	}
	return name
}
