package input

// actionNames maps canonical action names used in keymap files to actions
var actionNames = map[string]Action{
	"none":        ActionNone,
	"quit":        ActionQuit,
	"home":        ActionHome,
	"logs":        ActionLogs,
	"status":      ActionStatus,
	"metrics":     ActionMetrics,
	"scroll_down": ActionScrollDown,
	"scroll_up":   ActionScrollUp,
	"page_down":   ActionPageDown,
	"page_up":     ActionPageUp,
	"top":         ActionTop,
	"bottom":      ActionBottom,
}

// actionToName is the reverse lookup, built from actionNames
var actionToName map[Action]string

func init() {
	actionToName = make(map[Action]string, len(actionNames))
	for name, a := range actionNames {
		actionToName[a] = name
	}
}

// ActionByName resolves a canonical action name
func ActionByName(name string) (Action, bool) {
	a, ok := actionNames[name]
	return a, ok
}

// String returns the canonical action name
func (a Action) String() string {
	if name, ok := actionToName[a]; ok {
		return name
	}
	return "unknown"
}
