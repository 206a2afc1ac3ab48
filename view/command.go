package view

// CommandKind discriminates the view transitions
type CommandKind uint8

const (
	CommandUnrecognized CommandKind = iota
	CommandQuit
	CommandSelectPanel
	CommandScroll
)

func (k CommandKind) String() string {
	switch k {
	case CommandQuit:
		return "quit"
	case CommandSelectPanel:
		return "select_panel"
	case CommandScroll:
		return "scroll"
	default:
		return "unrecognized"
	}
}

// ScrollUnit scales a scroll delta
type ScrollUnit uint8

const (
	ScrollLines ScrollUnit = iota // Delta lines
	ScrollPages                   // Delta visible pages
	ScrollEnds                    // Sign of Delta picks top or bottom
)

// Command is a decoded user intent. The zero value is Unrecognized.
type Command struct {
	Kind  CommandKind
	Panel Panel      // CommandSelectPanel
	Delta int        // CommandScroll
	Unit  ScrollUnit // CommandScroll
}

// Quit ends the session
func Quit() Command {
	return Command{Kind: CommandQuit}
}

// SelectPanel switches the visible panel
func SelectPanel(p Panel) Command {
	return Command{Kind: CommandSelectPanel, Panel: p}
}

// Scroll moves the active panel by delta lines
func Scroll(delta int) Command {
	return Command{Kind: CommandScroll, Delta: delta, Unit: ScrollLines}
}

// ScrollPage moves the active panel by delta pages
func ScrollPage(delta int) Command {
	return Command{Kind: CommandScroll, Delta: delta, Unit: ScrollPages}
}

// ScrollEnd jumps to the top (delta < 0) or bottom (delta > 0)
func ScrollEnd(delta int) Command {
	return Command{Kind: CommandScroll, Delta: delta, Unit: ScrollEnds}
}

// Unrecognized is produced for input without a binding
func Unrecognized() Command {
	return Command{}
}
