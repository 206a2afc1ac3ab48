package input

import (
	"time"

	"github.com/fazai/fazai-dash/terminal"
	"github.com/fazai/fazai-dash/view"
)

// Source is the loop's view of the keyboard: a bounded wait for the next
// event, and a decode of that event into a command
type Source struct {
	term terminal.Terminal
	keys *KeyTable
}

// NewSource reads events from t and decodes them with keys (defaults when nil)
func NewSource(t terminal.Terminal, keys *KeyTable) *Source {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Source{term: t, keys: keys}
}

// Poll waits at most timeout for an event; false when none arrived
func (s *Source) Poll(timeout time.Duration) (terminal.Event, bool) {
	return s.term.Poll(timeout)
}

// Decode maps an event to a command. Every event decodes, unbound keys and
// non-key events become Unrecognized.
func (s *Source) Decode(ev terminal.Event) view.Command {
	return s.keys.Lookup(ev).Command()
}

// Keys returns the active key table
func (s *Source) Keys() *KeyTable {
	return s.keys
}
