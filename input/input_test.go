package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fazai/fazai-dash/terminal"
	"github.com/fazai/fazai-dash/view"
)

func runeEvent(r rune) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: r}
}

func keyEvent(k terminal.Key) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, Key: k}
}

func TestDecodeDefaults(t *testing.T) {
	src := NewSource(nil, nil)

	tests := []struct {
		name string
		ev   terminal.Event
		want view.Command
	}{
		{"q quits", runeEvent('q'), view.Quit()},
		{"ctrl-c quits", keyEvent(terminal.KeyCtrlC), view.Quit()},
		{"h home", runeEvent('h'), view.SelectPanel(view.PanelHome)},
		{"1 home", runeEvent('1'), view.SelectPanel(view.PanelHome)},
		{"l logs", runeEvent('l'), view.SelectPanel(view.PanelLogs)},
		{"2 logs", runeEvent('2'), view.SelectPanel(view.PanelLogs)},
		{"s status", runeEvent('s'), view.SelectPanel(view.PanelStatus)},
		{"3 status", runeEvent('3'), view.SelectPanel(view.PanelStatus)},
		{"m metrics", runeEvent('m'), view.SelectPanel(view.PanelMetrics)},
		{"4 metrics", runeEvent('4'), view.SelectPanel(view.PanelMetrics)},
		{"j down", runeEvent('j'), view.Scroll(1)},
		{"down arrow", keyEvent(terminal.KeyDown), view.Scroll(1)},
		{"k up", runeEvent('k'), view.Scroll(-1)},
		{"up arrow", keyEvent(terminal.KeyUp), view.Scroll(-1)},
		{"page down", keyEvent(terminal.KeyPageDown), view.ScrollPage(1)},
		{"page up", keyEvent(terminal.KeyPageUp), view.ScrollPage(-1)},
		{"home key", keyEvent(terminal.KeyHome), view.ScrollEnd(-1)},
		{"end key", keyEvent(terminal.KeyEnd), view.ScrollEnd(1)},
		{"x unrecognized", runeEvent('x'), view.Unrecognized()},
		{"Q unrecognized", runeEvent('Q'), view.Unrecognized()},
		{"alt-q unrecognized", terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: 'q', Modifiers: terminal.ModAlt}, view.Unrecognized()},
		{"f5 unrecognized", keyEvent(terminal.KeyF5), view.Unrecognized()},
		{"resize unrecognized", terminal.Event{Type: terminal.EventResize, Width: 10, Height: 10}, view.Unrecognized()},
		{"error unrecognized", terminal.Event{Type: terminal.EventError}, view.Unrecognized()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, src.Decode(tt.ev))
		})
	}
}

// Every key, rune and modifier combination decodes to a well-formed command
func TestDecodeTotal(t *testing.T) {
	src := NewSource(nil, nil)
	mods := []terminal.Modifier{terminal.ModNone, terminal.ModShift, terminal.ModAlt, terminal.ModCtrl, terminal.ModShift | terminal.ModAlt | terminal.ModCtrl}

	check := func(ev terminal.Event) {
		var cmd view.Command
		require.NotPanics(t, func() { cmd = src.Decode(ev) })
		switch cmd.Kind {
		case view.CommandUnrecognized, view.CommandQuit, view.CommandScroll:
		case view.CommandSelectPanel:
			assert.True(t, cmd.Panel.Valid())
		default:
			t.Fatalf("unexpected command kind %d for %+v", cmd.Kind, ev)
		}
	}

	for k := terminal.KeyNone; k <= terminal.KeyCtrlUnderscore+1; k++ {
		for _, m := range mods {
			check(terminal.Event{Type: terminal.EventKey, Key: k, Modifiers: m})
		}
	}
	for r := rune(0); r < 0x3000; r++ {
		check(terminal.Event{Type: terminal.EventKey, Key: terminal.KeyRune, Rune: r})
	}
	for _, typ := range []terminal.EventType{terminal.EventResize, terminal.EventError, terminal.EventClosed, 200} {
		check(terminal.Event{Type: typ})
	}
}

func TestParseKeyConfig(t *testing.T) {
	data := []byte(`
[keys]
q = "none"
x = "quit"
space = "page_down"

[special]
f10 = "quit"
pgdn = "bottom"
`)
	ov, err := ParseKeyConfig(data)
	require.NoError(t, err)

	kt := MergeKeyTable(DefaultKeyTable(), ov)
	src := NewSource(nil, kt)

	assert.Equal(t, view.Unrecognized(), src.Decode(runeEvent('q')))
	assert.Equal(t, view.Quit(), src.Decode(runeEvent('x')))
	assert.Equal(t, view.ScrollPage(1), src.Decode(runeEvent(' ')))
	assert.Equal(t, view.Quit(), src.Decode(keyEvent(terminal.KeyF10)))
	assert.Equal(t, view.ScrollEnd(1), src.Decode(keyEvent(terminal.KeyPageDown)))

	// Defaults are untouched by the merge
	assert.Equal(t, ActionQuit, DefaultKeyTable().Runes['q'])
}

func TestParseKeyConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", "[keys\nq="},
		{"unknown action", "[keys]\nq = \"fly\""},
		{"multi-char key", "[keys]\nqq = \"quit\""},
		{"unknown special", "[special]\nhyper = \"quit\""},
		{"unknown section", "[mouse]\nleft = \"quit\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKeyConfig([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadKeyTable(t *testing.T) {
	kt, err := LoadKeyTable("")
	require.NoError(t, err)
	assert.Equal(t, DefaultKeyTable(), kt)

	kt, err = LoadKeyTable(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultKeyTable(), kt)

	path := filepath.Join(t.TempDir(), "keymap.toml")
	require.NoError(t, os.WriteFile(path, []byte("[keys]\nz = \"metrics\"\n"), 0o644))
	kt, err = LoadKeyTable(path)
	require.NoError(t, err)
	assert.Equal(t, ActionMetrics, kt.Runes['z'])

	require.NoError(t, os.WriteFile(path, []byte("[keys]\nz = 3\n"), 0o644))
	_, err = LoadKeyTable(path)
	assert.Error(t, err)
}

func TestHintsFollowBindings(t *testing.T) {
	hints := DefaultKeyTable().Hints()
	require.NotEmpty(t, hints)
	assert.Equal(t, Hint{Keys: "q", Label: "quit"}, hints[0])
	assert.Contains(t, hints, Hint{Keys: "j/k", Label: "scroll"})

	ov, err := ParseKeyConfig([]byte("[keys]\nq = \"none\"\nx = \"quit\"\n"))
	require.NoError(t, err)
	rebound := MergeKeyTable(DefaultKeyTable(), ov).Hints()
	assert.Equal(t, Hint{Keys: "x", Label: "quit"}, rebound[0])
}
