package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimTerm(t *testing.T, w, h int) (Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTcellScreen(sim, ColorModeTrueColor)
	require.NoError(t, term.Init())
	sim.SetSize(w, h)
	t.Cleanup(func() { _ = term.Fini() })
	return term, sim
}

func TestTcellFlushDrawsCells(t *testing.T) {
	term, sim := newSimTerm(t, 6, 2)

	cells := make([]Cell, 12)
	for i, r := range "hello!" {
		cells[i] = Cell{Rune: r, Fg: RGB{200, 10, 10}, Attrs: AttrBold}
	}
	require.NoError(t, term.Flush(cells, 6, 2))

	contents, w, _ := sim.GetContents()
	require.Equal(t, 6, w)
	var got []rune
	for i := 0; i < 6; i++ {
		got = append(got, contents[i].Runes[0])
	}
	assert.Equal(t, "hello!", string(got))

	fg, _, attrs := contents[0].Style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(200, 10, 10), fg)
	assert.NotZero(t, attrs&tcell.AttrBold)
}

func TestTcellFlushSkipsStaleSize(t *testing.T) {
	term, sim := newSimTerm(t, 4, 1)
	require.NoError(t, term.Flush(rowCells("zzzzzzzz"), 8, 1))

	contents, _, _ := sim.GetContents()
	assert.NotEqual(t, 'z', contents[0].Runes[0])
}

func TestTcellKeyConversion(t *testing.T) {
	term, sim := newSimTerm(t, 10, 4)

	tests := []struct {
		key  tcell.Key
		r    rune
		want Key
	}{
		{tcell.KeyRune, 'q', KeyRune},
		{tcell.KeyCtrlC, 0, KeyCtrlC},
		{tcell.KeyPgDn, 0, KeyPageDown},
		{tcell.KeyUp, 0, KeyUp},
		{tcell.KeyEnter, 0, KeyEnter},
	}

	for _, tt := range tests {
		sim.InjectKey(tt.key, tt.r, tcell.ModNone)
		var ev Event
		var ok bool
		// Skip resize events the simulation emits on init and SetSize
		for i := 0; i < 5; i++ {
			ev, ok = term.Poll(time.Second)
			if !ok || ev.Type == EventKey {
				break
			}
		}
		require.True(t, ok)
		assert.Equal(t, tt.want, ev.Key)
		if tt.want == KeyRune {
			assert.Equal(t, tt.r, ev.Rune)
		}
	}
}

func TestTcellFiniIdempotent(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTcellScreen(sim, ColorMode256)
	assert.NoError(t, term.Fini(), "Fini before Init is a no-op")
	require.NoError(t, term.Init())
	assert.NoError(t, term.Fini())
	assert.NoError(t, term.Fini())
}
