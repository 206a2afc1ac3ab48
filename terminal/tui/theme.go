package tui

import "github.com/fazai/fazai-dash/terminal"

// Theme defines semantic colors for dashboard panels
type Theme struct {
	Bg terminal.RGB
	Fg terminal.RGB

	Border   terminal.RGB
	Title    terminal.RGB
	Banner   terminal.RGB
	HeaderBg terminal.RGB
	HeaderFg terminal.RGB
	TabFg    terminal.RGB
	TabBg    terminal.RGB
	HintFg   terminal.RGB
	KeyFg    terminal.RGB
	StatusFg terminal.RGB

	Healthy   terminal.RGB
	Unhealthy terminal.RGB
	Warning   terminal.RGB
	Spark     terminal.RGB
}

// DefaultTheme provides reasonable defaults
var DefaultTheme = Theme{
	Bg:        terminal.RGB{R: 20, G: 20, B: 30},
	Fg:        terminal.RGB{R: 200, G: 200, B: 200},
	Border:    terminal.RGB{R: 60, G: 80, B: 100},
	Title:     terminal.RGB{R: 80, G: 200, B: 220},
	Banner:    terminal.RGB{R: 80, G: 160, B: 220},
	HeaderBg:  terminal.RGB{R: 40, G: 60, B: 90},
	HeaderFg:  terminal.RGB{R: 255, G: 255, B: 255},
	TabFg:     terminal.RGB{R: 20, G: 20, B: 30},
	TabBg:     terminal.RGB{R: 80, G: 200, B: 220},
	HintFg:    terminal.RGB{R: 100, G: 180, B: 200},
	KeyFg:     terminal.RGB{R: 220, G: 180, B: 80},
	StatusFg:  terminal.RGB{R: 140, G: 140, B: 140},
	Healthy:   terminal.RGB{R: 80, G: 200, B: 80},
	Unhealthy: terminal.RGB{R: 255, G: 80, B: 80},
	Warning:   terminal.RGB{R: 230, G: 190, B: 60},
	Spark:     terminal.RGB{R: 130, G: 170, B: 220},
}
