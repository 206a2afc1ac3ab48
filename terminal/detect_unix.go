//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/sys/unix"
)

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	return detectColorMode(termenv.EnvColorProfile(), os.Getenv)
}

// emulatorEnv are set by truecolor emulators and survive multiplexers that rewrite TERM
var emulatorEnv = []string{
	"KITTY_WINDOW_ID",
	"KONSOLE_VERSION",
	"ITERM_SESSION_ID",
	"ALACRITTY_WINDOW_ID",
	"WEZTERM_PANE",
}

// detectColorMode takes termenv's verdict (COLORTERM, TERM, TERM_PROGRAM) and
// upgrades to truecolor only on emulator hints or a terminfo direct-color entry
func detectColorMode(profile termenv.Profile, getenv func(string) string) ColorMode {
	if profile == termenv.TrueColor {
		return ColorModeTrueColor
	}
	for _, key := range emulatorEnv {
		if getenv(key) != "" {
			return ColorModeTrueColor
		}
	}
	if strings.HasSuffix(strings.ToLower(getenv("TERM")), "-direct") {
		return ColorModeTrueColor
	}
	return ColorMode256
}

// ParseColorMode resolves a flag value, "auto" and unknown values fall back to detection
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(s) {
	case "256":
		return ColorMode256
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor
	default:
		return DetectColorMode()
	}
}

// resetTerminalMode attempts to restore terminal to cooked mode
// Best-effort for crash recovery; errors ignored
func resetTerminalMode() {
	// /dev/tty works even if stdin is redirected
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fd := int(tty.Fd())
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return
	}
	termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	termios.Iflag |= unix.ICRNL
	_ = unix.IoctlSetTermios(fd, ioctlSetTermios, termios)
}
