// Package terminal provides direct ANSI terminal control for the dashboard.
//
// Features:
//   - Raw mode + alternate screen session with guaranteed restoration
//   - True color (24-bit) and 256-color palette support
//   - Double-buffered output with cell-level diffing
//   - Raw stdin input parsing with escape sequence handling and bounded polling
//   - SIGWINCH resize detection
//   - tcell-backed driver for terminals the ANSI driver does not suit, and for tests
//
// The ANSI driver bypasses terminfo/termcap entirely, emitting direct sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
