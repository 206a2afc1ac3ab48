package terminal

// Backend abstracts platform-specific terminal device operations.
// The ANSI driver owns exactly one Backend for the process lifetime.
type Backend interface {
	// Init places the input device in raw mode
	Init() error
	// Fini restores the mode saved by Init. Safe to call when Init failed or never ran
	Fini() error

	// Size returns the current terminal dimensions
	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed, or an error occurs.
	// A nil slice with nil error means stop was requested or the poll timed out.
	// End of input is reported as io.EOF
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback for terminal resize events
	SetResizeHandler(handler func(width, height int))
}
