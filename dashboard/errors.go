package dashboard

import (
	"errors"
	"fmt"
)

var (
	// ErrInterrupted ends the loop when its context is cancelled by a signal
	ErrInterrupted = errors.New("interrupted")
	// ErrInputClosed ends the loop when the terminal stops delivering input
	ErrInputClosed = errors.New("terminal input closed")
)

// RenderFault is a failure to write a frame mid-loop
type RenderFault struct {
	Frame uint64 // Sequence number of the frame that failed
	Err   error
}

func (e *RenderFault) Error() string {
	return fmt.Sprintf("render frame %d: %v", e.Frame, e.Err)
}

func (e *RenderFault) Unwrap() error {
	return e.Err
}
