package terminal

import (
	"errors"
	"fmt"
)

// ErrNotTerminal is returned when stdin is not an interactive terminal
var ErrNotTerminal = errors.New("stdin is not a terminal")

// Error is a fatal terminal fault: raw mode or alternate screen entry/exit, or an output write
type Error struct {
	Op  string // "enter", "exit", "flush", "poll"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	if err == nil {
		return nil
	}
	var te *Error
	if errors.As(err, &te) {
		return err
	}
	return &Error{Op: op, Err: err}
}
