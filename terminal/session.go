package terminal

import (
	"errors"
	"sync"
)

// Session is exclusive ownership of a Terminal in raw mode on the alternate screen.
// The zero value is not usable; obtain one with Enter or WithSession.
type Session struct {
	term Terminal

	mu        sync.Mutex
	rawMode   bool
	altScreen bool

	exitOnce sync.Once
	exitErr  error
}

// Enter acquires the terminal. On failure nothing is left modified and the
// returned session is nil, so there is nothing to Exit.
func Enter(t Terminal) (*Session, error) {
	if err := t.Init(); err != nil {
		return nil, opError("enter", err)
	}
	return &Session{term: t, rawMode: true, altScreen: true}, nil
}

// Exit restores the terminal. The restore runs once; later calls return its result
func (s *Session) Exit() error {
	if s == nil {
		return nil
	}
	s.exitOnce.Do(func() {
		err := s.term.Fini()

		s.mu.Lock()
		s.rawMode = false
		s.altScreen = false
		s.mu.Unlock()

		if err != nil {
			s.exitErr = opError("exit", err)
		}
	})
	return s.exitErr
}

// RawMode reports whether the terminal is currently held in raw input mode
func (s *Session) RawMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rawMode
}

// AltScreen reports whether the alternate screen buffer is active
func (s *Session) AltScreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.altScreen
}

// Terminal returns the owned device
func (s *Session) Terminal() Terminal {
	return s.term
}

// Flush draws a frame, wrapping write failures as terminal errors
func (s *Session) Flush(cells []Cell, width, height int) error {
	if err := s.term.Flush(cells, width, height); err != nil {
		return opError("flush", err)
	}
	return nil
}

// WithSession enters t, runs fn and exits on every path out of fn.
// A panic in fn is re-raised after the terminal is restored.
func WithSession(t Terminal, fn func(*Session) error) (err error) {
	s, err := Enter(t)
	if err != nil {
		return err
	}

	defer func() {
		r := recover()
		exitErr := s.Exit()
		if r != nil {
			panic(r)
		}
		// A failed restore is reported alongside the error that ended fn
		if exitErr != nil {
			err = errors.Join(err, exitErr)
		}
	}()

	return fn(s)
}
