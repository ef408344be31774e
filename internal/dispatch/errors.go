package dispatch

import (
	"errors"
	"fmt"
)

// The engine classifies every failure exactly once. Transient failures are
// expected to succeed on full-event redelivery; terminal failures never will,
// so the queue boundary drops them instead of retrying.

// TransientError wraps a remote-call failure that redelivery may fix.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient: %v", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// TerminalError marks a malformed input that redelivery can never fix.
type TerminalError struct {
	Err error
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal: %v", e.Err)
}

func (e *TerminalError) Unwrap() error {
	return e.Err
}

// Transientf builds a transient error from a format string.
func Transientf(format string, args ...any) error {
	return &TransientError{Err: fmt.Errorf(format, args...)}
}

// Terminalf builds a terminal error from a format string.
func Terminalf(format string, args ...any) error {
	return &TerminalError{Err: fmt.Errorf(format, args...)}
}

// IsTransient reports whether err is classified as transient.
func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}

// IsTerminal reports whether err is classified as terminal.
func IsTerminal(err error) bool {
	var t *TerminalError
	return errors.As(err, &t)
}
