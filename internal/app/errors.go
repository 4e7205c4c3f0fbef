// Package app wires the terminal session, input decoder, viewport and
// renderer into the ned editor and runs its event loop.
package app

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrQuit is returned by the quit key to end the loop cleanly.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning is returned by a second concurrent Run.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend is returned by Run before SetBackend.
	ErrNoBackend = errors.New("no terminal backend")
)

// ComponentError records which part of the editor failed and what it was
// doing. It formats as "component: action: cause", omitting empty parts.
type ComponentError struct {
	Component string
	Action    string
	Err       error
}

// NewComponentError wraps err with the failing component and action.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{Component: component, Action: action, Err: err}
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	parts := []string{e.Component}
	if e.Action != "" {
		parts = append(parts, e.Action)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RecoveredPanicError is a panic caught by the event loop.
// Error includes the stack; Summary is the one-line form for the terminal.
type RecoveredPanicError struct {
	Value any
	Stack string
}

// NewRecoveredPanicError captures a recovered value and its stack.
func NewRecoveredPanicError(value any, stack string) *RecoveredPanicError {
	return &RecoveredPanicError{Value: value, Stack: stack}
}

func (e *RecoveredPanicError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stack == "" {
		return e.Summary()
	}
	return e.Summary() + "\n" + e.Stack
}

// Summary returns the panic message without the stack.
func (e *RecoveredPanicError) Summary() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *RecoveredPanicError) Unwrap() error {
	if e == nil {
		return nil
	}
	err, _ := e.Value.(error)
	return err
}
