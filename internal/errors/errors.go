// Package errors provides the error kinds the CLI maps to exit codes.
// Library packages return plain wrapped errors; only internal/cli builds
// these.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess          = 0 // Success
	ExitRuntimeError     = 1 // Runtime error (output could not be written, etc.)
	ExitConfigError      = 2 // Configuration error (bad flags, invalid config file, etc.)
	ExitEnvironmentError = 3 // Environment error (missing sysroot, unreadable working directory, etc.)
)

// Kind classifies an error by who has to fix it.
type Kind int

const (
	KindRuntime Kind = iota
	KindConfig
	KindEnvironment
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindEnvironment:
		return "environment"
	default:
		return "runtime"
	}
}

// ExitCode returns the process exit code for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindConfig:
		return ExitConfigError
	case KindEnvironment:
		return ExitEnvironmentError
	default:
		return ExitRuntimeError
	}
}

// Error is an error with a kind.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Config creates a configuration error.
func Config(message string) *Error {
	return &Error{Kind: KindConfig, Message: message}
}

// Configf creates a configuration error with formatting.
func Configf(format string, args ...any) *Error {
	return Config(fmt.Sprintf(format, args...))
}

// Environmentf creates an environment error with formatting.
func Environmentf(format string, args ...any) *Error {
	return &Error{Kind: KindEnvironment, Message: fmt.Sprintf(format, args...)}
}

// Wrap adds context to err. The kind of the nearest *Error in the chain is
// kept; anything else becomes a runtime error.
func Wrap(err error, message string) *Error {
	kind := KindRuntime
	var e *Error
	if stderrors.As(err, &e) {
		kind = e.Kind
	}
	return &Error{Kind: kind, Message: message, Cause: err}
}

// WrapConfig wraps err as a configuration error.
func WrapConfig(err error, message string) *Error {
	return &Error{Kind: KindConfig, Message: message, Cause: err}
}

// WrapEnvironment wraps err as an environment error.
func WrapEnvironment(err error, message string) *Error {
	return &Error{Kind: KindEnvironment, Message: message, Cause: err}
}

// GetExitCode returns the exit code for err, looking through wrapping.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind.ExitCode()
	}
	return ExitRuntimeError
}
