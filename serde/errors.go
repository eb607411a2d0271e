package serde

import (
	"fmt"

	"golang.org/x/xerrors"
)

// DecodeError is returned when the payload cannot be coerced to the
// requested shape. It carries what was expected and what was found so the
// failure can be debugged without the payload at hand.
//
// - implements error
type DecodeError struct {
	Expected string
	Found    string
}

// NewDecodeError creates a decode error.
func NewDecodeError(expected, found string) error {
	return DecodeError{Expected: expected, Found: found}
}

// NewUnexpectedEOS creates the decode error variant for a payload ending
// before the expected token.
func NewUnexpectedEOS(expected string) error {
	return DecodeError{Expected: expected, Found: "end of stream"}
}

// Error implements error.
func (e DecodeError) Error() string {
	return fmt.Sprintf("decoding failed: expected %s, found %s", e.Expected, e.Found)
}

// IsDecodeError returns true when the error, or one it wraps, is a decode
// error.
func IsDecodeError(err error) bool {
	var derr DecodeError
	return xerrors.As(err, &derr)
}

// ConfigError is returned on descriptor misuse: a missing expected trait, or
// a caller breaking the serializer protocol. Those are programmer errors in
// generated code and are not recoverable at runtime.
//
// - implements error
type ConfigError struct {
	reason string
}

// NewConfigError creates a configuration error with a formatted reason.
func NewConfigError(format string, args ...interface{}) error {
	return ConfigError{reason: fmt.Sprintf(format, args...)}
}

// Error implements error.
func (e ConfigError) Error() string {
	return "unexpected configuration: " + e.reason
}

// IsConfigError returns true when the error, or one it wraps, is a
// configuration error.
func IsConfigError(err error) bool {
	var cerr ConfigError
	return xerrors.As(err, &cerr)
}
