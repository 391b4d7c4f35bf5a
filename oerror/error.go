package oerror

import (
	"errors"
	"fmt"
)

// KinematicError is a general purpose error returned by the movement core when no more specific
// error type applies.
type KinematicError struct {
	Err string
}

// New returns a KinematicError with a message formatted from the given arguments.
func New(format string, args ...any) *KinematicError {
	return &KinematicError{Err: fmt.Sprintf(format, args...)}
}

func (e *KinematicError) Error() string {
	return e.Err
}

// GeometryError is returned by a geometry querier when a query could not be answered, for example
// because the shape is degenerate or the query arguments are not finite.
type GeometryError struct {
	// Op is the query that failed, e.g. "cast_shape" or "overlap".
	Op     string
	Reason string
}

// NewGeometryError returns a GeometryError for the operation given.
func NewGeometryError(op, format string, args ...any) *GeometryError {
	return &GeometryError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry %s: %s", e.Op, e.Reason)
}

// ConfigError is returned when a controller configuration is rejected at construction time.
type ConfigError struct {
	Field  string
	Reason string
}

// NewConfigError returns a ConfigError for the field given.
func NewConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

// IsGeometry returns true if err is, or wraps, a GeometryError.
func IsGeometry(err error) bool {
	var gErr *GeometryError
	return errors.As(err, &gErr)
}

// IsConfig returns true if err is, or wraps, a ConfigError.
func IsConfig(err error) bool {
	var cErr *ConfigError
	return errors.As(err, &cErr)
}
