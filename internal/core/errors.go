package core

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every error raised while building a grid.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvariant matches errors reporting an impossible runtime state.
	ErrInvariant = errors.New("runtime invariant violation")
	// ErrOutOfRange is returned for coordinates outside the grid.
	ErrOutOfRange = errors.New("cell out of range")
)

// ConfigError describes a fatal problem with a simulation configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// Configf builds a ConfigError for field.
func Configf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InvariantError reports a programming defect detected during a step.
type InvariantError struct {
	Variant Variant
	Index   int
	Reason  string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: cell %d: %s", e.Variant, e.Index, e.Reason)
}

// Unwrap lets errors.Is match ErrInvariant.
func (e *InvariantError) Unwrap() error { return ErrInvariant }

// Invariantf builds an InvariantError for cell i.
func Invariantf(v Variant, i int, format string, args ...any) error {
	return &InvariantError{Variant: v, Index: i, Reason: fmt.Sprintf(format, args...)}
}
