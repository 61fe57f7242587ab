package virtual

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotReady is reported while the container has not been measured yet.
// It is an expected state during mount: outputs are empty and heal on the
// next successful measurement.
var ErrNotReady = errors.New("virtual: container not measured yet")

// ErrInvalidConfiguration is wrapped by every ConfigError.
var ErrInvalidConfiguration = errors.New("virtual: invalid configuration")

// ConfigError describes a rejected configuration value.
type ConfigError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("virtual: invalid %s (%v): %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfiguration.
func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }

func checkPositive(field string, v float64) error {
	if !finite(v) || v <= 0 {
		return &ConfigError{Field: field, Value: v, Reason: "must be a finite number > 0"}
	}
	return nil
}

func checkNonNegative(field string, v float64) error {
	if !finite(v) || v < 0 {
		return &ConfigError{Field: field, Value: v, Reason: "must be a finite number >= 0"}
	}
	return nil
}

func checkCount(field string, n int) error {
	if n < 0 {
		return &ConfigError{Field: field, Value: float64(n), Reason: "must be >= 0"}
	}
	return nil
}

// isDegenerate reports values that cannot be used as a divisor.
func isDegenerate(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || v <= 0
}
