package engine

import (
	"errors"
	"fmt"
)

// ErrNotFound means a command named a creative id that is not in the
// snapshot. Acting on a missing creative is a programming error, so unlike
// gate and policy denials it surfaces as an error.
var ErrNotFound = errors.New("creative not found")

// ErrInvalidInput marks malformed command payloads (missing required metric
// fields, unknown flag names and the like). The caller must fix the input
// and retry.
var ErrInvalidInput = errors.New("invalid input")

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
