package shift

import "errors"

// Shift domain errors
var (
	ErrShiftNotFound = errors.New("shift definition not found")
	// ErrNoMatch signals that dynamic detection produced no candidate with
	// a positive score. It is a defined terminal state, not a failure.
	ErrNoMatch = errors.New("no shift matched the punch times")
)
