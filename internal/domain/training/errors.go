package training

import "errors"

// Sentinel kinds for out-of-domain readings.
var (
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidAction   = errors.New("action must not be negative")
	ErrInvalidHeight   = errors.New("height must be positive")
)
