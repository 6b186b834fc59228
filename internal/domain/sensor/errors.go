package sensor

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnknownWorkout = errors.New("unknown workout code")
	ErrArgumentCount  = errors.New("argument count mismatch")
	ErrArgumentType   = errors.New("argument type mismatch")
)

// UnknownCodeError reports a workout code the tracker cannot handle.
type UnknownCodeError struct {
	Code  string   // rejected code
	Valid []string // supported codes in stable order
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("%s %q: supported codes are %s", ErrUnknownWorkout, e.Code, strings.Join(e.Valid, ", "))
}

// Is matches ErrUnknownWorkout.
func (e *UnknownCodeError) Is(target error) bool {
	return target == ErrUnknownWorkout
}
