// Package sensor turns raw tracker packages into workouts.
package sensor

import (
	"fmt"
	"math"

	"github.com/okian/ftracker/internal/domain/training"
)

// Workout codes understood by the tracker.
const (
	CodeSwimming = "SWM"
	CodeRunning  = "RUN"
	CodeWalking  = "WLK"
)

// Bounds of int as float64; maxAction itself does not fit.
const (
	minAction = float64(math.MinInt)
	maxAction = -float64(math.MinInt)
)

// binding describes how positional values map onto one workout variant.
type binding struct {
	code  string
	arity int
	build func(action int, data []float64) training.Training
}

// bindings is ordered; the order is the one reported to callers.
var bindings = []binding{
	{
		code:  CodeSwimming,
		arity: 5,
		build: func(action int, d []float64) training.Training {
			return training.NewSwimming(action, d[1], d[2], d[3], d[4])
		},
	},
	{
		code:  CodeRunning,
		arity: 3,
		build: func(action int, d []float64) training.Training {
			return training.NewRunning(action, d[1], d[2])
		},
	},
	{
		code:  CodeWalking,
		arity: 4,
		build: func(action int, d []float64) training.Training {
			return training.NewSportsWalking(action, d[1], d[2], d[3])
		},
	},
}

// Codes returns the supported workout codes in stable order.
func Codes() []string {
	codes := make([]string, len(bindings))
	for i, b := range bindings {
		codes[i] = b.code
	}
	return codes
}

// ReadPackage builds the workout identified by code from positional data.
// Values bind in the variant's field order: action, duration, weight, then
// the variant-specific fields.
func ReadPackage(code string, data []float64) (training.Training, error) {
	for _, b := range bindings {
		if b.code != code {
			continue
		}
		if len(data) != b.arity {
			return nil, fmt.Errorf("%w: %s takes %d values, got %d", ErrArgumentCount, code, b.arity, len(data))
		}
		action := data[0]
		if action != math.Trunc(action) {
			return nil, fmt.Errorf("%w: action %v is not a whole number", ErrArgumentType, action)
		}
		if action < minAction || action >= maxAction {
			return nil, fmt.Errorf("%w: action %v does not fit an int", ErrArgumentType, action)
		}
		return b.build(int(action), data), nil
	}
	return nil, &UnknownCodeError{Code: code, Valid: Codes()}
}
