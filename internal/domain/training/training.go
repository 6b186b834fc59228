// Package training implements the workout variants and their calorie formulas.
//
// Every variant derives distance and mean speed from raw sensor counts and
// computes spent calories with its own coefficients. Values are float64
// throughout; rounding is left to the presentation layer.
package training

import (
	"fmt"

	"github.com/okian/ftracker/internal/domain/model"
)

// Shared conversion constants.
const (
	LenStep = 0.65 // default step length, meters per step
	MInKm   = 1000 // meters in a kilometer
	MinInH  = 60   // minutes in an hour
)

// Training is a completed workout able to report its metrics.
type Training interface {
	// Name returns the workout type as shown in the summary.
	Name() string
	// Hours returns the workout duration in hours.
	Hours() float64
	// Distance returns the covered distance in km.
	Distance() float64
	// MeanSpeed returns the average speed in km/h.
	MeanSpeed() float64
	// SpentCalories returns the burned energy in kcal.
	SpentCalories() float64
	// Validate reports input that is outside the formulas' domain.
	Validate() error
}

// base holds the readings shared by every workout.
type base struct {
	Action   int     // steps or strokes
	Duration float64 // hours
	Weight   float64 // kg
}

// Hours implements Training.
func (b base) Hours() float64 { return b.Duration }

func (b base) distance(lenStep float64) float64 {
	return float64(b.Action) * lenStep / MInKm
}

// meanSpeed divides distance by duration. A zero duration yields +Inf or NaN.
func (b base) meanSpeed(distance float64) float64 {
	return distance / b.Duration
}

func (b base) validate() error {
	if b.Duration <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, b.Duration)
	}
	if b.Action < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAction, b.Action)
	}
	return nil
}

// Summarize computes all metrics of t into an immutable summary.
func Summarize(t Training) model.Summary {
	return model.Summary{
		TrainingType: t.Name(),
		Duration:     t.Hours(),
		Distance:     t.Distance(),
		Speed:        t.MeanSpeed(),
		Calories:     t.SpentCalories(),
	}
}
