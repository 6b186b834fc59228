package training

import (
	"fmt"
	"math"
)

// Sports walking calorie coefficients.
const (
	walkWeightMultiplier = 0.035
	walkSpeedMultiplier  = 0.029
)

// SportsWalking is a race walk measured in steps.
type SportsWalking struct {
	base
	Height float64 // cm
}

// NewSportsWalking creates a walk from step count, duration in hours,
// weight in kg and height in cm.
func NewSportsWalking(action int, duration, weight, height float64) *SportsWalking {
	return &SportsWalking{
		base:   base{Action: action, Duration: duration, Weight: weight},
		Height: height,
	}
}

// Name implements Training.
func (w *SportsWalking) Name() string { return "SportsWalking" }

// Distance implements Training.
func (w *SportsWalking) Distance() float64 { return w.distance(LenStep) }

// MeanSpeed implements Training.
func (w *SportsWalking) MeanSpeed() float64 { return w.meanSpeed(w.Distance()) }

// SpentCalories implements Training. The squared speed is floor-divided by height.
func (w *SportsWalking) SpentCalories() float64 {
	speed := w.MeanSpeed()
	return (walkWeightMultiplier*w.Weight +
		math.Floor(speed*speed/w.Height)*walkSpeedMultiplier*w.Weight) *
		w.Duration * MinInH
}

// Validate implements Training.
func (w *SportsWalking) Validate() error {
	if err := w.validate(); err != nil {
		return err
	}
	if w.Height <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidHeight, w.Height)
	}
	return nil
}
