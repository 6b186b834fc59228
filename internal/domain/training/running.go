package training

// Running calorie coefficients.
const (
	runSpeedMultiplier = 18
	runSpeedShift      = 20
)

// Running is a run measured in steps.
type Running struct {
	base
}

// NewRunning creates a run from step count, duration in hours and weight in kg.
func NewRunning(action int, duration, weight float64) *Running {
	return &Running{base: base{Action: action, Duration: duration, Weight: weight}}
}

// Name implements Training.
func (r *Running) Name() string { return "Running" }

// Distance implements Training.
func (r *Running) Distance() float64 { return r.distance(LenStep) }

// MeanSpeed implements Training.
func (r *Running) MeanSpeed() float64 { return r.meanSpeed(r.Distance()) }

// SpentCalories implements Training.
func (r *Running) SpentCalories() float64 {
	return (runSpeedMultiplier*r.MeanSpeed() - runSpeedShift) *
		r.Weight / MInKm * r.Duration * MinInH
}

// Validate implements Training.
func (r *Running) Validate() error { return r.validate() }
