package training

// Swimming constants.
const (
	swimLenStep          = 1.38 // meters per stroke
	swimSpeedShift       = 1.1
	swimWeightMultiplier = 2
)

// Swimming is a pool swim measured in strokes and laps.
type Swimming struct {
	base
	LengthPool float64 // meters
	CountPool  float64 // laps
}

// NewSwimming creates a swim from stroke count, duration in hours, weight
// in kg, pool length in meters and lap count.
func NewSwimming(action int, duration, weight, lengthPool, countPool float64) *Swimming {
	return &Swimming{
		base:       base{Action: action, Duration: duration, Weight: weight},
		LengthPool: lengthPool,
		CountPool:  countPool,
	}
}

// Name implements Training.
func (s *Swimming) Name() string { return "Swimming" }

// Distance implements Training using the stroke length.
func (s *Swimming) Distance() float64 { return s.distance(swimLenStep) }

// MeanSpeed implements Training from pool geometry rather than strokes.
func (s *Swimming) MeanSpeed() float64 {
	return s.LengthPool * s.CountPool / MInKm / s.Duration
}

// SpentCalories implements Training.
func (s *Swimming) SpentCalories() float64 {
	return (s.MeanSpeed() + swimSpeedShift) * swimWeightMultiplier * s.Weight
}

// Validate implements Training.
func (s *Swimming) Validate() error { return s.validate() }
