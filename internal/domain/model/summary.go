// Package model contains domain models passed between layers.
package model

import "fmt"

// messageFormat renders a Summary. All numeric fields keep three fractional digits.
const messageFormat = "Тип тренировки: %s; " +
	"Длительность: %.3f ч.; " +
	"Дистанция: %.3f км; " +
	"Ср. скорость: %.3f км/ч; " +
	"Потрачено ккал: %.3f."

// Summary is the computed result of one completed workout.
type Summary struct {
	TrainingType string  // variant name, e.g. "Running"
	Duration     float64 // hours
	Distance     float64 // km
	Speed        float64 // km/h
	Calories     float64 // kcal
}

// Message formats the summary as a single human-readable line.
func (s Summary) Message() string {
	return fmt.Sprintf(messageFormat, s.TrainingType, s.Duration, s.Distance, s.Speed, s.Calories)
}

// Package is one raw sensor reading as delivered by the tracker.
type Package struct {
	ID   string    // correlation id, used in logs only
	Code string    // workout code, e.g. "SWM"
	Data []float64 // positional values bound to the workout fields
}
