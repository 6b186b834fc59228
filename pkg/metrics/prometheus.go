// Package metrics provides Prometheus metrics for the fitness tracker.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Failure reasons used as label values.
const (
	ReasonUnknownCode  = "unknown_code"
	ReasonBinding      = "binding"
	ReasonInvalidInput = "invalid_input"
	ReasonCancelled    = "cancelled"
)

// Manager owns the tracker's Prometheus collectors.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	enabled        bool
	customLabels   map[string]string
	registry       *prometheus.Registry

	// Workout metrics
	workoutsProcessed *prometheus.CounterVec
	workoutsFailed    *prometheus.CounterVec
	caloriesBurned    *prometheus.HistogramVec
	distanceCovered   *prometheus.HistogramVec
	workoutDuration   *prometheus.HistogramVec

	// Driver metrics
	processingLatency prometheus.Histogram
	lastRunPackages   prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "ftracker",
		subsystem:      "workout",
		latencyBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50},
		enabled:        true,
		customLabels:   make(map[string]string),
		registry:       prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.workoutsProcessed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "processed_total",
		Help:        "Total number of workouts summarized, by training type",
		ConstLabels: m.customLabels,
	}, []string{"training_type"})

	m.workoutsFailed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "failed_total",
		Help:        "Total number of sensor packages rejected, by reason",
		ConstLabels: m.customLabels,
	}, []string{"reason"})

	m.caloriesBurned = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "calories_kcal",
		Help:        "Calories burned per workout in kcal",
		Buckets:     []float64{50, 100, 200, 300, 500, 750, 1000, 1500},
		ConstLabels: m.customLabels,
	}, []string{"training_type"})

	m.distanceCovered = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "distance_km",
		Help:        "Distance covered per workout in km",
		Buckets:     []float64{0.5, 1, 2, 5, 10, 21.1, 42.2},
		ConstLabels: m.customLabels,
	}, []string{"training_type"})

	m.workoutDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duration_hours",
		Help:        "Workout duration in hours",
		Buckets:     []float64{0.25, 0.5, 1, 1.5, 2, 3, 5},
		ConstLabels: m.customLabels,
	}, []string{"training_type"})

	m.processingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "processing_latency_milliseconds",
		Help:        "Time to dispatch, summarize and print one package in milliseconds",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.customLabels,
	})

	m.lastRunPackages = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_run_packages",
		Help:        "Number of sensor packages in the most recent run",
		ConstLabels: m.customLabels,
	})
}

// RecordWorkout records one summarized workout.
func (m *Manager) RecordWorkout(trainingType string, durationHours, distanceKm, calories float64) {
	if !m.enabled {
		return
	}
	m.workoutsProcessed.WithLabelValues(trainingType).Inc()
	m.workoutDuration.WithLabelValues(trainingType).Observe(durationHours)
	m.distanceCovered.WithLabelValues(trainingType).Observe(distanceKm)
	m.caloriesBurned.WithLabelValues(trainingType).Observe(calories)
}

// RecordFailure records a rejected package.
func (m *Manager) RecordFailure(reason string) {
	if !m.enabled {
		return
	}
	m.workoutsFailed.WithLabelValues(reason).Inc()
}

// RecordProcessingLatency records per-package processing time.
func (m *Manager) RecordProcessingLatency(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.processingLatency.Observe(latencyMs)
}

// UpdateRunPackages sets the package count of the current run.
func (m *Manager) UpdateRunPackages(count int) {
	if !m.enabled {
		return
	}
	m.lastRunPackages.Set(float64(count))
}

// WriteTextfile writes all metrics in text exposition format to path,
// suitable for the node exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}

// GetManager returns the global metrics manager.
func GetManager() *Manager {
	return globalManager
}

// WriteTextfile writes the global registry to path.
func WriteTextfile(path string) error {
	return globalManager.WriteTextfile(path)
}
