// Package service drives the tracker: it turns sensor packages into
// workouts, summarizes them and writes one line per workout.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/ftracker/internal/domain/model"
	"github.com/okian/ftracker/internal/domain/sensor"
	"github.com/okian/ftracker/internal/domain/training"
	"github.com/okian/ftracker/pkg/logger"
	"github.com/okian/ftracker/pkg/metrics"
)

const nanosecondsPerMillisecond = 1e6

// Service processes sensor packages one at a time.
type Service struct {
	mu sync.RWMutex

	// Configuration
	out    io.Writer
	strict bool

	// State
	processed int
	failed    int

	// Observability
	logger  logger.Logger
	metrics *metrics.Manager
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithOutput sets where summary lines are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.out = w
		}
	}
}

// WithStrict enables validation of readings before summarizing them.
func WithStrict(strict bool) Option {
	return func(s *Service) {
		s.strict = strict
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics records workout metrics on m instead of the global manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New constructs a new Service with default configuration.
// The global logger must be initialized unless WithLogger is given.
func New(opts ...Option) *Service {
	s := &Service{
		out: os.Stdout,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Named("tracker")
	}
	if s.metrics == nil {
		s.metrics = metrics.GetManager()
	}

	return s
}

// Process turns one package into a workout summary.
func (s *Service) Process(ctx context.Context, pkg model.Package) (model.Summary, error) {
	if pkg.ID == "" {
		pkg.ID = uuid.NewString()
	}

	if err := ctx.Err(); err != nil {
		s.recordFailure(metrics.ReasonCancelled)
		return model.Summary{}, fmt.Errorf("package %s: %w", pkg.ID, err)
	}

	workout, err := sensor.ReadPackage(pkg.Code, pkg.Data)
	if err != nil {
		s.recordFailure(failureReason(err))
		s.logger.Error(ctx, "cannot read sensor package",
			logger.String("id", pkg.ID),
			logger.String("code", pkg.Code),
			logger.Error(err),
		)
		return model.Summary{}, err
	}

	if s.strict {
		if err := workout.Validate(); err != nil {
			s.recordFailure(metrics.ReasonInvalidInput)
			s.logger.Error(ctx, "sensor package rejected",
				logger.String("id", pkg.ID),
				logger.String("code", pkg.Code),
				logger.Error(err),
			)
			return model.Summary{}, fmt.Errorf("%s package %s: %w", pkg.Code, pkg.ID, err)
		}
	}

	summary := training.Summarize(workout)

	s.mu.Lock()
	s.processed++
	s.mu.Unlock()
	s.metrics.RecordWorkout(summary.TrainingType, summary.Duration, summary.Distance, summary.Calories)

	s.logger.Debug(ctx, "workout summarized",
		logger.String("id", pkg.ID),
		logger.String("training_type", summary.TrainingType),
		logger.Float64("distance_km", summary.Distance),
		logger.Float64("speed_kmh", summary.Speed),
		logger.Float64("calories", summary.Calories),
	)

	return summary, nil
}

// Run processes packages in order and writes one summary line per package.
// The first error stops the run; lines already written stay written.
func (s *Service) Run(ctx context.Context, pkgs []model.Package) error {
	s.metrics.UpdateRunPackages(len(pkgs))
	s.logger.Info(ctx, "processing sensor packages", logger.Int("packages", len(pkgs)))

	for _, pkg := range pkgs {
		if err := s.runOne(ctx, pkg); err != nil {
			return err
		}
	}

	stats := s.GetStats()
	s.logger.Info(ctx, "sensor packages processed",
		logger.Any("processed", stats["processed"]),
		logger.Any("failed", stats["failed"]),
		logger.Bool("strict", s.strict),
	)
	return nil
}

// runOne processes and prints a single package. Latency is observed for
// failed packages too.
func (s *Service) runOne(ctx context.Context, pkg model.Package) error {
	start := time.Now()
	defer func() {
		s.metrics.RecordProcessingLatency(float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond)
	}()

	summary, err := s.Process(ctx, pkg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(s.out, summary.Message()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// GetStats returns service statistics for logging.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"processed": s.processed,
		"failed":    s.failed,
		"strict":    s.strict,
	}
}

func (s *Service) recordFailure(reason string) {
	s.mu.Lock()
	s.failed++
	s.mu.Unlock()
	s.metrics.RecordFailure(reason)
}

// failureReason maps a dispatch error to a metrics label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, sensor.ErrUnknownWorkout):
		return metrics.ReasonUnknownCode
	case errors.Is(err, sensor.ErrArgumentCount), errors.Is(err, sensor.ErrArgumentType):
		return metrics.ReasonBinding
	default:
		return metrics.ReasonInvalidInput
	}
}
