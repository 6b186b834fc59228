package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	app "github.com/okian/ftracker/internal/app"
	"github.com/okian/ftracker/internal/config"
	"github.com/okian/ftracker/internal/domain/model"
	"github.com/okian/ftracker/internal/domain/sensor"
	"github.com/okian/ftracker/pkg/logger"
	"github.com/okian/ftracker/pkg/metrics"
)

// Process exit codes.
const (
	exitOK      = 0
	exitFailure = 1
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr))
}

// run executes the tracker and returns the process exit code.
// Summaries go to stdout; logs and diagnostics go to stderr.
func run(stdout, stderr io.Writer) int {
	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		// Logger isn't available yet
		_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
		return exitFailure
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			_, _ = io.WriteString(stderr, "failed to sync logger: "+err.Error()+"\n")
		}
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = io.WriteString(stderr, "failed to load config: "+err.Error()+"\n")
		return exitFailure
	}

	// Validated by config.Load
	_ = logger.SetLevelString(cfg.LogLevel)

	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithOutput(stdout),
		app.WithStrict(cfg.Strict),
	)

	runErr := svc.Run(ctx, toPackages(cfg.Packages))

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			loggerInstance.Warn(ctx, "cannot write metrics textfile",
				logger.String("path", cfg.MetricsTextfile),
				logger.Error(err),
			)
		}
	}

	if runErr != nil {
		if errors.Is(runErr, sensor.ErrUnknownWorkout) {
			_, _ = io.WriteString(stderr, "unsupported workout: "+runErr.Error()+"\n")
		} else {
			_, _ = io.WriteString(stderr, "tracker failed: "+runErr.Error()+"\n")
		}
		return exitFailure
	}
	return exitOK
}

// toPackages converts configured packages into domain packages.
func toPackages(in []config.Package) []model.Package {
	out := make([]model.Package, len(in))
	for i, p := range in {
		out[i] = model.Package{ID: p.ID, Code: p.Code, Data: p.Data}
	}
	return out
}
