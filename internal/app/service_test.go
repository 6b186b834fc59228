package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	service "github.com/okian/ftracker/internal/app"
	"github.com/okian/ftracker/internal/domain/model"
	"github.com/okian/ftracker/internal/domain/sensor"
	"github.com/okian/ftracker/internal/domain/training"
	"github.com/okian/ftracker/pkg/logger"
	"github.com/okian/ftracker/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Keep test output readable; logs go to a discarded buffer.
	if err := logger.Init(logger.WithWriter(&bytes.Buffer{})); err != nil {
		panic(err)
	}
}

var referencePackages = []model.Package{
	{Code: "SWM", Data: []float64{720, 1, 80, 25, 40}},
	{Code: "RUN", Data: []float64{15000, 1, 75}},
	{Code: "WLK", Data: []float64{9000, 1, 75, 180}},
}

var referenceOutput = "" +
	"Тип тренировки: Swimming; Длительность: 1.000 ч.; Дистанция: 0.994 км; Ср. скорость: 1.000 км/ч; Потрачено ккал: 336.000.\n" +
	"Тип тренировки: Running; Длительность: 1.000 ч.; Дистанция: 9.750 км; Ср. скорость: 9.750 км/ч; Потрачено ккал: 699.750.\n" +
	"Тип тренировки: SportsWalking; Длительность: 1.000 ч.; Дистанция: 5.850 км; Ср. скорость: 5.850 км/ч; Потрачено ккал: 157.500.\n"

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should start with empty stats", func() {
			So(svc, ShouldNotBeNil)
			stats := svc.GetStats()
			So(stats["processed"], ShouldEqual, 0)
			So(stats["failed"], ShouldEqual, 0)
			So(stats["strict"], ShouldEqual, false)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithOutput(&bytes.Buffer{}),
			service.WithStrict(true),
			service.WithLogger(logger.Named("test")),
		)

		Convey("Then the options should be applied", func() {
			So(svc.GetStats()["strict"], ShouldEqual, true)
		})
	})
}

func TestService_Run(t *testing.T) {
	Convey("Given a service writing to a buffer", t, func() {
		var out bytes.Buffer
		svc := service.New(service.WithOutput(&out))
		ctx := context.Background()

		Convey("When running the reference packages", func() {
			err := svc.Run(ctx, referencePackages)

			Convey("Then it prints one line per workout in input order", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldEqual, referenceOutput)
			})

			Convey("And it counts every processed package", func() {
				So(svc.GetStats()["processed"], ShouldEqual, 3)
				So(svc.GetStats()["failed"], ShouldEqual, 0)
			})
		})

		Convey("When the list contains an unknown code", func() {
			pkgs := []model.Package{
				{Code: "RUN", Data: []float64{15000, 1, 75}},
				{Code: "XYZ", Data: []float64{1, 2, 3}},
				{Code: "WLK", Data: []float64{9000, 1, 75, 180}},
			}
			err := svc.Run(ctx, pkgs)

			Convey("Then the run stops with ErrUnknownWorkout", func() {
				So(errors.Is(err, sensor.ErrUnknownWorkout), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "SWM, RUN, WLK")
			})

			Convey("And only the packages before it are printed", func() {
				lines := strings.Split(strings.TrimSpace(out.String()), "\n")
				So(len(lines), ShouldEqual, 1)
				So(lines[0], ShouldStartWith, "Тип тренировки: Running;")
				So(svc.GetStats()["failed"], ShouldEqual, 1)
			})
		})

		Convey("When the list is empty", func() {
			err := svc.Run(ctx, nil)

			Convey("Then nothing is printed", func() {
				So(err, ShouldBeNil)
				So(out.Len(), ShouldEqual, 0)
			})
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			err := svc.Run(cancelled, referencePackages)

			Convey("Then no package is processed", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(out.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestService_Process(t *testing.T) {
	Convey("Given a lenient service", t, func() {
		svc := service.New(service.WithOutput(&bytes.Buffer{}))
		ctx := context.Background()

		Convey("When processing a run", func() {
			summary, err := svc.Process(ctx, model.Package{ID: "run-1", Code: "RUN", Data: []float64{15000, 1, 75}})

			Convey("Then it returns the computed summary", func() {
				So(err, ShouldBeNil)
				So(summary.TrainingType, ShouldEqual, "Running")
				So(summary.Distance, ShouldAlmostEqual, 9.75, 1e-9)
				So(summary.Calories, ShouldAlmostEqual, 699.75, 1e-9)
			})
		})

		Convey("When processing a package with the wrong arity", func() {
			_, err := svc.Process(ctx, model.Package{Code: "SWM", Data: []float64{720, 1}})

			Convey("Then it returns a binding error", func() {
				So(errors.Is(err, sensor.ErrArgumentCount), ShouldBeTrue)
			})
		})

		Convey("When processing a zero-duration package", func() {
			summary, err := svc.Process(ctx, model.Package{Code: "RUN", Data: []float64{15000, 0, 75}})

			Convey("Then it is summarized without validation", func() {
				So(err, ShouldBeNil)
				So(summary.Duration, ShouldEqual, 0.0)
			})
		})
	})

	Convey("Given a strict service", t, func() {
		svc := service.New(service.WithOutput(&bytes.Buffer{}), service.WithStrict(true))
		ctx := context.Background()

		Convey("When processing a zero-duration package", func() {
			_, err := svc.Process(ctx, model.Package{Code: "RUN", Data: []float64{15000, 0, 75}})

			Convey("Then it is rejected", func() {
				So(errors.Is(err, training.ErrInvalidDuration), ShouldBeTrue)
				So(svc.GetStats()["failed"], ShouldEqual, 1)
			})
		})

		Convey("When processing a walk with zero height", func() {
			_, err := svc.Process(ctx, model.Package{Code: "WLK", Data: []float64{9000, 1, 75, 0}})

			Convey("Then it is rejected", func() {
				So(errors.Is(err, training.ErrInvalidHeight), ShouldBeTrue)
			})
		})

		Convey("When processing valid packages", func() {
			var out bytes.Buffer
			strict := service.New(service.WithOutput(&out), service.WithStrict(true))
			err := strict.Run(ctx, referencePackages)

			Convey("Then the output matches the lenient run", func() {
				So(err, ShouldBeNil)
				So(out.String(), ShouldEqual, referenceOutput)
			})
		})
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestService_OutputError(t *testing.T) {
	Convey("Given a service whose output fails", t, func() {
		svc := service.New(service.WithOutput(failingWriter{}))

		Convey("When running", func() {
			err := svc.Run(context.Background(), referencePackages)

			Convey("Then the write error is returned", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "write summary")
				So(err.Error(), ShouldContainSubstring, "disk full")
			})
		})
	})
}

func TestService_Metrics(t *testing.T) {
	Convey("Given a service with its own metrics registry", t, func() {
		registry := prometheus.NewRegistry()
		svc := service.New(
			service.WithOutput(&bytes.Buffer{}),
			service.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(registry))),
		)

		Convey("When a run stops at an unknown code", func() {
			err := svc.Run(context.Background(), []model.Package{
				{Code: "RUN", Data: []float64{15000, 1, 75}},
				{Code: "XYZ", Data: []float64{1, 2, 3}},
			})
			So(errors.Is(err, sensor.ErrUnknownWorkout), ShouldBeTrue)

			Convey("Then latency is observed for the failed package too", func() {
				So(latencySamples(registry), ShouldEqual, uint64(2))
			})

			Convey("And the failure is counted by reason", func() {
				So(counterValue(registry, "ftracker_workout_failed_total"), ShouldEqual, 1.0)
				So(counterValue(registry, "ftracker_workout_processed_total"), ShouldEqual, 1.0)
			})
		})

		Convey("When the output fails", func() {
			failing := service.New(
				service.WithOutput(failingWriter{}),
				service.WithMetrics(metrics.NewManager(metrics.WithPrometheusRegistry(registry))),
			)
			_ = failing.Run(context.Background(), referencePackages[:1])

			Convey("Then the package still has a latency sample", func() {
				So(latencySamples(registry), ShouldEqual, uint64(1))
			})
		})
	})
}

func latencySamples(registry *prometheus.Registry) uint64 {
	families, err := registry.Gather()
	So(err, ShouldBeNil)
	for _, f := range families {
		if f.GetName() == "ftracker_workout_processing_latency_milliseconds" {
			return f.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	return 0
}

func counterValue(registry *prometheus.Registry, name string) float64 {
	families, err := registry.Gather()
	So(err, ShouldBeNil)
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}
