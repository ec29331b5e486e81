package exporter

import (
	"context"
	"errors"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/sim-exporter/pkg/config"
	"github.com/Aleph-Alpha/sim-exporter/pkg/logger"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
	"github.com/Aleph-Alpha/sim-exporter/pkg/ticktimer"
	"github.com/Aleph-Alpha/sim-exporter/pkg/tracer"
)

// FXModule provides the *Exporter and starts and stops it with the app.
//
// Usage:
//
//	app := fx.New(
//	    fx.Supply(cfg),
//	    fx.Provide(func() simulation.Server { return world }),
//	    exporter.FXModule,
//	)
//
// A config.Config and a simulation.Server are required. A *logger.Logger,
// *tracer.Tracer, simulation.TeamSystem and *ticktimer.Timer are used when
// present.
var FXModule = fx.Module("exporter",
	fx.Provide(NewExporterWithDI),
	fx.Invoke(RegisterExporterLifecycle),
)

// ExporterParams holds the dependencies of NewExporterWithDI.
type ExporterParams struct {
	fx.In

	Config config.Config
	Server simulation.Server
	Logger *logger.Logger        `optional:"true"`
	Tracer *tracer.Tracer        `optional:"true"`
	Teams  simulation.TeamSystem `optional:"true"`
	Timer  *ticktimer.Timer      `optional:"true"`
}

// NewExporterWithDI creates an Exporter from fx-provided dependencies.
func NewExporterWithDI(p ExporterParams) *Exporter {
	var opts []Option
	if p.Logger != nil {
		opts = append(opts, WithLogger(p.Logger))
	}
	if p.Tracer != nil {
		opts = append(opts, WithTracer(p.Tracer))
	}
	if p.Teams != nil {
		opts = append(opts, WithTeams(p.Teams))
	}
	if p.Timer != nil {
		opts = append(opts, WithTimer(p.Timer))
	}
	return New(p.Config, p.Server, opts...)
}

// RegisterExporterLifecycle starts the exporter with the app and stops it
// on shutdown. An exporter already stopped through the command surface is
// not an error.
func RegisterExporterLifecycle(lc fx.Lifecycle, e *Exporter) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return e.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			if err := e.Stop(ctx); err != nil && !errors.Is(err, ErrNotRunning) {
				return err
			}
			return nil
		},
	})
}
