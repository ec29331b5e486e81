package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/sim-exporter/pkg/command"
	"github.com/Aleph-Alpha/sim-exporter/pkg/config"
	"github.com/Aleph-Alpha/sim-exporter/pkg/exporter"
	"github.com/Aleph-Alpha/sim-exporter/pkg/logger"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation/memory"
	"github.com/Aleph-Alpha/sim-exporter/pkg/tracer"
)

// stopTimeout bounds the graceful shutdown of the fx app.
const stopTimeout = 15 * time.Second

var (
	withConsole  bool
	tickInterval time.Duration
	seed         uint64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the simulation and serve its metrics",
	Long: "Run the demo simulation at a fixed tick rate and serve its metrics.\n" +
		"With --console, operator commands such as \"/prometheus restart\" are read from stdin.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&withConsole, "console", true, "read operator commands from stdin")
	serveCmd.Flags().DurationVar(&tickInterval, "tick-interval", memory.DefaultTickInterval, "simulation tick interval")
	serveCmd.Flags().Uint64Var(&seed, "seed", 1, "seed of the demo simulation")
	rootCmd.AddCommand(serveCmd)
}

// appOptions wires logger, tracer and exporter for the given world.
func appOptions(cfg config.Config, server simulation.Server, teams simulation.TeamSystem) fx.Option {
	return fx.Options(
		fx.Supply(
			cfg,
			logger.Config{Level: cfg.Logger.Level, ServiceName: cfg.Logger.ServiceName},
			tracer.Config{ServiceName: cfg.Tracer.ServiceName, AppEnv: cfg.Tracer.AppEnv, EnableExport: cfg.Tracer.EnableExport},
		),
		fx.WithLogger(func(l *logger.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap}
		}),
		logger.FXModule,
		fx.Provide(
			func(l *logger.Logger) tracer.Logger { return l },
			func() simulation.Server { return server },
			func() simulation.TeamSystem { return teams },
		),
		tracer.FXModule,
		exporter.FXModule,
	)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("sim-exporter serve: %w", err)
	}

	sim := newDemo(seed)

	var (
		exp *exporter.Exporter
		log *logger.Logger
	)
	app := fx.New(appOptions(cfg, sim.world, sim.teams), fx.Populate(&exp, &log))
	if err := app.Err(); err != nil {
		return fmt.Errorf("sim-exporter serve: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("sim-exporter serve: start: %w", err)
	}
	log.Info("sim-exporter running", nil, map[string]interface{}{
		"version":       buildVersion,
		"addr":          exp.Addr(),
		"tick_interval": tickInterval.String(),
		"tick_errors":   exp.Timer().Policy().String(),
	})

	g, gctx := errgroup.WithContext(ctx)

	loop := memory.NewTickLoop(sim.world, exp.Timer(), tickInterval)
	loop.OnDimensionTick = sim.tick
	g.Go(func() error {
		return loop.Run(gctx)
	})

	if withConsole {
		console := command.NewConsole(command.New(exp, cfg.Collector.CommandPermissionLevel), cmd.OutOrStdout(), log)
		g.Go(func() error {
			return console.Run(gctx, cmd.InOrStdin())
		})
	}

	runErr := g.Wait()
	if runErr != nil {
		log.Error("simulation stopped", runErr, nil)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return fmt.Errorf("sim-exporter serve: %w", runErr)
	}
	return nil
}
