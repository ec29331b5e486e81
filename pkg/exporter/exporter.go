package exporter

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	promcollectors "github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/Aleph-Alpha/sim-exporter/pkg/collectors"
	"github.com/Aleph-Alpha/sim-exporter/pkg/config"
	"github.com/Aleph-Alpha/sim-exporter/pkg/logger"
	"github.com/Aleph-Alpha/sim-exporter/pkg/metrics"
	"github.com/Aleph-Alpha/sim-exporter/pkg/registry"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
	"github.com/Aleph-Alpha/sim-exporter/pkg/ticktimer"
	"github.com/Aleph-Alpha/sim-exporter/pkg/tracer"
)

// Logger is the subset of the process logger the exporter uses. It is
// also handed to the tick timer for protocol violation warnings.
//
//go:generate mockgen -source=exporter.go -destination=mock_logger_test.go -package=exporter
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Exporter serves the simulation metrics over HTTP.
//
// Start registers the collectors enabled in the configuration and binds the
// endpoint; Stop clears them and closes the endpoint. The tick timer
// outlives both, so the tick loop can keep signalling while the exporter is
// stopped.
type Exporter struct {
	cfg    config.Config
	server simulation.Server
	teams  simulation.TeamSystem
	timer  *ticktimer.Timer
	logger Logger
	tracer *tracer.Tracer

	mu       sync.Mutex
	running  bool
	registry *registry.Registry
	http     *http.Server
	listener net.Listener
	served   chan struct{}
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// WithTracer wraps every scrape in a span.
func WithTracer(t *tracer.Tracer) Option {
	return func(e *Exporter) { e.tracer = t }
}

// WithTeams enables the teams collector for the given team system.
func WithTeams(ts simulation.TeamSystem) Option {
	return func(e *Exporter) { e.teams = ts }
}

// WithTimer replaces the timer the exporter would otherwise create from
// the configured tick policy.
func WithTimer(t *ticktimer.Timer) Option {
	return func(e *Exporter) { e.timer = t }
}

// New creates a stopped exporter for server.
func New(cfg config.Config, server simulation.Server, opts ...Option) *Exporter {
	e := &Exporter{cfg: cfg, server: server}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.NewWithZap(zap.NewNop())
	}
	if e.timer == nil {
		policy, err := cfg.Collector.TickPolicy()
		if err != nil {
			e.logger.Warn("unknown tick error policy, using log", err, map[string]interface{}{
				"tick_errors": cfg.Collector.TickErrors,
			})
		}
		e.timer = ticktimer.New(ticktimer.WithPolicy(policy), ticktimer.WithLogger(e.logger))
	}
	return e
}

// Timer returns the tick timer the tick loop must signal.
func (e *Exporter) Timer() *ticktimer.Timer {
	return e.timer
}

// Running reports whether the exporter is started.
func (e *Exporter) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Addr returns the bound address of the endpoint, or "" when the exporter
// is stopped or the bind failed.
func (e *Exporter) Addr() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.listener == nil {
		return ""
	}
	return e.listener.Addr().String()
}

// Start registers the enabled collectors and binds the HTTP endpoint.
//
// A bind failure is logged and leaves the exporter running without an
// endpoint, so the host keeps working. Stop and Start again to retry.
func (e *Exporter) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return ErrAlreadyRunning
	}

	reg := registry.New(nil)
	for _, c := range e.collectors() {
		if err := reg.Register(c); err != nil {
			return fmt.Errorf("exporter: %w", err)
		}
	}

	promReg := prometheus.NewRegistry()
	if err := promReg.Register(reg); err != nil {
		return fmt.Errorf("exporter: %w", err)
	}
	if e.cfg.Collector.Runtime {
		for _, c := range []prometheus.Collector{
			promcollectors.NewGoCollector(),
			promcollectors.NewProcessCollector(promcollectors.ProcessCollectorOpts{}),
			promcollectors.NewBuildInfoCollector(),
		} {
			if err := promReg.Register(c); err != nil {
				return fmt.Errorf("exporter: %w", err)
			}
		}
	}

	e.registry = reg
	e.running = true

	addr := e.cfg.Web.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		e.logger.Error("failed to bind metrics endpoint", err, map[string]interface{}{
			"addr": addr,
		})
		return nil
	}

	e.listener = ln
	e.http = newServer(e.handler(promReg))
	e.served = make(chan struct{})
	go e.serve(e.http, ln, e.served)

	e.logger.Info("exporter started", nil, map[string]interface{}{
		"addr":       ln.Addr().String(),
		"collectors": reg.Names(),
	})
	return nil
}

// Stop clears the collectors and shuts the endpoint down, waiting for
// in-flight scrapes until ctx is done.
func (e *Exporter) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return ErrNotRunning
	}

	e.registry.Clear()
	e.registry = nil
	e.running = false

	var err error
	if e.http != nil {
		err = e.http.Shutdown(ctx)
		select {
		case <-e.served:
		case <-ctx.Done():
			if err == nil {
				err = ctx.Err()
			}
		}
	}
	e.http, e.listener, e.served = nil, nil, nil

	e.logger.Info("exporter stopped", err, nil)
	return err
}

// Gather runs one scrape without going through HTTP.
func (e *Exporter) Gather() ([]*metrics.Family, error) {
	e.mu.Lock()
	reg := e.registry
	e.mu.Unlock()

	if reg == nil {
		return nil, ErrNotRunning
	}
	return reg.CollectAll()
}

// collectors returns the enabled collectors in registration order.
func (e *Exporter) collectors() []registry.Collector {
	cc := e.cfg.Collector
	var out []registry.Collector
	if cc.Entities {
		out = append(out, collectors.NewEntities(e.server))
	}
	if cc.TileEntities {
		out = append(out, collectors.NewTileEntities(e.server, cc.TileEntitiesDetails))
	}
	if cc.Ticks {
		out = append(out, collectors.NewTicks(e.server, e.timer))
	}
	if cc.Chunks {
		out = append(out, collectors.NewChunks(e.server))
	}
	if cc.Players {
		out = append(out, collectors.NewPlayers(e.server))
	}
	if cc.PlayerStatistics {
		out = append(out, collectors.NewPlayerStatistics(e.server))
	}
	if cc.Teams && e.teams != nil {
		out = append(out, collectors.NewTeams(e.server, e.teams))
	}
	return out
}
