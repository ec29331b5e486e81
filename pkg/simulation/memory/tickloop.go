package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
)

// DefaultTickInterval is 20 ticks per second.
const DefaultTickInterval = 50 * time.Millisecond

// TickLoop advances a World at a fixed rate and reports tick boundaries
// to a TickListener.
type TickLoop struct {
	world    *World
	listener simulation.TickListener
	interval time.Duration

	// OnDimensionTick, when set, runs inside every dimension tick.
	OnDimensionTick func(d *Dim)
}

// NewTickLoop creates a loop for world. A non-positive interval selects
// DefaultTickInterval.
func NewTickLoop(world *World, listener simulation.TickListener, interval time.Duration) *TickLoop {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickLoop{world: world, listener: listener, interval: interval}
}

// Step runs one server tick: every loaded dimension ticks once inside it.
// The first listener error aborts the tick and is returned.
func (l *TickLoop) Step() error {
	if err := l.listener.StartServerTick(); err != nil {
		return fmt.Errorf("start server tick: %w", err)
	}
	for _, d := range l.world.loaded() {
		if err := l.listener.StartDimensionTick(d.id, d.name); err != nil {
			return fmt.Errorf("start dimension tick: %w", err)
		}
		if l.OnDimensionTick != nil {
			l.OnDimensionTick(d)
		}
		if err := l.listener.StopDimensionTick(d.id, d.name); err != nil {
			return fmt.Errorf("stop dimension tick: %w", err)
		}
	}
	l.world.advance()
	if err := l.listener.StopServerTick(); err != nil {
		return fmt.Errorf("stop server tick: %w", err)
	}
	return nil
}

// Run steps the loop every interval until ctx is done or a step fails.
// It returns nil when ctx is cancelled.
func (l *TickLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := l.Step(); err != nil {
				return err
			}
		}
	}
}
