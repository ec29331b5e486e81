package collectors

import (
	"github.com/Aleph-Alpha/sim-exporter/pkg/metrics"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
	"github.com/Aleph-Alpha/sim-exporter/pkg/ticktimer"
)

// Ticks reports the tick duration histograms of a timer and the total tick
// count of the server.
type Ticks struct {
	server simulation.Server
	timer  *ticktimer.Timer
}

// NewTicks creates the ticks collector.
func NewTicks(server simulation.Server, timer *ticktimer.Timer) *Ticks {
	return &Ticks{server: server, timer: timer}
}

func newTotalTicksFamily() *metrics.Family {
	return metrics.NewGauge("mc_server_ticks_total_counter", "DIM0's total ticks")
}

func (c *Ticks) Name() string { return "ticks" }

func (c *Ticks) Describe() []*metrics.Family {
	return append(c.timer.Describe(), newTotalTicksFamily())
}

func (c *Ticks) Collect() ([]*metrics.Family, error) {
	families, err := c.timer.Families()
	if err != nil {
		return nil, err
	}

	total := newTotalTicksFamily()
	if err := total.Add(float64(c.server.TotalTicks())); err != nil {
		return nil, err
	}
	return append(families, total), nil
}
