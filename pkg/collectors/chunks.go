package collectors

import (
	"github.com/Aleph-Alpha/sim-exporter/pkg/metrics"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
)

// Chunks reports the number of loaded chunks of every dimension.
type Chunks struct {
	server simulation.Server
}

// NewChunks creates the chunks collector.
func NewChunks(server simulation.Server) *Chunks {
	return &Chunks{server: server}
}

func newChunksFamily() *metrics.Family {
	return metrics.NewGauge("mc_dimension_chunks_loaded", "The number of loaded dimension chunks.", "id", "name")
}

func (c *Chunks) Name() string { return "chunks" }

func (c *Chunks) Describe() []*metrics.Family {
	return []*metrics.Family{newChunksFamily()}
}

func (c *Chunks) Collect() ([]*metrics.Family, error) {
	f := newChunksFamily()
	for _, dim := range c.server.Dimensions() {
		id, name := dimLabels(dim)
		if err := f.Add(float64(dim.LoadedChunks()), id, name); err != nil {
			return nil, err
		}
	}
	return []*metrics.Family{f}, nil
}
