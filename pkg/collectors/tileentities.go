package collectors

import (
	"strconv"

	"github.com/Aleph-Alpha/sim-exporter/pkg/aggregate"
	"github.com/Aleph-Alpha/sim-exporter/pkg/metrics"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
)

type tileEntityKey struct {
	Dim   string
	DimID int
	Class string
	Name  string
}

// TileEntities counts loaded tile entities, either per dimension or per
// dimension and type. The mode is fixed when the collector is created.
type TileEntities struct {
	server   simulation.Server
	detailed bool
}

// NewTileEntities creates the tile entities collector. detailed selects the
// per-type breakdown.
func NewTileEntities(server simulation.Server, detailed bool) *TileEntities {
	return &TileEntities{server: server, detailed: detailed}
}

func newTileEntitiesFamily() *metrics.Family {
	return metrics.NewGauge("mc_dimension_tileentities", "The number of loaded ticking tileentities in a dim.", "id", "name")
}

func newTileEntitiesDetailedFamily() *metrics.Family {
	return metrics.NewGauge("mc_dimension_tileentities_detailed", "The number of loaded ticking tileentities in a dim per type.", "dim_id", "dim", "te_class", "te_name")
}

func (c *TileEntities) Name() string { return "tileentities" }

func (c *TileEntities) Describe() []*metrics.Family {
	if c.detailed {
		return []*metrics.Family{newTileEntitiesDetailedFamily()}
	}
	return []*metrics.Family{newTileEntitiesFamily()}
}

func (c *TileEntities) Collect() ([]*metrics.Family, error) {
	if c.detailed {
		return c.collectDetailed()
	}

	f := newTileEntitiesFamily()
	for _, dim := range c.server.Dimensions() {
		loaded := len(dim.TileEntities())
		if loaded == 0 {
			continue
		}
		id, name := dimLabels(dim)
		if err := f.Add(float64(loaded), id, name); err != nil {
			return nil, err
		}
	}
	return []*metrics.Family{f}, nil
}

func (c *TileEntities) collectDetailed() ([]*metrics.Family, error) {
	counts := aggregate.New[tileEntityKey]()
	for _, dim := range c.server.Dimensions() {
		name, id := dim.Name(), dim.ID()
		aggregate.Into(counts, dim.TileEntities(), func(te simulation.TileEntity) (tileEntityKey, bool) {
			t, ok := te.Classify()
			if !ok {
				return tileEntityKey{}, false
			}
			return tileEntityKey{Dim: name, DimID: id, Class: t.Class, Name: t.Name}, true
		}, func(te simulation.TileEntity) bool { return te != nil })
	}

	f := newTileEntitiesDetailedFamily()
	if err := emitCounts(f, counts, func(k tileEntityKey) []string {
		return []string{strconv.Itoa(k.DimID), k.Dim, k.Class, k.Name}
	}); err != nil {
		return nil, err
	}
	return []*metrics.Family{f}, nil
}
