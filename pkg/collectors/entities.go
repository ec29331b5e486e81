package collectors

import (
	"strconv"

	"github.com/Aleph-Alpha/sim-exporter/pkg/aggregate"
	"github.com/Aleph-Alpha/sim-exporter/pkg/metrics"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
)

type entityKey struct {
	Dim    string
	DimID  int
	TypeID int
	Type   string
}

// Entities counts the non-player entities of every loaded dimension by type.
type Entities struct {
	server simulation.Server
}

// NewEntities creates the entities collector.
func NewEntities(server simulation.Server) *Entities {
	return &Entities{server: server}
}

func newEntitiesFamily() *metrics.Family {
	return metrics.NewGauge("mc_entities_total", "The number of entities in each dimension by type.", "dim", "dim_id", "id", "type")
}

func (c *Entities) Name() string { return "entities" }

func (c *Entities) Describe() []*metrics.Family {
	return []*metrics.Family{newEntitiesFamily()}
}

// Collect skips entities that cannot be classified.
func (c *Entities) Collect() ([]*metrics.Family, error) {
	counts := aggregate.New[entityKey]()
	for _, dim := range c.server.Dimensions() {
		name, id := dim.Name(), dim.ID()
		aggregate.Into(counts, dim.Entities(), func(e simulation.Entity) (entityKey, bool) {
			t, ok := e.Classify()
			if !ok || t.Name == "" {
				return entityKey{}, false
			}
			return entityKey{Dim: name, DimID: id, TypeID: t.ID, Type: t.Name}, true
		}, isNotPlayer)
	}

	f := newEntitiesFamily()
	if err := emitCounts(f, counts, func(k entityKey) []string {
		return []string{k.Dim, strconv.Itoa(k.DimID), strconv.Itoa(k.TypeID), k.Type}
	}); err != nil {
		return nil, err
	}
	return []*metrics.Family{f}, nil
}

func isNotPlayer(e simulation.Entity) bool {
	return e != nil && !e.IsPlayer()
}
