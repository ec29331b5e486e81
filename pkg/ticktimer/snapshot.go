package ticktimer

import (
	"strconv"

	"github.com/Aleph-Alpha/sim-exporter/pkg/metrics"
)

func newServerFamily() *metrics.Family {
	return metrics.NewHistogram(ServerTickSecondsName, "Stats on server tick times.")
}

func newDimensionFamily() *metrics.Family {
	return metrics.NewHistogram(DimensionTickSecondsName, "Stats on dimension tick times.", "id", "name")
}

// Describe returns the empty families produced by Families.
func (t *Timer) Describe() []*metrics.Family {
	return []*metrics.Family{newServerFamily(), newDimensionFamily()}
}

// Families returns a snapshot of the server and dimension histograms.
// The server family always has exactly one sample; the dimension family
// has one sample per dimension that completed at least one tick.
func (t *Timer) Families() ([]*metrics.Family, error) {
	server := newServerFamily()
	h, _, err := metrics.HistogramFromMetric(t.serverSeconds)
	if err != nil {
		return nil, err
	}
	if err := server.AddHistogram(h); err != nil {
		return nil, err
	}

	dims := newDimensionFamily()
	hists, labels, err := metrics.CollectHistograms(t.dimSeconds)
	if err != nil {
		return nil, err
	}
	for i, h := range hists {
		if err := dims.AddHistogram(h, labels[i]["id"], labels[i]["name"]); err != nil {
			return nil, err
		}
	}
	return []*metrics.Family{server, dims}, nil
}

// ServerTicks returns the number of completed server ticks.
func (t *Timer) ServerTicks() uint64 {
	h, _, err := metrics.HistogramFromMetric(t.serverSeconds)
	if err != nil {
		return 0
	}
	return h.Count
}

// DimensionTicks returns the number of completed ticks of dimension id.
func (t *Timer) DimensionTicks(id int) uint64 {
	hists, labels, err := metrics.CollectHistograms(t.dimSeconds)
	if err != nil {
		return 0
	}
	want := strconv.Itoa(id)
	var n uint64
	for i, h := range hists {
		if labels[i]["id"] == want {
			n += h.Count
		}
	}
	return n
}
