package collectors

import (
	"strconv"

	"github.com/Aleph-Alpha/sim-exporter/pkg/aggregate"
	"github.com/Aleph-Alpha/sim-exporter/pkg/metrics"
	"github.com/Aleph-Alpha/sim-exporter/pkg/simulation"
)

// emitCounts adds one sample per aggregated key to f.
func emitCounts[K comparable](f *metrics.Family, counts *aggregate.Counts[K], labels func(K) []string) error {
	var err error
	counts.Each(func(k K, n int) {
		if err != nil {
			return
		}
		err = f.Add(float64(n), labels(k)...)
	})
	return err
}

// dimLabels returns the id and name labels of a dimension.
func dimLabels(d simulation.Dimension) (string, string) {
	return strconv.Itoa(d.ID()), d.Name()
}
