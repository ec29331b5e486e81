// Package metrics defines the value types exchanged between collectors and
// the registry: metric families with labeled samples.
//
// A Family is built by accumulation. Samples are indexed by their label
// values, so adding twice under the same labels sums into one sample:
//
//	f := metrics.NewGauge("mc_entities_total", "The number of entities.", "dim", "type")
//	_ = f.Add(1, "overworld", "zombie")
//	_ = f.Add(1, "overworld", "zombie") // still one sample, value 2
//
// Families convert to client_golang const metrics through Desc and
// Metrics, which is how the registry serves them over promhttp.
// Histogram families carry a Histogram per sample; HistogramFromMetric
// copies one out of a live client_golang histogram.
package metrics
