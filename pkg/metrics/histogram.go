package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Histogram is a point-in-time copy of a cumulative histogram.
// Buckets maps each upper bound to the cumulative count of observations
// less than or equal to it.
type Histogram struct {
	Count   uint64
	Sum     float64
	Buckets map[float64]uint64
}

func (h *Histogram) merge(o Histogram) {
	h.Count += o.Count
	h.Sum += o.Sum
	for le, c := range o.Buckets {
		h.Buckets[le] += c
	}
}

func (h Histogram) clone() Histogram {
	out := Histogram{Count: h.Count, Sum: h.Sum, Buckets: make(map[float64]uint64, len(h.Buckets))}
	for le, c := range h.Buckets {
		out.Buckets[le] = c
	}
	return out
}

// HistogramFromMetric reads the current state of a client_golang histogram
// and returns it together with its label pairs keyed by label name.
func HistogramFromMetric(m prometheus.Metric) (Histogram, map[string]string, error) {
	var pb dto.Metric
	if err := m.Write(&pb); err != nil {
		return Histogram{}, nil, err
	}
	ph := pb.GetHistogram()
	if ph == nil {
		return Histogram{}, nil, fmt.Errorf("%w: %s is not a histogram", ErrKindMismatch, m.Desc())
	}
	h := Histogram{
		Count:   ph.GetSampleCount(),
		Sum:     ph.GetSampleSum(),
		Buckets: make(map[float64]uint64, len(ph.GetBucket())),
	}
	for _, b := range ph.GetBucket() {
		h.Buckets[b.GetUpperBound()] = b.GetCumulativeCount()
	}
	labels := make(map[string]string, len(pb.GetLabel()))
	for _, lp := range pb.GetLabel() {
		labels[lp.GetName()] = lp.GetValue()
	}
	return h, labels, nil
}

// CollectHistograms drains every child of c and converts it with
// HistogramFromMetric.
func CollectHistograms(c prometheus.Collector) ([]Histogram, []map[string]string, error) {
	ch := make(chan prometheus.Metric)
	go func() {
		c.Collect(ch)
		close(ch)
	}()

	var (
		hists  []Histogram
		labels []map[string]string
		first  error
	)
	for m := range ch {
		h, l, err := HistogramFromMetric(m)
		if err != nil {
			if first == nil {
				first = err
			}
			continue
		}
		hists = append(hists, h)
		labels = append(labels, l)
	}
	return hists, labels, first
}
