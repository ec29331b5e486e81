package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Desc builds the Prometheus descriptor of the family.
func (f *Family) Desc(constLabels prometheus.Labels) *prometheus.Desc {
	return prometheus.NewDesc(f.Name, f.Help, f.LabelNames, constLabels)
}

// Metrics converts every sample into a const Prometheus metric.
func (f *Family) Metrics(constLabels prometheus.Labels) ([]prometheus.Metric, error) {
	desc := f.Desc(constLabels)
	out := make([]prometheus.Metric, 0, len(f.samples))
	for _, s := range f.samples {
		var (
			m   prometheus.Metric
			err error
		)
		switch f.Kind {
		case KindHistogram:
			h := Histogram{}
			if s.Histogram != nil {
				h = *s.Histogram
			}
			m, err = prometheus.NewConstHistogram(desc, h.Count, h.Sum, h.Buckets, s.LabelValues...)
		case KindCounter:
			m, err = prometheus.NewConstMetric(desc, prometheus.CounterValue, s.Value, s.LabelValues...)
		default:
			m, err = prometheus.NewConstMetric(desc, prometheus.GaugeValue, s.Value, s.LabelValues...)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// NewHistogramVec defines a HistogramVec with explicit buckets.
func NewHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}

// NewHistogramMetric defines an unlabeled Histogram with explicit buckets.
func NewHistogramMetric(name, help string, buckets []float64) prometheus.Histogram {
	return prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
	)
}
