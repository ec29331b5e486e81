package metrics

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/prometheus/common/model"
)

// Kind is the Prometheus type of a metric family.
type Kind int

const (
	KindGauge Kind = iota
	KindCounter
	KindHistogram
)

// String returns the exposition name of the kind.
func (k Kind) String() string {
	switch k {
	case KindGauge:
		return "gauge"
	case KindCounter:
		return "counter"
	case KindHistogram:
		return "histogram"
	default:
		return "unknown"
	}
}

// Sample is a single labeled value of a family. Histogram is only set
// for families of KindHistogram.
type Sample struct {
	LabelValues []string
	Value       float64
	Histogram   *Histogram
}

// Family is a named group of samples sharing the same label names.
//
// Samples are keyed by their label values: adding a value for a label
// tuple that already exists accumulates into the existing sample, so a
// family never holds two samples with the same labels.
type Family struct {
	Name       string
	Help       string
	Kind       Kind
	LabelNames []string

	samples []Sample
	index   map[string]int
}

// NewGauge creates an empty gauge family.
func NewGauge(name, help string, labelNames ...string) *Family {
	return newFamily(name, help, KindGauge, labelNames)
}

// NewCounter creates an empty counter family.
func NewCounter(name, help string, labelNames ...string) *Family {
	return newFamily(name, help, KindCounter, labelNames)
}

// NewHistogram creates an empty histogram family.
func NewHistogram(name, help string, labelNames ...string) *Family {
	return newFamily(name, help, KindHistogram, labelNames)
}

func newFamily(name, help string, kind Kind, labelNames []string) *Family {
	return &Family{
		Name:       name,
		Help:       help,
		Kind:       kind,
		LabelNames: append([]string(nil), labelNames...),
		index:      make(map[string]int),
	}
}

// Add accumulates value into the sample identified by labelValues,
// creating the sample on first use. Invalid UTF-8 in label values is
// replaced with U+FFFD.
func (f *Family) Add(value float64, labelValues ...string) error {
	if f.Kind == KindHistogram {
		return fmt.Errorf("%w: %s", ErrKindMismatch, f.Name)
	}
	i, err := f.slot(labelValues)
	if err != nil {
		return err
	}
	f.samples[i].Value += value
	return nil
}

// AddHistogram merges h into the histogram sample identified by labelValues.
func (f *Family) AddHistogram(h Histogram, labelValues ...string) error {
	if f.Kind != KindHistogram {
		return fmt.Errorf("%w: %s", ErrKindMismatch, f.Name)
	}
	i, err := f.slot(labelValues)
	if err != nil {
		return err
	}
	s := &f.samples[i]
	if s.Histogram == nil {
		s.Histogram = &Histogram{Buckets: make(map[float64]uint64, len(h.Buckets))}
	}
	s.Histogram.merge(h)
	s.Value = s.Histogram.Sum
	return nil
}

func (f *Family) slot(labelValues []string) (int, error) {
	if len(labelValues) != len(f.LabelNames) {
		return 0, &ArityError{Family: f.Name, Want: len(f.LabelNames), Got: len(labelValues)}
	}
	if f.index == nil {
		f.index = make(map[string]int)
	}
	values := make([]string, len(labelValues))
	for i, v := range labelValues {
		values[i] = strings.ToValidUTF8(v, "\uFFFD")
	}
	key := joinLabels(values)
	if i, ok := f.index[key]; ok {
		return i, nil
	}
	f.samples = append(f.samples, Sample{LabelValues: values})
	i := len(f.samples) - 1
	f.index[key] = i
	return i, nil
}

// Samples returns a copy of the samples in insertion order.
func (f *Family) Samples() []Sample {
	out := make([]Sample, len(f.samples))
	for i, s := range f.samples {
		out[i] = Sample{
			LabelValues: append([]string(nil), s.LabelValues...),
			Value:       s.Value,
		}
		if s.Histogram != nil {
			h := s.Histogram.clone()
			out[i].Histogram = &h
		}
	}
	return out
}

// Len returns the number of samples.
func (f *Family) Len() int {
	return len(f.samples)
}

// Skeleton returns a copy of the family without samples.
func (f *Family) Skeleton() *Family {
	return newFamily(f.Name, f.Help, f.Kind, f.LabelNames)
}

// Validate checks the family name and label names against the Prometheus
// data model and verifies every sample has the declared arity and valid
// UTF-8 label values.
func (f *Family) Validate() error {
	if !model.MetricNameRE.MatchString(f.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, f.Name)
	}
	seen := make(map[string]struct{}, len(f.LabelNames))
	for _, name := range f.LabelNames {
		if !model.LabelNameRE.MatchString(name) || strings.HasPrefix(name, "__") {
			return fmt.Errorf("%w: label %q of %s", ErrInvalidName, name, f.Name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: label %q of %s", ErrDuplicateLabel, name, f.Name)
		}
		seen[name] = struct{}{}
	}
	for _, s := range f.samples {
		if len(s.LabelValues) != len(f.LabelNames) {
			return &ArityError{Family: f.Name, Want: len(f.LabelNames), Got: len(s.LabelValues)}
		}
		for _, v := range s.LabelValues {
			if !utf8.ValidString(v) {
				return fmt.Errorf("%w: %q in %s", ErrInvalidLabelValue, v, f.Name)
			}
		}
	}
	return nil
}

// joinLabels builds the sample index key. Values are valid UTF-8 by the
// time they get here and 0xff never appears in valid UTF-8.
func joinLabels(values []string) string {
	return strings.Join(values, "\xff")
}
