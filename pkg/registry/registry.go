package registry

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/sim-exporter/pkg/metrics"
)

// Collector turns live server state into metric families.
type Collector interface {
	// Name identifies the collector in errors and logs.
	Name() string

	// Describe returns the families the collector produces, without
	// samples. It must be cheap and return the same families every call.
	Describe() []*metrics.Family

	// Collect returns a fresh snapshot. It may run concurrently with
	// mutation of the server state and must not block it.
	Collect() ([]*metrics.Family, error)
}

// Registry holds the enabled collectors in registration order.
//
// It also implements prometheus.Collector so it can be served by
// promhttp. The set of families changes with Register and Clear, so it
// registers as an unchecked collector and Describe sends nothing.
type Registry struct {
	mu         sync.RWMutex
	collectors []Collector
	owners     map[string]string

	constLabels prometheus.Labels
}

// New returns an empty registry. constLabels are attached to every
// metric served through the prometheus.Collector interface.
func New(constLabels prometheus.Labels) *Registry {
	return &Registry{
		owners:      make(map[string]string),
		constLabels: constLabels,
	}
}

// Register validates the families described by c and appends it.
// A family name may only be produced by one collector.
func (r *Registry) Register(c Collector) error {
	descs := c.Describe()

	r.mu.Lock()
	defer r.mu.Unlock()

	names := make(map[string]struct{}, len(descs))
	for _, f := range descs {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("register %s: %w", c.Name(), err)
		}
		if owner, ok := r.owners[f.Name]; ok {
			return fmt.Errorf("register %s: %w: %s already produced by %s", c.Name(), ErrDuplicateFamily, f.Name, owner)
		}
		if _, ok := names[f.Name]; ok {
			return fmt.Errorf("register %s: %w: %s described twice", c.Name(), ErrDuplicateFamily, f.Name)
		}
		names[f.Name] = struct{}{}
	}
	for name := range names {
		r.owners[name] = c.Name()
	}
	r.collectors = append(r.collectors, c)
	return nil
}

// CollectAll runs every collector in registration order and concatenates
// their families.
//
// The first failing collector aborts the scrape: nothing is returned
// except a *CollectError naming it. A collector returning a family with
// samples of the wrong arity is treated as failing.
func (r *Registry) CollectAll() ([]*metrics.Family, error) {
	r.mu.RLock()
	collectors := append([]Collector(nil), r.collectors...)
	r.mu.RUnlock()

	var out []*metrics.Family
	for _, c := range collectors {
		fams, err := c.Collect()
		if err != nil {
			return nil, &CollectError{Collector: c.Name(), Err: err}
		}
		for _, f := range fams {
			if f == nil {
				continue
			}
			if err := f.Validate(); err != nil {
				return nil, &CollectError{Collector: c.Name(), Err: err}
			}
			out = append(out, f)
		}
	}
	return out, nil
}

// Clear drops every collector.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.collectors = nil
	r.owners = make(map[string]string)
}

// Len returns the number of registered collectors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.collectors)
}

// Names returns the collector names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.collectors))
	for i, c := range r.collectors {
		names[i] = c.Name()
	}
	return names
}

// Describe implements prometheus.Collector.
func (r *Registry) Describe(chan<- *prometheus.Desc) {}

// Collect implements prometheus.Collector. A failed scrape is reported as
// an invalid metric, which makes promhttp fail the whole request.
func (r *Registry) Collect(ch chan<- prometheus.Metric) {
	fams, err := r.CollectAll()
	if err != nil {
		ch <- prometheus.NewInvalidMetric(scrapeErrorDesc, err)
		return
	}
	for _, f := range fams {
		ms, err := f.Metrics(r.constLabels)
		if err != nil {
			ch <- prometheus.NewInvalidMetric(f.Desc(r.constLabels), err)
			continue
		}
		for _, m := range ms {
			ch <- m
		}
	}
}

var scrapeErrorDesc = prometheus.NewDesc("mc_exporter_scrape_error", "A collector failed during the scrape.", nil, nil)
